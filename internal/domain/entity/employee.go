package entity

import (
	"strings"
	"time"
)

// Estados válidos de Employee.
const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"
)

// Employee representa un usuario del CRM. Nunca se elimina, solo se desactiva.
type Employee struct {
	ID           string
	FirstName    string
	MiddleName   *string
	LastName     string
	RoleID       string
	Status       string // Active, Inactive
	Username     *string
	Email        *string
	PasswordHash *string // bcrypt
	LastLogin    *time.Time
	CreatedBy    string
	CreatedOn    time.Time
	ModifiedBy   *string
	ModifiedOn   *time.Time
}

// FullName "Nombre Apellido" sin espacios sobrantes.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// CanLogin solo los empleados activos pueden iniciar sesión.
func (e *Employee) CanLogin() bool {
	return strings.EqualFold(e.Status, EmployeeStatusActive)
}

// ValidEmployeeStatus indica si s es un estado permitido.
func ValidEmployeeStatus(s string) bool {
	return s == EmployeeStatusActive || s == EmployeeStatusInactive
}

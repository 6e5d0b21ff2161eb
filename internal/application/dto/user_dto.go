package dto

import "time"

// RegisterEmployeeRequest alta de empleado. emp_id es opcional (se genera EMP###).
// password se limita a 72 bytes por bcrypt.
type RegisterEmployeeRequest struct {
	EmpID         string `json:"emp_id" validate:"omitempty,max=20"`
	EmpFirstName  string `json:"emp_first_name" validate:"required,max=100"`
	EmpMiddleName string `json:"emp_middle_name" validate:"omitempty,max=100"`
	EmpLastName   string `json:"emp_last_name" validate:"required,max=100"`
	RoleID        string `json:"role_id" validate:"required,max=20"`
	EmpStatus     string `json:"emp_status" validate:"required,oneof=Active Inactive"`
	Username      string `json:"username" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"omitempty,email,max=150"`
	Password      string `json:"password" validate:"omitempty,min=6,max=72"`
}

// UpdateEmployeeRequest actualización completa de los datos editables.
type UpdateEmployeeRequest struct {
	EmpFirstName  string `json:"emp_first_name" validate:"required,max=100"`
	EmpMiddleName string `json:"emp_middle_name" validate:"omitempty,max=100"`
	EmpLastName   string `json:"emp_last_name" validate:"required,max=100"`
	RoleID        string `json:"role_id" validate:"required,max=20"`
	EmpStatus     string `json:"emp_status" validate:"required,oneof=Active Inactive"`
}

// UpdateEmployeeStatusRequest cambio de estado.
type UpdateEmployeeStatusRequest struct {
	EmpStatus string `json:"emp_status" validate:"required,oneof=Active Inactive"`
}

// EmployeeResponse salida de un empleado (sin password).
type EmployeeResponse struct {
	EmpID         string     `json:"emp_id"`
	EmpFirstName  string     `json:"emp_first_name"`
	EmpMiddleName *string    `json:"emp_middle_name"`
	EmpLastName   string     `json:"emp_last_name"`
	RoleID        string     `json:"role_id"`
	EmpStatus     string     `json:"emp_status"`
	Username      *string    `json:"username"`
	Email         *string    `json:"email"`
	LastLogin     *time.Time `json:"last_login"`
	CreatedBy     string     `json:"created_by"`
	CreatedOn     time.Time  `json:"created_on"`
	ModifiedBy    *string    `json:"modified_by"`
	ModifiedOn    *time.Time `json:"modified_on"`
}

// LoginRequest credenciales de login: los tres campos son requeridos.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de acceso e identidad del empleado.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	EmpID       string `json:"emp_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	RoleType    string `json:"role_type"`
}

// MeResponse identidad del token actual.
type MeResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	RoleType string `json:"role_type"`
}

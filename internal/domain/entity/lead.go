package entity

import "time"

// Lead representa un cliente potencial en el embudo de ventas.
// Siempre referencia exactamente un Customer; fuente, estado y empleado son obligatorios al persistir.
type Lead struct {
	ID          string
	CustomerID  string
	SourceID    string
	StatusID    string
	EmployeeID  string  // empleado asignado
	ProjectID   *string // opcional
	Description string
	IsActive    bool // false = borrado lógico
	CreatedOn   time.Time
	CreatedBy   *string
	ModifiedOn  *time.Time
	ModifiedBy  *string
}

// LeadView modelo de lectura: lead con cliente, catálogos, proyecto y auditoría resueltos.
type LeadView struct {
	ID             string
	Name           string
	Phone          string
	AlternatePhone *string
	Email          *string
	Profession     *string
	Project        *string
	ProjectID      *string
	Source         *string
	Status         *string
	AssignedTo     *string
	Description    string
	CreatedAt      time.Time
	CreatedBy      *string
	ModifiedAt     *time.Time
	ModifiedBy     *string
	IsActive       bool
}

// LeadFilter filtros del listado. Vacío = sin filtro.
type LeadFilter struct {
	Customer string // subcadena de nombre o apellido
	Mobile   string // subcadena del teléfono
	Source   string // nombre exacto
	Employee string // nombre exacto (primer nombre o completo)
	Project  string // nombre exacto
}

// LeadPatch actualización parcial de un lead: nil conserva el valor actual.
// ModifiedBy/ModifiedOn siempre se escriben.
type LeadPatch struct {
	ID          string
	SourceID    *string
	StatusID    *string
	EmployeeID  *string
	ProjectID   *string
	Description *string
	ModifiedOn  time.Time
	ModifiedBy  string
}

package dto

import "time"

// LeadResponse lead en el formato que consume el frontend (camelCase).
type LeadResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	AlternatePhone *string    `json:"alternatePhone"`
	Email          *string    `json:"email"`
	Profession     *string    `json:"profession"`
	Project        *string    `json:"project"`
	ProjectID      *string    `json:"projectId"`
	Source         *string    `json:"source"`
	Status         *string    `json:"status"`
	AssignedTo     *string    `json:"assignedTo"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedBy      *string    `json:"createdBy"`
	ModifiedAt     *time.Time `json:"modifiedAt"`
	ModifiedBy     *string    `json:"modifiedBy"`
}

// CreateLeadRequest entrada de creación. source, status y assignedTo son nombres legibles.
// projectId (id directo) tiene prioridad sobre project (nombre).
// Los max reflejan el ancho de las columnas de customer.
type CreateLeadRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Phone          string `json:"phone" validate:"required,max=25"`
	AlternatePhone string `json:"alternatePhone" validate:"omitempty,max=20"`
	Email          string `json:"email" validate:"omitempty,email,max=150"`
	Profession     string `json:"profession" validate:"omitempty,max=100"`
	Source         string `json:"source" validate:"required"`
	Status         string `json:"status" validate:"required"`
	AssignedTo     string `json:"assignedTo" validate:"required"`
	Project        string `json:"project"`
	ProjectID      string `json:"projectId"`
	Description    string `json:"description"`
}

// UpdateLeadRequest entrada de actualización parcial. nil conserva el valor actual.
// El teléfono no es editable.
type UpdateLeadRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=100"`
	Email          *string `json:"email" validate:"omitempty,email,max=150"`
	AlternatePhone *string `json:"alternatePhone" validate:"omitempty,max=20"`
	Profession     *string `json:"profession" validate:"omitempty,max=100"`
	Source         *string `json:"source"`
	Status         *string `json:"status"`
	AssignedTo     *string `json:"assignedTo"`
	Project        *string `json:"project"`
	ProjectID      *string `json:"projectId"`
	Description    *string `json:"description"`
}

// CreateLeadResponse salida de creación.
type CreateLeadResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// LeadFilterRequest filtros del listado (query string).
type LeadFilterRequest struct {
	Customer string `query:"customer"`
	Mobile   string `query:"mobile"`
	Source   string `query:"source"`
	Employee string `query:"employee"`
	Project  string `query:"project"`
}

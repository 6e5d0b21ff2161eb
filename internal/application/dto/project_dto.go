package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest alta de proyecto. project_id opcional (UUID si falta).
type CreateProjectRequest struct {
	ProjectID     string           `json:"project_id" validate:"omitempty,max=64"`
	ProjectName   string           `json:"project_name" validate:"required,max=150"`
	ProjectType   string           `json:"project_type" validate:"required,oneof=Villa Apartment"`
	Location      *string          `json:"location" validate:"omitempty,max=150"`
	AddressLine1  *string          `json:"address_line1" validate:"omitempty,max=255"`
	City          *string          `json:"city" validate:"omitempty,max=100"`
	State         *string          `json:"state" validate:"omitempty,max=100"`
	Pincode       *string          `json:"pincode" validate:"omitempty,max=12"`
	TotalArea     *decimal.Decimal `json:"total_area"`
	NumberOfUnits *int             `json:"number_of_units" validate:"omitempty,min=0"`
	RERANumber    *string          `json:"rera_number" validate:"omitempty,max=100"`
	Status        string           `json:"status" validate:"required,oneof=RERA_APPROVED COMPLETED PRE_LAUNCH"`
}

// UpdateProjectRequest actualización parcial; status no se admite aquí.
type UpdateProjectRequest struct {
	ProjectName   *string          `json:"project_name" validate:"omitempty,max=150"`
	ProjectType   *string          `json:"project_type" validate:"omitempty,oneof=Villa Apartment"`
	Location      *string          `json:"location" validate:"omitempty,max=150"`
	AddressLine1  *string          `json:"address_line1" validate:"omitempty,max=255"`
	City          *string          `json:"city" validate:"omitempty,max=100"`
	State         *string          `json:"state" validate:"omitempty,max=100"`
	Pincode       *string          `json:"pincode" validate:"omitempty,max=12"`
	TotalArea     *decimal.Decimal `json:"total_area"`
	NumberOfUnits *int             `json:"number_of_units" validate:"omitempty,min=0"`
	RERANumber    *string          `json:"rera_number" validate:"omitempty,max=100"`
	Status        *string          `json:"status"`
}

// UpdateProjectStatusRequest cambio de estado.
type UpdateProjectStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateProjectResponse salida de creación.
type CreateProjectResponse struct {
	Message   string `json:"message"`
	ProjectID string `json:"project_id" validate:"omitempty,max=64"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ProjectID     string           `json:"project_id" validate:"omitempty,max=64"`
	ProjectName   string           `json:"project_name" validate:"omitempty,max=150"`
	ProjectType   string           `json:"project_type"`
	Location      *string          `json:"location" validate:"omitempty,max=150"`
	AddressLine1  *string          `json:"address_line1" validate:"omitempty,max=255"`
	City          *string          `json:"city" validate:"omitempty,max=100"`
	State         *string          `json:"state" validate:"omitempty,max=100"`
	Pincode       *string          `json:"pincode" validate:"omitempty,max=12"`
	TotalArea     *decimal.Decimal `json:"total_area"`
	NumberOfUnits *int             `json:"number_of_units"`
	RERANumber    *string          `json:"rera_number" validate:"omitempty,max=100"`
	Status        string           `json:"status"`
	CreatedBy     *string          `json:"created_by"`
	CreatedOn     time.Time        `json:"created_on"`
	ModifiedOn    *time.Time       `json:"modified_on"`
}

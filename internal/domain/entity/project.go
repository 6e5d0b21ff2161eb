package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de proyecto (ENUM en base de datos).
const (
	ProjectStatusReraApproved = "RERA_APPROVED"
	ProjectStatusCompleted    = "COMPLETED"
	ProjectStatusPreLaunch    = "PRE_LAUNCH"
)

// Tipos de proyecto.
const (
	ProjectTypeVilla     = "Villa"
	ProjectTypeApartment = "Apartment"
)

// Project proyecto inmobiliario registrado.
type Project struct {
	ID            string
	Name          string
	Type          string
	Location      *string
	AddressLine1  *string
	City          *string
	State         *string
	Pincode       *string
	TotalArea     *decimal.Decimal
	NumberOfUnits *int
	RERANumber    *string
	Status        string
	CreatedBy     *string
	CreatedOn     time.Time
	ModifiedOn    *time.Time
}

// ProjectPatch actualización parcial de un proyecto. Solo estas columnas son editables;
// el estado cambia por su propio flujo (regla RERA).
type ProjectPatch struct {
	ID            string
	Name          *string
	Type          *string
	Location      *string
	AddressLine1  *string
	City          *string
	State         *string
	Pincode       *string
	TotalArea     *decimal.Decimal
	NumberOfUnits *int
	RERANumber    *string
	ModifiedOn    time.Time
}

// IsEmpty indica si el patch no cambia nada.
func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.Location == nil && p.AddressLine1 == nil &&
		p.City == nil && p.State == nil && p.Pincode == nil && p.TotalArea == nil &&
		p.NumberOfUnits == nil && p.RERANumber == nil
}

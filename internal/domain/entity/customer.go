package entity

import "time"

// Customer representa un cliente potencial. phone_num (solo dígitos) es la llave natural de deduplicación.
type Customer struct {
	ID         string
	FirstName  string
	LastName   string
	Phone      string
	AltPhone   *string
	Email      *string
	Profession *string
	IsActive   bool
	CreatedOn  time.Time
}

// CustomerPatch actualización parcial de un cliente: nil conserva el valor actual.
// El teléfono no es editable (identidad del cliente).
type CustomerPatch struct {
	ID         string
	FirstName  *string
	LastName   *string
	AltPhone   *string
	Email      *string
	Profession *string
}

// IsEmpty indica si el patch no cambia nada.
func (p CustomerPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.AltPhone == nil && p.Email == nil && p.Profession == nil
}

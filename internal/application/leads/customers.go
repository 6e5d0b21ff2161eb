package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/crm"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

// customerInput datos del cliente tal como llegan en la creación del lead.
type customerInput struct {
	FullName   string
	Phone      string
	AltPhone   string
	Email      string
	Profession string
}

// findOrCreateCustomer devuelve el cliente con el mismo teléfono normalizado o crea uno nuevo (CUST###).
// Un cliente existente se reutiliza tal cual: sus datos no se fusionan con los de la entrada.
func findOrCreateCustomer(
	ctx context.Context,
	customerRepo repository.CustomerRepository,
	seqRepo repository.SequenceRepository,
	in customerInput,
	now time.Time,
) (string, error) {
	raw := strings.TrimSpace(in.Phone)
	normalized := crm.NormalizePhone(raw)
	if normalized == "" {
		return "", domain.Validation("phone", "phone debe contener dígitos")
	}
	if len(normalized) > crm.MaxPhoneDigits {
		return "", domain.Validation("phone", fmt.Sprintf("phone excede %d dígitos", crm.MaxPhoneDigits))
	}
	altPhone := crm.NormalizePhone(in.AltPhone)
	if len(altPhone) > crm.MaxPhoneDigits {
		return "", domain.Validation("alternatePhone", fmt.Sprintf("alternatePhone excede %d dígitos", crm.MaxPhoneDigits))
	}

	existing, err := customerRepo.FindByPhone(ctx, raw, normalized)
	if err != nil {
		return "", fmt.Errorf("buscar cliente por teléfono: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	id, err := seqRepo.Next(ctx, entity.SequenceCustomer)
	if err != nil {
		return "", fmt.Errorf("generar customer_id: %w", err)
	}
	first, last := crm.SplitFullName(in.FullName)
	customer := &entity.Customer{
		ID:         id,
		FirstName:  first,
		LastName:   last,
		Phone:      normalized,
		AltPhone:   optional(altPhone),
		Email:      optional(strings.TrimSpace(in.Email)),
		Profession: optional(strings.TrimSpace(in.Profession)),
		IsActive:   true,
		CreatedOn:  now,
	}
	if err := customerRepo.Create(ctx, customer); err != nil {
		return "", fmt.Errorf("crear cliente: %w", err)
	}
	return id, nil
}

// optional nil para cadena vacía.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// supplied devuelve el valor recortado si p trae contenido; blancos cuentan como no enviados.
func supplied(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	return v, v != ""
}

package repository

import (
	"context"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	// FindByPhone busca el cliente cuyo teléfono coincide con la forma cruda o la normalizada.
	FindByPhone(ctx context.Context, raw, normalized string) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, patch entity.CustomerPatch) error
}

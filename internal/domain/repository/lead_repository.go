package repository

import (
	"context"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia para leads.
// Los métodos de lectura devuelven (nil, nil) cuando el lead no existe.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error

	// GetByID devuelve la vista del lead (cliente, catálogos y auditoría resueltos), activo o no.
	GetByID(ctx context.Context, id string) (*entity.LeadView, error)

	// GetForUpdate obtiene el lead y bloquea la fila (SELECT FOR UPDATE). Solo dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Lead, error)

	// List devuelve los leads activos, más recientes primero.
	List(ctx context.Context, filter entity.LeadFilter) ([]*entity.LeadView, error)

	Update(ctx context.Context, patch entity.LeadPatch) error

	// SoftDelete marca is_active = false. Devuelve false si ninguna fila fue afectada.
	SoftDelete(ctx context.Context, id string) (bool, error)

	// HardDelete elimina el lead junto con sus filas de call_log y campaign.
	HardDelete(ctx context.Context, id string) (bool, error)
}

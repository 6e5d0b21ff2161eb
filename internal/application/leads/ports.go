package leads

import (
	"context"

	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; nada de lo escrito dentro de fn queda persistido.
type TxRunner interface {
	RunLeads(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		customerRepo repository.CustomerRepository,
		refRepo repository.ReferenceRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

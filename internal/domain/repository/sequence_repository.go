package repository

import (
	"context"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
)

// SequenceRepository reserva el siguiente ID legible de una secuencia.
// La reserva dura hasta el fin de la transacción en curso.
type SequenceRepository interface {
	Next(ctx context.Context, seq entity.Sequence) (string, error)
}

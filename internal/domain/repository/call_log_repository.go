package repository

import (
	"context"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
)

// CallLogRepository define el puerto de persistencia para el registro de llamadas.
type CallLogRepository interface {
	// Start inserta la llamada abierta y devuelve su ID serial.
	Start(ctx context.Context, log *entity.CallLog) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.CallLog, error)

	// End fija la duración solo si la llamada sigue abierta. false si ya estaba cerrada.
	End(ctx context.Context, id int64, durationSeconds int, status string) (bool, error)

	// ListView historial para la UI, más reciente primero.
	ListView(ctx context.Context) ([]*entity.CallLogView, error)
}

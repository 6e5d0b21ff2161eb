package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

// CallLogUseCase registra llamadas a leads: inicio, cierre con duración e historial.
type CallLogUseCase struct {
	calls repository.CallLogRepository
	leads repository.LeadRepository
	log   *logger.Logger
	now   func() time.Time
}

// NewCallLogUseCase construye el caso de uso.
func NewCallLogUseCase(calls repository.CallLogRepository, leads repository.LeadRepository, log *logger.Logger) *CallLogUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CallLogUseCase{calls: calls, leads: leads, log: log.Component("calls"), now: time.Now}
}

// Start abre una llamada del empleado autenticado contra un lead activo.
func (uc *CallLogUseCase) Start(ctx context.Context, actorID, leadID string) (int64, error) {
	if actorID == "" {
		return 0, domain.Unauthorized("token válido requerido")
	}
	if leadID == "" {
		return 0, domain.Validation("lead_id", "lead_id es requerido")
	}
	lead, err := uc.leads.GetByID(ctx, leadID)
	if err != nil {
		return 0, uc.fail("obtener lead", err)
	}
	if lead == nil || !lead.IsActive {
		return 0, domain.NotFound("lead no encontrado")
	}
	now := uc.now()
	id, err := uc.calls.Start(ctx, &entity.CallLog{
		LeadID:     leadID,
		EmployeeID: actorID,
		CallTime:   now,
		Status:     entity.CallStatusConnected,
		Source:     entity.CallSourceCRM,
		CreatedAt:  now,
	})
	if err != nil {
		return 0, uc.fail("iniciar llamada", err)
	}
	uc.log.Info().Int64("call_id", id).Str("lead_id", leadID).Str("emp_id", actorID).Msg("llamada iniciada")
	return id, nil
}

// End cierra la llamada y devuelve la duración en segundos. Conflict si ya estaba cerrada.
func (uc *CallLogUseCase) End(ctx context.Context, callID int64) (int, error) {
	call, err := uc.calls.GetByID(ctx, callID)
	if err != nil {
		return 0, uc.fail("obtener llamada", err)
	}
	if call == nil {
		return 0, domain.NotFound("llamada no encontrada")
	}
	if call.DurationSeconds != nil {
		return 0, domain.Conflict("la llamada ya finalizó")
	}
	duration := int(uc.now().Sub(call.CallTime).Seconds())
	if duration < 0 {
		duration = 0
	}
	ok, err := uc.calls.End(ctx, callID, duration, entity.CallStatusConnected)
	if err != nil {
		return 0, uc.fail("finalizar llamada", err)
	}
	if !ok {
		return 0, domain.Conflict("la llamada ya finalizó")
	}
	return duration, nil
}

// List historial para la UI, más reciente primero. Un error de lectura devuelve lista vacía.
func (uc *CallLogUseCase) List(ctx context.Context) []dto.CallLogResponse {
	views, err := uc.calls.ListView(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("listar llamadas")
		return []dto.CallLogResponse{}
	}
	out := make([]dto.CallLogResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.CallLogResponse{
			UserName:     v.UserName,
			LeadName:     v.LeadName,
			PhoneNumber:  v.PhoneNumber,
			CallType:     v.CallType,
			CallStatus:   v.CallStatus,
			CallDuration: FormatCallDuration(v.DurationSeconds),
			CallTime:     v.CallTime,
			Remarks:      v.Remarks,
		})
	}
	return out
}

// FormatCallDuration "Xm Ys"; "-" mientras la llamada sigue abierta.
func FormatCallDuration(seconds *int) string {
	if seconds == nil {
		return "-"
	}
	return fmt.Sprintf("%dm %ds", *seconds/60, *seconds%60)
}

func (uc *CallLogUseCase) fail(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("operación de llamadas fallida")
	return domain.Internal(op, err)
}

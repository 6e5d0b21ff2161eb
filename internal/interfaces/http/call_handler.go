package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/pkg/validator"
)

// CallService casos de uso del registro de llamadas.
type CallService interface {
	Start(ctx context.Context, actorID, leadID string) (int64, error)
	End(ctx context.Context, callID int64) (int, error)
	List(ctx context.Context) []dto.CallLogResponse
}

// CallHandler maneja las peticiones HTTP de llamadas.
type CallHandler struct {
	uc CallService
	v  *validator.Validator
}

// NewCallHandler construye el handler.
func NewCallHandler(uc CallService, v *validator.Validator) *CallHandler {
	return &CallHandler{uc: uc, v: v}
}

// Start godoc
// @Summary      Iniciar llamada
// @Tags         calls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartCallRequest  true  "lead_id"
// @Success      201   {object}  dto.StartCallResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/calls/start [post]
func (h *CallHandler) Start(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.StartCallRequest
	if err := bindBody(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.Start(c.UserContext(), actorID, in.LeadID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StartCallResponse{CallID: id})
}

// End godoc
// @Summary      Finalizar llamada
// @Tags         calls
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "call_id"
// @Success      200  {object}  dto.EndCallResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/calls/{id}/end [put]
func (h *CallHandler) End(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return writeError(c, domain.Validation("id", "id de llamada inválido"))
	}
	secs, err := h.uc.End(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.EndCallResponse{Duration: secs})
}

// List godoc
// @Summary      Historial de llamadas
// @Tags         calls
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CallLogResponse
// @Router       /api/calls [get]
func (h *CallHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List(c.UserContext()))
}

package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/pkg/validator"
)

// UserService casos de uso de empleados.
type UserService interface {
	Register(ctx context.Context, actorID string, in dto.RegisterEmployeeRequest) (string, error)
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, actorID, id string, in dto.UpdateEmployeeRequest) error
	UpdateStatus(ctx context.Context, actorID, id, status string) error
}

// UserHandler maneja las peticiones HTTP de empleados. Todas las respuestas usan dto.Envelope.
type UserHandler struct {
	uc UserService
	v  *validator.Validator
}

// NewUserHandler construye el handler.
func NewUserHandler(uc UserService, v *validator.Validator) *UserHandler {
	return &UserHandler{uc: uc, v: v}
}

// Register godoc
// @Summary      Registrar empleado
// @Description  Sin emp_id se genera EMP###. created_by es el usuario del token o ADMIN.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterEmployeeRequest
	if err := bindBody(c, h.v, &in); err != nil {
		return writeEnvelopeError(c, err)
	}
	id, err := h.uc.Register(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeEnvelopeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{
		Success: true,
		Message: "empleado registrado",
		Data:    fiber.Map{"emp_id": id},
	})
}

// List godoc
// @Summary      Listar empleados
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeEnvelopeError(c, err)
	}
	return c.JSON(dto.Envelope{Success: true, Data: out})
}

// GetByID godoc
// @Summary      Obtener empleado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "emp_id"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeEnvelopeError(c, err)
	}
	return c.JSON(dto.Envelope{Success: true, Data: out})
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "emp_id"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Datos del empleado"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.Envelope
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return writeEnvelopeError(c, err)
	}
	var in dto.UpdateEmployeeRequest
	if err := bindBody(c, h.v, &in); err != nil {
		return writeEnvelopeError(c, err)
	}
	if err := h.uc.Update(c.UserContext(), actorID, c.Params("id"), in); err != nil {
		return writeEnvelopeError(c, err)
	}
	return c.JSON(dto.Envelope{Success: true, Message: "empleado actualizado"})
}

// UpdateStatus godoc
// @Summary      Activar o desactivar empleado
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "emp_id"
// @Param        body  body  dto.UpdateEmployeeStatusRequest  true  "Active | Inactive"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.Envelope
// @Router       /api/users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return writeEnvelopeError(c, err)
	}
	var in dto.UpdateEmployeeStatusRequest
	if err := bindBody(c, h.v, &in); err != nil {
		return writeEnvelopeError(c, err)
	}
	if err := h.uc.UpdateStatus(c.UserContext(), actorID, c.Params("id"), in.EmpStatus); err != nil {
		return writeEnvelopeError(c, err)
	}
	return c.JSON(dto.Envelope{Success: true, Message: "estado actualizado"})
}

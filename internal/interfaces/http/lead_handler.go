package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/pkg/validator"
)

// LeadService casos de uso de leads que expone el handler.
type LeadService interface {
	Create(ctx context.Context, actorID string, in dto.CreateLeadRequest) (string, error)
	List(ctx context.Context, f dto.LeadFilterRequest) []dto.LeadResponse
	Get(ctx context.Context, id string) (*dto.LeadResponse, error)
	Update(ctx context.Context, actorID, id string, in dto.UpdateLeadRequest) error
	Delete(ctx context.Context, id string, hard bool) error
}

// ReferenceLister listas de nombres para los selectores del formulario de leads.
type ReferenceLister interface {
	Employees(ctx context.Context) []string
	Sources(ctx context.Context) []string
	Statuses(ctx context.Context) []string
	Projects(ctx context.Context) []string
}

// LeadHandler maneja las peticiones HTTP de leads y sus catálogos.
type LeadHandler struct {
	uc   LeadService
	refs ReferenceLister
	v    *validator.Validator
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc LeadService, refs ReferenceLister, v *validator.Validator) *LeadHandler {
	return &LeadHandler{uc: uc, refs: refs, v: v}
}

// Create godoc
// @Summary      Crear lead
// @Description  Deduplica el cliente por teléfono, resuelve fuente/estado/empleado/proyecto por nombre y genera el ID L###.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "Datos del lead"
// @Success      201   {object}  dto.CreateLeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateLeadRequest
	if err := bindBody(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.Create(c.UserContext(), actorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateLeadResponse{ID: id, Message: "lead creado"})
}

// List godoc
// @Summary      Listar leads activos
// @Tags         leads
// @Produce      json
// @Param        customer  query  string  false  "Subcadena del nombre del cliente"
// @Param        mobile    query  string  false  "Subcadena del teléfono"
// @Param        source    query  string  false  "Fuente (exacta)"
// @Param        employee  query  string  false  "Empleado asignado (exacto)"
// @Param        project   query  string  false  "Proyecto (exacto)"
// @Success      200  {array}  dto.LeadResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	var f dto.LeadFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return writeError(c, domain.Validation("", "filtros inválidos"))
	}
	return c.JSON(h.uc.List(c.UserContext(), f))
}

// GetByID godoc
// @Summary      Obtener lead por ID
// @Tags         leads
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.LeadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar lead (parcial)
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del lead"
// @Param        body  body  dto.UpdateLeadRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateLeadRequest
	if err := bindBody(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Update(c.UserContext(), actorID, c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "lead actualizado"})
}

// Delete godoc
// @Summary      Eliminar lead
// @Description  Por defecto desactiva el lead; con hard=true lo borra junto con sus llamadas y campañas.
// @Tags         leads
// @Produce      json
// @Param        id    path   string  true   "ID del lead"
// @Param        hard  query  bool    false  "Borrado físico"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	hard := c.QueryBool("hard", false)
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), hard); err != nil {
		return writeError(c, err)
	}
	msg := "lead desactivado"
	if hard {
		msg = "lead eliminado"
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// Employees godoc
// @Summary      Nombres de empleados
// @Tags         leads
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/leads/employees [get]
func (h *LeadHandler) Employees(c *fiber.Ctx) error {
	return c.JSON(h.refs.Employees(c.UserContext()))
}

// Sources godoc
// @Summary      Fuentes activas
// @Tags         leads
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/leads/sources [get]
func (h *LeadHandler) Sources(c *fiber.Ctx) error {
	return c.JSON(h.refs.Sources(c.UserContext()))
}

// Statuses godoc
// @Summary      Estados activos
// @Tags         leads
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/leads/statuses [get]
func (h *LeadHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(h.refs.Statuses(c.UserContext()))
}

// Projects godoc
// @Summary      Nombres de proyectos
// @Tags         leads
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/leads/projects [get]
func (h *LeadHandler) Projects(c *fiber.Ctx) error {
	return c.JSON(h.refs.Projects(c.UserContext()))
}

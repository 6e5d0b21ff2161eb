package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/pkg/validator"
)

// ProjectService casos de uso de proyectos.
type ProjectService interface {
	Create(ctx context.Context, actorID string, in dto.CreateProjectRequest) (string, error)
	List(ctx context.Context) ([]dto.ProjectResponse, error)
	Get(ctx context.Context, id string) (*dto.ProjectResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateProjectRequest) (string, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// ProjectHandler maneja las peticiones HTTP de proyectos.
type ProjectHandler struct {
	uc ProjectService
	v  *validator.Validator
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc ProjectService, v *validator.Validator) *ProjectHandler {
	return &ProjectHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Registrar proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "Datos del proyecto"
// @Success      201   {object}  dto.CreateProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateProjectRequest
	if err := bindBody(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.Create(c.UserContext(), actorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateProjectResponse{Message: "proyecto registrado", ProjectID: id})
}

// List godoc
// @Summary      Listar proyectos
// @Tags         projects
// @Produce      json
// @Success      200  {array}  dto.ProjectResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proyecto por ID
// @Tags         projects
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proyecto (parcial)
// @Description  El estado no se cambia aquí; usar /api/projects/{id}/status.
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del proyecto"
// @Param        body  body  dto.UpdateProjectRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	if _, err := requireActor(c); err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateProjectRequest
	if err := bindBody(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	msg, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// UpdateStatus godoc
// @Summary      Cambiar estado del proyecto
// @Description  RERA_APPROVED y COMPLETED exigen número RERA registrado.
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del proyecto"
// @Param        body  body  dto.UpdateProjectStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/status [put]
func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	if _, err := requireActor(c); err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateProjectStatusRequest
	if err := bindBody(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado"})
}

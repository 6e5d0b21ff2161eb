package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/crm"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

// ProjectUseCase registro de proyectos inmobiliarios con la regla RERA.
type ProjectUseCase struct {
	repo repository.ProjectRepository
	refs CacheInvalidator
	log  *logger.Logger
	now  func() time.Time
}

// NewProjectUseCase construye el caso de uso. refs puede ser nil.
func NewProjectUseCase(repo repository.ProjectRepository, refs CacheInvalidator, log *logger.Logger) *ProjectUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProjectUseCase{repo: repo, refs: refs, log: log.Component("projects"), now: time.Now}
}

// Create registra el proyecto y devuelve su ID (el enviado o un UUID nuevo).
func (uc *ProjectUseCase) Create(ctx context.Context, actorID string, in dto.CreateProjectRequest) (string, error) {
	name := strings.TrimSpace(in.ProjectName)
	if name == "" {
		return "", domain.Validation("project_name", "project_name es requerido")
	}
	if !crm.ValidProjectType(in.ProjectType) {
		return "", domain.Validation("project_type", "tipo de proyecto inválido")
	}
	if err := crm.CheckProjectStatus(in.Status, in.RERANumber); err != nil {
		return "", err
	}

	id := strings.TrimSpace(in.ProjectID)
	if id == "" {
		id = uuid.New().String()
	}
	p := &entity.Project{
		ID:            id,
		Name:          name,
		Type:          in.ProjectType,
		Location:      in.Location,
		AddressLine1:  in.AddressLine1,
		City:          in.City,
		State:         in.State,
		Pincode:       in.Pincode,
		TotalArea:     in.TotalArea,
		NumberOfUnits: in.NumberOfUnits,
		RERANumber:    in.RERANumber,
		Status:        in.Status,
		CreatedOn:     uc.now(),
	}
	if actorID != "" {
		p.CreatedBy = &actorID
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return "", uc.fail("crear proyecto", err)
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("project_id", id).Msg("proyecto creado")
	return id, nil
}

// List todos los proyectos, más recientes primero.
func (uc *ProjectUseCase) List(ctx context.Context) ([]dto.ProjectResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, uc.fail("listar proyectos", err)
	}
	out := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProjectResponse(p))
	}
	return out, nil
}

// Get proyecto por ID.
func (uc *ProjectUseCase) Get(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.fail("obtener proyecto", err)
	}
	if p == nil {
		return nil, domain.NotFound("proyecto no encontrado")
	}
	resp := toProjectResponse(p)
	return &resp, nil
}

// Update actualización parcial. El estado no se cambia por aquí (ver UpdateStatus).
// Devuelve el mensaje a mostrar.
func (uc *ProjectUseCase) Update(ctx context.Context, id string, in dto.UpdateProjectRequest) (string, error) {
	if in.Status != nil {
		return "", domain.Validation("status", "use el endpoint de estado para cambiar el estado del proyecto")
	}
	if in.ProjectType != nil && !crm.ValidProjectType(*in.ProjectType) {
		return "", domain.Validation("project_type", "tipo de proyecto inválido")
	}
	if in.ProjectName != nil && strings.TrimSpace(*in.ProjectName) == "" {
		return "", domain.Validation("project_name", "project_name no puede estar vacío")
	}
	patch := entity.ProjectPatch{
		ID:            id,
		Name:          in.ProjectName,
		Type:          in.ProjectType,
		Location:      in.Location,
		AddressLine1:  in.AddressLine1,
		City:          in.City,
		State:         in.State,
		Pincode:       in.Pincode,
		TotalArea:     in.TotalArea,
		NumberOfUnits: in.NumberOfUnits,
		RERANumber:    in.RERANumber,
		ModifiedOn:    uc.now(),
	}
	if patch.IsEmpty() {
		return "nada que actualizar", nil
	}
	ok, err := uc.repo.Update(ctx, patch)
	if err != nil {
		return "", uc.fail("actualizar proyecto", err)
	}
	if !ok {
		return "", domain.NotFound("proyecto no encontrado")
	}
	uc.invalidate(ctx)
	return "proyecto actualizado", nil
}

// UpdateStatus cambia el estado. Aprobar o completar exige número RERA ya registrado.
func (uc *ProjectUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if !crm.ValidProjectStatus(status) {
		return domain.Validation("status", "estado de proyecto inválido")
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return uc.fail("obtener proyecto", err)
	}
	if p == nil {
		return domain.NotFound("proyecto no encontrado")
	}
	if err := crm.CheckProjectStatus(status, p.RERANumber); err != nil {
		return err
	}
	ok, err := uc.repo.UpdateStatus(ctx, id, status, uc.now())
	if err != nil {
		return uc.fail("actualizar estado de proyecto", err)
	}
	if !ok {
		return domain.NotFound("proyecto no encontrado")
	}
	uc.log.Info().Str("project_id", id).Str("status", status).Msg("estado de proyecto actualizado")
	return nil
}

func (uc *ProjectUseCase) invalidate(ctx context.Context) {
	if uc.refs != nil {
		uc.refs.Invalidate(ctx)
	}
}

func (uc *ProjectUseCase) fail(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("operación de proyectos fallida")
	return domain.Internal(op, err)
}

func toProjectResponse(p *entity.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ProjectID:     p.ID,
		ProjectName:   p.Name,
		ProjectType:   p.Type,
		Location:      p.Location,
		AddressLine1:  p.AddressLine1,
		City:          p.City,
		State:         p.State,
		Pincode:       p.Pincode,
		TotalArea:     p.TotalArea,
		NumberOfUnits: p.NumberOfUnits,
		RERANumber:    p.RERANumber,
		Status:        p.Status,
		CreatedBy:     p.CreatedBy,
		CreatedOn:     p.CreatedOn,
		ModifiedOn:    p.ModifiedOn,
	}
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para proyectos.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)

	// Update aplica solo los campos no nil del patch. false si el proyecto no existe.
	Update(ctx context.Context, patch entity.ProjectPatch) (bool, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) (bool, error)
}

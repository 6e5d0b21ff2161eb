package repository

import (
	"context"
	"time"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para empleados (usuarios del CRM).
type EmployeeRepository interface {
	Create(ctx context.Context, emp *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)

	// FindByLogin busca por username o email (comparación en minúsculas).
	FindByLogin(ctx context.Context, username, email string) (*entity.Employee, error)

	List(ctx context.Context) ([]*entity.Employee, error)

	// Update reemplaza los datos editables. false si el empleado no existe.
	Update(ctx context.Context, emp *entity.Employee) (bool, error)
	UpdateStatus(ctx context.Context, id, status, modifiedBy string, at time.Time) (bool, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

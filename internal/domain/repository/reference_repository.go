package repository

import (
	"context"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
)

// ReferenceRepository consultas de nombre → id sobre catálogos y empleados.
// Los métodos Match* devuelven como máximo dos IDs: basta para distinguir único de ambiguo.
type ReferenceRepository interface {
	MatchIDs(ctx context.Context, kind entity.ReferenceKind, name string) ([]string, error)
	MatchEmployeesByFirstName(ctx context.Context, name string) ([]string, error)
	MatchEmployeesByFullName(ctx context.Context, name string) ([]string, error)
	ProjectExists(ctx context.Context, id string) (bool, error)

	ListEmployeeNames(ctx context.Context) ([]string, error)
	ListSourceNames(ctx context.Context) ([]string, error)
	ListStatusNames(ctx context.Context) ([]string, error)
	ListProjectNames(ctx context.Context) ([]string, error)
}

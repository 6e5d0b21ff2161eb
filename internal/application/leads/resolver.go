package leads

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/crm"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

// Resolver traduce nombres legibles (fuente, estado, proyecto, empleado) a IDs.
type Resolver struct {
	refs repository.ReferenceRepository
}

// NewResolver construye el resolver sobre el repositorio dado (pool o tx).
func NewResolver(refs repository.ReferenceRepository) *Resolver {
	return &Resolver{refs: refs}
}

// Reference resuelve un nombre exacto de fuente, estado o proyecto. Nombre vacío → NotFound sin consultar.
func (r *Resolver) Reference(ctx context.Context, kind entity.ReferenceKind, name string) (crm.Resolution, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return crm.Resolution{Outcome: crm.NotFound}, nil
	}
	ids, err := r.refs.MatchIDs(ctx, kind, name)
	if err != nil {
		return crm.Resolution{}, fmt.Errorf("resolver %s: %w", kind, err)
	}
	return crm.ResolutionFromMatches(ids), nil
}

// Employee resuelve primero por primer nombre y, si no es único, por nombre completo.
func (r *Resolver) Employee(ctx context.Context, name string) (crm.Resolution, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return crm.Resolution{Outcome: crm.NotFound}, nil
	}
	byFirst, err := r.refs.MatchEmployeesByFirstName(ctx, name)
	if err != nil {
		return crm.Resolution{}, fmt.Errorf("resolver empleado: %w", err)
	}
	if len(byFirst) == 1 {
		return crm.ResolutionFromMatches(byFirst), nil
	}
	byFull, err := r.refs.MatchEmployeesByFullName(ctx, name)
	if err != nil {
		return crm.Resolution{}, fmt.Errorf("resolver empleado: %w", err)
	}
	return crm.ResolveTwoStep(byFirst, byFull), nil
}

// requireResolved convierte un resultado no resuelto en error de validación sobre field.
func requireResolved(res crm.Resolution, field, name string) (string, error) {
	switch res.Outcome {
	case crm.Resolved:
		return res.ID, nil
	case crm.Ambiguous:
		return "", domain.Validation(field, fmt.Sprintf("%s '%s' es ambiguo", field, strings.TrimSpace(name)))
	default:
		return "", domain.Validation(field, fmt.Sprintf("%s '%s' no existe", field, strings.TrimSpace(name)))
	}
}

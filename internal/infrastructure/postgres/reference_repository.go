package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo resolución nombre → id y listados de catálogos.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador (pool o tx).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

// MatchIDs hasta dos IDs cuyo nombre coincide exactamente. Fuentes y estados inactivos no resuelven.
func (r *ReferenceRepo) MatchIDs(ctx context.Context, kind entity.ReferenceKind, name string) ([]string, error) {
	var query string
	switch kind {
	case entity.ReferenceSource:
		query = `SELECT source_id FROM lead_sources WHERE source_name = $1 AND is_active = TRUE ORDER BY source_id LIMIT 2`
	case entity.ReferenceStatus:
		query = `SELECT status_id FROM lead_status WHERE status_name = $1 AND is_active = TRUE ORDER BY status_id LIMIT 2`
	case entity.ReferenceProject:
		query = `SELECT project_id FROM project_registration WHERE project_name = $1 ORDER BY project_id LIMIT 2`
	default:
		return nil, fmt.Errorf("catálogo desconocido: %d", kind)
	}
	ids, err := collectStrings(r.q.Query(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", kind, err)
	}
	return ids, nil
}

// MatchEmployeesByFirstName hasta dos empleados con ese primer nombre.
func (r *ReferenceRepo) MatchEmployeesByFirstName(ctx context.Context, name string) ([]string, error) {
	ids, err := collectStrings(r.q.Query(ctx,
		`SELECT emp_id FROM employee WHERE emp_first_name = $1 ORDER BY emp_id LIMIT 2`, name))
	if err != nil {
		return nil, fmt.Errorf("match employee first name: %w", err)
	}
	return ids, nil
}

// MatchEmployeesByFullName hasta dos empleados con ese "nombre apellido".
func (r *ReferenceRepo) MatchEmployeesByFullName(ctx context.Context, name string) ([]string, error) {
	ids, err := collectStrings(r.q.Query(ctx, `
		SELECT emp_id FROM employee
		WHERE TRIM(emp_first_name || ' ' || COALESCE(emp_last_name, '')) = $1
		ORDER BY emp_id LIMIT 2`, name))
	if err != nil {
		return nil, fmt.Errorf("match employee full name: %w", err)
	}
	return ids, nil
}

// ProjectExists verifica un project_id directo.
func (r *ReferenceRepo) ProjectExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM project_registration WHERE project_id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("project exists: %w", err)
	}
	return ok, nil
}

func (r *ReferenceRepo) ListEmployeeNames(ctx context.Context) ([]string, error) {
	return collectStrings(r.q.Query(ctx, `SELECT TRIM(emp_first_name || ' ' || COALESCE(emp_last_name, '')) AS name FROM employee ORDER BY name`))
}

func (r *ReferenceRepo) ListSourceNames(ctx context.Context) ([]string, error) {
	return collectStrings(r.q.Query(ctx, `SELECT source_name FROM lead_sources WHERE is_active = TRUE ORDER BY source_name`))
}

func (r *ReferenceRepo) ListStatusNames(ctx context.Context) ([]string, error) {
	return collectStrings(r.q.Query(ctx, `SELECT status_name FROM lead_status WHERE is_active = TRUE ORDER BY status_name`))
}

func (r *ReferenceRepo) ListProjectNames(ctx context.Context) ([]string, error) {
	return collectStrings(r.q.Query(ctx, `SELECT project_name FROM project_registration ORDER BY project_name`))
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `project_id, project_name, project_type, location, address_line1, city, state, pincode,
	total_area, number_of_units, rera_number, status, created_by, created_on, modified_on`

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador (pool o tx).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `INSERT INTO project_registration (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Type, p.Location, p.AddressLine1, p.City, p.State, p.Pincode,
		p.TotalArea, p.NumberOfUnits, p.RERANumber, p.Status, p.CreatedBy, p.CreatedOn, p.ModifiedOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("ya existe un proyecto con ese id")
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	rows, err := r.q.Query(ctx, `SELECT `+projectColumns+` FROM project_registration WHERE project_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanProject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List proyectos, más recientes primero.
func (r *ProjectRepo) List(ctx context.Context) ([]*entity.Project, error) {
	rows, err := r.q.Query(ctx, `SELECT `+projectColumns+` FROM project_registration ORDER BY created_on DESC, project_id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanProject)
	if err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return list, nil
}

// Update escribe solo las columnas informadas en el patch. Los nombres de columna son fijos.
func (r *ProjectRepo) Update(ctx context.Context, p entity.ProjectPatch) (bool, error) {
	var sets []string
	args := []any{p.ID}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		set("project_name", *p.Name)
	}
	if p.Type != nil {
		set("project_type", *p.Type)
	}
	if p.Location != nil {
		set("location", *p.Location)
	}
	if p.AddressLine1 != nil {
		set("address_line1", *p.AddressLine1)
	}
	if p.City != nil {
		set("city", *p.City)
	}
	if p.State != nil {
		set("state", *p.State)
	}
	if p.Pincode != nil {
		set("pincode", *p.Pincode)
	}
	if p.TotalArea != nil {
		set("total_area", *p.TotalArea)
	}
	if p.NumberOfUnits != nil {
		set("number_of_units", *p.NumberOfUnits)
	}
	if p.RERANumber != nil {
		set("rera_number", *p.RERANumber)
	}
	if len(sets) == 0 {
		return false, nil
	}
	set("modified_on", p.ModifiedOn)

	query := `UPDATE project_registration SET ` + strings.Join(sets, ", ") + ` WHERE project_id = $1`
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatus cambia el estado del proyecto.
func (r *ProjectRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE project_registration SET status = $2, modified_on = $3 WHERE project_id = $1`, id, status, at)
	if err != nil {
		return false, fmt.Errorf("update project status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanProject(row pgx.CollectableRow) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Type, &p.Location, &p.AddressLine1, &p.City, &p.State, &p.Pincode,
		&p.TotalArea, &p.NumberOfUnits, &p.RERANumber, &p.Status, &p.CreatedBy, &p.CreatedOn, &p.ModifiedOn,
	)
	return &p, err
}

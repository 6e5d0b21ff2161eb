package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// leadViewSelect lead con cliente, catálogos, proyecto y auditoría resueltos.
// created_by/modified_by muestran el primer nombre del empleado o, si no existe, el id guardado.
const leadViewSelect = `
	SELECT
		l.lead_id,
		TRIM(c.customer_first_name || ' ' || COALESCE(c.customer_last_name, '')),
		c.phone_num, c.alt_num, c.email, c.profession,
		p.project_name, l.project_id,
		s.source_name, st.status_name, TRIM(e.emp_first_name || ' ' || COALESCE(e.emp_last_name, '')),
		l.lead_description, l.created_on,
		COALESCE(cb.emp_first_name, l.created_by),
		l.modified_on,
		COALESCE(mb.emp_first_name, l.modified_by),
		l.is_active
	FROM leads l
	JOIN customer c ON c.customer_id = l.customer_id
	LEFT JOIN lead_sources s ON s.source_id = l.source_id
	LEFT JOIN lead_status st ON st.status_id = l.status_id
	LEFT JOIN employee e ON e.emp_id = l.emp_id
	LEFT JOIN project_registration p ON p.project_id = l.project_id
	LEFT JOIN employee cb ON cb.emp_id = l.created_by
	LEFT JOIN employee mb ON mb.emp_id = l.modified_by`

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador (pool o tx).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// Create persiste un nuevo lead.
func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (lead_id, customer_id, source_id, status_id, emp_id, project_id, lead_description,
			is_active, created_on, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CustomerID, l.SourceID, l.StatusID, l.EmployeeID, l.ProjectID, l.Description,
		l.IsActive, l.CreatedOn, l.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene la vista del lead, activo o no.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.LeadView, error) {
	rows, err := r.q.Query(ctx, leadViewSelect+` WHERE l.lead_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, scanLeadView)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return v, nil
}

// GetForUpdate obtiene el lead y bloquea la fila (SELECT FOR UPDATE).
func (r *LeadRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT lead_id, customer_id, source_id, status_id, emp_id, project_id, lead_description,
			is_active, created_on, created_by, modified_on, modified_by
		FROM leads WHERE lead_id = $1
		FOR UPDATE`
	var l entity.Lead
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.CustomerID, &l.SourceID, &l.StatusID, &l.EmployeeID, &l.ProjectID, &l.Description,
		&l.IsActive, &l.CreatedOn, &l.CreatedBy, &l.ModifiedOn, &l.ModifiedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead for update: %w", err)
	}
	return &l, nil
}

// List leads activos con filtros opcionales, más recientes primero.
func (r *LeadRepo) List(ctx context.Context, f entity.LeadFilter) ([]*entity.LeadView, error) {
	conds := []string{"l.is_active = TRUE"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Customer != "" {
		p := arg(likePattern(f.Customer))
		conds = append(conds, fmt.Sprintf("(c.customer_first_name ILIKE %[1]s OR c.customer_last_name ILIKE %[1]s)", p))
	}
	if f.Mobile != "" {
		conds = append(conds, "c.phone_num LIKE "+arg(likePattern(f.Mobile)))
	}
	if f.Source != "" {
		conds = append(conds, "s.source_name = "+arg(f.Source))
	}
	if f.Employee != "" {
		p := arg(f.Employee)
		conds = append(conds, fmt.Sprintf(
			"(e.emp_first_name = %[1]s OR TRIM(e.emp_first_name || ' ' || COALESCE(e.emp_last_name, '')) = %[1]s)", p))
	}
	if f.Project != "" {
		conds = append(conds, "p.project_name = "+arg(f.Project))
	}

	query := leadViewSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY l.created_on DESC, l.lead_id DESC"
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanLeadView)
	if err != nil {
		return nil, fmt.Errorf("scan lead: %w", err)
	}
	return list, nil
}

// Update aplica el patch: columnas nil conservan su valor; modified_on/modified_by siempre se escriben.
func (r *LeadRepo) Update(ctx context.Context, p entity.LeadPatch) error {
	query := `
		UPDATE leads SET
			source_id        = COALESCE($2, source_id),
			status_id        = COALESCE($3, status_id),
			emp_id           = COALESCE($4, emp_id),
			project_id       = COALESCE($5, project_id),
			lead_description = COALESCE($6, lead_description),
			modified_on      = $7,
			modified_by      = $8
		WHERE lead_id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SourceID, p.StatusID, p.EmployeeID, p.ProjectID, p.Description, p.ModifiedOn, p.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// SoftDelete desactiva el lead. Un lead ya inactivo no cuenta como afectado.
func (r *LeadRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE leads SET is_active = FALSE WHERE lead_id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete lead: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// HardDelete elimina llamadas, campañas y el lead. Debe ejecutarse dentro de una transacción.
func (r *LeadRepo) HardDelete(ctx context.Context, id string) (bool, error) {
	if _, err := r.q.Exec(ctx, `DELETE FROM call_log WHERE lead_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete call_log: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM campaign WHERE lead_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete campaign: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM leads WHERE lead_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete lead: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanLeadView(row pgx.CollectableRow) (*entity.LeadView, error) {
	var v entity.LeadView
	err := row.Scan(
		&v.ID, &v.Name,
		&v.Phone, &v.AlternatePhone, &v.Email, &v.Profession,
		&v.Project, &v.ProjectID,
		&v.Source, &v.Status, &v.AssignedTo,
		&v.Description, &v.CreatedAt,
		&v.CreatedBy, &v.ModifiedAt, &v.ModifiedBy,
		&v.IsActive,
	)
	return &v, err
}

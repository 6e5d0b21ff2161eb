package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

var _ repository.CallLogRepository = (*CallLogRepo)(nil)

// CallLogRepo implementación del puerto CallLogRepository sobre PostgreSQL.
type CallLogRepo struct {
	q Querier
}

// NewCallLogRepository construye el adaptador (pool o tx).
func NewCallLogRepository(q Querier) *CallLogRepo {
	return &CallLogRepo{q: q}
}

// Start registra una llamada abierta y devuelve su call_id.
func (r *CallLogRepo) Start(ctx context.Context, c *entity.CallLog) (int64, error) {
	query := `
		INSERT INTO call_log (lead_id, emp_id, call_time, call_status, call_source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING call_id`
	var id int64
	err := r.q.QueryRow(ctx, query, c.LeadID, c.EmployeeID, c.CallTime, c.Status, c.Source, c.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert call_log: %w", err)
	}
	return id, nil
}

// GetByID obtiene una llamada por ID.
func (r *CallLogRepo) GetByID(ctx context.Context, id int64) (*entity.CallLog, error) {
	query := `
		SELECT call_id, lead_id, emp_id, call_time, call_duration, call_status, call_source, created_at
		FROM call_log WHERE call_id = $1`
	var c entity.CallLog
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.LeadID, &c.EmployeeID, &c.CallTime, &c.DurationSeconds, &c.Status, &c.Source, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get call_log: %w", err)
	}
	return &c, nil
}

// End cierra la llamada. Solo afecta llamadas aún abiertas (call_duration NULL).
func (r *CallLogRepo) End(ctx context.Context, id int64, durationSeconds int, status string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE call_log SET call_duration = $2, call_status = $3 WHERE call_id = $1 AND call_duration IS NULL`,
		id, durationSeconds, status)
	if err != nil {
		return false, fmt.Errorf("end call_log: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListView historial de llamadas, más recientes primero.
func (r *CallLogRepo) ListView(ctx context.Context) ([]*entity.CallLogView, error) {
	query := `
		SELECT
			TRIM(e.emp_first_name || ' ' || COALESCE(e.emp_last_name, '')),
			TRIM(c.customer_first_name || ' ' || COALESCE(c.customer_last_name, '')),
			c.phone_num,
			cl.call_source,
			cl.call_status,
			cl.call_duration,
			cl.call_time,
			l.lead_description
		FROM call_log cl
		JOIN leads l ON l.lead_id = cl.lead_id
		JOIN customer c ON c.customer_id = l.customer_id
		JOIN employee e ON e.emp_id = cl.emp_id
		ORDER BY cl.call_time DESC, cl.call_id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list call_log: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.CallLogView, error) {
		var v entity.CallLogView
		err := row.Scan(&v.UserName, &v.LeadName, &v.PhoneNumber, &v.CallType, &v.CallStatus,
			&v.DurationSeconds, &v.CallTime, &v.Remarks)
		return &v, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan call_log: %w", err)
	}
	return list, nil
}

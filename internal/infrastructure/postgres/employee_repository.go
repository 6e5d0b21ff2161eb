package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `emp_id, emp_first_name, emp_middle_name, emp_last_name, role_id, emp_status,
	username, email, password, last_login, created_by, created_on, modified_by, modified_on`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador (pool o tx).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `INSERT INTO employee (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.FirstName, e.MiddleName, e.LastName, e.RoleID, e.Status,
		e.Username, e.Email, e.PasswordHash, e.LastLogin, e.CreatedBy, e.CreatedOn, e.ModifiedBy, e.ModifiedOn,
	)
	return mapEmployeeWriteErr("insert employee", err)
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employee WHERE emp_id = $1`, id)
}

// FindByLogin busca por username o email en minúsculas. Un valor vacío no coincide con nada.
func (r *EmployeeRepo) FindByLogin(ctx context.Context, username, email string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employee
		WHERE ($1 <> '' AND LOWER(username) = LOWER($1)) OR ($2 <> '' AND LOWER(email) = LOWER($2))
		ORDER BY emp_id
		LIMIT 1`
	return r.getOne(ctx, query, username, email)
}

// List todos los empleados ordenados por ID.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employee ORDER BY emp_id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanEmployee)
	if err != nil {
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return list, nil
}

// Update reescribe los datos editables. El hash solo cambia si viene informado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) (bool, error) {
	query := `
		UPDATE employee SET
			emp_first_name  = $2,
			emp_middle_name = $3,
			emp_last_name   = $4,
			role_id         = $5,
			emp_status      = $6,
			username        = $7,
			email           = $8,
			password        = COALESCE($9, password),
			modified_by     = $10,
			modified_on     = $11
		WHERE emp_id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.FirstName, e.MiddleName, e.LastName, e.RoleID, e.Status,
		e.Username, e.Email, e.PasswordHash, e.ModifiedBy, e.ModifiedOn,
	)
	if err := mapEmployeeWriteErr("update employee", err); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatus activa o desactiva un empleado.
func (r *EmployeeRepo) UpdateStatus(ctx context.Context, id, status, modifiedBy string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE employee SET emp_status = $2, modified_by = $3, modified_on = $4 WHERE emp_id = $1`,
		id, status, modifiedBy, at)
	if err != nil {
		return false, fmt.Errorf("update employee status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// TouchLastLogin registra el último inicio de sesión.
func (r *EmployeeRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE employee SET last_login = $2 WHERE emp_id = $1`, id, at); err != nil {
		return fmt.Errorf("touch last_login: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Employee, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	e, err := pgx.CollectExactlyOneRow(rows, scanEmployee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func scanEmployee(row pgx.CollectableRow) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.MiddleName, &e.LastName, &e.RoleID, &e.Status,
		&e.Username, &e.Email, &e.PasswordHash, &e.LastLogin, &e.CreatedBy, &e.CreatedOn, &e.ModifiedBy, &e.ModifiedOn,
	)
	return &e, err
}

func mapEmployeeWriteErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.Conflict("el empleado ya existe (id, username o email repetido)")
	case isForeignKeyViolation(err):
		return domain.Validation("role_id", "role_id no existe")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

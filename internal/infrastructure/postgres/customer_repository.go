package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador (pool o tx).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// FindByPhone busca por teléfono crudo o normalizado. Dentro de una transacción toma antes un
// advisory lock sobre el teléfono normalizado: dos altas concurrentes del mismo número no duplican cliente.
func (r *CustomerRepo) FindByPhone(ctx context.Context, raw, normalized string) (*entity.Customer, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "customer:phone:"+normalized); err != nil {
		return nil, fmt.Errorf("lock teléfono: %w", err)
	}
	query := `
		SELECT customer_id, customer_first_name, customer_last_name, phone_num, alt_num, email, profession, is_active, created_on
		FROM customer
		WHERE phone_num = $1 OR phone_num = $2
		ORDER BY created_on
		LIMIT 1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, raw, normalized).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.AltPhone, &c.Email, &c.Profession, &c.IsActive, &c.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by phone: %w", err)
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customer (customer_id, customer_first_name, customer_last_name, phone_num, alt_num, email, profession, is_active, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Phone, c.AltPhone, c.Email, c.Profession, c.IsActive, c.CreatedOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("ya existe un cliente con ese teléfono")
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update aplica los campos no nil del patch; el resto conserva su valor.
func (r *CustomerRepo) Update(ctx context.Context, p entity.CustomerPatch) error {
	query := `
		UPDATE customer SET
			customer_first_name = COALESCE($2, customer_first_name),
			customer_last_name  = COALESCE($3, customer_last_name),
			alt_num             = COALESCE($4, alt_num),
			email               = COALESCE($5, email),
			profession          = COALESCE($6, profession)
		WHERE customer_id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.FirstName, p.LastName, p.AltPhone, p.Email, p.Profession)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

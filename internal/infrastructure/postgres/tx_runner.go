package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/presales-crm/internal/application/leads"
	"github.com/jhoicas/presales-crm/internal/application/usecase"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

// Ensure TxRunner implements leads.TxRunner and usecase.EmployeeTxRunner.
var _ leads.TxRunner = (*TxRunner)(nil)
var _ usecase.EmployeeTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLeads inicia una transacción con los repos de leads, clientes, catálogos y secuencias.
func (r *TxRunner) RunLeads(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	customerRepo repository.CustomerRepository,
	refRepo repository.ReferenceRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewLeadRepository(tx), NewCustomerRepository(tx), NewReferenceRepository(tx), NewSequenceRepository(tx))
	})
}

// RunEmployees inicia una transacción con los repos de empleados y secuencias (alta con EMP###).
func (r *TxRunner) RunEmployees(ctx context.Context, fn func(
	empRepo repository.EmployeeRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewEmployeeRepository(tx), NewSequenceRepository(tx))
	})
}

// run Commit si fn termina bien; Rollback en cualquier otro camino (no-op después del Commit).
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

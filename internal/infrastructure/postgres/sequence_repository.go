package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/presales-crm/internal/domain/crm"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// knownSequences únicas tablas/columnas que se interpolan en SQL.
var knownSequences = map[entity.Sequence]bool{
	entity.SequenceLead:     true,
	entity.SequenceCustomer: true,
	entity.SequenceEmployee: true,
}

// SequenceRepo genera IDs legibles (L001, CUST002, EMP003).
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el repositorio. Debe usarse con una pgx.Tx: el lock dura hasta el Commit.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next toma un advisory lock de transacción por secuencia y calcula el siguiente ID
// a partir del mayor existente que cumple prefijo + dígitos. Dos transacciones concurrentes
// sobre la misma secuencia se serializan.
func (r *SequenceRepo) Next(ctx context.Context, seq entity.Sequence) (string, error) {
	if !knownSequences[seq] {
		return "", fmt.Errorf("secuencia desconocida: %s", seq.LockKey())
	}
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, seq.LockKey()); err != nil {
		return "", fmt.Errorf("lock secuencia %s: %w", seq.LockKey(), err)
	}

	col := pgx.Identifier{seq.Column}.Sanitize()
	query := fmt.Sprintf(
		`SELECT %[1]s FROM %[2]s WHERE %[1]s ~ $1 ORDER BY LENGTH(%[1]s) DESC, %[1]s DESC LIMIT 1`,
		col, pgx.Identifier{seq.Table}.Sanitize(),
	)
	var last string
	err := r.q.QueryRow(ctx, query, crm.IdentifierPattern(seq.Prefix)).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("último id de %s: %w", seq.Table, err)
	}
	return crm.NextIdentifier(seq.Prefix, last), nil
}

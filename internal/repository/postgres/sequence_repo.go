// internal/repository/postgres/sequence_repo.go
package postgres

import (
	"context"
	"fmt"

	"bizcare-service/internal/domain/sequence"

	"github.com/jackc/pgx/v5"
)

type SequenceRepository struct{}

func NewSequenceRepository() *SequenceRepository {
	return &SequenceRepository{}
}

// NextValueWithTx bumps the counter row for seq and returns the new value.
// The first call for a sequence seeds the row from the highest existing code
// under the prefix. The row stays locked until tx ends, so concurrent
// allocators queue behind each other instead of reading the same value.
func (r *SequenceRepository) NextValueWithTx(ctx context.Context, tx pgx.Tx, seq sequence.Sequence) (int64, error) {
	table := pgx.Identifier{seq.Table}.Sanitize()
	column := pgx.Identifier{seq.Column}.Sanitize()

	query := fmt.Sprintf(`
		INSERT INTO code_sequences (name, prefix, last_value)
		VALUES ($1, $2::text, COALESCE((
			SELECT substring(%[2]s FROM '^' || $2::text || '([0-9]+)')::bigint
			FROM %[1]s
			WHERE %[2]s LIKE $2::text || '%%'
			ORDER BY %[2]s DESC
			LIMIT 1
		), 0) + 1)
		ON CONFLICT (name) DO UPDATE
		SET last_value = code_sequences.last_value + 1,
		    updated_at = now()
		RETURNING last_value
	`, table, column)

	var next int64
	if err := tx.QueryRow(ctx, query, seq.Name, seq.Prefix).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to allocate %s: %w", seq.Name, err)
	}
	return next, nil
}

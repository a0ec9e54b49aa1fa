// internal/service/sequence/allocator.go
package sequence

import (
	"context"
	"fmt"

	"bizcare-service/internal/domain/sequence"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CounterStore interface {
	NextValueWithTx(ctx context.Context, tx pgx.Tx, seq sequence.Sequence) (int64, error)
}

// Allocator hands out human readable sequential codes.
type Allocator struct {
	store  CounterStore
	logger *zap.Logger
}

func NewAllocator(store CounterStore, logger *zap.Logger) *Allocator {
	return &Allocator{store: store, logger: logger}
}

// NextWithTx allocates the next code of seq inside tx. The code is only
// reserved once tx commits.
func (a *Allocator) NextWithTx(ctx context.Context, tx pgx.Tx, seq sequence.Sequence) (string, error) {
	n, err := a.store.NextValueWithTx(ctx, tx, seq)
	if err != nil {
		return "", fmt.Errorf("failed to allocate code: %w", err)
	}
	if n < 1 {
		return "", fmt.Errorf("counter %s returned non-positive value %d", seq.Name, n)
	}

	code := sequence.Format(seq.Prefix, n)
	a.logger.Debug("code allocated", zap.String("sequence", seq.Name), zap.String("code", code))
	return code, nil
}

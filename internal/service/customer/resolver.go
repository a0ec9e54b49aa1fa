// internal/service/customer/resolver.go
package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bizcare-service/internal/domain/customer"
	"bizcare-service/internal/domain/sequence"
	xerrors "bizcare-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ResolverRepository interface {
	FindByPhoneAndBusinessWithTx(ctx context.Context, tx pgx.Tx, phone, businessName string) (*customer.Customer, error)
	CreateWithTx(ctx context.Context, tx pgx.Tx, c *customer.Customer) error
}

type CodeAllocator interface {
	NextWithTx(ctx context.Context, tx pgx.Tx, seq sequence.Sequence) (string, error)
}

// NewCustomer carries the submission fields copied onto a new customer row.
type NewCustomer struct {
	BusinessName         string
	OwnerName            string
	Phone                string
	Email                string
	Address              string
	BusinessRegistration string
}

// Resolver finds the customer for a (phone, business name) pair or creates it.
type Resolver struct {
	repo      ResolverRepository
	allocator CodeAllocator
	logger    *zap.Logger
}

func NewResolver(repo ResolverRepository, allocator CodeAllocator, logger *zap.Logger) *Resolver {
	return &Resolver{repo: repo, allocator: allocator, logger: logger}
}

// ResolveWithTx returns the customer id and whether a row was created. phone
// must already be normalized. Runs in the caller's transaction so a later
// failure also discards the new customer.
func (r *Resolver) ResolveWithTx(ctx context.Context, tx pgx.Tx, in NewCustomer) (uuid.UUID, bool, error) {
	existing, err := r.repo.FindByPhoneAndBusinessWithTx(ctx, tx, in.Phone, in.BusinessName)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return uuid.Nil, false, fmt.Errorf("failed to look up customer: %w", err)
	}

	code, err := r.allocator.NextWithTx(ctx, tx, sequence.CustomerCode)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to generate customer code: %w", err)
	}

	c := &customer.Customer{
		CustomerCode:         code,
		BusinessName:         nullString(in.BusinessName),
		OwnerName:            nullString(in.OwnerName),
		BusinessRegistration: nullString(in.BusinessRegistration),
		Phone:                nullString(in.Phone),
		Email:                nullString(in.Email),
		Address:              nullString(in.Address),
		Status:               customer.StatusActive,
	}

	if err := r.repo.CreateWithTx(ctx, tx, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, xerrors.Persistence("failed to create customer", err)
		}
		return uuid.Nil, false, fmt.Errorf("failed to create customer: %w", err)
	}
	if c.ID == uuid.Nil {
		return uuid.Nil, false, xerrors.Persistence("failed to create customer", nil)
	}

	r.logger.Info("customer created",
		zap.String("customer_id", c.ID.String()),
		zap.String("customer_code", c.CustomerCode),
	)

	return c.ID, true, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package customer

import (
	"context"

	"bizcare-service/internal/domain/activity"
	"bizcare-service/internal/domain/customer"
	"bizcare-service/internal/domain/sequence"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type mockResolverRepo struct {
	mock.Mock
}

func (m *mockResolverRepo) FindByPhoneAndBusinessWithTx(ctx context.Context, tx pgx.Tx, phone, businessName string) (*customer.Customer, error) {
	args := m.Called(ctx, tx, phone, businessName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *mockResolverRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, c *customer.Customer) error {
	args := m.Called(ctx, tx, c)
	return args.Error(0)
}

type mockAllocator struct {
	mock.Mock
}

func (m *mockAllocator) NextWithTx(ctx context.Context, tx pgx.Tx, seq sequence.Sequence) (string, error) {
	args := m.Called(ctx, tx, seq)
	return args.String(0), args.Error(1)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Update(ctx context.Context, id uuid.UUID, status, careStatus *string) (*customer.Customer, error) {
	args := m.Called(ctx, id, status, careStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *mockCustomerRepo) List(ctx context.Context, f customer.ListFilter) ([]*customer.Customer, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*customer.Customer), args.Int(1), args.Error(2)
}

type mockActivityReader struct {
	mock.Mock
}

func (m *mockActivityReader) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*activity.Activity, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity.Activity), args.Error(1)
}

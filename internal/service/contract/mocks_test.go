package contract

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"bizcare-service/internal/domain/activity"
	"bizcare-service/internal/domain/catalog"
	"bizcare-service/internal/domain/contract"
	"bizcare-service/internal/domain/sequence"
	customersvc "bizcare-service/internal/service/customer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTx records how the unit of work ended. Any other pgx.Tx method panics.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	txs   []*fakeTx
	err   error
	calls int
}

func (d *fakeDB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	tx := &fakeTx{}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func (d *fakeDB) last() *fakeTx {
	if len(d.txs) == 0 {
		return nil
	}
	return d.txs[len(d.txs)-1]
}

type mockContractRepo struct {
	mock.Mock
}

func (m *mockContractRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, c *contract.Contract) error {
	args := m.Called(ctx, tx, c)
	return args.Error(0)
}

func (m *mockContractRepo) FindOne(ctx context.Context, l contract.Lookup) (*contract.Contract, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *mockContractRepo) FindRecord(ctx context.Context, l contract.Lookup) (*contract.Record, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Record), args.Error(1)
}

func (m *mockContractRepo) ListRecordsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*contract.Record, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contract.Record), args.Error(1)
}

func (m *mockContractRepo) UpdateQuote(ctx context.Context, u contract.QuoteUpdate) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockContractRepo) SignWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status contract.Status, signedAt, now time.Time) (*contract.SignResult, error) {
	args := m.Called(ctx, tx, id, status, signedAt, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.SignResult), args.Error(1)
}

func (m *mockContractRepo) FindForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*contract.Contract, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *mockContractRepo) UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status contract.Status, startDate, endDate sql.NullTime, now time.Time) error {
	args := m.Called(ctx, tx, id, status, startDate, endDate, now)
	return args.Error(0)
}

func (m *mockContractRepo) List(ctx context.Context, f contract.ListFilter) ([]*contract.Contract, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*contract.Contract), args.Int(1), args.Error(2)
}

func (m *mockContractRepo) FindPackageWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*catalog.Package, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Package), args.Error(1)
}

func (m *mockContractRepo) ListPackageItemsWithTx(ctx context.Context, tx pgx.Tx, packageID uuid.UUID) ([]*catalog.PackageItem, error) {
	args := m.Called(ctx, tx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.PackageItem), args.Error(1)
}

func (m *mockContractRepo) ReplaceItemsWithTx(ctx context.Context, tx pgx.Tx, contractID uuid.UUID, items []*catalog.ContractItem) error {
	args := m.Called(ctx, tx, contractID, items)
	return args.Error(0)
}

func (m *mockContractRepo) UpdateItemQuoteWithTx(ctx context.Context, tx pgx.Tx, u contract.ItemQuoteUpdate) error {
	args := m.Called(ctx, tx, u)
	return args.Error(0)
}

type mockActivityWriter struct {
	mock.Mock
}

func (m *mockActivityWriter) CreateWithTx(ctx context.Context, tx pgx.Tx, a *activity.Activity) error {
	args := m.Called(ctx, tx, a)
	return args.Error(0)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveWithTx(ctx context.Context, tx pgx.Tx, in customersvc.NewCustomer) (uuid.UUID, bool, error) {
	args := m.Called(ctx, tx, in)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

type mockAllocator struct {
	mock.Mock
}

func (m *mockAllocator) NextWithTx(ctx context.Context, tx pgx.Tx, seq sequence.Sequence) (string, error) {
	args := m.Called(ctx, tx, seq)
	return args.String(0), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []contract.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt contract.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

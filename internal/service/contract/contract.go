// internal/service/contract/contract.go
package contract

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bizcare-service/internal/domain/activity"
	"bizcare-service/internal/domain/catalog"
	"bizcare-service/internal/domain/contract"
	"bizcare-service/internal/domain/sequence"
	"bizcare-service/internal/pkg/clock"
	xerrors "bizcare-service/internal/pkg/errors"
	customersvc "bizcare-service/internal/service/customer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TxBeginner interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

type ContractRepository interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, c *contract.Contract) error
	FindOne(ctx context.Context, l contract.Lookup) (*contract.Contract, error)
	FindRecord(ctx context.Context, l contract.Lookup) (*contract.Record, error)
	ListRecordsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*contract.Record, error)
	UpdateQuote(ctx context.Context, u contract.QuoteUpdate) error
	SignWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status contract.Status, signedAt, now time.Time) (*contract.SignResult, error)
	FindForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*contract.Contract, error)
	UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status contract.Status, startDate, endDate sql.NullTime, now time.Time) error
	List(ctx context.Context, f contract.ListFilter) ([]*contract.Contract, int, error)
	FindPackageWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*catalog.Package, error)
	ListPackageItemsWithTx(ctx context.Context, tx pgx.Tx, packageID uuid.UUID) ([]*catalog.PackageItem, error)
	ReplaceItemsWithTx(ctx context.Context, tx pgx.Tx, contractID uuid.UUID, items []*catalog.ContractItem) error
	UpdateItemQuoteWithTx(ctx context.Context, tx pgx.Tx, u contract.ItemQuoteUpdate) error
}

type ActivityWriter interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, a *activity.Activity) error
}

type CustomerResolver interface {
	ResolveWithTx(ctx context.Context, tx pgx.Tx, in customersvc.NewCustomer) (uuid.UUID, bool, error)
}

type CodeAllocator interface {
	NextWithTx(ctx context.Context, tx pgx.Tx, seq sequence.Sequence) (string, error)
}

// ContractService owns the contract lifecycle: intake, quoting, signature
// and administrative status changes.
type ContractService struct {
	db         TxBeginner
	contracts  ContractRepository
	activities ActivityWriter
	resolver   CustomerResolver
	allocator  CodeAllocator
	publisher  contract.Publisher
	clock      clock.Clock
	logger     *zap.Logger
}

// NewContractService wires the service. A nil publisher drops events and a
// nil clock uses the wall clock.
func NewContractService(
	db TxBeginner,
	contracts ContractRepository,
	activities ActivityWriter,
	resolver CustomerResolver,
	allocator CodeAllocator,
	publisher contract.Publisher,
	clk clock.Clock,
	logger *zap.Logger,
) *ContractService {
	if publisher == nil {
		publisher = contract.NopPublisher{}
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &ContractService{
		db:         db,
		contracts:  contracts,
		activities: activities,
		resolver:   resolver,
		allocator:  allocator,
		publisher:  publisher,
		clock:      clk,
		logger:     logger,
	}
}

// loadDetail re-reads a contract that is known to exist.
func (s *ContractService) loadDetail(ctx context.Context, id uuid.UUID) (*contract.Detail, error) {
	rec, err := s.contracts.FindRecord(ctx, contract.Lookup{ID: uuid.NullUUID{UUID: id, Valid: true}})
	if err != nil {
		s.logger.Error("failed to reload contract", zap.String("contract_id", id.String()), zap.Error(err))
		return nil, xerrors.Persistence("failed to load saved contract", err)
	}
	return contract.ToDetail(rec), nil
}

func parseContractID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, xerrors.InvalidInput("contract_id must be a valid UUID")
	}
	return id, nil
}

// persistence keeps typed errors as they are and wraps everything else.
func persistence(message string, err error) error {
	if _, ok := xerrors.As(err); ok {
		return err
	}
	return xerrors.Persistence(message, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, xerrors.ErrNotFound)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

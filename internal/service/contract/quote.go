// internal/service/contract/quote.go
package contract

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bizcare-service/internal/domain/catalog"
	"bizcare-service/internal/domain/contract"
	xerrors "bizcare-service/internal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitQuote stores a manager quote and moves the contract to quoted. The
// update is scoped by both contract id and customer number, so a quote can
// never land on another customer's contract.
func (s *ContractService) SubmitQuote(ctx context.Context, req *contract.SubmitQuoteRequest) (*contract.Detail, error) {
	if req == nil {
		return nil, xerrors.InvalidInput("request body is required")
	}
	if err := validateRequired(req); err != nil {
		return nil, err
	}
	id, err := parseContractID(req.ContractID)
	if err != nil {
		return nil, err
	}

	managerName := contract.DefaultManagerName
	if req.ManagerName != nil && *req.ManagerName != "" {
		managerName = *req.ManagerName
	}

	q := req.Quote
	update := contract.QuoteUpdate{
		ContractID:          id,
		CustomerNumber:      req.CustomerNumber,
		InternetPlan:        q.InternetPlan,
		InternetMonthlyFee:  q.InternetMonthlyFee,
		CCTVCount:           q.CCTVCount,
		CCTVMonthlyFee:      q.CCTVMonthlyFee,
		InstallationAddress: q.InstallationAddress,
		Notes:               q.Notes(managerName),
		FreePeriod:          q.FreePeriod.Or(contract.DefaultFreePeriod),
		ContractPeriod:      q.ContractPeriod.Or(contract.DefaultContractPeriod),
		TotalMonthlyFee:     req.TotalMonthlyFee.Or(0),
		ProcessedBy:         managerName,
		ProcessedAt:         s.clock.Now(),
	}

	if err := s.contracts.UpdateQuote(ctx, update); err != nil {
		if isNotFound(err) {
			return nil, xerrors.NotFound("no contract matches the given contract_id and customer_number")
		}
		s.logger.Error("failed to save quote", zap.String("contract_id", id.String()), zap.Error(err))
		return nil, xerrors.Persistence("failed to save quote", err)
	}

	s.logger.Info("contract quoted",
		zap.String("contract_id", id.String()),
		zap.String("customer_number", req.CustomerNumber),
		zap.String("processed_by", managerName),
		zap.Int64("total_monthly_fee", update.TotalMonthlyFee),
	)

	s.publisher.Publish(ctx, contract.Event{
		Type:           contract.EventQuoted,
		ContractID:     id.String(),
		CustomerNumber: req.CustomerNumber,
		Status:         contract.StatusQuoted,
		OccurredAt:     update.ProcessedAt,
	})

	return s.loadDetail(ctx, id)
}

// GetQuote returns the quote view by contract id, or by customer number when
// no id is given.
func (s *ContractService) GetQuote(ctx context.Context, req contract.GetQuoteRequest) (*contract.QuoteView, error) {
	if req.ContractID == "" && req.CustomerNumber == "" {
		return nil, xerrors.InvalidInput("contract_id or customer_number is required")
	}

	var lookup contract.Lookup
	if req.ContractID != "" {
		id, err := parseContractID(req.ContractID)
		if err != nil {
			return nil, err
		}
		lookup.ID = uuid.NullUUID{UUID: id, Valid: true}
	} else {
		lookup.CustomerNumber = req.CustomerNumber
	}

	c, err := s.contracts.FindOne(ctx, lookup)
	if err != nil {
		if isNotFound(err) {
			return nil, xerrors.NotFound("contract not found")
		}
		return nil, xerrors.Persistence("failed to load quote", err)
	}

	return contract.ToQuoteView(c), nil
}

// SubmitItemQuote quotes a contract from a catalog package or from custom
// line items. The contract's items are replaced and the quote stamped in one
// transaction. Custom items win over package_id when both are given.
func (s *ContractService) SubmitItemQuote(ctx context.Context, req *contract.ItemQuoteRequest) (*contract.ItemQuoteResponse, error) {
	if req == nil {
		return nil, xerrors.InvalidInput("request body is required")
	}
	if err := validateRequired(req); err != nil {
		return nil, err
	}
	id, err := parseContractID(req.ContractID)
	if err != nil {
		return nil, err
	}
	if req.PackageID == "" && len(req.CustomItems) == 0 {
		return nil, xerrors.InvalidInput("package_id or custom_items is required")
	}
	discount := req.DiscountAmount.Or(0)
	if discount < 0 {
		return nil, xerrors.InvalidInput("discount_amount must not be negative")
	}

	var custom []*catalog.ContractItem
	if len(req.CustomItems) > 0 {
		if custom, err = customItems(req.CustomItems); err != nil {
			return nil, err
		}
	}
	var packageID uuid.UUID
	if custom == nil {
		if packageID, err = uuid.Parse(req.PackageID); err != nil {
			return nil, xerrors.InvalidInput("package_id must be a valid UUID")
		}
	}

	managerName := contract.DefaultManagerName
	if req.ManagerName != nil && *req.ManagerName != "" {
		managerName = *req.ManagerName
	}
	now := s.clock.Now()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, xerrors.Persistence("failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	current, err := s.contracts.FindForUpdateWithTx(ctx, tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, xerrors.NotFound("contract not found")
		}
		return nil, xerrors.Persistence("failed to load contract", err)
	}

	update := contract.ItemQuoteUpdate{
		ContractID:  id,
		ProcessedBy: managerName,
		ProcessedAt: now,
		Notes: &contract.QuoteNotes{
			ManagerName:    managerName,
			DiscountAmount: &discount,
			QuoteNotes:     req.QuoteNotes,
		},
	}
	var subtotal int64

	if custom != nil {
		update.Items = custom
		update.Notes.QuoteType = contract.QuoteTypeCustom
		for _, item := range custom {
			subtotal += item.Fee.Int64 * item.Quantity.Int64
			update.Notes.Items = append(update.Notes.Items, contract.QuoteItemNote{
				ProductID: item.ProductID.UUID.String(),
				Quantity:  item.Quantity.Int64,
				Fee:       item.Fee.Int64,
			})
		}
	} else {
		pkg, err := s.contracts.FindPackageWithTx(ctx, tx, packageID)
		if err != nil {
			if isNotFound(err) {
				return nil, xerrors.NotFound("package not found")
			}
			return nil, xerrors.Persistence("failed to load package", err)
		}
		bundled, err := s.contracts.ListPackageItemsWithTx(ctx, tx, packageID)
		if err != nil {
			return nil, xerrors.Persistence("failed to load package items", err)
		}

		subtotal = pkg.MonthlyFee.Int64
		update.PackageID = uuid.NullUUID{UUID: pkg.ID, Valid: true}
		update.PackageName = sql.NullString{String: pkg.Name, Valid: true}
		update.Notes.QuoteType = contract.QuoteTypePackage
		update.Notes.PackageName = pkg.Name
		for _, b := range bundled {
			update.Items = append(update.Items, &catalog.ContractItem{
				ProductID: uuid.NullUUID{UUID: b.ProductID, Valid: true},
				Quantity:  sql.NullInt64{Int64: b.Quantity, Valid: true},
				Fee:       b.ItemFee,
			})
			note := contract.QuoteItemNote{
				ProductID: b.ProductID.String(),
				Quantity:  b.Quantity,
				Fee:       b.ItemFee.Int64,
			}
			if b.Product != nil {
				note.ProductName = b.Product.Name
			}
			update.Notes.Items = append(update.Notes.Items, note)
		}
	}

	update.TotalMonthlyFee = subtotal - discount
	if update.TotalMonthlyFee < 0 {
		update.TotalMonthlyFee = 0
	}

	if err := s.contracts.ReplaceItemsWithTx(ctx, tx, id, update.Items); err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			return nil, xerrors.InvalidInput(err.Error())
		}
		s.logger.Error("failed to replace contract items", zap.String("contract_id", id.String()), zap.Error(err))
		return nil, xerrors.Persistence("failed to save quote items", err)
	}
	if err := s.contracts.UpdateItemQuoteWithTx(ctx, tx, update); err != nil {
		s.logger.Error("failed to save quote", zap.String("contract_id", id.String()), zap.Error(err))
		return nil, xerrors.Persistence("failed to save quote", err)
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error("failed to commit quote", zap.Error(err))
		return nil, xerrors.Persistence("failed to save quote", err)
	}

	s.logger.Info("contract quoted",
		zap.String("contract_id", id.String()),
		zap.String("quote_type", update.Notes.QuoteType),
		zap.Int("items", len(update.Items)),
		zap.String("processed_by", managerName),
		zap.Int64("total_monthly_fee", update.TotalMonthlyFee),
	)

	s.publisher.Publish(ctx, contract.Event{
		Type:           contract.EventQuoted,
		ContractID:     id.String(),
		CustomerNumber: current.CustomerNumber.String,
		Status:         contract.StatusQuoted,
		OccurredAt:     now,
	})

	detail, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return &contract.ItemQuoteResponse{QuoteType: update.Notes.QuoteType, Contract: detail}, nil
}

// customItems validates manager-entered line items. Quantity defaults to 1.
func customItems(in []contract.QuoteItemInput) ([]*catalog.ContractItem, error) {
	items := make([]*catalog.ContractItem, 0, len(in))
	for i, raw := range in {
		productID, err := uuid.Parse(raw.ProductID)
		if err != nil {
			return nil, xerrors.InvalidInput(fmt.Sprintf("custom_items[%d].product_id must be a valid UUID", i))
		}
		qty := raw.Quantity.Or(1)
		fee := raw.Fee.Or(0)
		if qty <= 0 || fee < 0 {
			return nil, xerrors.InvalidInput(fmt.Sprintf("custom_items[%d] needs a positive quantity and a non-negative fee", i))
		}
		items = append(items, &catalog.ContractItem{
			ProductID: uuid.NullUUID{UUID: productID, Valid: true},
			Quantity:  sql.NullInt64{Int64: qty, Valid: true},
			Fee:       sql.NullInt64{Int64: fee, Valid: true},
		})
	}
	return items, nil
}

// internal/service/contract/submission.go
package contract

import (
	"context"
	"database/sql"

	"bizcare-service/internal/domain/contract"
	"bizcare-service/internal/domain/sequence"
	xerrors "bizcare-service/internal/pkg/errors"
	"bizcare-service/internal/pkg/phone"
	customersvc "bizcare-service/internal/service/customer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit validates an intake payload and stores it as a pending contract,
// creating the customer on first contact. The customer, the number
// allocations and the contract row commit together or not at all.
func (s *ContractService) Submit(ctx context.Context, req *contract.SubmitContractRequest) (*contract.Detail, error) {
	if req == nil {
		return nil, xerrors.InvalidInput("request body is required")
	}
	if err := validateRequired(req); err != nil {
		return nil, err
	}

	normalizedPhone, err := phone.NormalizeAndValidate(req.Phone)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, xerrors.Persistence("failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	customerID, created, err := s.resolver.ResolveWithTx(ctx, tx, customersvc.NewCustomer{
		BusinessName:         req.BusinessName,
		OwnerName:            req.OwnerName,
		Phone:                normalizedPhone,
		Email:                req.Email,
		Address:              req.Address,
		BusinessRegistration: req.BusinessRegistration,
	})
	if err != nil {
		s.logger.Error("failed to resolve customer", zap.Error(err))
		return nil, persistence("failed to resolve customer", err)
	}

	customerNumber, err := s.allocator.NextWithTx(ctx, tx, sequence.ContractCustomerNumber)
	if err != nil {
		s.logger.Error("failed to allocate customer number", zap.Error(err))
		return nil, persistence("failed to allocate customer number", err)
	}
	contractNumber := sequence.ContractNumberFor(customerNumber)

	c := &contract.Contract{
		CustomerID:                uuid.NullUUID{UUID: customerID, Valid: true},
		CustomerNumber:            nullString(customerNumber),
		ContractNumber:            nullString(contractNumber),
		BusinessName:              nullString(req.BusinessName),
		OwnerName:                 nullString(req.OwnerName),
		Phone:                     nullString(normalizedPhone),
		Email:                     nullString(req.Email),
		Address:                   nullString(req.Address),
		BusinessRegistration:      nullString(req.BusinessRegistration),
		InternetPlan:              nullString(req.InternetPlan),
		CCTVCount:                 req.CCTVCount.NullInt64(),
		InstallationAddress:       nullString(req.InstallationAddress),
		BankName:                  nullString(req.BankName),
		AccountNumber:             nullString(req.AccountNumber),
		AccountHolder:             nullString(req.AccountHolder),
		AdditionalRequests:        nullString(req.AdditionalRequests),
		BankAccountImage:          nullString(req.BankAccountImage),
		IDCardImage:               nullString(req.IDCardImage),
		BusinessRegistrationImage: nullString(req.BusinessRegistrationImage),
		TermsAgreed:               req.TermsAgreed,
		InfoAgreed:                req.InfoAgreed,
		Status:                    contract.StatusPending,
		BillingDay:                sql.NullInt64{Int64: contract.DefaultBillingDay, Valid: true},
		RemittanceDay:             sql.NullInt64{Int64: contract.DefaultRemittanceDay, Valid: true},
	}

	if err := s.contracts.CreateWithTx(ctx, tx, c); err != nil {
		s.logger.Error("failed to create contract", zap.String("customer_number", customerNumber), zap.Error(err))
		return nil, persistence("failed to save contract", err)
	}
	if c.ID == uuid.Nil {
		return nil, xerrors.Persistence("failed to save contract", nil)
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error("failed to commit contract submission", zap.Error(err))
		return nil, xerrors.Persistence("failed to save contract", err)
	}

	s.logger.Info("contract submitted",
		zap.String("contract_id", c.ID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("customer_number", customerNumber),
		zap.String("contract_number", contractNumber),
		zap.Bool("new_customer", created),
	)

	s.publisher.Publish(ctx, contract.Event{
		Type:           contract.EventSubmitted,
		ContractID:     c.ID.String(),
		CustomerID:     customerID.String(),
		CustomerNumber: customerNumber,
		ContractNumber: contractNumber,
		Status:         contract.StatusPending,
		OccurredAt:     s.clock.Now(),
	})

	return s.loadDetail(ctx, c.ID)
}

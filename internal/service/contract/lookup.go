// internal/service/contract/lookup.go
package contract

import (
	"context"

	"bizcare-service/internal/domain/contract"
	xerrors "bizcare-service/internal/pkg/errors"
	"bizcare-service/internal/pkg/phone"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FindByNumber returns the newest contract carrying the customer number or,
// when that is empty, the contract number. A miss returns ErrNotFound.
func (s *ContractService) FindByNumber(ctx context.Context, req contract.SearchByNumberRequest) (*contract.Detail, error) {
	var l contract.Lookup
	switch {
	case req.CustomerNumber != "":
		l.CustomerNumber = req.CustomerNumber
	case req.ContractNumber != "":
		l.ContractNumber = req.ContractNumber
	default:
		return nil, xerrors.InvalidInput("customer_number or contract_number is required")
	}
	return s.findDetail(ctx, l)
}

// FindLatestByOwner looks up by customer number when given, otherwise by
// owner name and normalized phone.
func (s *ContractService) FindLatestByOwner(ctx context.Context, req contract.SearchByOwnerRequest) (*contract.Detail, error) {
	if req.CustomerNumber != "" {
		return s.findDetail(ctx, contract.Lookup{CustomerNumber: req.CustomerNumber})
	}

	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return nil, xerrors.Validation(missing)
	}

	normalizedPhone, err := phone.NormalizeAndValidate(req.Phone)
	if err != nil {
		return nil, err
	}

	return s.findDetail(ctx, contract.Lookup{OwnerName: req.Name, Phone: normalizedPhone})
}

// ListCustomerContracts returns every contract of a customer, newest first.
func (s *ContractService) ListCustomerContracts(ctx context.Context, customerID string) ([]*contract.Detail, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, xerrors.InvalidInput("customer id must be a valid UUID")
	}

	records, err := s.contracts.ListRecordsByCustomer(ctx, id)
	if err != nil {
		s.logger.Error("failed to list customer contracts", zap.String("customer_id", customerID), zap.Error(err))
		return nil, xerrors.Persistence("failed to list contracts", err)
	}

	details := make([]*contract.Detail, 0, len(records))
	for _, rec := range records {
		details = append(details, contract.ToDetail(rec))
	}
	return details, nil
}

func (s *ContractService) findDetail(ctx context.Context, l contract.Lookup) (*contract.Detail, error) {
	rec, err := s.contracts.FindRecord(ctx, l)
	if err != nil {
		if isNotFound(err) {
			return nil, xerrors.NotFound("contract not found")
		}
		s.logger.Error("failed to find contract", zap.Error(err))
		return nil, xerrors.Persistence("failed to find contract", err)
	}
	return contract.ToDetail(rec), nil
}

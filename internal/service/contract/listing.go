// internal/service/contract/listing.go
package contract

import (
	"context"
	"fmt"
	"strings"

	"bizcare-service/internal/domain/contract"
	xerrors "bizcare-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListContracts pages through contracts for the manager console, newest
// first. A status of "all" or empty disables the status filter.
func (s *ContractService) ListContracts(ctx context.Context, req contract.ListRequest) (*contract.ListResponse, error) {
	f := contract.ListFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Status != "" && req.Status != contract.StatusAll {
		f.Status = contract.Status(req.Status)
		if !f.Status.Valid() {
			return nil, xerrors.InvalidInput(fmt.Sprintf("unknown status %q", req.Status))
		}
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	contracts, total, err := s.contracts.List(ctx, f)
	if err != nil {
		s.logger.Error("failed to list contracts", zap.Error(err))
		return nil, xerrors.Persistence("failed to list contracts", err)
	}

	resp := &contract.ListResponse{
		Contracts: make([]*contract.ManagerView, 0, len(contracts)),
		Total:     total,
		Limit:     f.Limit,
		Offset:    f.Offset,
	}
	for _, c := range contracts {
		resp.Contracts = append(resp.Contracts, contract.ToManagerView(c))
	}
	return resp, nil
}

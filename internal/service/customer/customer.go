// internal/service/customer/customer.go
package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bizcare-service/internal/domain/activity"
	"bizcare-service/internal/domain/customer"
	xerrors "bizcare-service/internal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200

	defaultPageSize = 20
	maxPageSize     = 100
)

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	Update(ctx context.Context, id uuid.UUID, status, careStatus *string) (*customer.Customer, error)
	List(ctx context.Context, f customer.ListFilter) ([]*customer.Customer, int, error)
}

type ActivityReader interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*activity.Activity, error)
}

type CustomerService struct {
	customerRepo Repository
	activityRepo ActivityReader
	logger       *zap.Logger
}

func NewCustomerService(customerRepo Repository, activityRepo ActivityReader, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// GetCustomer returns one customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*customer.CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, xerrors.InvalidInput("customer id must be a valid UUID")
	}

	c, err := s.customerRepo.FindByID(ctx, customerID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound("customer not found")
	}
	if err != nil {
		return nil, xerrors.Persistence("failed to load customer", err)
	}
	return c.ToResponse(), nil
}

// ListCustomers pages through customers, newest first. Pages start at 1.
func (s *CustomerService) ListCustomers(ctx context.Context, req customer.ListRequest) (*customer.ListResponse, error) {
	page, limit := req.Page, req.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	f := customer.ListFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if req.Status != "" && req.Status != customer.StatusAll {
		if !customer.ValidStatus(req.Status) {
			return nil, xerrors.InvalidInput(fmt.Sprintf("invalid customer status: %s", req.Status))
		}
		f.Status = req.Status
	}

	customers, total, err := s.customerRepo.List(ctx, f)
	if err != nil {
		s.logger.Error("failed to list customers", zap.Error(err))
		return nil, xerrors.Persistence("failed to list customers", err)
	}

	resp := &customer.ListResponse{
		Customers:  make([]*customer.CustomerResponse, 0, len(customers)),
		Pagination: customer.Pagination{Page: page, Limit: limit, Total: total},
	}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, c.ToResponse())
	}
	return resp, nil
}

// UpdateCustomer applies an administrative edit of status and care status.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *customer.UpdateCustomerRequest) (*customer.CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, xerrors.InvalidInput("customer id must be a valid UUID")
	}
	if req.Status == nil && req.CareStatus == nil {
		return nil, xerrors.InvalidInput("nothing to update")
	}
	if req.Status != nil && !customer.ValidStatus(*req.Status) {
		return nil, xerrors.InvalidInput(fmt.Sprintf("invalid customer status: %s", *req.Status))
	}

	c, err := s.customerRepo.Update(ctx, customerID, req.Status, req.CareStatus)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound("customer not found")
	}
	if err != nil {
		s.logger.Error("failed to update customer", zap.String("customer_id", id), zap.Error(err))
		return nil, xerrors.Persistence("failed to update customer", err)
	}

	s.logger.Info("customer updated",
		zap.String("customer_id", id),
		zap.String("status", c.Status),
	)

	return c.ToResponse(), nil
}

// ListActivities returns the audit timeline of a customer, newest first.
func (s *CustomerService) ListActivities(ctx context.Context, id string, limit, offset int) ([]*activity.ActivityResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, xerrors.InvalidInput("customer id must be a valid UUID")
	}

	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFound("customer not found")
		}
		return nil, xerrors.Persistence("failed to load customer", err)
	}

	activities, err := s.activityRepo.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, xerrors.Persistence("failed to list activities", err)
	}

	out := make([]*activity.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.ToResponse())
	}
	return out, nil
}

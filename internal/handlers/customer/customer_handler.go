// internal/handlers/customer/customer_handler.go
package customer

import (
	"context"
	"net/http"
	"strconv"

	"bizcare-service/internal/domain/activity"
	"bizcare-service/internal/domain/customer"
	"bizcare-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type CustomerService interface {
	GetCustomer(ctx context.Context, id string) (*customer.CustomerResponse, error)
	ListCustomers(ctx context.Context, req customer.ListRequest) (*customer.ListResponse, error)
	UpdateCustomer(ctx context.Context, id string, req *customer.UpdateCustomerRequest) (*customer.CustomerResponse, error)
	ListActivities(ctx context.Context, id string, limit, offset int) ([]*activity.ActivityResponse, error)
}

type CustomerHandler struct {
	customerService CustomerService
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// ListCustomers returns one page of customers, newest first.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		response.Error(c, http.StatusBadRequest, "invalid page", nil)
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		response.Error(c, http.StatusBadRequest, "invalid limit", nil)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), customer.ListRequest{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		Status: c.DefaultQuery("status", customer.StatusAll),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", result)
}

// GetCustomer returns one customer.
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	result, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// UpdateCustomer edits status and care status of a customer.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated successfully", result)
}

// ListActivities returns the customer's activity timeline.
func (h *CustomerHandler) ListActivities(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		response.Error(c, http.StatusBadRequest, "invalid limit", nil)
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		response.Error(c, http.StatusBadRequest, "invalid offset", nil)
		return
	}

	activities, err := h.customerService.ListActivities(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "activities retrieved", activities)
}

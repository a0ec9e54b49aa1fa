// internal/handlers/contract/contract_handler.go
package contract

import (
	"context"
	"net/http"
	"strconv"

	"bizcare-service/internal/domain/contract"
	"bizcare-service/internal/middleware"
	xerrors "bizcare-service/internal/pkg/errors"
	"bizcare-service/internal/pkg/response"
	service "bizcare-service/internal/service/contract"

	"github.com/gin-gonic/gin"
)

const nextStepAfterSignature = "installation_scheduling"

type ContractService interface {
	Submit(ctx context.Context, req *contract.SubmitContractRequest) (*contract.Detail, error)
	FindByNumber(ctx context.Context, req contract.SearchByNumberRequest) (*contract.Detail, error)
	FindLatestByOwner(ctx context.Context, req contract.SearchByOwnerRequest) (*contract.Detail, error)
	SubmitQuote(ctx context.Context, req *contract.SubmitQuoteRequest) (*contract.Detail, error)
	GetQuote(ctx context.Context, req contract.GetQuoteRequest) (*contract.QuoteView, error)
	CompleteSignature(ctx context.Context, req *contract.SignContractRequest) (*contract.Detail, error)
	ChangeStatus(ctx context.Context, contractID string, req *contract.ChangeStatusRequest, actor service.Actor) (*contract.Detail, error)
	ListCustomerContracts(ctx context.Context, customerID string) ([]*contract.Detail, error)
	ListContracts(ctx context.Context, req contract.ListRequest) (*contract.ListResponse, error)
	SubmitItemQuote(ctx context.Context, req *contract.ItemQuoteRequest) (*contract.ItemQuoteResponse, error)
}

type ContractHandler struct {
	contractService ContractService
}

func NewContractHandler(contractService ContractService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
	}
}

// ========== Public Endpoints ==========

// SubmitContract stores a new intake submission.
func (h *ContractHandler) SubmitContract(c *gin.Context) {
	var req contract.SubmitContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	detail, err := h.contractService.Submit(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "contract submitted successfully", contract.SubmitContractResponse{
		ID:             detail.ID,
		CustomerNumber: detail.CustomerNumber,
		ContractNumber: detail.ContractNumber,
		Contract:       detail,
	})
}

// SearchByNumber finds a contract by customer or contract number. A miss is
// a successful response with a null customer.
func (h *ContractHandler) SearchByNumber(c *gin.Context) {
	var req contract.SearchByNumberRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	detail, err := h.contractService.FindByNumber(c.Request.Context(), req)
	h.searchResult(c, detail, err)
}

// SearchByOwner finds the newest contract for an owner name and phone.
func (h *ContractHandler) SearchByOwner(c *gin.Context) {
	var req contract.SearchByOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	detail, err := h.contractService.FindLatestByOwner(c.Request.Context(), req)
	h.searchResult(c, detail, err)
}

func (h *ContractHandler) searchResult(c *gin.Context, detail *contract.Detail, err error) {
	if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		response.FromError(c, err)
		return
	}
	if detail == nil {
		response.Success(c, http.StatusOK, "contract not found", contract.SearchResponse{})
		return
	}
	response.Success(c, http.StatusOK, "contract retrieved", contract.SearchResponse{Customer: detail})
}

// GetQuote returns the quote for a contract.
func (h *ContractHandler) GetQuote(c *gin.Context) {
	var req contract.GetQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	quote, err := h.contractService.GetQuote(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "quote retrieved", quote)
}

// SignContract records the customer's electronic signature.
func (h *ContractHandler) SignContract(c *gin.Context) {
	var req contract.SignContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	// The signature is only checked for presence here; it is not stored.
	if !req.CustomerSignature {
		var fields []string
		if req.ContractID == "" {
			fields = append(fields, "contract_id")
		}
		response.FromError(c, xerrors.Validation(append(fields, "customer_signature")))
		return
	}

	detail, err := h.contractService.CompleteSignature(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "contract signed successfully", contract.SignContractResponse{
		Contract: detail,
		NextStep: nextStepAfterSignature,
	})
}

// ========== Manager Endpoints ==========

// SubmitQuote stores a manager quote.
func (h *ContractHandler) SubmitQuote(c *gin.Context) {
	var req contract.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	// Fall back to the caller's display name when the form leaves it out.
	if req.ManagerName == nil || *req.ManagerName == "" {
		if claims, ok := middleware.GetClaims(c); ok && claims.Name != "" {
			name := claims.Name
			req.ManagerName = &name
		}
	}

	detail, err := h.contractService.SubmitQuote(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "quote submitted successfully", detail)
}

// SubmitItemQuote quotes a contract from a package or custom line items.
func (h *ContractHandler) SubmitItemQuote(c *gin.Context) {
	var req contract.ItemQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if req.ManagerName == nil || *req.ManagerName == "" {
		if claims, ok := middleware.GetClaims(c); ok && claims.Name != "" {
			name := claims.Name
			req.ManagerName = &name
		}
	}

	result, err := h.contractService.SubmitItemQuote(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "quote created successfully", result)
}

// ListContracts pages through every contract for the manager console.
func (h *ContractHandler) ListContracts(c *gin.Context) {
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

	result, err := h.contractService.ListContracts(c.Request.Context(), contract.ListRequest{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "contracts retrieved", result)
}

// ChangeStatus moves a contract to another status.
func (h *ContractHandler) ChangeStatus(c *gin.Context) {
	var req contract.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	detail, err := h.contractService.ChangeStatus(c.Request.Context(), c.Param("id"), &req, actorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "contract status updated", detail)
}

// ListCustomerContracts returns a customer's contracts, newest first.
func (h *ContractHandler) ListCustomerContracts(c *gin.Context) {
	details, err := h.contractService.ListCustomerContracts(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "contracts retrieved", details)
}

func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{IsAdmin: middleware.IsAdmin(c)}
	if claims, ok := middleware.GetClaims(c); ok {
		actor.ID = claims.Subject
		actor.Name = claims.Name
	}
	return actor
}

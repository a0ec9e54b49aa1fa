// internal/domain/contract/listing.go
package contract

import (
	"bizcare-service/internal/pkg/isotime"
)

// StatusAll disables the status filter of a listing.
const StatusAll = "all"

// ListRequest is the manager contract listing query.
type ListRequest struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// ListFilter is a normalized ListRequest. An empty Status matches every row
// and Search is matched case-insensitively against business name, owner
// name, phone and customer number.
type ListFilter struct {
	Status Status
	Search string
	Limit  int
	Offset int
}

type ListResponse struct {
	Contracts []*ManagerView `json:"contracts"`
	Total     int            `json:"total"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
}

// ManagerView is the quote view plus the columns the manager list shows.
type ManagerView struct {
	*QuoteView
	BusinessRegistration *string `json:"business_registration"`
	BankName             *string `json:"bank_name"`
	AccountNumber        *string `json:"account_number"`
	AccountHolder        *string `json:"account_holder"`
	AdditionalRequests   *string `json:"additional_requests"`
	ContractPeriod       *int64  `json:"contract_period"`
	FreePeriod           *int64  `json:"free_period"`
	StartDate            *string `json:"start_date"`
	EndDate              *string `json:"end_date"`
}

func ToManagerView(c *Contract) *ManagerView {
	if c == nil {
		return nil
	}
	return &ManagerView{
		QuoteView:            ToQuoteView(c),
		BusinessRegistration: str(c.BusinessRegistration),
		BankName:             str(c.BankName),
		AccountNumber:        str(c.AccountNumber),
		AccountHolder:        str(c.AccountHolder),
		AdditionalRequests:   str(c.AdditionalRequests),
		ContractPeriod:       num(c.ContractPeriod),
		FreePeriod:           num(c.FreePeriod),
		StartDate:            isotime.FormatNull(c.StartDate),
		EndDate:              isotime.FormatNull(c.EndDate),
	}
}

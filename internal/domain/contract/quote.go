// internal/domain/contract/quote.go
package contract

import (
	"database/sql"
	"time"

	"bizcare-service/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultManagerName    = "매니저"
	DefaultFreePeriod     = 12
	DefaultContractPeriod = 36
)

// QuoteInput is the manager-entered quote. Service columns go to typed
// contract columns; the add-ons and notes go to QuoteNotes.
type QuoteInput struct {
	InternetPlan        *string `json:"internet_plan"`
	InternetMonthlyFee  FlexInt `json:"internet_monthly_fee"`
	CCTVCount           FlexInt `json:"cctv_count"`
	CCTVMonthlyFee      FlexInt `json:"cctv_monthly_fee"`
	InstallationAddress *string `json:"installation_address"`

	POSNeeded           *bool               `json:"pos_needed"`
	POSMonthlyFee       FlexInt             `json:"pos_monthly_fee"`
	TVNeeded            *bool               `json:"tv_needed"`
	TVMonthlyFee        FlexInt             `json:"tv_monthly_fee"`
	InsuranceNeeded     *bool               `json:"insurance_needed"`
	InsuranceMonthlyFee FlexInt             `json:"insurance_monthly_fee"`
	DiscountRate        decimal.NullDecimal `json:"discount_rate"`
	SpecialConditions   *string             `json:"special_conditions"`
	ManagerNotes        *string             `json:"manager_notes"`

	FreePeriod     FlexInt `json:"free_period"`
	ContractPeriod FlexInt `json:"contract_period"`
}

// QuoteNotes is stored in contracts.admin_notes and read back by the quote view.
type QuoteNotes struct {
	POSNeeded           *bool               `json:"pos_needed"`
	POSMonthlyFee       FlexInt             `json:"pos_monthly_fee"`
	TVNeeded            *bool               `json:"tv_needed"`
	TVMonthlyFee        FlexInt             `json:"tv_monthly_fee"`
	InsuranceNeeded     *bool               `json:"insurance_needed"`
	InsuranceMonthlyFee FlexInt             `json:"insurance_monthly_fee"`
	DiscountRate        decimal.NullDecimal `json:"discount_rate"`
	SpecialConditions   *string             `json:"special_conditions"`
	ManagerNotes        *string             `json:"manager_notes"`
	ManagerName         string              `json:"manager_name"`

	// Set by package and custom-item quotes only.
	QuoteType      string          `json:"quote_type,omitempty"`
	PackageName    string          `json:"package_name,omitempty"`
	DiscountAmount *int64          `json:"discount_amount,omitempty"`
	QuoteNotes     *string         `json:"quote_notes,omitempty"`
	Items          []QuoteItemNote `json:"items,omitempty"`
}

// Notes extracts the blob part of the quote.
func (q *QuoteInput) Notes(managerName string) *QuoteNotes {
	return &QuoteNotes{
		POSNeeded:           q.POSNeeded,
		POSMonthlyFee:       q.POSMonthlyFee,
		TVNeeded:            q.TVNeeded,
		TVMonthlyFee:        q.TVMonthlyFee,
		InsuranceNeeded:     q.InsuranceNeeded,
		InsuranceMonthlyFee: q.InsuranceMonthlyFee,
		DiscountRate:        q.DiscountRate,
		SpecialConditions:   q.SpecialConditions,
		ManagerNotes:        q.ManagerNotes,
		ManagerName:         managerName,
	}
}

// QuoteUpdate is the full set of columns a quote writes.
type QuoteUpdate struct {
	ContractID          uuid.UUID
	CustomerNumber      string
	InternetPlan        *string
	InternetMonthlyFee  FlexInt
	CCTVCount           FlexInt
	CCTVMonthlyFee      FlexInt
	InstallationAddress *string
	Notes               *QuoteNotes
	FreePeriod          int64
	ContractPeriod      int64
	TotalMonthlyFee     int64
	ProcessedBy         string
	ProcessedAt         time.Time
}

const (
	QuoteTypePackage = "package"
	QuoteTypeCustom  = "custom"
)

// ItemQuoteRequest quotes a contract from a catalog package or from custom
// line items. Custom items win when both are given.
type ItemQuoteRequest struct {
	ContractID     string           `json:"contract_id" validate:"required"`
	PackageID      string           `json:"package_id"`
	CustomItems    []QuoteItemInput `json:"custom_items"`
	ManagerName    *string          `json:"manager_name"`
	QuoteNotes     *string          `json:"quote_notes"`
	DiscountAmount FlexInt          `json:"discount_amount"`
}

type QuoteItemInput struct {
	ProductID string  `json:"product_id"`
	Quantity  FlexInt `json:"quantity"`
	Fee       FlexInt `json:"fee"`
}

// QuoteItemNote is the admin_notes copy of a quoted line item.
type QuoteItemNote struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int64  `json:"quantity"`
	Fee         int64  `json:"fee"`
}

// ItemQuoteUpdate replaces the line items of a contract and stamps the quote.
// PackageID is NULL for custom quotes.
type ItemQuoteUpdate struct {
	ContractID      uuid.UUID
	PackageID       uuid.NullUUID
	PackageName     sql.NullString
	Items           []*catalog.ContractItem
	Notes           *QuoteNotes
	TotalMonthlyFee int64
	ProcessedBy     string
	ProcessedAt     time.Time
}

type ItemQuoteResponse struct {
	QuoteType string  `json:"quote_type"`
	Contract  *Detail `json:"contract"`
}

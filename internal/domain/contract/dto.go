// internal/domain/contract/dto.go
package contract

import (
	"time"
)

// SubmitContractRequest is the public intake payload. The required fields
// are validated together so every missing one is reported at once.
type SubmitContractRequest struct {
	BusinessName         string  `json:"business_name" validate:"required"`
	OwnerName            string  `json:"owner_name" validate:"required"`
	Phone                string  `json:"phone" validate:"required"`
	Email                string  `json:"email"`
	Address              string  `json:"address" validate:"required"`
	BusinessRegistration string  `json:"business_registration"`
	InternetPlan         string  `json:"internet_plan"`
	CCTVCount            FlexInt `json:"cctv_count"`
	InstallationAddress  string  `json:"installation_address"`
	BankName             string  `json:"bank_name" validate:"required"`
	AccountNumber        string  `json:"account_number" validate:"required"`
	AccountHolder        string  `json:"account_holder" validate:"required"`
	AdditionalRequests   string  `json:"additional_requests"`
	TermsAgreed          bool    `json:"terms_agreed" validate:"required"`
	InfoAgreed           bool    `json:"info_agreed" validate:"required"`

	BankAccountImage          string `json:"bank_account_image"`
	IDCardImage               string `json:"id_card_image"`
	BusinessRegistrationImage string `json:"business_registration_image"`
}

type SubmitContractResponse struct {
	ID             string  `json:"id"`
	CustomerNumber *string `json:"customer_number"`
	ContractNumber *string `json:"contract_number"`
	Contract       *Detail `json:"contract"`
}

// SearchByNumberRequest needs at least one of the two numbers.
type SearchByNumberRequest struct {
	CustomerNumber string `form:"customer_number" json:"customer_number"`
	ContractNumber string `form:"contract_number" json:"contract_number"`
}

// SearchByOwnerRequest looks up by customer_number when present, otherwise
// by owner name and phone.
type SearchByOwnerRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	CustomerNumber string `json:"customer_number"`
}

type SearchResponse struct {
	Customer *Detail `json:"customer"`
}

type SubmitQuoteRequest struct {
	ContractID      string      `json:"contract_id" validate:"required"`
	CustomerNumber  string      `json:"customer_number" validate:"required"`
	Quote           *QuoteInput `json:"quote" validate:"required"`
	TotalMonthlyFee FlexInt     `json:"total_monthly_fee"`
	ManagerName     *string     `json:"manager_name"`
}

type GetQuoteRequest struct {
	ContractID     string `form:"contract_id"`
	CustomerNumber string `form:"customer_number"`
}

// SignContractRequest carries the signature only as a presence flag.
type SignContractRequest struct {
	ContractID        string     `json:"contract_id" validate:"required"`
	CustomerSignature Truthy     `json:"customer_signature"`
	SignedAt          *time.Time `json:"signed_at"`
}

type SignContractResponse struct {
	Contract *Detail `json:"contract"`
	NextStep string  `json:"next_step"`
}

// ChangeStatusRequest is an administrative status move. Override skips the
// transition table and is limited to admins.
type ChangeStatusRequest struct {
	Status   Status `json:"status" validate:"required"`
	Override bool   `json:"override"`
	Reason   string `json:"reason"`
}

// Detail is the external projection of a contract.
type Detail struct {
	ID                   string  `json:"id"`
	CustomerNumber       *string `json:"customer_number"`
	ContractNumber       *string `json:"contract_number"`
	Name                 *string `json:"name"`
	Phone                *string `json:"phone"`
	BusinessName         *string `json:"business_name"`
	Address              *string `json:"address"`
	Email                *string `json:"email"`
	BusinessRegistration *string `json:"business_registration"`
	BankName             *string `json:"bank_name"`
	AccountNumber        *string `json:"account_number"`
	AccountHolder        *string `json:"account_holder"`
	AdditionalRequests   *string `json:"additional_requests"`

	Documents Documents     `json:"documents"`
	Customer  *CustomerInfo `json:"customer"`

	Status    string  `json:"status"`
	CreatedAt *string `json:"created_at"`

	InternetPlan        *string `json:"internet_plan"`
	InternetMonthlyFee  *int64  `json:"internet_monthly_fee"`
	CCTVCount           *int64  `json:"cctv_count"`
	CCTVMonthlyFee      *int64  `json:"cctv_monthly_fee"`
	InstallationAddress *string `json:"installation_address"`
	TotalMonthlyFee     *int64  `json:"total_monthly_fee"`

	Package       *PackageInfo `json:"package"`
	ContractItems []ItemInfo   `json:"contract_items"`

	ContractPeriod *int64  `json:"contract_period"`
	FreePeriod     *int64  `json:"free_period"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`

	CustomerSignatureAgreed bool    `json:"customer_signature_agreed"`
	CustomerSignedAt        *string `json:"customer_signed_at"`
}

const (
	DocumentUploaded    = "업로드됨"
	DocumentNotUploaded = "미업로드"
)

type Documents struct {
	BankAccountImage          string `json:"bank_account_image"`
	IDCardImage               string `json:"id_card_image"`
	BusinessRegistrationImage string `json:"business_registration_image"`
}

type CustomerInfo struct {
	CustomerCode string  `json:"customer_code"`
	BusinessName *string `json:"business_name"`
	OwnerName    *string `json:"owner_name"`
	Phone        *string `json:"phone"`
	CareStatus   *string `json:"care_status"`
}

// PackageInfo carries only Name when the contract has a package name but no
// package row.
type PackageInfo struct {
	Name              string   `json:"name"`
	MonthlyFee        *int64   `json:"monthly_fee,omitempty"`
	ContractPeriod    *int64   `json:"contract_period,omitempty"`
	FreePeriod        *int64   `json:"free_period,omitempty"`
	ClosureRefundRate *int64   `json:"closure_refund_rate,omitempty"`
	IncludedServices  []string `json:"included_services,omitempty"`
}

type ItemInfo struct {
	Quantity *int64       `json:"quantity"`
	Fee      *int64       `json:"fee"`
	Product  *ProductInfo `json:"product"`
}

type ProductInfo struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Provider    *string `json:"provider"`
	Description *string `json:"description"`
}

// QuoteView is the flattened quote. The notes appear under both admin_notes
// and quote_details.
type QuoteView struct {
	ID                  string      `json:"id"`
	CustomerID          *string     `json:"customer_id"`
	CustomerNumber      *string     `json:"customer_number"`
	ContractNumber      *string     `json:"contract_number"`
	BusinessName        *string     `json:"business_name"`
	OwnerName           *string     `json:"owner_name"`
	Phone               *string     `json:"phone"`
	Email               *string     `json:"email"`
	Address             *string     `json:"address"`
	Status              string      `json:"status"`
	InternetPlan        *string     `json:"internet_plan"`
	InternetMonthlyFee  *int64      `json:"internet_monthly_fee"`
	CCTVCount           *int64      `json:"cctv_count"`
	CCTVMonthlyFee      *int64      `json:"cctv_monthly_fee"`
	InstallationAddress *string     `json:"installation_address"`
	TotalMonthlyFee     *int64      `json:"total_monthly_fee"`
	AdminNotes          *QuoteNotes `json:"admin_notes"`
	QuoteDetails        *QuoteNotes `json:"quote_details"`
	ProcessedBy         *string     `json:"processed_by"`
	ProcessedAt         *string     `json:"processed_at"`
	CreatedAt           string      `json:"created_at"`
	UpdatedAt           string      `json:"updated_at"`
}

// internal/domain/contract/entity.go
package contract

import (
	"database/sql"
	"time"

	"bizcare-service/internal/domain/catalog"
	"bizcare-service/internal/domain/customer"

	"github.com/google/uuid"
)

const (
	DefaultBillingDay    = 1
	DefaultRemittanceDay = 25
)

// Contract is one service agreement. Owner and contact columns are a snapshot
// of the submission, not a live join on the customer.
type Contract struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	CustomerID     uuid.NullUUID  `json:"customer_id" db:"customer_id"`
	CustomerNumber sql.NullString `json:"customer_number" db:"customer_number"`
	ContractNumber sql.NullString `json:"contract_number" db:"contract_number"`

	// Owner snapshot
	BusinessName         sql.NullString `json:"business_name" db:"business_name"`
	OwnerName            sql.NullString `json:"owner_name" db:"owner_name"`
	Phone                sql.NullString `json:"phone" db:"phone"`
	Email                sql.NullString `json:"email" db:"email"`
	Address              sql.NullString `json:"address" db:"address"`
	BusinessRegistration sql.NullString `json:"business_registration" db:"business_registration"`

	// Services
	InternetPlan        sql.NullString `json:"internet_plan" db:"internet_plan"`
	InternetMonthlyFee  sql.NullInt64  `json:"internet_monthly_fee" db:"internet_monthly_fee"`
	CCTVCount           sql.NullInt64  `json:"cctv_count" db:"cctv_count"`
	CCTVMonthlyFee      sql.NullInt64  `json:"cctv_monthly_fee" db:"cctv_monthly_fee"`
	InstallationAddress sql.NullString `json:"installation_address" db:"installation_address"`

	// Banking
	BankName           sql.NullString `json:"bank_name" db:"bank_name"`
	AccountNumber      sql.NullString `json:"account_number" db:"account_number"`
	AccountHolder      sql.NullString `json:"account_holder" db:"account_holder"`
	AdditionalRequests sql.NullString `json:"additional_requests" db:"additional_requests"`

	// Uploaded document references
	BankAccountImage          sql.NullString `json:"bank_account_image" db:"bank_account_image"`
	IDCardImage               sql.NullString `json:"id_card_image" db:"id_card_image"`
	BusinessRegistrationImage sql.NullString `json:"business_registration_image" db:"business_registration_image"`

	TermsAgreed bool `json:"terms_agreed" db:"terms_agreed"`
	InfoAgreed  bool `json:"info_agreed" db:"info_agreed"`

	Status          Status        `json:"status" db:"status"`
	BillingDay      sql.NullInt64 `json:"billing_day" db:"billing_day"`
	RemittanceDay   sql.NullInt64 `json:"remittance_day" db:"remittance_day"`
	AdminNotes      *QuoteNotes   `json:"admin_notes" db:"admin_notes"`
	ContractPeriod  sql.NullInt64 `json:"contract_period" db:"contract_period"`
	FreePeriod      sql.NullInt64 `json:"free_period" db:"free_period"`
	TotalMonthlyFee sql.NullInt64 `json:"total_monthly_fee" db:"total_monthly_fee"`

	PackageID   uuid.NullUUID  `json:"package_id" db:"package_id"`
	PackageName sql.NullString `json:"package" db:"package"`

	CustomerSignatureAgreed sql.NullBool `json:"customer_signature_agreed" db:"customer_signature_agreed"`
	CustomerSignedAt        sql.NullTime `json:"customer_signed_at" db:"customer_signed_at"`

	StartDate sql.NullTime `json:"start_date" db:"start_date"`
	EndDate   sql.NullTime `json:"end_date" db:"end_date"`

	ProcessedBy sql.NullString `json:"processed_by" db:"processed_by"`
	ProcessedAt sql.NullTime   `json:"processed_at" db:"processed_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Record is a contract with the rows the detail view joins in.
type Record struct {
	Contract *Contract
	Customer *customer.Customer
	Package  *catalog.Package
	Items    []*catalog.ContractItem
}

// Lookup selects one contract. Set fields are ANDed together and the newest
// matching row wins.
type Lookup struct {
	ID             uuid.NullUUID
	CustomerNumber string
	ContractNumber string
	OwnerName      string
	Phone          string
}

// SignResult is what the signature update hands back for the audit entry.
type SignResult struct {
	ContractID     uuid.UUID
	CustomerID     uuid.NullUUID
	ContractNumber sql.NullString
	Status         Status
}

// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Package is a bundled offering a contract may reference.
type Package struct {
	ID                uuid.UUID      `json:"package_id" db:"package_id"`
	Name              string         `json:"name" db:"name"`
	MonthlyFee        sql.NullInt64  `json:"monthly_fee" db:"monthly_fee"`
	ContractPeriod    sql.NullInt64  `json:"contract_period" db:"contract_period"`
	FreePeriod        sql.NullInt64  `json:"free_period" db:"free_period"`
	ClosureRefundRate sql.NullInt64  `json:"closure_refund_rate" db:"closure_refund_rate"`
	IncludedServices  pq.StringArray `json:"included_services" db:"included_services"`
	Description       sql.NullString `json:"description" db:"description"`
}

type Product struct {
	ID          uuid.UUID      `json:"product_id" db:"product_id"`
	Name        string         `json:"name" db:"name"`
	Category    string         `json:"category" db:"category"`
	Provider    sql.NullString `json:"provider" db:"provider"`
	MonthlyFee  sql.NullInt64  `json:"monthly_fee" db:"monthly_fee"`
	Description sql.NullString `json:"description" db:"description"`
}

// ContractItem is a line item of a package-less contract. Product is nil when
// the item references no product.
type ContractItem struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	ContractID uuid.UUID     `json:"contract_id" db:"contract_id"`
	ProductID  uuid.NullUUID `json:"product_id" db:"product_id"`
	Quantity   sql.NullInt64 `json:"quantity" db:"quantity"`
	Fee        sql.NullInt64 `json:"fee" db:"fee"`
	Product    *Product      `json:"product,omitempty"`
}

// PackageItem is one product bundled into a package.
type PackageItem struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	PackageID uuid.UUID     `json:"package_id" db:"package_id"`
	ProductID uuid.UUID     `json:"product_id" db:"product_id"`
	Quantity  int64         `json:"quantity" db:"quantity"`
	ItemFee   sql.NullInt64 `json:"item_fee" db:"item_fee"`
	Product   *Product      `json:"product,omitempty"`
}

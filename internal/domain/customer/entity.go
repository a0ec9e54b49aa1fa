// internal/domain/customer/entity.go
package customer

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Customer is a business identified by (phone, business name).
type Customer struct {
	ID           uuid.UUID `json:"customer_id" db:"customer_id"`
	CustomerCode string    `json:"customer_code" db:"customer_code"`

	BusinessName         sql.NullString `json:"business_name,omitempty" db:"business_name"`
	OwnerName            sql.NullString `json:"owner_name,omitempty" db:"owner_name"`
	BusinessRegistration sql.NullString `json:"business_registration,omitempty" db:"business_registration"`
	Phone                sql.NullString `json:"phone,omitempty" db:"phone"`
	Email                sql.NullString `json:"email,omitempty" db:"email"`
	Address              sql.NullString `json:"address,omitempty" db:"address"`

	Status     string         `json:"status" db:"status"`
	CareStatus sql.NullString `json:"care_status,omitempty" db:"care_status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

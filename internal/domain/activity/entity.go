// internal/domain/activity/entity.go
package activity

import (
	"database/sql"
	"time"

	"bizcare-service/internal/pkg/isotime"

	"github.com/google/uuid"
)

const (
	TypeContractSigned = "contract_signed"
	TypeStatusChanged  = "status_changed"
)

// Activity is an append-only audit entry tied to a customer.
type Activity struct {
	ID           uuid.UUID              `json:"id" db:"id"`
	CustomerID   uuid.UUID              `json:"customer_id" db:"customer_id"`
	ActivityType string                 `json:"activity_type" db:"activity_type"`
	Title        sql.NullString         `json:"title,omitempty" db:"title"`
	Description  sql.NullString         `json:"description,omitempty" db:"description"`
	Data         map[string]interface{} `json:"activity_data,omitempty" db:"activity_data"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
}

type ActivityResponse struct {
	ID           string                 `json:"id"`
	CustomerID   string                 `json:"customer_id"`
	ActivityType string                 `json:"activity_type"`
	Title        *string                `json:"title"`
	Description  *string                `json:"description"`
	Data         map[string]interface{} `json:"activity_data"`
	CreatedAt    string                 `json:"created_at"`
}

func (a *Activity) ToResponse() *ActivityResponse {
	resp := &ActivityResponse{
		ID:           a.ID.String(),
		CustomerID:   a.CustomerID.String(),
		ActivityType: a.ActivityType,
		Data:         a.Data,
		CreatedAt:    isotime.Format(a.CreatedAt),
	}
	if a.Title.Valid {
		resp.Title = &a.Title.String
	}
	if a.Description.Valid {
		resp.Description = &a.Description.String
	}
	return resp
}

// internal/repository/postgres/activity_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"bizcare-service/internal/domain/activity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepository struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// CreateWithTx appends an activity entry. Entries are never updated.
func (r *ActivityRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, a *activity.Activity) error {
	query := `
		INSERT INTO customer_activities (
			customer_id, activity_type, title, description, activity_data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var dataJSON []byte
	var err error

	if a.Data != nil {
		dataJSON, err = json.Marshal(a.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal activity data: %w", err)
		}
	}

	err = tx.QueryRow(ctx, query,
		a.CustomerID, a.ActivityType, a.Title, a.Description, dataJSON, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// ListByCustomer returns the newest entries first.
func (r *ActivityRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*activity.Activity, error) {
	query := `
		SELECT id, customer_id, activity_type, title, description, activity_data, created_at
		FROM customer_activities
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*activity.Activity
	for rows.Next() {
		var a activity.Activity
		var activityType *string
		var dataJSON []byte

		if err := rows.Scan(&a.ID, &a.CustomerID, &activityType, &a.Title, &a.Description, &dataJSON, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if activityType != nil {
			a.ActivityType = *activityType
		}
		if len(dataJSON) > 0 {
			if err := json.Unmarshal(dataJSON, &a.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal activity data: %w", err)
			}
		}
		activities = append(activities, &a)
	}

	return activities, rows.Err()
}

// CountByType is used to audit how many times an event was recorded for a
// customer.
func (r *ActivityRepository) CountByType(ctx context.Context, customerID uuid.UUID, activityType string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM customer_activities WHERE customer_id = $1 AND activity_type = $2`,
		customerID, activityType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return n, nil
}

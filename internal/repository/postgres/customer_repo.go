// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"bizcare-service/internal/domain/customer"
	xerrors "bizcare-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `
	customer_id, customer_code, business_name, owner_name, business_registration,
	phone, email, address, status, care_status, created_at, updated_at`

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.CustomerCode, &c.BusinessName, &c.OwnerName, &c.BusinessRegistration,
		&c.Phone, &c.Email, &c.Address, &c.Status, &c.CareStatus, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByPhoneAndBusinessWithTx matches both columns exactly.
func (r *CustomerRepository) FindByPhoneAndBusinessWithTx(ctx context.Context, tx pgx.Tx, phone, businessName string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE phone = $1 AND business_name = $2
		ORDER BY created_at ASC
		LIMIT 1
	`

	c, err := scanCustomer(tx.QueryRow(ctx, query, phone, businessName))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return c, err
}

// CreateWithTx inserts c and fills in its generated id and timestamps.
func (r *CustomerRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			customer_code, business_name, owner_name, business_registration,
			phone, email, address, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING customer_id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		c.CustomerCode, c.BusinessName, c.OwnerName, c.BusinessRegistration,
		c.Phone, c.Email, c.Address, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`

	c, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return c, err
}

// Update applies an administrative edit. Nil arguments keep the stored value.
func (r *CustomerRepository) Update(ctx context.Context, id uuid.UUID, status, careStatus *string) (*customer.Customer, error) {
	query := `
		UPDATE customers
		SET status = COALESCE($2, status),
		    care_status = COALESCE($3, care_status),
		    updated_at = now()
		WHERE customer_id = $1
		RETURNING ` + customerColumns

	c, err := scanCustomer(r.db.QueryRow(ctx, query, id, status, careStatus))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return c, err
}

// List returns one page of customers, newest first, and the number of rows
// matching f.
func (r *CustomerRepository) List(ctx context.Context, f customer.ListFilter) ([]*customer.Customer, int, error) {
	var w whereBuilder
	if f.Search != "" {
		w.anyILike(f.Search, "business_name", "owner_name", "phone")
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		customerColumns, w.clause(), w.next(), w.next()+1)

	rows, err := r.db.Query(ctx, query, append(w.args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0, f.Limit)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}

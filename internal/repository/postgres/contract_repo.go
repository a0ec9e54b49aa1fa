// internal/repository/postgres/contract_repo.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bizcare-service/internal/domain/catalog"
	"bizcare-service/internal/domain/contract"
	xerrors "bizcare-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contractColumns = `
	id, customer_id, customer_number, contract_number,
	business_name, owner_name, phone, email, address, business_registration,
	internet_plan, internet_monthly_fee, cctv_count, cctv_monthly_fee, installation_address,
	bank_name, account_number, account_holder, additional_requests,
	bank_account_image, id_card_image, business_registration_image,
	terms_agreed, info_agreed, status, billing_day, remittance_day, admin_notes,
	contract_period, free_period, total_monthly_fee, package_id, package,
	customer_signature_agreed, customer_signed_at, start_date, end_date,
	processed_by, processed_at, created_at, updated_at`

type ContractRepository struct {
	db *pgxpool.Pool
}

func NewContractRepository(db *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{db: db}
}

func scanContract(row pgx.Row) (*contract.Contract, error) {
	var c contract.Contract
	var notesJSON []byte

	err := row.Scan(
		&c.ID, &c.CustomerID, &c.CustomerNumber, &c.ContractNumber,
		&c.BusinessName, &c.OwnerName, &c.Phone, &c.Email, &c.Address, &c.BusinessRegistration,
		&c.InternetPlan, &c.InternetMonthlyFee, &c.CCTVCount, &c.CCTVMonthlyFee, &c.InstallationAddress,
		&c.BankName, &c.AccountNumber, &c.AccountHolder, &c.AdditionalRequests,
		&c.BankAccountImage, &c.IDCardImage, &c.BusinessRegistrationImage,
		&c.TermsAgreed, &c.InfoAgreed, &c.Status, &c.BillingDay, &c.RemittanceDay, &notesJSON,
		&c.ContractPeriod, &c.FreePeriod, &c.TotalMonthlyFee, &c.PackageID, &c.PackageName,
		&c.CustomerSignatureAgreed, &c.CustomerSignedAt, &c.StartDate, &c.EndDate,
		&c.ProcessedBy, &c.ProcessedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(notesJSON) > 0 && string(notesJSON) != "null" {
		var notes contract.QuoteNotes
		if err := json.Unmarshal(notesJSON, &notes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal admin notes: %w", err)
		}
		c.AdminNotes = &notes
	}

	return &c, nil
}

// CreateWithTx inserts a submitted contract and fills in id and timestamps.
func (r *ContractRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, c *contract.Contract) error {
	query := `
		INSERT INTO contracts (
			customer_id, customer_number, contract_number,
			business_name, owner_name, phone, email, address, business_registration,
			internet_plan, cctv_count, installation_address,
			bank_name, account_number, account_holder, additional_requests,
			bank_account_image, id_card_image, business_registration_image,
			terms_agreed, info_agreed, status, billing_day, remittance_day
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		c.CustomerID, c.CustomerNumber, c.ContractNumber,
		c.BusinessName, c.OwnerName, c.Phone, c.Email, c.Address, c.BusinessRegistration,
		c.InternetPlan, c.CCTVCount, c.InstallationAddress,
		c.BankName, c.AccountNumber, c.AccountHolder, c.AdditionalRequests,
		c.BankAccountImage, c.IDCardImage, c.BusinessRegistrationImage,
		c.TermsAgreed, c.InfoAgreed, c.Status, c.BillingDay, c.RemittanceDay,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// FindOne returns the newest contract matching every set field of l.
func (r *ContractRepository) FindOne(ctx context.Context, l contract.Lookup) (*contract.Contract, error) {
	return r.findOne(ctx, r.db, l)
}

func (r *ContractRepository) findOne(ctx context.Context, q querier, l contract.Lookup) (*contract.Contract, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if l.ID.Valid {
		conditions = append(conditions, fmt.Sprintf("id = $%d", argPos))
		args = append(args, l.ID.UUID)
		argPos++
	}
	if l.CustomerNumber != "" {
		conditions = append(conditions, fmt.Sprintf("customer_number = $%d", argPos))
		args = append(args, l.CustomerNumber)
		argPos++
	}
	if l.ContractNumber != "" {
		conditions = append(conditions, fmt.Sprintf("contract_number = $%d", argPos))
		args = append(args, l.ContractNumber)
		argPos++
	}
	if l.OwnerName != "" {
		conditions = append(conditions, fmt.Sprintf("owner_name = $%d", argPos))
		args = append(args, l.OwnerName)
		argPos++
	}
	if l.Phone != "" {
		conditions = append(conditions, fmt.Sprintf("phone = $%d", argPos))
		args = append(args, l.Phone)
		argPos++
	}

	if len(conditions) == 0 {
		return nil, fmt.Errorf("contract lookup needs at least one condition: %w", xerrors.ErrInvalidInput)
	}

	query := fmt.Sprintf(`SELECT %s FROM contracts WHERE %s ORDER BY created_at DESC LIMIT 1`,
		contractColumns, strings.Join(conditions, " AND "))

	c, err := scanContract(q.QueryRow(ctx, query, args...))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return c, err
}

// FindRecord loads a contract together with its customer, package and items.
func (r *ContractRepository) FindRecord(ctx context.Context, l contract.Lookup) (*contract.Record, error) {
	c, err := r.FindOne(ctx, l)
	if err != nil {
		return nil, err
	}
	return r.loadRecord(ctx, c)
}

// ListRecordsByCustomer returns every contract of a customer, newest first.
func (r *ContractRepository) ListRecordsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*contract.Record, error) {
	query := `SELECT ` + contractColumns + `
		FROM contracts
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	var contracts []*contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	records := make([]*contract.Record, 0, len(contracts))
	for _, c := range contracts {
		rec, err := r.loadRecord(ctx, c)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *ContractRepository) loadRecord(ctx context.Context, c *contract.Contract) (*contract.Record, error) {
	rec := &contract.Record{Contract: c}

	if c.CustomerID.Valid {
		query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`
		cu, err := scanCustomer(r.db.QueryRow(ctx, query, c.CustomerID.UUID))
		if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load contract customer: %w", err)
		}
		rec.Customer = cu
	}

	if c.PackageID.Valid {
		pkg, err := r.findPackage(ctx, r.db, c.PackageID.UUID)
		if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		rec.Package = pkg
	}

	items, err := r.findItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	rec.Items = items

	return rec, nil
}

// FindPackageWithTx loads a catalog package inside tx.
func (r *ContractRepository) FindPackageWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*catalog.Package, error) {
	return r.findPackage(ctx, tx, id)
}

func (r *ContractRepository) findPackage(ctx context.Context, q querier, id uuid.UUID) (*catalog.Package, error) {
	query := `
		SELECT package_id, name, monthly_fee, contract_period, free_period,
		       closure_refund_rate, included_services, description
		FROM packages
		WHERE package_id = $1
	`

	var p catalog.Package
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.MonthlyFee, &p.ContractPeriod, &p.FreePeriod,
		&p.ClosureRefundRate, &p.IncludedServices, &p.Description,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	return &p, nil
}

func (r *ContractRepository) findItems(ctx context.Context, contractID uuid.UUID) ([]*catalog.ContractItem, error) {
	query := `
		SELECT ci.id, ci.contract_id, ci.product_id, ci.quantity, ci.fee,
		       p.product_id, p.name, p.category, p.provider, p.monthly_fee, p.description
		FROM contract_items ci
		LEFT JOIN products p ON p.product_id = ci.product_id
		WHERE ci.contract_id = $1
		ORDER BY ci.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract items: %w", err)
	}
	defer rows.Close()

	var items []*catalog.ContractItem
	for rows.Next() {
		var item catalog.ContractItem
		var (
			productID         uuid.NullUUID
			name, category    sql.NullString
			provider, desc    sql.NullString
			productMonthlyFee sql.NullInt64
		)
		if err := rows.Scan(
			&item.ID, &item.ContractID, &item.ProductID, &item.Quantity, &item.Fee,
			&productID, &name, &category, &provider, &productMonthlyFee, &desc,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contract item: %w", err)
		}
		if productID.Valid {
			item.Product = &catalog.Product{
				ID:          productID.UUID,
				Name:        name.String,
				Category:    category.String,
				Provider:    provider,
				MonthlyFee:  productMonthlyFee,
				Description: desc,
			}
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// UpdateQuote writes a manager quote. The row must match both the id and the
// customer number, otherwise nothing changes and ErrNotFound is returned.
func (r *ContractRepository) UpdateQuote(ctx context.Context, u contract.QuoteUpdate) error {
	notesJSON, err := json.Marshal(u.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal admin notes: %w", err)
	}

	query := `
		UPDATE contracts
		SET internet_plan = $3,
		    internet_monthly_fee = $4,
		    cctv_count = $5,
		    cctv_monthly_fee = $6,
		    installation_address = $7,
		    admin_notes = $8,
		    free_period = $9,
		    contract_period = $10,
		    total_monthly_fee = $11,
		    status = $12,
		    processed_by = $13,
		    processed_at = $14,
		    updated_at = $14
		WHERE id = $1 AND customer_number = $2
	`

	tag, err := r.db.Exec(ctx, query,
		u.ContractID, u.CustomerNumber,
		u.InternetPlan, u.InternetMonthlyFee.NullInt64(), u.CCTVCount.NullInt64(),
		u.CCTVMonthlyFee.NullInt64(), u.InstallationAddress, notesJSON,
		u.FreePeriod, u.ContractPeriod, u.TotalMonthlyFee,
		contract.StatusQuoted, u.ProcessedBy, u.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// SignWithTx records the customer signature and sets status.
func (r *ContractRepository) SignWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status contract.Status, signedAt, now time.Time) (*contract.SignResult, error) {
	query := `
		UPDATE contracts
		SET status = $2,
		    customer_signature_agreed = TRUE,
		    customer_signed_at = $3,
		    updated_at = $4
		WHERE id = $1
		RETURNING id, customer_id, contract_number, status
	`

	var res contract.SignResult
	err := tx.QueryRow(ctx, query, id, status, signedAt, now).Scan(
		&res.ContractID, &res.CustomerID, &res.ContractNumber, &res.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sign contract: %w", err)
	}
	return &res, nil
}

// FindForUpdateWithTx locks the contract row for the rest of tx.
func (r *ContractRepository) FindForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*contract.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1 FOR UPDATE`

	c, err := scanContract(tx.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to lock contract: %w", err)
	}
	return c, err
}

// UpdateStatusWithTx sets the status and, when given, the service period.
func (r *ContractRepository) UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status contract.Status, startDate, endDate sql.NullTime, now time.Time) error {
	query := `
		UPDATE contracts
		SET status = $2,
		    start_date = COALESCE($3, start_date),
		    end_date = COALESCE($4, end_date),
		    updated_at = $5
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, status, startDate, endDate, now)
	if err != nil {
		return fmt.Errorf("failed to update contract status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ListPackageItemsWithTx returns the products bundled into a package.
func (r *ContractRepository) ListPackageItemsWithTx(ctx context.Context, tx pgx.Tx, packageID uuid.UUID) ([]*catalog.PackageItem, error) {
	query := `
		SELECT pi.id, pi.package_id, pi.product_id, pi.quantity, pi.item_fee,
		       p.name, p.category, p.provider, p.monthly_fee, p.description
		FROM package_items pi
		JOIN products p ON p.product_id = pi.product_id
		WHERE pi.package_id = $1
		ORDER BY pi.created_at ASC, p.name ASC
	`

	rows, err := tx.Query(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load package items: %w", err)
	}
	defer rows.Close()

	var items []*catalog.PackageItem
	for rows.Next() {
		var item catalog.PackageItem
		var p catalog.Product
		if err := rows.Scan(
			&item.ID, &item.PackageID, &item.ProductID, &item.Quantity, &item.ItemFee,
			&p.Name, &p.Category, &p.Provider, &p.MonthlyFee, &p.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan package item: %w", err)
		}
		p.ID = item.ProductID
		item.Product = &p
		items = append(items, &item)
	}
	return items, rows.Err()
}

// ReplaceItemsWithTx drops the contract's line items and inserts items in
// order. An item naming an unknown product fails with ErrInvalidInput.
func (r *ContractRepository) ReplaceItemsWithTx(ctx context.Context, tx pgx.Tx, contractID uuid.UUID, items []*catalog.ContractItem) error {
	if _, err := tx.Exec(ctx, `DELETE FROM contract_items WHERE contract_id = $1`, contractID); err != nil {
		return fmt.Errorf("failed to clear contract items: %w", err)
	}

	// clock_timestamp keeps the insert order readable through created_at.
	query := `
		INSERT INTO contract_items (contract_id, product_id, quantity, fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, clock_timestamp(), clock_timestamp())
		RETURNING id
	`
	for _, item := range items {
		item.ContractID = contractID
		err := tx.QueryRow(ctx, query, contractID, item.ProductID, item.Quantity, item.Fee).Scan(&item.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign key
				return fmt.Errorf("unknown product %s: %w", item.ProductID.UUID, xerrors.ErrInvalidInput)
			}
			return fmt.Errorf("failed to insert contract item: %w", err)
		}
	}
	return nil
}

// UpdateItemQuoteWithTx stamps a package or custom-item quote and moves the
// contract to quoted.
func (r *ContractRepository) UpdateItemQuoteWithTx(ctx context.Context, tx pgx.Tx, u contract.ItemQuoteUpdate) error {
	notesJSON, err := json.Marshal(u.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal admin notes: %w", err)
	}

	query := `
		UPDATE contracts
		SET package_id = $2,
		    package = $3,
		    total_monthly_fee = $4,
		    admin_notes = $5,
		    status = $6,
		    processed_by = $7,
		    processed_at = $8,
		    updated_at = $8
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		u.ContractID, u.PackageID, u.PackageName, u.TotalMonthlyFee, notesJSON,
		contract.StatusQuoted, u.ProcessedBy, u.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List returns one page of contracts, newest first, and the number of rows
// matching f.
func (r *ContractRepository) List(ctx context.Context, f contract.ListFilter) ([]*contract.Contract, int, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.Search != "" {
		w.anyILike(f.Search, "business_name", "owner_name", "phone", "customer_number")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contracts`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contracts: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM contracts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		contractColumns, w.clause(), w.next(), w.next()+1)
	args := append(w.args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	contracts := make([]*contract.Contract, 0, f.Limit)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, total, nil
}

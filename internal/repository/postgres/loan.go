package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, item_id, tenant_id, status, from_date, to_date, days, price_per_day_cents, expected_price_cents, refundable_deposit_cents, COALESCE(tenant_note, ''), created_on, updated_on`

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	now := time.Now()
	query := `INSERT INTO loans (item_id, tenant_id, status, from_date, to_date, days, price_per_day_cents, expected_price_cents, refundable_deposit_cents, tenant_note, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, l.ItemID, l.TenantID, l.Status, l.From, l.To, l.Days, l.PricePerDayCents, l.ExpectedPriceCents, l.RefundableDepositCents, l.TenantNote, now, now).Scan(&l.ID)
	if err != nil {
		return err
	}
	l.CreatedOn = now
	l.UpdatedOn = now
	return nil
}

// GetByID loads the loan together with the navigation references the
// lifecycle engine and the authorizer consult: the item (with its owner id),
// the tenant and both protocols when present.
func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	l := &domain.Loan{}
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.ItemID, &l.TenantID, &l.Status, &l.From, &l.To, &l.Days, &l.PricePerDayCents, &l.ExpectedPriceCents, &l.RefundableDepositCents, &l.TenantNote, &l.CreatedOn, &l.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	item, err := NewItemRepository(r.db).GetByID(ctx, l.ItemID)
	if err != nil {
		return nil, fmt.Errorf("loading item for loan %d: %w", l.ID, err)
	}
	l.Item = item

	tenant, err := NewUserRepository(r.db).GetByID(ctx, l.TenantID)
	if err != nil {
		return nil, fmt.Errorf("loading tenant for loan %d: %w", l.ID, err)
	}
	l.Tenant = tenant

	pickup, err := NewPickupProtocolRepository(r.db).GetByLoanID(ctx, l.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if pickup != nil {
		pickup.Loan = l
		l.PickupProtocol = pickup
	}

	ret, err := NewReturnProtocolRepository(r.db).GetByLoanID(ctx, l.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if ret != nil {
		ret.Loan = l
		l.ReturnProtocol = ret
	}

	return l, nil
}

// Update persists the mutable loan fields. The previous updated_on value acts
// as the concurrency token; a stale token means another request changed the
// loan first and the caller gets domain.ErrConflict.
func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	now := time.Now()
	query := `UPDATE loans SET status=$1, tenant_note=$2, updated_on=$3 WHERE id=$4 AND updated_on=$5`
	res, err := r.db.ExecContext(ctx, query, l.Status, l.TenantNote, now, l.ID, l.UpdatedOn)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrConflict
	}
	l.UpdatedOn = now
	return nil
}

func (r *loanRepository) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	return r.list(ctx, query, args, status, page, pageSize)
}

func (r *loanRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	query := `SELECT l.id, l.item_id, l.tenant_id, l.status, l.from_date, l.to_date, l.days, l.price_per_day_cents, l.expected_price_cents, l.refundable_deposit_cents, COALESCE(l.tenant_note, ''), l.created_on, l.updated_on
	          FROM loans l JOIN items i ON i.id = l.item_id WHERE i.owner_id = $1`
	args := []interface{}{ownerID}
	return r.list(ctx, query, args, status, page, pageSize)
}

func (r *loanRepository) list(ctx context.Context, query string, args []interface{}, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	offset := (page - 1) * pageSize
	argIdx := len(args) + 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.ItemID, &l.TenantID, &l.Status, &l.From, &l.To, &l.Days, &l.PricePerDayCents, &l.ExpectedPriceCents, &l.RefundableDepositCents, &l.TenantNote, &l.CreatedOn, &l.UpdatedOn); err != nil {
			return nil, 0, err
		}
		loans = append(loans, l)
	}
	return loans, count, rows.Err()
}

func (r *loanRepository) ListActiveEndedBefore(ctx context.Context, deadline time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 AND to_date < $2`
	rows, err := r.db.QueryContext(ctx, query, domain.LoanStatusActive, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.ItemID, &l.TenantID, &l.Status, &l.From, &l.To, &l.Days, &l.PricePerDayCents, &l.ExpectedPriceCents, &l.RefundableDepositCents, &l.TenantNote, &l.CreatedOn, &l.UpdatedOn); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

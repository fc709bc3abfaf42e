package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"
)

type pickupProtocolRepository struct {
	db *sql.DB
}

func NewPickupProtocolRepository(db *sql.DB) repository.PickupProtocolRepository {
	return &pickupProtocolRepository{db: db}
}

func (r *pickupProtocolRepository) Create(ctx context.Context, p *domain.PickupProtocol) error {
	now := time.Now()
	query := `INSERT INTO pickup_protocols (loan_id, description, accepted_refundable_deposit_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.LoanID, p.Description, p.AcceptedRefundableDepositCents, now, now).Scan(&p.ID)
	if err != nil {
		return err
	}
	p.CreatedOn = now
	p.UpdatedOn = now
	return nil
}

func (r *pickupProtocolRepository) GetByLoanID(ctx context.Context, loanID int32) (*domain.PickupProtocol, error) {
	p := &domain.PickupProtocol{}
	query := `SELECT id, loan_id, COALESCE(description, ''), accepted_refundable_deposit_cents, confirmed_at, created_on, updated_on FROM pickup_protocols WHERE loan_id = $1`
	err := r.db.QueryRowContext(ctx, query, loanID).Scan(&p.ID, &p.LoanID, &p.Description, &p.AcceptedRefundableDepositCents, &p.ConfirmedAt, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pickupProtocolRepository) Update(ctx context.Context, p *domain.PickupProtocol) error {
	query := `UPDATE pickup_protocols SET description=$1, accepted_refundable_deposit_cents=$2, confirmed_at=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, p.Description, p.AcceptedRefundableDepositCents, p.ConfirmedAt, time.Now(), p.ID)
	return err
}

type returnProtocolRepository struct {
	db *sql.DB
}

func NewReturnProtocolRepository(db *sql.DB) repository.ReturnProtocolRepository {
	return &returnProtocolRepository{db: db}
}

func (r *returnProtocolRepository) Create(ctx context.Context, p *domain.ReturnProtocol) error {
	now := time.Now()
	query := `INSERT INTO return_protocols (loan_id, description, returned_refundable_deposit_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.LoanID, p.Description, p.ReturnedRefundableDepositCents, now, now).Scan(&p.ID)
	if err != nil {
		return err
	}
	p.CreatedOn = now
	p.UpdatedOn = now
	return nil
}

func (r *returnProtocolRepository) GetByLoanID(ctx context.Context, loanID int32) (*domain.ReturnProtocol, error) {
	p := &domain.ReturnProtocol{}
	query := `SELECT id, loan_id, COALESCE(description, ''), returned_refundable_deposit_cents, confirmed_at, created_on, updated_on FROM return_protocols WHERE loan_id = $1`
	err := r.db.QueryRowContext(ctx, query, loanID).Scan(&p.ID, &p.LoanID, &p.Description, &p.ReturnedRefundableDepositCents, &p.ConfirmedAt, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *returnProtocolRepository) Update(ctx context.Context, p *domain.ReturnProtocol) error {
	query := `UPDATE return_protocols SET description=$1, returned_refundable_deposit_cents=$2, confirmed_at=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, p.Description, p.ReturnedRefundableDepositCents, p.ConfirmedAt, time.Now(), p.ID)
	return err
}

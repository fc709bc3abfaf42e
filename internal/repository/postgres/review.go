package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (loan_id, author_id, comment, rating, created_on) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rv.LoanID, rv.AuthorID, rv.Comment, rv.Rating, time.Now()).Scan(&rv.ID)
}

func (r *reviewRepository) GetByLoanAndAuthor(ctx context.Context, loanID, authorID int32) (*domain.Review, error) {
	rv := &domain.Review{}
	query := `SELECT id, loan_id, author_id, COALESCE(comment, ''), rating, created_on FROM reviews WHERE loan_id = $1 AND author_id = $2`
	err := r.db.QueryRowContext(ctx, query, loanID, authorID).Scan(&rv.ID, &rv.LoanID, &rv.AuthorID, &rv.Comment, &rv.Rating, &rv.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) ListByLoan(ctx context.Context, loanID int32) ([]domain.Review, error) {
	query := `SELECT id, loan_id, author_id, COALESCE(comment, ''), rating, created_on FROM reviews WHERE loan_id = $1 ORDER BY created_on`
	return r.queryReviews(ctx, query, loanID)
}

func (r *reviewRepository) ListByItem(ctx context.Context, itemID int32) ([]domain.Review, error) {
	query := `SELECT r.id, r.loan_id, r.author_id, COALESCE(r.comment, ''), r.rating, r.created_on
	          FROM reviews r JOIN loans l ON l.id = r.loan_id WHERE l.item_id = $1 ORDER BY r.created_on DESC`
	return r.queryReviews(ctx, query, itemID)
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, arg interface{}) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.LoanID, &rv.AuthorID, &rv.Comment, &rv.Rating, &rv.CreatedOn); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

package service

import (
	"context"
	"errors"
	"fmt"

	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"
)

type reviewService struct {
	reviewRepo repository.ReviewRepository
	loanRepo   repository.LoanRepository
	authorizer *authz.Authorizer
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	loanRepo repository.LoanRepository,
	authorizer *authz.Authorizer,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		loanRepo:   loanRepo,
		authorizer: authorizer,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, principal authz.Principal, loanID int32, comment string, rating float32) (*domain.Review, error) {
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrInvalidInput)
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(principal, loan, authz.OperationRead) {
		return nil, domain.ErrForbidden
	}
	// Only the parties of the loan author reviews; the admin bypass grants
	// read but not authorship.
	if principal.UserID != loan.TenantID && principal.UserID != loan.OwnerID() {
		return nil, domain.ErrForbidden
	}
	if !domain.GetState(loan.Status).CanCreateReview(loan) {
		return nil, fmt.Errorf("%w: loan %d in status %s cannot be reviewed yet", domain.ErrActionNotAllowed, loan.ID, loan.Status)
	}

	// One review per loan per author.
	existing, err := s.reviewRepo.GetByLoanAndAuthor(ctx, loanID, principal.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: loan %d already reviewed by user %d", domain.ErrAlreadyExists, loanID, principal.UserID)
	}

	review := &domain.Review{
		LoanID:   loanID,
		AuthorID: principal.UserID,
		Comment:  comment,
		Rating:   rating,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListLoanReviews(ctx context.Context, principal authz.Principal, loanID int32) ([]domain.Review, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(principal, loan, authz.OperationRead) {
		return nil, domain.ErrForbidden
	}
	return s.reviewRepo.ListByLoan(ctx, loanID)
}

func (s *reviewService) ListItemReviews(ctx context.Context, itemID int32) ([]domain.Review, error) {
	return s.reviewRepo.ListByItem(ctx, itemID)
}

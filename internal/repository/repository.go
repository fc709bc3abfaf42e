package repository

import (
	"context"
	"time"

	"lendshare-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	// Delete marks the item deleted; rows are never removed.
	Delete(ctx context.Context, id int32) error
	ListPublic(ctx context.Context, category string, maxPriceCents int32, page, pageSize int32) ([]domain.Item, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Item, int32, error)
}

type ItemCategoryRepository interface {
	Create(ctx context.Context, category *domain.ItemCategory) error
	GetByID(ctx context.Context, id int32) (*domain.ItemCategory, error)
	List(ctx context.Context) ([]domain.ItemCategory, error)
	Update(ctx context.Context, category *domain.ItemCategory) error
	Delete(ctx context.Context, id int32) error
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	// GetByID loads the loan with its item (incl. owner), tenant and any
	// protocols populated.
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	// Update persists the loan guarded by its updated_on concurrency token
	// and returns domain.ErrConflict when the token no longer matches.
	Update(ctx context.Context, loan *domain.Loan) error
	ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Loan, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Loan, int32, error)
	ListActiveEndedBefore(ctx context.Context, deadline time.Time) ([]domain.Loan, error)
}

type PickupProtocolRepository interface {
	Create(ctx context.Context, protocol *domain.PickupProtocol) error
	GetByLoanID(ctx context.Context, loanID int32) (*domain.PickupProtocol, error)
	Update(ctx context.Context, protocol *domain.PickupProtocol) error
}

type ReturnProtocolRepository interface {
	Create(ctx context.Context, protocol *domain.ReturnProtocol) error
	GetByLoanID(ctx context.Context, loanID int32) (*domain.ReturnProtocol, error)
	Update(ctx context.Context, protocol *domain.ReturnProtocol) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByLoanAndAuthor(ctx context.Context, loanID, authorID int32) (*domain.Review, error)
	ListByLoan(ctx context.Context, loanID int32) ([]domain.Review, error)
	ListByItem(ctx context.Context, itemID int32) ([]domain.Review, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type RefreshTokenRepository interface {
	Store(ctx context.Context, userID int32, tokenID string, expiresAt time.Time) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

package service

import (
	"context"
	"time"

	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                             // access, refresh
	AdminLogin(ctx context.Context, email, password string) (string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	Logout(ctx context.Context, refresh string) error
}

type ItemService interface {
	AddItem(ctx context.Context, principal authz.Principal, item *domain.Item) error
	GetItem(ctx context.Context, principal authz.Principal, id int32) (*domain.Item, error)
	UpdateItem(ctx context.Context, principal authz.Principal, item *domain.Item) error
	DeleteItem(ctx context.Context, principal authz.Principal, id int32) error
	ListPublicItems(ctx context.Context, category string, maxPriceCents, page, pageSize int32) ([]domain.Item, int32, error)
	ListMyItems(ctx context.Context, principal authz.Principal, page, pageSize int32) ([]domain.Item, int32, error)
}

type ItemCategoryService interface {
	ListCategories(ctx context.Context) ([]domain.ItemCategory, error)
	GetCategory(ctx context.Context, id int32) (*domain.ItemCategory, error)
	CreateCategory(ctx context.Context, principal authz.Principal, category *domain.ItemCategory) error
	UpdateCategory(ctx context.Context, principal authz.Principal, category *domain.ItemCategory) error
	DeleteCategory(ctx context.Context, principal authz.Principal, id int32) error
}

type LoanService interface {
	CreateLoan(ctx context.Context, principal authz.Principal, itemID int32, from, to time.Time, tenantNote string) (*domain.Loan, error)
	GetLoan(ctx context.Context, principal authz.Principal, loanID int32) (*domain.Loan, error)
	// UpdateLoanStatus resolves which side of the loan the principal is on and
	// runs the matching transition handler.
	UpdateLoanStatus(ctx context.Context, principal authz.Principal, loanID int32, requested domain.LoanStatus) (*domain.Loan, error)
	ListLoansByTenant(ctx context.Context, principal authz.Principal, status string, page, pageSize int32) ([]domain.Loan, int32, error)
	ListLoansByOwner(ctx context.Context, principal authz.Principal, status string, page, pageSize int32) ([]domain.Loan, int32, error)
}

type PickupProtocolService interface {
	CreatePickupProtocol(ctx context.Context, principal authz.Principal, loanID int32, description string, acceptedDepositCents int32) (*domain.PickupProtocol, error)
	GetPickupProtocol(ctx context.Context, principal authz.Principal, loanID int32) (*domain.PickupProtocol, error)
	UpdatePickupProtocol(ctx context.Context, principal authz.Principal, loanID int32, description string, acceptedDepositCents int32) (*domain.PickupProtocol, error)
}

type ReturnProtocolService interface {
	CreateReturnProtocol(ctx context.Context, principal authz.Principal, loanID int32, description string, returnedDepositCents int32) (*domain.ReturnProtocol, error)
	GetReturnProtocol(ctx context.Context, principal authz.Principal, loanID int32) (*domain.ReturnProtocol, error)
	UpdateReturnProtocol(ctx context.Context, principal authz.Principal, loanID int32, description string, returnedDepositCents int32) (*domain.ReturnProtocol, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, principal authz.Principal, loanID int32, comment string, rating float32) (*domain.Review, error)
	ListLoanReviews(ctx context.Context, principal authz.Principal, loanID int32) ([]domain.Review, error)
	ListItemReviews(ctx context.Context, itemID int32) ([]domain.Review, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, principal authz.Principal, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, principal authz.Principal, notificationID int32) error
}

type EmailService interface {
	SendLoanInquiredNotification(ctx context.Context, ownerEmail, tenantName, itemName string) error
	SendLoanStatusNotification(ctx context.Context, recipientEmail, itemName string, status domain.LoanStatus) error
	SendProtocolReadyNotification(ctx context.Context, tenantEmail, itemName, protocolKind string) error
	SendLoanOverdueReminder(ctx context.Context, tenantEmail, itemName string, dueDate time.Time) error
}

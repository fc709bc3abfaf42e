package service_test

import (
	"context"
	"time"

	"lendshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	args := m.Called(ctx, tenantID, status, page, pageSize)
	return args.Get(0).([]domain.Loan), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoanRepo) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Loan), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoanRepo) ListActiveEndedBefore(ctx context.Context, deadline time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).([]domain.Loan), args.Error(1)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockItemRepo) ListPublic(ctx context.Context, category string, maxPriceCents int32, page, pageSize int32) ([]domain.Item, int32, error) {
	args := m.Called(ctx, category, maxPriceCents, page, pageSize)
	return args.Get(0).([]domain.Item), args.Get(1).(int32), args.Error(2)
}
func (m *MockItemRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Item, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Item), args.Get(1).(int32), args.Error(2)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockPickupProtocolRepo
type MockPickupProtocolRepo struct {
	mock.Mock
}

func (m *MockPickupProtocolRepo) Create(ctx context.Context, protocol *domain.PickupProtocol) error {
	args := m.Called(ctx, protocol)
	return args.Error(0)
}
func (m *MockPickupProtocolRepo) GetByLoanID(ctx context.Context, loanID int32) (*domain.PickupProtocol, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PickupProtocol), args.Error(1)
}
func (m *MockPickupProtocolRepo) Update(ctx context.Context, protocol *domain.PickupProtocol) error {
	args := m.Called(ctx, protocol)
	return args.Error(0)
}

// MockReturnProtocolRepo
type MockReturnProtocolRepo struct {
	mock.Mock
}

func (m *MockReturnProtocolRepo) Create(ctx context.Context, protocol *domain.ReturnProtocol) error {
	args := m.Called(ctx, protocol)
	return args.Error(0)
}
func (m *MockReturnProtocolRepo) GetByLoanID(ctx context.Context, loanID int32) (*domain.ReturnProtocol, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnProtocol), args.Error(1)
}
func (m *MockReturnProtocolRepo) Update(ctx context.Context, protocol *domain.ReturnProtocol) error {
	args := m.Called(ctx, protocol)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) GetByLoanAndAuthor(ctx context.Context, loanID, authorID int32) (*domain.Review, error) {
	args := m.Called(ctx, loanID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByLoan(ctx context.Context, loanID int32) ([]domain.Review, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByItem(ctx context.Context, itemID int32) ([]domain.Review, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// MockRefreshTokenRepo
type MockRefreshTokenRepo struct {
	mock.Mock
}

func (m *MockRefreshTokenRepo) Store(ctx context.Context, userID int32, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenID, expiresAt)
	return args.Error(0)
}
func (m *MockRefreshTokenRepo) Exists(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
func (m *MockRefreshTokenRepo) Revoke(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
func (m *MockRefreshTokenRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendLoanInquiredNotification(ctx context.Context, ownerEmail, tenantName, itemName string) error {
	args := m.Called(ctx, ownerEmail, tenantName, itemName)
	return args.Error(0)
}
func (m *MockEmailService) SendLoanStatusNotification(ctx context.Context, recipientEmail, itemName string, status domain.LoanStatus) error {
	args := m.Called(ctx, recipientEmail, itemName, status)
	return args.Error(0)
}
func (m *MockEmailService) SendProtocolReadyNotification(ctx context.Context, tenantEmail, itemName, protocolKind string) error {
	args := m.Called(ctx, tenantEmail, itemName, protocolKind)
	return args.Error(0)
}
func (m *MockEmailService) SendLoanOverdueReminder(ctx context.Context, tenantEmail, itemName string, dueDate time.Time) error {
	args := m.Called(ctx, tenantEmail, itemName, dueDate)
	return args.Error(0)
}

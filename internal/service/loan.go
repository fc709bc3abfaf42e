package service

import (
	"context"
	"fmt"
	"time"

	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/logger"
	"lendshare-backend/internal/repository"
	"lendshare-backend/internal/utils"
)

type loanService struct {
	loanRepo   repository.LoanRepository
	itemRepo   repository.ItemRepository
	userRepo   repository.UserRepository
	pickupRepo repository.PickupProtocolRepository
	returnRepo repository.ReturnProtocolRepository
	noteRepo   repository.NotificationRepository
	emailSvc   EmailService
	authorizer *authz.Authorizer
	now        func() time.Time
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	pickupRepo repository.PickupProtocolRepository,
	returnRepo repository.ReturnProtocolRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	authorizer *authz.Authorizer,
) LoanService {
	return NewLoanServiceWithClock(loanRepo, itemRepo, userRepo, pickupRepo, returnRepo, noteRepo, emailSvc, authorizer, time.Now)
}

// NewLoanServiceWithClock exists so tests can pin "now" for ConfirmedAt stamping.
func NewLoanServiceWithClock(
	loanRepo repository.LoanRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	pickupRepo repository.PickupProtocolRepository,
	returnRepo repository.ReturnProtocolRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	authorizer *authz.Authorizer,
	now func() time.Time,
) LoanService {
	return &loanService{
		loanRepo:   loanRepo,
		itemRepo:   itemRepo,
		userRepo:   userRepo,
		pickupRepo: pickupRepo,
		returnRepo: returnRepo,
		noteRepo:   noteRepo,
		emailSvc:   emailSvc,
		authorizer: authorizer,
		now:        now,
	}
}

func (s *loanService) CreateLoan(ctx context.Context, principal authz.Principal, itemID int32, from, to time.Time, tenantNote string) (*domain.Loan, error) {
	if !s.authorizer.Authorize(principal, &domain.Loan{}, authz.OperationCreate) {
		return nil, domain.ErrForbidden
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != domain.ItemStatusPublic {
		return nil, fmt.Errorf("%w: item %d is not available for rent", domain.ErrInvalidInput, itemID)
	}
	if item.OwnerID == principal.UserID {
		return nil, fmt.Errorf("%w: cannot rent your own item", domain.ErrInvalidInput)
	}

	cost, err := utils.CalculateLoanCost(from, to, item)
	if err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		ItemID:                 item.ID,
		Item:                   item,
		TenantID:               principal.UserID,
		Status:                 domain.LoanStatusInquired,
		From:                   from,
		To:                     to,
		Days:                   cost.Days,
		PricePerDayCents:       cost.PricePerDayCents,
		ExpectedPriceCents:     cost.ExpectedPriceCents,
		RefundableDepositCents: cost.RefundableDepositCents,
		TenantNote:             tenantNote,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	s.notifyLoanInquired(ctx, loan, item)
	return loan, nil
}

func (s *loanService) GetLoan(ctx context.Context, principal authz.Principal, loanID int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(principal, loan, authz.OperationRead) {
		return nil, domain.ErrForbidden
	}
	return loan, nil
}

func (s *loanService) UpdateLoanStatus(ctx context.Context, principal authz.Principal, loanID int32, requested domain.LoanStatus) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(principal, loan, authz.OperationUpdate) {
		return nil, domain.ErrForbidden
	}

	// Authorization established that the principal may touch the loan; the
	// transition handler still needs to know which actor it is acting as.
	state := domain.GetStateWithClock(loan.Status, s.now)
	stampsBefore := protocolConfirmedAt(loan)
	switch {
	case principal.UserID == loan.TenantID:
		err = state.HandleTenant(loan, requested)
	case principal.UserID == loan.OwnerID():
		err = state.HandleOwner(loan, requested)
	default:
		// Reachable only via the admin bypass; an admin is neither actor.
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.persistConfirmation(ctx, loan, stampsBefore); err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, loan)
	return loan, nil
}

// persistConfirmation writes protocol rows whose ConfirmedAt was stamped
// during the transition.
func (s *loanService) persistConfirmation(ctx context.Context, loan *domain.Loan, before [2]*time.Time) error {
	if loan.PickupProtocol != nil && before[0] == nil && loan.PickupProtocol.ConfirmedAt != nil {
		return s.pickupRepo.Update(ctx, loan.PickupProtocol)
	}
	if loan.ReturnProtocol != nil && before[1] == nil && loan.ReturnProtocol.ConfirmedAt != nil {
		return s.returnRepo.Update(ctx, loan.ReturnProtocol)
	}
	return nil
}

func protocolConfirmedAt(loan *domain.Loan) [2]*time.Time {
	var out [2]*time.Time
	if loan.PickupProtocol != nil {
		out[0] = loan.PickupProtocol.ConfirmedAt
	}
	if loan.ReturnProtocol != nil {
		out[1] = loan.ReturnProtocol.ConfirmedAt
	}
	return out
}

func (s *loanService) ListLoansByTenant(ctx context.Context, principal authz.Principal, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	if principal.IsAnonymous() {
		return nil, 0, domain.ErrForbidden
	}
	return s.loanRepo.ListByTenant(ctx, principal.UserID, status, page, pageSize)
}

func (s *loanService) ListLoansByOwner(ctx context.Context, principal authz.Principal, status string, page, pageSize int32) ([]domain.Loan, int32, error) {
	if principal.IsAnonymous() {
		return nil, 0, domain.ErrForbidden
	}
	return s.loanRepo.ListByOwner(ctx, principal.UserID, status, page, pageSize)
}

func (s *loanService) notifyLoanInquired(ctx context.Context, loan *domain.Loan, item *domain.Item) {
	owner, err := s.userRepo.GetByID(ctx, item.OwnerID)
	if err != nil {
		logger.Warn("could not load owner for loan notification", "loan_id", loan.ID, "error", err)
		return
	}
	tenant, err := s.userRepo.GetByID(ctx, loan.TenantID)
	if err != nil {
		logger.Warn("could not load tenant for loan notification", "loan_id", loan.ID, "error", err)
		return
	}

	if err := s.emailSvc.SendLoanInquiredNotification(ctx, owner.Email, tenant.Name, item.Name); err != nil {
		logger.Warn("loan inquiry email failed", "loan_id", loan.ID, "error", err)
	}

	notif := &domain.Notification{
		UserID:  owner.ID,
		Title:   "New Loan Inquiry",
		Message: fmt.Sprintf("%s wants to rent %s", tenant.Name, item.Name),
		Attributes: map[string]string{
			"type":    "LOAN_INQUIRED",
			"loan_id": fmt.Sprintf("%d", loan.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, notif); err != nil {
		logger.Warn("loan inquiry notification failed", "loan_id", loan.ID, "error", err)
	}
}

func (s *loanService) notifyStatusChange(ctx context.Context, loan *domain.Loan) {
	// The counterparty of whoever has something to react to gets notified:
	// tenant-facing statuses go to the tenant, the rest to the owner.
	recipientID := loan.OwnerID()
	switch loan.Status {
	case domain.LoanStatusAccepted, domain.LoanStatusDenied, domain.LoanStatusPreparedForPickup, domain.LoanStatusPreparedForReturn:
		recipientID = loan.TenantID
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		logger.Warn("could not load recipient for status notification", "loan_id", loan.ID, "error", err)
		return
	}

	itemName := ""
	if loan.Item != nil {
		itemName = loan.Item.Name
	}
	if err := s.emailSvc.SendLoanStatusNotification(ctx, recipient.Email, itemName, loan.Status); err != nil {
		logger.Warn("loan status email failed", "loan_id", loan.ID, "error", err)
	}

	notif := &domain.Notification{
		UserID:  recipient.ID,
		Title:   "Loan Status Changed",
		Message: fmt.Sprintf("Loan for %s is now %s", itemName, loan.Status),
		Attributes: map[string]string{
			"type":    "LOAN_STATUS_CHANGED",
			"loan_id": fmt.Sprintf("%d", loan.ID),
			"status":  string(loan.Status),
		},
	}
	if err := s.noteRepo.Create(ctx, notif); err != nil {
		logger.Warn("loan status notification failed", "loan_id", loan.ID, "error", err)
	}
}

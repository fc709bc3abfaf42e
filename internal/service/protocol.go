package service

import (
	"context"
	"fmt"

	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/logger"
	"lendshare-backend/internal/repository"
)

type pickupProtocolService struct {
	loanRepo   repository.LoanRepository
	protoRepo  repository.PickupProtocolRepository
	userRepo   repository.UserRepository
	emailSvc   EmailService
	authorizer *authz.Authorizer
}

func NewPickupProtocolService(
	loanRepo repository.LoanRepository,
	protoRepo repository.PickupProtocolRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	authorizer *authz.Authorizer,
) PickupProtocolService {
	return &pickupProtocolService{
		loanRepo:   loanRepo,
		protoRepo:  protoRepo,
		userRepo:   userRepo,
		emailSvc:   emailSvc,
		authorizer: authorizer,
	}
}

func (s *pickupProtocolService) CreatePickupProtocol(ctx context.Context, principal authz.Principal, loanID int32, description string, acceptedDepositCents int32) (*domain.PickupProtocol, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(principal, loan, authz.OperationCreatePickupProtocol) {
		return nil, domain.ErrForbidden
	}
	if !domain.GetState(loan.Status).CanCreatePickupProtocol(loan) {
		return nil, fmt.Errorf("%w: pickup protocol cannot be created for loan %d in status %s", domain.ErrActionNotAllowed, loan.ID, loan.Status)
	}

	protocol := &domain.PickupProtocol{
		LoanID:                         loan.ID,
		Loan:                           loan,
		Description:                    description,
		AcceptedRefundableDepositCents: acceptedDepositCents,
	}
	if err := s.protoRepo.Create(ctx, protocol); err != nil {
		return nil, err
	}

	s.notifyProtocolReady(ctx, loan, "pickup")
	return protocol, nil
}

func (s *pickupProtocolService) GetPickupProtocol(ctx context.Context, principal authz.Principal, loanID int32) (*domain.PickupProtocol, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.PickupProtocol == nil {
		return nil, domain.ErrNotFound
	}
	if !s.authorizer.Authorize(principal, loan.PickupProtocol, authz.OperationRead) {
		return nil, domain.ErrForbidden
	}
	return loan.PickupProtocol, nil
}

func (s *pickupProtocolService) UpdatePickupProtocol(ctx context.Context, principal authz.Principal, loanID int32, description string, acceptedDepositCents int32) (*domain.PickupProtocol, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.PickupProtocol == nil {
		return nil, domain.ErrNotFound
	}
	if !s.authorizer.Authorize(principal, loan, authz.OperationCreatePickupProtocol) {
		return nil, domain.ErrForbidden
	}
	if !domain.GetState(loan.Status).CanUpdatePickupProtocol(loan) {
		return nil, fmt.Errorf("%w: pickup protocol is read-only for loan %d in status %s", domain.ErrActionNotAllowed, loan.ID, loan.Status)
	}

	protocol := loan.PickupProtocol
	protocol.Description = description
	protocol.AcceptedRefundableDepositCents = acceptedDepositCents
	if err := s.protoRepo.Update(ctx, protocol); err != nil {
		return nil, err
	}
	return protocol, nil
}

func (s *pickupProtocolService) notifyProtocolReady(ctx context.Context, loan *domain.Loan, kind string) {
	tenant, err := s.userRepo.GetByID(ctx, loan.TenantID)
	if err != nil {
		logger.Warn("could not load tenant for protocol notification", "loan_id", loan.ID, "error", err)
		return
	}
	itemName := ""
	if loan.Item != nil {
		itemName = loan.Item.Name
	}
	if err := s.emailSvc.SendProtocolReadyNotification(ctx, tenant.Email, itemName, kind); err != nil {
		logger.Warn("protocol ready email failed", "loan_id", loan.ID, "error", err)
	}
}

type returnProtocolService struct {
	loanRepo   repository.LoanRepository
	protoRepo  repository.ReturnProtocolRepository
	userRepo   repository.UserRepository
	emailSvc   EmailService
	authorizer *authz.Authorizer
}

func NewReturnProtocolService(
	loanRepo repository.LoanRepository,
	protoRepo repository.ReturnProtocolRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	authorizer *authz.Authorizer,
) ReturnProtocolService {
	return &returnProtocolService{
		loanRepo:   loanRepo,
		protoRepo:  protoRepo,
		userRepo:   userRepo,
		emailSvc:   emailSvc,
		authorizer: authorizer,
	}
}

func (s *returnProtocolService) CreateReturnProtocol(ctx context.Context, principal authz.Principal, loanID int32, description string, returnedDepositCents int32) (*domain.ReturnProtocol, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(principal, loan, authz.OperationCreateReturnProtocol) {
		return nil, domain.ErrForbidden
	}
	if !domain.GetState(loan.Status).CanCreateReturnProtocol(loan) {
		return nil, fmt.Errorf("%w: return protocol cannot be created for loan %d in status %s", domain.ErrActionNotAllowed, loan.ID, loan.Status)
	}

	protocol := &domain.ReturnProtocol{
		LoanID:                         loan.ID,
		Loan:                           loan,
		Description:                    description,
		ReturnedRefundableDepositCents: returnedDepositCents,
	}
	if err := s.protoRepo.Create(ctx, protocol); err != nil {
		return nil, err
	}

	s.notifyProtocolReady(ctx, loan, "return")
	return protocol, nil
}

func (s *returnProtocolService) GetReturnProtocol(ctx context.Context, principal authz.Principal, loanID int32) (*domain.ReturnProtocol, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.ReturnProtocol == nil {
		return nil, domain.ErrNotFound
	}
	if !s.authorizer.Authorize(principal, loan.ReturnProtocol, authz.OperationRead) {
		return nil, domain.ErrForbidden
	}
	return loan.ReturnProtocol, nil
}

func (s *returnProtocolService) UpdateReturnProtocol(ctx context.Context, principal authz.Principal, loanID int32, description string, returnedDepositCents int32) (*domain.ReturnProtocol, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.ReturnProtocol == nil {
		return nil, domain.ErrNotFound
	}
	if !s.authorizer.Authorize(principal, loan, authz.OperationCreateReturnProtocol) {
		return nil, domain.ErrForbidden
	}
	if !domain.GetState(loan.Status).CanUpdateReturnProtocol(loan) {
		return nil, fmt.Errorf("%w: return protocol is read-only for loan %d in status %s", domain.ErrActionNotAllowed, loan.ID, loan.Status)
	}

	protocol := loan.ReturnProtocol
	protocol.Description = description
	protocol.ReturnedRefundableDepositCents = returnedDepositCents
	if err := s.protoRepo.Update(ctx, protocol); err != nil {
		return nil, err
	}
	return protocol, nil
}

func (s *returnProtocolService) notifyProtocolReady(ctx context.Context, loan *domain.Loan, kind string) {
	tenant, err := s.userRepo.GetByID(ctx, loan.TenantID)
	if err != nil {
		logger.Warn("could not load tenant for protocol notification", "loan_id", loan.ID, "error", err)
		return
	}
	itemName := ""
	if loan.Item != nil {
		itemName = loan.Item.Name
	}
	if err := s.emailSvc.SendProtocolReadyNotification(ctx, tenant.Email, itemName, kind); err != nil {
		logger.Warn("protocol ready email failed", "loan_id", loan.ID, "error", err)
	}
}

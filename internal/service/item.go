package service

import (
	"context"
	"fmt"

	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"
)

type itemService struct {
	itemRepo   repository.ItemRepository
	authorizer *authz.Authorizer
}

func NewItemService(itemRepo repository.ItemRepository, authorizer *authz.Authorizer) ItemService {
	return &itemService{itemRepo: itemRepo, authorizer: authorizer}
}

func (s *itemService) AddItem(ctx context.Context, principal authz.Principal, item *domain.Item) error {
	item.OwnerID = principal.UserID
	if !s.authorizer.Authorize(principal, item, authz.OperationCreate) {
		return domain.ErrForbidden
	}
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if item.Status == "" {
		item.Status = domain.ItemStatusApproving
	}
	return s.itemRepo.Create(ctx, item)
}

func (s *itemService) GetItem(ctx context.Context, principal authz.Principal, id int32) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(principal, item, authz.OperationRead) {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, principal authz.Principal, item *domain.Item) error {
	current, err := s.itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if !s.authorizer.Authorize(principal, current, authz.OperationUpdate) {
		return domain.ErrForbidden
	}
	item.OwnerID = current.OwnerID
	return s.itemRepo.Update(ctx, item)
}

func (s *itemService) DeleteItem(ctx context.Context, principal authz.Principal, id int32) error {
	current, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.authorizer.Authorize(principal, current, authz.OperationDelete) {
		return domain.ErrForbidden
	}
	return s.itemRepo.Delete(ctx, id)
}

func (s *itemService) ListPublicItems(ctx context.Context, category string, maxPriceCents, page, pageSize int32) ([]domain.Item, int32, error) {
	return s.itemRepo.ListPublic(ctx, category, maxPriceCents, page, pageSize)
}

func (s *itemService) ListMyItems(ctx context.Context, principal authz.Principal, page, pageSize int32) ([]domain.Item, int32, error) {
	if principal.IsAnonymous() {
		return nil, 0, domain.ErrForbidden
	}
	return s.itemRepo.ListByOwner(ctx, principal.UserID, page, pageSize)
}

package service

import (
	"context"

	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"
)

type itemCategoryService struct {
	categoryRepo repository.ItemCategoryRepository
	authorizer   *authz.Authorizer
}

func NewItemCategoryService(categoryRepo repository.ItemCategoryRepository, authorizer *authz.Authorizer) ItemCategoryService {
	return &itemCategoryService{categoryRepo: categoryRepo, authorizer: authorizer}
}

func (s *itemCategoryService) ListCategories(ctx context.Context) ([]domain.ItemCategory, error) {
	return s.categoryRepo.List(ctx)
}

func (s *itemCategoryService) GetCategory(ctx context.Context, id int32) (*domain.ItemCategory, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *itemCategoryService) CreateCategory(ctx context.Context, principal authz.Principal, category *domain.ItemCategory) error {
	if !s.authorizer.Authorize(principal, category, authz.OperationCreate) {
		return domain.ErrForbidden
	}
	return s.categoryRepo.Create(ctx, category)
}

func (s *itemCategoryService) UpdateCategory(ctx context.Context, principal authz.Principal, category *domain.ItemCategory) error {
	if !s.authorizer.Authorize(principal, category, authz.OperationUpdate) {
		return domain.ErrForbidden
	}
	return s.categoryRepo.Update(ctx, category)
}

func (s *itemCategoryService) DeleteCategory(ctx context.Context, principal authz.Principal, id int32) error {
	if !s.authorizer.Authorize(principal, &domain.ItemCategory{ID: id}, authz.OperationDelete) {
		return domain.ErrForbidden
	}
	return s.categoryRepo.Delete(ctx, id)
}

package service

import (
	"context"

	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, principal authz.Principal, page, pageSize int32) ([]domain.Notification, int32, error) {
	if principal.IsAnonymous() {
		return nil, 0, domain.ErrForbidden
	}
	return s.noteRepo.ListByUser(ctx, principal.UserID, page, pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, principal authz.Principal, notificationID int32) error {
	if principal.IsAnonymous() {
		return domain.ErrForbidden
	}
	return s.noteRepo.MarkAsRead(ctx, principal.UserID, notificationID)
}

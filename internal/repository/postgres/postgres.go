package postgres

import (
	"database/sql"

	"lendshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ItemRepository
	repository.ItemCategoryRepository
	repository.LoanRepository
	repository.PickupProtocolRepository
	repository.ReturnProtocolRepository
	repository.ReviewRepository
	repository.NotificationRepository
	repository.RefreshTokenRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		UserRepository:           NewUserRepository(db),
		ItemRepository:           NewItemRepository(db),
		ItemCategoryRepository:   NewItemCategoryRepository(db),
		LoanRepository:           NewLoanRepository(db),
		PickupProtocolRepository: NewPickupProtocolRepository(db),
		ReturnProtocolRepository: NewReturnProtocolRepository(db),
		ReviewRepository:         NewReviewRepository(db),
		NotificationRepository:   NewNotificationRepository(db),
		RefreshTokenRepository:   NewRefreshTokenRepository(db),
	}
}

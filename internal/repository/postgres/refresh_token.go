package postgres

import (
	"context"
	"database/sql"
	"time"

	"lendshare-backend/internal/repository"
)

type refreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Store(ctx context.Context, userID int32, tokenID string, expiresAt time.Time) error {
	query := `INSERT INTO refresh_tokens (token_id, user_id, expires_at, created_on) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, tokenID, userID, expiresAt, time.Now())
	return err
}

func (r *refreshTokenRepository) Exists(ctx context.Context, tokenID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE token_id = $1 AND expires_at > $2)`
	err := r.db.QueryRowContext(ctx, query, tokenID, time.Now()).Scan(&exists)
	return exists, err
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	query := `DELETE FROM refresh_tokens WHERE token_id = $1`
	_, err := r.db.ExecContext(ctx, query, tokenID)
	return err
}

func (r *refreshTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

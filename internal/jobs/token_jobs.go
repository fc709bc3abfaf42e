package jobs

import (
	"context"
	"time"

	"lendshare-backend/internal/logger"
)

// PurgeExpiredRefreshTokens removes refresh tokens whose expiry has passed.
// Revoked tokens with remaining lifetime stay until they expire too.
func (jr *JobRunner) PurgeExpiredRefreshTokens() {
	jr.runWithRecovery("PurgeExpiredRefreshTokens", func() {
		ctx := context.Background()

		purged, err := jr.store.RefreshTokenRepository.PurgeExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to purge expired refresh tokens", "error", err)
			return
		}
		logger.Info("Purged expired refresh tokens", "count", purged)
	})
}

package cleanup

import (
	"context"
	"time"

	authrepo "postboard/internal/auth/repository"
	"postboard/internal/common/constants"
	"postboard/internal/common/logger"
	"postboard/internal/observability/metrics"
)

type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StartRevokedSessionCleanup deletes revoked-session rows whose tokens
// have expired on their own; runs until ctx is cancelled.
func StartRevokedSessionCleanup(ctx context.Context, repo authrepo.RevokedSessionRepository, log *logger.Logger) {
	startCleanup(ctx, repo, log)
}

func startCleanup(ctx context.Context, repo ExpiredDeleter, log *logger.Logger) {
	ticker := time.NewTicker(constants.RevokedSessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteExpired(ctx)
			if err != nil {
				log.Errorf("revoked session cleanup failed: %v", err)
				continue
			}
			if deleted > 0 {
				metrics.RevokedSessionsCleanupDeleted.Add(float64(deleted))
				log.Infof("revoked session cleanup: deleted %d expired rows", deleted)
			}
		}
	}
}

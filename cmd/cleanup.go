package cmd

import (
	"context"
	"time"

	"movie-booking/internal/data/repository"

	"go.uber.org/zap"
)

// StartSessionCleanup deletes long expired sessions every interval until ctx is done.
func StartSessionCleanup(ctx context.Context, sessions repository.SessionRepository, interval time.Duration, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := sessions.CleanExpiredSessions(ctx)
				if err != nil {
					logger.Warn("Session cleanup failed", zap.Error(err))
					continue
				}
				if removed > 0 {
					logger.Info("Expired sessions removed", zap.Int64("count", removed))
				}
			}
		}
	}()
}

package workers

import (
	"context"
	"time"

	"ehandout_backend/internal/logger"
	"ehandout_backend/internal/repositories"
)

// TokenWorker prunes the revocation ledger. Rows whose recorded expiry
// has passed can never gate a live token, so they are safe to drop.
type TokenWorker struct {
	ledger   repositories.InvalidatedTokenRepository
	interval time.Duration
}

func NewTokenWorker(ledger repositories.InvalidatedTokenRepository, interval time.Duration) *TokenWorker {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &TokenWorker{ledger: ledger, interval: interval}
}

// Start launches the pruning loop. It stops when ctx is cancelled.
func (w *TokenWorker) Start(ctx context.Context) {
	go w.pruneLoop(ctx)
}

func (w *TokenWorker) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token worker stopped")
			return
		case <-ticker.C:
			removed, err := w.ledger.DeleteExpired(ctx)
			if err != nil {
				logger.WorkerLog("token", "prune expired ledger rows", err)
			} else if removed > 0 {
				logger.Info("pruned expired ledger rows", "removed", removed)
			}
		}
	}
}

package service

import (
	"context"
	"time"

	"github.com/dtroode/sessiongate/internal/logger"
)

// ExpiredSessionPruner is implemented by session stores that do not expire
// records on their own.
type ExpiredSessionPruner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Janitor periodically removes expired sessions. The gate already rejects
// them; the janitor only reclaims storage.
type Janitor struct {
	pruner   ExpiredSessionPruner
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger
}

// NewJanitor returns a janitor that prunes every interval. Each prune gets
// its own deadline of timeout.
func NewJanitor(pruner ExpiredSessionPruner, interval, timeout time.Duration, logger *logger.Logger) *Janitor {
	return &Janitor{
		pruner:   pruner,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run prunes once per interval until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.prune(ctx)
		}
	}
}

func (j *Janitor) prune(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	n, err := j.pruner.DeleteExpired(ctx)
	if err != nil {
		j.logger.Error("Janitor: failed to delete expired sessions",
			"error", err.Error())
		return
	}
	if n > 0 {
		j.logger.Info("Janitor: deleted expired sessions",
			"count", n)
	}
}

package service

import (
	"context"
	"time"

	"home_energy_audit/internal/repository"
)

// defaultRetentionAge keeps three months of run history when no retention
// setting is configured.
const defaultRetentionAge = 90 * 24 * time.Hour

// RetentionService prunes audit runs past their retention age.
type RetentionService struct {
	runRepo repository.RunRepo
	maxAge  time.Duration
}

func NewRetentionService(runRepo repository.RunRepo, maxAge time.Duration) *RetentionService {
	if maxAge <= 0 {
		maxAge = defaultRetentionAge
	}
	return &RetentionService{runRepo: runRepo, maxAge: maxAge}
}

// Run ticks at the given interval until ctx is canceled, deleting runs older
// than the retention age on each tick. Errors are swallowed; the next tick
// retries.
func (s *RetentionService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			cutoff := now.UTC().Add(-s.maxAge)
			_, _ = s.runRepo.DeleteOlderThan(ctx, cutoff)
		}
	}
}

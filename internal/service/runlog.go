package service

import (
	"context"
	"errors"
	"time"

	audit "home_energy_audit"
	"home_energy_audit/internal/repository"
)

const (
	defaultRunPageSize = 50
	maxRunPageSize     = 500
)

type RunLogService struct {
	runRepo repository.RunRepo
}

func NewRunLogService(runRepo repository.RunRepo) *RunLogService {
	return &RunLogService{runRepo: runRepo}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the
// time range and page size.
func normalizeAndValidateFilter(f RunFilter) (time.Time, time.Time, int, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, 0, errInvalidTimeRange
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultRunPageSize
	}
	if limit > maxRunPageSize {
		limit = maxRunPageSize
	}
	return from, to, limit, nil
}

func (s *RunLogService) List(ctx context.Context, f RunFilter) ([]audit.AuditRun, error) {
	from, to, limit, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.runRepo.List(ctx, from, to, limit)
}

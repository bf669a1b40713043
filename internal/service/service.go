package service

import (
	"context"
	"time"

	audit "home_energy_audit"
	"home_energy_audit/internal/engine"
	"home_energy_audit/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Audit exposes the evaluation pipeline: resolve, model, map, account,
// recommend — and records each run.
type Audit interface {
	Evaluate(ctx context.Context, in audit.InputRecord, p EvaluateParams) (audit.AuditResult, error)
	Preview(in audit.InputRecord, p EvaluateParams) audit.AuditResult
	Defaults(year int) engine.EraDefaults
}

// RunLog exposes the stored audit-run history with filtering access.
type RunLog interface {
	List(ctx context.Context, f RunFilter) ([]audit.AuditRun, error)
}

// Retention runs the background loop that prunes stale audit runs.
// Stop via context cancellation in main() for graceful shutdown.
type Retention interface {
	Run(ctx context.Context, tick time.Duration)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Audit
	RunLog
	Retention
	Authorization
}

// Options carries the config-driven knobs. Each unset (non-positive) knob
// falls back to its engine default independently of the others.
type Options struct {
	SigningKey   string
	Thresholds   engine.Thresholds
	RetentionAge time.Duration
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	th := opts.Thresholds
	if th.MinDollars <= 0 {
		th.MinDollars = engine.DefaultThresholds.MinDollars
	}
	if th.MinCO2Kg <= 0 {
		th.MinCO2Kg = engine.DefaultThresholds.MinCO2Kg
	}
	if th.TopN <= 0 {
		th.TopN = engine.DefaultThresholds.TopN
	}
	return &Service{
		Audit:         NewAuditService(repos.Runs, th),
		RunLog:        NewRunLogService(repos.Runs),
		Retention:     NewRetentionService(repos.Runs, opts.RetentionAge),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey),
	}
}

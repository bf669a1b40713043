package repository

import (
	"context"
	"database/sql"
	"time"

	audit "home_energy_audit"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*audit.User, error)
}

// RunRepo persists evaluated audit runs for history and charting.
type RunRepo interface {
	Save(ctx context.Context, run audit.AuditRun) error
	List(ctx context.Context, from, to time.Time, limit int) ([]audit.AuditRun, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Repository struct {
	Runs RunRepo
	Auth Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Runs: NewRunSQLite(db),
		Auth: NewUserRepository(db),
	}
}

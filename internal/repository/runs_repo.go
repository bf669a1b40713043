package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	audit "home_energy_audit"

	"github.com/google/uuid"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

var _ RunRepo = (*RunSQLite)(nil)

const (
	// SQLite TIMESTAMP format.
	sqliteTimeLayout = "2006-01-02 15:04:05"

	insertRunSQL = `
		INSERT INTO audit_runs (id, created_at, input, heating_btu, cooling_btu, dhw_btu, dollars, co2_kg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
)

// Save inserts a completed run. If ID or CreatedAt are empty, they're set.
func (r *RunSQLite) Save(ctx context.Context, run audit.AuditRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	} else {
		run.CreatedAt = run.CreatedAt.UTC()
	}

	inputJSON, err := json.Marshal(run.Input)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.CreatedAt.Format(sqliteTimeLayout),
		string(inputJSON),
		run.HeatingBtu,
		run.CoolingBtu,
		run.DHWLoadBtu,
		run.TotalDollars,
		run.TotalCO2Kg,
	)
	return err
}

// List returns runs within [from, to] (inclusive, zero means unbounded),
// newest first, capped at limit when limit > 0.
func (r *RunSQLite) List(ctx context.Context, from, to time.Time, limit int) ([]audit.AuditRun, error) {
	var (
		conds []string
		args  []any
	)
	// Bound args use the same layout Save writes, so the comparison is
	// consistent for a TEXT-affinity timestamp column.
	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}

	q := `SELECT id, created_at, input, heating_btu, cooling_btu, dhw_btu, dollars, co2_kg FROM audit_runs`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]audit.AuditRun, 0, 32)
	for rows.Next() {
		var (
			run      audit.AuditRun
			inputStr string
		)
		if err := rows.Scan(&run.ID, &run.CreatedAt, &inputStr,
			&run.HeatingBtu, &run.CoolingBtu, &run.DHWLoadBtu,
			&run.TotalDollars, &run.TotalCO2Kg); err != nil {
			return nil, err
		}
		run.CreatedAt = run.CreatedAt.UTC()
		// A malformed stored input leaves the zero record; the headline
		// numbers on the row are still served.
		_ = json.Unmarshal([]byte(inputStr), &run.Input)
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteOlderThan removes runs created before cutoff and reports how many.
func (r *RunSQLite) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM audit_runs WHERE created_at < ?`,
		cutoff.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

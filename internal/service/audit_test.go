package service

import (
	"context"
	"errors"
	"testing"
	"time"

	audit "home_energy_audit"
	"home_energy_audit/internal/engine"
)

type fakeRunRepo struct {
	saveErr    error
	savedRuns  []audit.AuditRun
	listResp   []audit.AuditRun
	listErr    error
	deletedN   int64
	deleteErr  error
	lastCutoff time.Time
}

func (f *fakeRunRepo) Save(ctx context.Context, run audit.AuditRun) error {
	f.savedRuns = append(f.savedRuns, run)
	return f.saveErr
}

func (f *fakeRunRepo) List(ctx context.Context, from, to time.Time, limit int) ([]audit.AuditRun, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.listResp
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRunRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.lastCutoff = cutoff
	return f.deletedN, f.deleteErr
}

func lastSavedRun(t *testing.T, f *fakeRunRepo) audit.AuditRun {
	t.Helper()
	if len(f.savedRuns) == 0 {
		t.Fatalf("expected at least one Save call")
	}
	return f.savedRuns[len(f.savedRuns)-1]
}

func TestAuditEvaluate_FullPipeline(t *testing.T) {
	repo := &fakeRunRepo{}
	svc := NewAuditService(repo, engine.DefaultThresholds)

	res, err := svc.Evaluate(context.Background(), audit.InputRecord{YearBuilt: 1972}, EvaluateParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Loads.HeatingBtu <= 0 {
		t.Fatalf("expected a positive heating load for a 1972 home, got %v", res.Loads.HeatingBtu)
	}
	if res.TotalFuel.IsZero() {
		t.Fatalf("expected nonzero total fuel")
	}
	if res.Cost.TotalDollars <= 0 || res.Emissions.TotalKg <= 0 {
		t.Fatalf("expected positive cost and emissions: $%v, %v kg", res.Cost.TotalDollars, res.Emissions.TotalKg)
	}
	if len(res.Recommendations) == 0 {
		t.Fatalf("expected recommendations for an uninsulated home")
	}

	run := lastSavedRun(t, repo)
	if run.ID == "" || run.CreatedAt.IsZero() {
		t.Fatalf("persisted run missing identity: %+v", run)
	}
	if run.TotalDollars != res.Cost.TotalDollars {
		t.Fatalf("persisted dollars %v != result %v", run.TotalDollars, res.Cost.TotalDollars)
	}
	if run.Input.YearBuilt != 1972 {
		t.Fatalf("persisted input must be the raw record, got %+v", run.Input)
	}
}

func TestAuditEvaluate_SaveErrorStillReturnsResult(t *testing.T) {
	repo := &fakeRunRepo{saveErr: errors.New("db down")}
	svc := NewAuditService(repo, engine.DefaultThresholds)

	res, err := svc.Evaluate(context.Background(), audit.InputRecord{}, EvaluateParams{})
	if err == nil {
		t.Fatalf("expected the persistence error to surface")
	}
	if res.TotalFuel.IsZero() {
		t.Fatalf("the computed result must still be usable alongside the error")
	}
}

func TestAuditEvaluate_SortParam(t *testing.T) {
	repo := &fakeRunRepo{}
	svc := NewAuditService(repo, engine.DefaultThresholds)

	res, err := svc.Evaluate(context.Background(), audit.InputRecord{YearBuilt: 1972}, EvaluateParams{Sort: "co2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := res.Recommendations
	for i := 1; i < len(recs); i++ {
		if recs[i].Savings.CO2Kg > recs[i-1].Savings.CO2Kg {
			t.Fatalf("sort=co2 not honored")
		}
	}
}

func TestAuditPreview_MatchesEvaluateWithoutPersisting(t *testing.T) {
	repo := &fakeRunRepo{}
	svc := NewAuditService(repo, engine.DefaultThresholds)

	in := audit.InputRecord{YearBuilt: 1972}
	preview := svc.Preview(in, EvaluateParams{})
	if len(repo.savedRuns) != 0 {
		t.Fatalf("Preview must not record a run, got %d", len(repo.savedRuns))
	}

	evaluated, err := svc.Evaluate(context.Background(), in, EvaluateParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if preview.Cost.TotalDollars != evaluated.Cost.TotalDollars ||
		preview.Emissions.TotalKg != evaluated.Emissions.TotalKg {
		t.Fatalf("preview and evaluate disagree: %+v vs %+v", preview.Cost, evaluated.Cost)
	}
}

func TestAuditDefaults(t *testing.T) {
	svc := NewAuditService(&fakeRunRepo{}, engine.DefaultThresholds)
	if got := svc.Defaults(1975).WallR; got != 9 {
		t.Fatalf("defaults preview wall R = %v, want 9", got)
	}
}

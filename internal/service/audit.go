package service

import (
	"context"
	"time"

	audit "home_energy_audit"
	"home_energy_audit/internal/engine"
	"home_energy_audit/internal/repository"

	"github.com/google/uuid"
)

type AuditService struct {
	runRepo    repository.RunRepo
	thresholds engine.Thresholds
}

func NewAuditService(runRepo repository.RunRepo, th engine.Thresholds) *AuditService {
	return &AuditService{runRepo: runRepo, thresholds: th}
}

// Evaluate runs the whole pipeline against one raw input record. The
// computation itself cannot fail; the only error path is persisting the run.
func (s *AuditService) Evaluate(ctx context.Context, in audit.InputRecord, p EvaluateParams) (audit.AuditResult, error) {
	result := s.compute(in, p)

	run := audit.AuditRun{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Input:        in,
		HeatingBtu:   result.Loads.HeatingBtu,
		CoolingBtu:   result.Loads.CoolingBtu,
		DHWLoadBtu:   result.DHWLoadBtu,
		TotalDollars: result.Cost.TotalDollars,
		TotalCO2Kg:   result.Emissions.TotalKg,
	}
	if err := s.runRepo.Save(ctx, run); err != nil {
		return result, err
	}
	return result, nil
}

// Preview runs the same pipeline without recording a run. Used by the live
// recompute stream, where persisting every keystroke would flood the log.
func (s *AuditService) Preview(in audit.InputRecord, p EvaluateParams) audit.AuditResult {
	return s.compute(in, p)
}

func (s *AuditService) compute(in audit.InputRecord, p EvaluateParams) audit.AuditResult {
	eff := engine.Resolve(in)
	loads := engine.ComputeLoads(eff)

	heatingFuel := engine.MapHeatingFuel(eff, loads.HeatingBtu)
	coolingFuel := engine.MapCoolingFuel(eff, loads.CoolingBtu)
	dhwFuel := engine.MapDHWFuel(eff)
	total := engine.Aggregate(heatingFuel, coolingFuel, dhwFuel)

	emissions := engine.Emissions(eff, total)
	cost := engine.Cost(eff, total)

	recs := engine.Recommendations(engine.Baseline{
		Effective:   eff,
		Loads:       loads,
		HeatingFuel: heatingFuel,
		CoolingFuel: coolingFuel,
		DHWFuel:     dhwFuel,
	}, sortKeyFrom(p.Sort), s.thresholds)

	return audit.AuditResult{
		Effective:       eff,
		Loads:           loads,
		DHWLoadBtu:      engine.DHWLoad(eff),
		HeatingFuel:     heatingFuel,
		CoolingFuel:     coolingFuel,
		DHWFuel:         dhwFuel,
		TotalFuel:       total,
		Emissions:       emissions,
		Cost:            cost,
		Recommendations: recs,
	}
}

// Defaults exposes the era table for the form UI's assumption preview.
func (s *AuditService) Defaults(year int) engine.EraDefaults {
	return engine.DefaultsForYear(year)
}

func sortKeyFrom(s string) engine.SortKey {
	if s == string(engine.SortByCO2) {
		return engine.SortByCO2
	}
	return engine.SortByDollars
}

package engine

import (
	"testing"

	audit "home_energy_audit"
)

func baselineFor(in audit.InputRecord) Baseline {
	r := Resolve(in)
	loads := ComputeLoads(r)
	return Baseline{
		Effective:   r,
		Loads:       loads,
		HeatingFuel: MapHeatingFuel(r, loads.HeatingBtu),
		CoolingFuel: MapCoolingFuel(r, loads.CoolingBtu),
		DHWFuel:     MapDHWFuel(r),
	}
}

func findRec(recs []audit.Recommendation, id string) (audit.Recommendation, bool) {
	for _, r := range recs {
		if r.ID == id {
			return r, true
		}
	}
	return audit.Recommendation{}, false
}

func TestRecommendations_OldGasHome(t *testing.T) {
	b := baselineFor(audit.InputRecord{YearBuilt: 1972, FloorAreaFt2: 2000, HDD65: 6500})
	recs := Recommendations(b, SortByDollars, DefaultThresholds)

	if len(recs) == 0 {
		t.Fatalf("expected recommendations for a leaky 1972 gas home")
	}
	for _, id := range []string{"roof_insulation", "air_sealing", "heat_pump_heating"} {
		if _, ok := findRec(recs, id); !ok {
			t.Fatalf("expected %s in list, got %+v", id, recIDs(recs))
		}
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Savings.Dollars > recs[i-1].Savings.Dollars {
			t.Fatalf("list not sorted by dollar savings: %v then %v",
				recs[i-1].Savings.Dollars, recs[i].Savings.Dollars)
		}
	}
	if len(recs) > DefaultThresholds.TopN {
		t.Fatalf("list exceeds top-N bound: %d > %d", len(recs), DefaultThresholds.TopN)
	}
}

func recIDs(recs []audit.Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return ids
}

func TestRecommendations_RoofGate(t *testing.T) {
	// Already at the R-49 target in a moderate climate: no roof candidate.
	b := baselineFor(audit.InputRecord{RoofR: 49, HDD65: 5000})
	if _, ok := findRec(Recommendations(b, SortByDollars, Thresholds{TopN: 8}), "roof_insulation"); ok {
		t.Fatalf("roof recommendation must not fire at the target R-value")
	}

	// The same roof in a cold climate chases the R-60 target instead.
	b = baselineFor(audit.InputRecord{RoofR: 50, HDD65: 7000})
	rec, ok := findRec(Recommendations(b, SortByDollars, Thresholds{TopN: 8}), "roof_insulation")
	if !ok {
		t.Fatalf("cold-climate roof at R-50 should still be upgradable to R-60")
	}
	if rec.Savings.HeatingLoadBtu <= 0 {
		t.Fatalf("roof savings should report avoided heating load, got %+v", rec.Savings)
	}
}

func TestRecommendations_HeatPumpSkippedWhenAlreadyHeatPump(t *testing.T) {
	b := baselineFor(audit.InputRecord{
		Heating: audit.HeatingSystem{Kind: audit.HeatPumpAirSource},
	})
	if _, ok := findRec(Recommendations(b, SortByDollars, Thresholds{TopN: 8}), "heat_pump_heating"); ok {
		t.Fatalf("heat-pump retrofit must be skipped for an existing heat pump")
	}
}

func TestRecommendations_CoolingGate(t *testing.T) {
	b := baselineFor(audit.InputRecord{Cooling: audit.CoolingSystem{Kind: audit.CoolNone}})
	if _, ok := findRec(Recommendations(b, SortByDollars, Thresholds{TopN: 8}), "cooling_upgrade"); ok {
		t.Fatalf("cooling upgrade must not fire without a cooling system")
	}

	b = baselineFor(audit.InputRecord{Cooling: audit.CoolingSystem{Kind: audit.CoolCentralAC, SEER: 21}})
	if _, ok := findRec(Recommendations(b, SortByDollars, Thresholds{TopN: 8}), "cooling_upgrade"); ok {
		t.Fatalf("cooling upgrade must not fire above the SEER gate")
	}

	b = baselineFor(audit.InputRecord{
		CDD65:   2500,
		Cooling: audit.CoolingSystem{Kind: audit.CoolCentralAC, SEER: 11},
	})
	if _, ok := findRec(Recommendations(b, SortByDollars, Thresholds{TopN: 8}), "cooling_upgrade"); !ok {
		t.Fatalf("cooling upgrade should fire for SEER 11 with real cooling load")
	}
}

func TestRecommendations_ImpactFilter(t *testing.T) {
	b := baselineFor(audit.InputRecord{})

	// Impossible thresholds on both axes: everything is filtered out.
	if recs := Recommendations(b, SortByDollars, Thresholds{MinDollars: 1e12, MinCO2Kg: 1e12, TopN: 8}); len(recs) != 0 {
		t.Fatalf("expected empty list under impossible thresholds, got %v", recIDs(recs))
	}

	// Clearing either axis is enough: keep the dollar bar impossible but the
	// CO2 bar trivial, and candidates return.
	recs := Recommendations(b, SortByDollars, Thresholds{MinDollars: 1e12, MinCO2Kg: 0.001, TopN: 8})
	if len(recs) == 0 {
		t.Fatalf("either-threshold rule: candidates clearing CO2 alone must be kept")
	}
}

func TestRecommendations_TopNBound(t *testing.T) {
	b := baselineFor(audit.InputRecord{YearBuilt: 1972})
	recs := Recommendations(b, SortByDollars, Thresholds{TopN: 3})
	if len(recs) > 3 {
		t.Fatalf("top-N bound violated: got %d", len(recs))
	}
}

func TestRecommendations_SortByCO2(t *testing.T) {
	b := baselineFor(audit.InputRecord{YearBuilt: 1972})
	recs := Recommendations(b, SortByCO2, DefaultThresholds)
	for i := 1; i < len(recs); i++ {
		if recs[i].Savings.CO2Kg > recs[i-1].Savings.CO2Kg {
			t.Fatalf("list not sorted by CO2 savings")
		}
	}
}

func TestRecommendations_BehavioralFlatFractions(t *testing.T) {
	b := baselineFor(audit.InputRecord{})
	recs := Recommendations(b, SortByDollars, Thresholds{TopN: 8})

	dhw, ok := findRec(recs, "dhw_conservation")
	if !ok {
		t.Fatalf("expected the no-cost DHW conservation candidate")
	}
	if want := b.DHWFuel.Scale(dhwConservationCut); dhw.Savings.Fuel != want {
		t.Fatalf("DHW conservation fuel = %+v, want flat %v%% of baseline %+v",
			dhw.Savings.Fuel, dhwConservationCut*100, want)
	}

	setback, ok := findRec(recs, "thermostat_setback")
	if !ok {
		t.Fatalf("expected the thermostat setback candidate")
	}
	if want := b.HeatingFuel.Scale(setbackHeatingCut); setback.Savings.Fuel != want {
		t.Fatalf("setback fuel = %+v, want flat %v%% of baseline", setback.Savings.Fuel, setbackHeatingCut*100)
	}
}

func TestRecommendations_SavingsNonNegativeFuel(t *testing.T) {
	b := baselineFor(audit.InputRecord{YearBuilt: 1972, HDD65: 8000})
	for _, rec := range Recommendations(b, SortByDollars, Thresholds{TopN: 8}) {
		f := rec.Savings.Fuel
		if f.ElectricityKWh < 0 || f.GasTherms < 0 || f.PropaneGal < 0 ||
			f.OilGal < 0 || f.WoodCords < 0 || f.PelletTons < 0 {
			t.Fatalf("%s: avoided-fuel breakdown has a negative field: %+v", rec.ID, f)
		}
	}
}

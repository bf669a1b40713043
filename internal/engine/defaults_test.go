package engine

import (
	"testing"

	audit "home_energy_audit"
)

func TestDefaultsForYear_EraBins(t *testing.T) {
	cases := []struct {
		year  int
		check func(EraDefaults) (float64, float64, string)
	}{
		{1975, func(e EraDefaults) (float64, float64, string) { return e.WallR, 9, "wall R" }},
		{1990, func(e EraDefaults) (float64, float64, string) { return e.RoofR, 30, "roof R" }},
		{2010, func(e EraDefaults) (float64, float64, string) { return e.WindowU, 0.35, "window U" }},
		{2022, func(e EraDefaults) (float64, float64, string) { return e.FloorR, 30, "floor R" }},
	}
	for _, c := range cases {
		got, want, name := c.check(DefaultsForYear(c.year))
		if got != want {
			t.Fatalf("year %d: %s = %v, want %v", c.year, name, got, want)
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	inputs := []audit.InputRecord{
		{}, // fully empty
		{YearBuilt: 1975, FloorAreaFt2: 2400, Stories: 2, Leakiness: "leaky"},
		{
			YearBuilt:    2020,
			FloorAreaFt2: 1500,
			Heating:      audit.HeatingSystem{Kind: audit.HeatPumpGround},
			WaterHeater:  audit.WaterHeater{Kind: audit.DHWElectricStorage},
			BlowerDoorACH50: 4,
		},
	}
	for i, in := range inputs {
		once := Resolve(in)
		twice := Resolve(audit.InputRecord(once))
		if once != twice {
			t.Fatalf("case %d: Resolve not idempotent:\nonce:  %+v\ntwice: %+v", i, once, twice)
		}
	}
}

func TestResolve_FillsEverythingFromEmpty(t *testing.T) {
	r := Resolve(audit.InputRecord{})

	if r.YearBuilt != 1990 {
		t.Fatalf("year built = %d, want 1990", r.YearBuilt)
	}
	if r.WallR != 13 || r.RoofR != 30 || r.FloorR != 19 || r.WindowU != 0.50 {
		t.Fatalf("era envelope defaults not applied: %+v", r)
	}
	if r.WallAreaFt2 <= 0 || r.RoofAreaFt2 <= 0 || r.WindowAreaFt2 <= 0 {
		t.Fatalf("geometry not derived: wall=%v roof=%v window=%v", r.WallAreaFt2, r.RoofAreaFt2, r.WindowAreaFt2)
	}
	if r.Heating.Kind != audit.HeatGasFurnace || r.Heating.AFUE != 0.92 {
		t.Fatalf("heating default = %+v, want gas furnace AFUE 0.92", r.Heating)
	}
	if r.Cooling.Kind != audit.CoolCentralAC || r.Cooling.SEER != 15 {
		t.Fatalf("cooling default = %+v, want central AC SEER 15", r.Cooling)
	}
	if r.WaterHeater.Kind != audit.DHWGasStorage || r.WaterHeater.UEF != 0.62 {
		t.Fatalf("water heater default = %+v, want gas storage UEF 0.62", r.WaterHeater)
	}
	if r.HDD65 != 5000 || r.CDD65 != 1000 || r.NFactor != 0.07 {
		t.Fatalf("climate defaults: hdd=%v cdd=%v nFactor=%v", r.HDD65, r.CDD65, r.NFactor)
	}
	if r.EmissionFactors.NaturalGas == 0 || r.Prices.Electricity == 0 {
		t.Fatalf("accounting factors not filled: %+v / %+v", r.EmissionFactors, r.Prices)
	}
}

func TestResolve_WindowOrientationSplit(t *testing.T) {
	r := Resolve(audit.InputRecord{FloorAreaFt2: 1000, WindowAreaFt2: 200})

	if r.WindowAreas.South != 60 || r.WindowAreas.North != 50 ||
		r.WindowAreas.East != 45 || r.WindowAreas.West != 45 {
		t.Fatalf("orientation split = %+v, want 60/50/45/45", r.WindowAreas)
	}
	if r.WindowAreaFt2 != 200 {
		t.Fatalf("window total = %v, want 200", r.WindowAreaFt2)
	}
}

func TestResolve_SuppliedOrientationsKept(t *testing.T) {
	r := Resolve(audit.InputRecord{
		WindowAreas: audit.OrientationValues{South: 100, North: 20},
	})
	if r.WindowAreas.South != 100 || r.WindowAreas.North != 20 || r.WindowAreas.East != 0 {
		t.Fatalf("supplied orientations must win: %+v", r.WindowAreas)
	}
	if r.WindowAreaFt2 != 120 {
		t.Fatalf("total must follow orientation sum, got %v", r.WindowAreaFt2)
	}
}

func TestResolve_SuppliedEfficiencyWinsOverDefault(t *testing.T) {
	r := Resolve(audit.InputRecord{
		Heating: audit.HeatingSystem{Kind: audit.HeatGasFurnace, AFUE: 0.80},
	})
	if r.Heating.AFUE != 0.80 {
		t.Fatalf("supplied AFUE = %v, want 0.80 kept", r.Heating.AFUE)
	}
	// Out-of-range supplied values are clamped, not kept.
	r = Resolve(audit.InputRecord{
		Heating: audit.HeatingSystem{Kind: audit.HeatGasFurnace, AFUE: 3},
	})
	if r.Heating.AFUE != 0.99 {
		t.Fatalf("oversized AFUE = %v, want clamped to 0.99", r.Heating.AFUE)
	}
}

func TestNaturalACH_Precedence(t *testing.T) {
	// Blower-door value wins and is converted through the n-factor.
	r := Resolve(audit.InputRecord{BlowerDoorACH50: 10, NFactor: 0.05, Leakiness: "leaky"})
	if got := NaturalACH(r); got != 0.5 {
		t.Fatalf("blower-door ACH = %v, want 10 × 0.05 = 0.5", got)
	}

	// Qualitative category when no test value exists.
	r = Resolve(audit.InputRecord{Leakiness: "average"})
	if got := NaturalACH(r); got != 0.4 {
		t.Fatalf("average category ACH = %v, want exactly 0.4", got)
	}

	// Era baseline when neither is supplied.
	r = Resolve(audit.InputRecord{YearBuilt: 1970})
	if got := NaturalACH(r); got != 0.60 {
		t.Fatalf("pre-1980 era ACH = %v, want 0.60", got)
	}
}

func TestResolve_OpaqueWallFloor(t *testing.T) {
	// Huge window area cannot shrink the opaque wall below 70% of gross.
	r := Resolve(audit.InputRecord{FloorAreaFt2: 900, Stories: 1, CeilingHeightFt: 8, WindowAreaFt2: 5000})
	gross := grossWallArea(900, 8, 1)
	if r.WallAreaFt2 < 0.70*gross-1e-9 {
		t.Fatalf("opaque wall = %v, want >= 70%% of gross %v", r.WallAreaFt2, gross)
	}
}

package engine

import (
	"fmt"
	"sort"

	audit "home_energy_audit"
)

// SortKey selects the ranking order for recommendations.
type SortKey string

const (
	SortByDollars SortKey = "dollars"
	SortByCO2     SortKey = "co2"
)

// Thresholds is the global impact filter and output bound. A candidate is
// kept when it clears either the dollar or the CO2 threshold.
type Thresholds struct {
	MinDollars float64
	MinCO2Kg   float64
	TopN       int
}

// DefaultThresholds keeps the list focused on materially useful retrofits.
var DefaultThresholds = Thresholds{MinDollars: 25, MinCO2Kg: 50, TopN: 8}

// Retrofit reference points.
const (
	roofTargetR         = 49.0
	roofTargetRCold     = 60.0
	coldClimateHDD      = 6000.0
	sealingTargetACH    = 0.25
	windowTargetU       = 0.30
	retrofitHeatPumpCOP = 3.2
	coolingTargetSEER   = 20.0
	coolingUpgradeBelow = 18.0
	hpwhReferenceCOP    = 2.5
	dhwConservationCut  = 0.20
	setbackHeatingCut   = 0.06
)

// Baseline bundles one evaluated record so every counterfactual is scored
// against the same numbers the caller saw.
type Baseline struct {
	Effective   audit.EffectiveRecord
	Loads       audit.Loads
	HeatingFuel audit.FuelBreakdown
	CoolingFuel audit.FuelBreakdown
	DHWFuel     audit.FuelBreakdown
}

// Recommendations evaluates the fixed candidate set against the baseline,
// drops low-impact results, and returns at most th.TopN entries ordered by
// the sort key. Total: an empty list is a valid outcome.
func Recommendations(b Baseline, key SortKey, th Thresholds) []audit.Recommendation {
	candidates := []func(Baseline) (audit.Recommendation, bool){
		recommendRoofInsulation,
		recommendAirSealing,
		recommendWindowUpgrade,
		recommendHeatPumpHeating,
		recommendCoolingUpgrade,
		recommendHeatPumpWaterHeater,
		recommendDHWConservation,
		recommendThermostatSetback,
	}

	var out []audit.Recommendation
	for _, gen := range candidates {
		rec, ok := gen(b)
		if !ok {
			continue
		}
		if rec.Savings.Dollars < th.MinDollars && rec.Savings.CO2Kg < th.MinCO2Kg {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if key == SortByCO2 {
			return out[i].Savings.CO2Kg > out[j].Savings.CO2Kg
		}
		return out[i].Savings.Dollars > out[j].Savings.Dollars
	})

	if th.TopN > 0 && len(out) > th.TopN {
		out = out[:th.TopN]
	}
	return out
}

// envelopeSavings scores a counterfactual that only changes the envelope:
// the same equipment serves the reduced (or shifted) loads.
func envelopeSavings(b Baseline, alt audit.EffectiveRecord) audit.Savings {
	altLoads := ComputeLoads(alt)
	altHeat := MapHeatingFuel(alt, altLoads.HeatingBtu)
	altCool := MapCoolingFuel(alt, altLoads.CoolingBtu)
	return diffSavings(b,
		Aggregate(b.HeatingFuel, b.CoolingFuel),
		Aggregate(altHeat, altCool),
		b.Loads.HeatingBtu-altLoads.HeatingBtu,
		b.Loads.CoolingBtu-altLoads.CoolingBtu,
	)
}

// diffSavings derives the avoided breakdown and its dollar/CO2 value from a
// before/after fuel pair. Dollars and CO2 are the net difference of totals,
// so a fuel switch that adds one carrier while removing another is valued
// honestly; the breakdown itself is the clamped avoided consumption.
func diffSavings(b Baseline, before, after audit.FuelBreakdown, heatBtu, coolBtu float64) audit.Savings {
	return audit.Savings{
		Fuel:           before.Sub(after),
		Dollars:        Cost(b.Effective, before).TotalDollars - Cost(b.Effective, after).TotalDollars,
		CO2Kg:          Emissions(b.Effective, before).TotalKg - Emissions(b.Effective, after).TotalKg,
		HeatingLoadBtu: nonNegativeLoad(heatBtu),
		CoolingLoadBtu: nonNegativeLoad(coolBtu),
	}
}

func recommendRoofInsulation(b Baseline) (audit.Recommendation, bool) {
	target := roofTargetR
	if b.Effective.HDD65 >= coldClimateHDD {
		target = roofTargetRCold
	}
	if b.Effective.RoofAreaFt2 <= 0 || b.Effective.RoofR >= target {
		return audit.Recommendation{}, false
	}
	alt := b.Effective
	alt.RoofR = target
	return audit.Recommendation{
		ID:       "roof_insulation",
		Category: audit.CategoryEnvelope,
		Title:    fmt.Sprintf("Insulate the attic to R-%.0f", target),
		Explanation: fmt.Sprintf(
			"The roof is modeled at R-%.0f; topping up attic insulation to R-%.0f cuts conductive losses through the largest single surface of the house.",
			b.Effective.RoofR, target),
		Savings: envelopeSavings(b, alt),
	}, true
}

func recommendAirSealing(b Baseline) (audit.Recommendation, bool) {
	if NaturalACH(b.Effective) <= sealingTargetACH {
		return audit.Recommendation{}, false
	}
	alt := b.Effective
	alt.BlowerDoorACH50 = 0
	alt.Leakiness = "tight"
	return audit.Recommendation{
		ID:       "air_sealing",
		Category: audit.CategoryEnvelope,
		Title:    "Air-seal the envelope",
		Explanation: fmt.Sprintf(
			"Natural infiltration is modeled at %.2f air changes per hour; sealing to %.2f ACH reduces the heated air that leaks out every hour.",
			NaturalACH(b.Effective), sealingTargetACH),
		Savings: envelopeSavings(b, alt),
	}, true
}

func recommendWindowUpgrade(b Baseline) (audit.Recommendation, bool) {
	if b.Effective.WindowU <= windowTargetU || b.Effective.WindowAreas.Sum() <= 0 {
		return audit.Recommendation{}, false
	}
	alt := b.Effective
	alt.WindowU = windowTargetU
	return audit.Recommendation{
		ID:       "window_upgrade",
		Category: audit.CategoryWindows,
		Title:    fmt.Sprintf("Upgrade windows to U-%.2f", windowTargetU),
		Explanation: fmt.Sprintf(
			"Average window U-factor is %.2f; replacement units at U-%.2f or better lose far less heat through the glazing.",
			b.Effective.WindowU, windowTargetU),
		Savings: envelopeSavings(b, alt),
	}, true
}

func recommendHeatPumpHeating(b Baseline) (audit.Recommendation, bool) {
	if b.Effective.Heating.IsHeatPump() || b.Loads.HeatingBtu <= 0 {
		return audit.Recommendation{}, false
	}
	alt := b.Effective
	alt.Heating = audit.HeatingSystem{Kind: audit.HeatPumpDuctless, COP: retrofitHeatPumpCOP}
	altFuel := MapHeatingFuel(alt, b.Loads.HeatingBtu)
	return audit.Recommendation{
		ID:       "heat_pump_heating",
		Category: audit.CategorySystem,
		Title:    "Replace the primary heating system with a heat pump",
		Explanation: fmt.Sprintf(
			"A modern heat pump delivers about %.1f units of heat per unit of electricity, versus burning fuel directly in the current system.",
			retrofitHeatPumpCOP),
		Savings: diffSavings(b, b.HeatingFuel, altFuel, 0, 0),
	}, true
}

func recommendCoolingUpgrade(b Baseline) (audit.Recommendation, bool) {
	c := b.Effective.Cooling
	if c.Kind == audit.CoolNone || b.Loads.CoolingBtu <= 0 {
		return audit.Recommendation{}, false
	}
	rng, ok := coolingSEER[c.Kind]
	if !ok || rng.clampDefault(c.SEER) >= coolingUpgradeBelow {
		return audit.Recommendation{}, false
	}
	alt := b.Effective
	alt.Cooling.SEER = coolingTargetSEER
	altFuel := MapCoolingFuel(alt, b.Loads.CoolingBtu)
	return audit.Recommendation{
		ID:       "cooling_upgrade",
		Category: audit.CategorySystem,
		Title:    fmt.Sprintf("Upgrade cooling to SEER %.0f", coolingTargetSEER),
		Explanation: fmt.Sprintf(
			"The cooling system is modeled at SEER %.0f; a SEER-%.0f unit moves the same heat with proportionally less electricity.",
			rng.clampDefault(c.SEER), coolingTargetSEER),
		Savings: diffSavings(b, b.CoolingFuel, altFuel, 0, 0),
	}, true
}

func recommendHeatPumpWaterHeater(b Baseline) (audit.Recommendation, bool) {
	if b.Effective.WaterHeater.Kind == audit.DHWHeatPump || b.DHWFuel.IsZero() {
		return audit.Recommendation{}, false
	}
	alt := b.Effective
	alt.WaterHeater = audit.WaterHeater{Kind: audit.DHWHeatPump, COP: hpwhReferenceCOP}
	altFuel := MapDHWFuel(alt)
	return audit.Recommendation{
		ID:       "heat_pump_water_heater",
		Category: audit.CategoryWaterHeating,
		Title:    "Switch to a heat-pump water heater",
		Explanation: fmt.Sprintf(
			"A heat-pump water heater at COP %.1f pulls most of its heat from the surrounding air instead of generating all of it.",
			hpwhReferenceCOP),
		Savings: diffSavings(b, b.DHWFuel, altFuel, 0, 0),
	}, true
}

// recommendDHWConservation applies a flat fractional discount to the
// already-computed hot-water fuel. Deliberately not re-derived from a
// physical mechanism; the flat fraction is the policy.
func recommendDHWConservation(b Baseline) (audit.Recommendation, bool) {
	if b.DHWFuel.IsZero() {
		return audit.Recommendation{}, false
	}
	saved := b.DHWFuel.Scale(dhwConservationCut)
	return audit.Recommendation{
		ID:       "dhw_conservation",
		Category: audit.CategoryBehavioral,
		Title:    "Use less hot water",
		Explanation: fmt.Sprintf(
			"Low-flow fixtures and shorter showers typically trim hot-water use around %.0f%% at no equipment cost.",
			dhwConservationCut*100),
		Savings: audit.Savings{
			Fuel:    saved,
			Dollars: Cost(b.Effective, saved).TotalDollars,
			CO2Kg:   Emissions(b.Effective, saved).TotalKg,
		},
	}, true
}

// recommendThermostatSetback applies the flat heating-load discount for a
// nighttime setback. Same flat-fraction policy as DHW conservation.
func recommendThermostatSetback(b Baseline) (audit.Recommendation, bool) {
	if b.Loads.HeatingBtu <= 0 {
		return audit.Recommendation{}, false
	}
	saved := b.HeatingFuel.Scale(setbackHeatingCut)
	return audit.Recommendation{
		ID:       "thermostat_setback",
		Category: audit.CategoryBehavioral,
		Title:    "Set the thermostat back at night",
		Explanation: fmt.Sprintf(
			"A scheduled nighttime setback typically shaves about %.0f%% off annual heating energy.",
			setbackHeatingCut*100),
		Savings: audit.Savings{
			Fuel:           saved,
			Dollars:        Cost(b.Effective, saved).TotalDollars,
			CO2Kg:          Emissions(b.Effective, saved).TotalKg,
			HeatingLoadBtu: setbackHeatingCut * b.Loads.HeatingBtu,
		},
	}, true
}

// Package engine implements the building-physics and energy-accounting core:
// fallback resolution of incomplete inputs, annual degree-day load modeling,
// equipment fuel mapping, emissions/cost accounting, and retrofit
// recommendation generation. Every exported function is total: malformed
// inputs are defaulted or clamped, never rejected.
package engine

import "math"

// Energy content per delivered unit of each carrier, in Btu.
const (
	BtuPerKWh        = 3412.0     // electricity, per kWh
	BtuPerTherm      = 100000.0   // natural gas, per therm
	BtuPerGalPropane = 91500.0    // propane, per gallon
	BtuPerGalOil     = 138500.0   // heating oil, per gallon
	BtuPerCordWood   = 20000000.0 // wood, per cord
	BtuPerTonPellets = 16500000.0 // pellets, per ton
)

// Physical constants for the load and DHW models.
const (
	// AirHeatFactor converts CFM of air exchange into Btu/hr·°F of
	// conductance (sensible heat capacity of standard air).
	AirHeatFactor = 1.08

	// WaterBtuPerGalF is the heat needed to raise one gallon of water 1°F.
	WaterBtuPerGalF = 8.34

	HoursPerDay = 24.0
	MinPerHour  = 60.0
	WhPerKWh    = 1000.0
)

// Minimum plausible geometry, applied before any volume or area math.
const (
	MinFloorAreaFt2    = 100.0
	MinCeilingHeightFt = 7.0
	MinStories         = 1.0
)

// clamp bounds x to [lo, hi]. Non-finite x collapses to lo.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// clampFraction bounds x to [0, 1].
func clampFraction(x float64) float64 {
	return clamp(x, 0, 1)
}

// floorAt returns x, raised to min when below it or not finite.
func floorAt(x, min float64) float64 {
	if !isPresent(x) || x < min {
		return min
	}
	return x
}

// isPresent reports whether a numeric input counts as supplied: finite and
// strictly positive. Absent values fall through to resolver defaults.
func isPresent(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x > 0
}

// pick returns x when supplied, otherwise the default.
func pick(x, def float64) float64 {
	if isPresent(x) {
		return x
	}
	return def
}

// UFromR converts an R-value to a U-factor. R <= 0 (or non-finite) yields
// zero conductance, modeling an infinitely resistive path rather than a
// fault.
func UFromR(r float64) float64 {
	if !isPresent(r) {
		return 0
	}
	return 1 / r
}

// HouseVolume returns conditioned volume in ft³ with each dimension floored
// at its plausible minimum.
func HouseVolume(floorAreaFt2, ceilingHeightFt, stories float64) float64 {
	return floorAt(floorAreaFt2, MinFloorAreaFt2) *
		floorAt(ceilingHeightFt, MinCeilingHeightFt) *
		floorAt(stories, MinStories)
}

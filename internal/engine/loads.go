package engine

import (
	audit "home_energy_audit"
)

// EnvelopeUA sums the conductance of every conductive path through the
// shell, in Btu/hr·°F: opaque wall/roof/floor via 1/R·Area, doors and
// glazing via U·Area. An R of zero or below contributes nothing (treated as
// an infinitely resistive path).
func EnvelopeUA(r audit.EffectiveRecord) float64 {
	ua := UFromR(r.WallR)*r.WallAreaFt2 +
		UFromR(r.RoofR)*r.RoofAreaFt2 +
		UFromR(r.FloorR)*r.FloorOverUncondFt2 +
		r.DoorU*r.DoorAreaFt2 +
		r.WindowU*r.WindowAreas.Sum()
	return nonNegativeUA(ua)
}

// InfiltrationUA converts natural air exchange into an equivalent
// conductance: ACH × volume → CFM → Btu/hr·°F via the air heat factor.
func InfiltrationUA(r audit.EffectiveRecord) float64 {
	volume := HouseVolume(r.FloorAreaFt2, r.CeilingHeightFt, r.Stories)
	cfm := NaturalACH(r) * volume / MinPerHour
	return nonNegativeUA(AirHeatFactor * cfm)
}

// TotalUA is the whole-house conductance the degree-day loads scale with.
func TotalUA(r audit.EffectiveRecord) float64 {
	return EnvelopeUA(r) + InfiltrationUA(r)
}

// SolarGain is the annual heat admitted through glazing, Btu/yr: per
// orientation, incident solar × window area × SHGC × shading, summed.
func SolarGain(r audit.EffectiveRecord) float64 {
	shgc := clampFraction(r.WindowSHGC)
	shade := clampFraction(r.ShadingFactor)
	gain := r.SolarIncident.South*r.WindowAreas.South +
		r.SolarIncident.North*r.WindowAreas.North +
		r.SolarIncident.East*r.WindowAreas.East +
		r.SolarIncident.West*r.WindowAreas.West
	gain *= shgc * shade
	if gain < 0 {
		return 0
	}
	return gain
}

// ComputeLoads produces the annual heating and cooling loads. Base loads are
// UA × degree-days × 24; solar gain then offsets heating (down to zero, never
// below) and adds to cooling.
func ComputeLoads(r audit.EffectiveRecord) audit.Loads {
	ua := TotalUA(r)

	baseHeating := nonNegativeLoad(r.HDD65 * HoursPerDay * ua)
	baseCooling := nonNegativeLoad(r.CDD65 * HoursPerDay * ua)
	solar := SolarGain(r)

	heating := nonNegativeLoad(baseHeating - clampFraction(r.SolarHeatFraction)*solar)
	cooling := nonNegativeLoad(baseCooling + clampFraction(r.SolarCoolFraction)*solar)

	return audit.Loads{
		BaseHeatingBtu: baseHeating,
		BaseCoolingBtu: baseCooling,
		SolarGainBtu:   solar,
		HeatingBtu:     heating,
		CoolingBtu:     cooling,
	}
}

func nonNegativeUA(ua float64) float64 {
	if ua < 0 {
		return 0
	}
	return ua
}

func nonNegativeLoad(btu float64) float64 {
	if btu < 0 {
		return 0
	}
	return btu
}

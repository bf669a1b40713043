package engine

import (
	audit "home_energy_audit"
)

// MapHeatingFuel converts a delivered heating load (Btu/yr) into annual fuel
// per carrier. The efficiency parameter is clamped to the kind's plausible
// range before dividing; an unrecognized kind consumes nothing.
func MapHeatingFuel(r audit.EffectiveRecord, loadBtu float64) audit.FuelBreakdown {
	if loadBtu <= 0 {
		return audit.FuelBreakdown{}
	}
	h := r.Heating

	switch h.Kind {
	case audit.HeatGasFurnace, audit.HeatGasBoiler:
		afue := heatingAFUE[h.Kind].clampDefault(h.AFUE)
		return audit.FuelBreakdown{GasTherms: loadBtu / (afue * BtuPerTherm)}

	case audit.HeatPropaneFurnace:
		afue := heatingAFUE[h.Kind].clampDefault(h.AFUE)
		return audit.FuelBreakdown{PropaneGal: loadBtu / (afue * BtuPerGalPropane)}

	case audit.HeatOilFurnace, audit.HeatOilBoiler:
		afue := heatingAFUE[h.Kind].clampDefault(h.AFUE)
		return audit.FuelBreakdown{OilGal: loadBtu / (afue * BtuPerGalOil)}

	case audit.HeatElectricFurnace, audit.HeatElectricBaseboard, audit.HeatElectricBoiler:
		// Resistance heat converts at exactly 100%.
		return audit.FuelBreakdown{ElectricityKWh: loadBtu / BtuPerKWh}

	case audit.HeatPumpAirSource, audit.HeatPumpDuctless, audit.HeatPumpGround:
		cop := heatingCOP[h.Kind].clampDefault(h.COP)
		return audit.FuelBreakdown{ElectricityKWh: loadBtu / (cop * BtuPerKWh)}

	case audit.HeatWoodStove:
		eff := stoveEfficiency[h.Kind].clampDefault(h.Efficiency)
		return audit.FuelBreakdown{WoodCords: loadBtu / (eff * BtuPerCordWood)}

	case audit.HeatPelletStove:
		eff := stoveEfficiency[h.Kind].clampDefault(h.Efficiency)
		return audit.FuelBreakdown{PelletTons: loadBtu / (eff * BtuPerTonPellets)}

	default:
		return audit.FuelBreakdown{}
	}
}

// MapCoolingFuel converts a cooling load (Btu/yr) into electricity. SEER is
// Btu per watt-hour by convention, so load/SEER is Wh and a further /1000
// gives kWh. "none" cooling consumes nothing regardless of load.
func MapCoolingFuel(r audit.EffectiveRecord, loadBtu float64) audit.FuelBreakdown {
	if loadBtu <= 0 || r.Cooling.Kind == audit.CoolNone {
		return audit.FuelBreakdown{}
	}
	rng, ok := coolingSEER[r.Cooling.Kind]
	if !ok {
		return audit.FuelBreakdown{}
	}
	seer := rng.clampDefault(r.Cooling.SEER)
	return audit.FuelBreakdown{ElectricityKWh: loadBtu / seer / WhPerKWh}
}

// Minimum temperature rise used for the DHW load, guarding against inlet and
// setpoint values that are nearly equal.
const minDHWTempRiseF = 10.0

// DHWLoad is the annual delivered hot-water load in Btu/yr:
// 8.34 × daily gallons × temperature rise × days.
func DHWLoad(r audit.EffectiveRecord) float64 {
	galPerDay := r.Occupants * r.GalPerPersonDay
	rise := r.DHWSetpointF - r.DHWInletF
	if rise < minDHWTempRiseF {
		rise = minDHWTempRiseF
	}
	return nonNegativeLoad(WaterBtuPerGalF * galPerDay * rise * r.DHWDaysPerYear)
}

// MapDHWFuel computes the annual hot-water load and converts it into fuel by
// water-heater kind. Storage and tankless units divide by UEF, the heat-pump
// water heater by COP; an unrecognized kind consumes nothing.
func MapDHWFuel(r audit.EffectiveRecord) audit.FuelBreakdown {
	loadBtu := DHWLoad(r)
	if loadBtu <= 0 {
		return audit.FuelBreakdown{}
	}
	w := r.WaterHeater

	switch w.Kind {
	case audit.DHWGasStorage, audit.DHWGasTankless:
		uef := dhwUEF[w.Kind].clampDefault(w.UEF)
		return audit.FuelBreakdown{GasTherms: loadBtu / (uef * BtuPerTherm)}

	case audit.DHWPropaneStorage:
		uef := dhwUEF[w.Kind].clampDefault(w.UEF)
		return audit.FuelBreakdown{PropaneGal: loadBtu / (uef * BtuPerGalPropane)}

	case audit.DHWOilStorage:
		uef := dhwUEF[w.Kind].clampDefault(w.UEF)
		return audit.FuelBreakdown{OilGal: loadBtu / (uef * BtuPerGalOil)}

	case audit.DHWElectricStorage, audit.DHWElectricTankless:
		uef := dhwUEF[w.Kind].clampDefault(w.UEF)
		return audit.FuelBreakdown{ElectricityKWh: loadBtu / (uef * BtuPerKWh)}

	case audit.DHWHeatPump:
		cop := dhwCOP.clampDefault(w.COP)
		return audit.FuelBreakdown{ElectricityKWh: loadBtu / (cop * BtuPerKWh)}

	default:
		return audit.FuelBreakdown{}
	}
}

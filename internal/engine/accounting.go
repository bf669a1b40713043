package engine

import (
	audit "home_energy_audit"
)

// Aggregate sums any number of fuel breakdowns element-wise.
func Aggregate(breakdowns ...audit.FuelBreakdown) audit.FuelBreakdown {
	var total audit.FuelBreakdown
	for _, b := range breakdowns {
		total = total.Add(b)
	}
	return total
}

// carrierAmounts pairs each carrier name with its quantity, in display order.
func carrierAmounts(f audit.FuelBreakdown) []struct {
	carrier string
	amount  float64
} {
	return []struct {
		carrier string
		amount  float64
	}{
		{audit.CarrierElectricity, f.ElectricityKWh},
		{audit.CarrierNaturalGas, f.GasTherms},
		{audit.CarrierPropane, f.PropaneGal},
		{audit.CarrierOil, f.OilGal},
		{audit.CarrierWood, f.WoodCords},
		{audit.CarrierPellets, f.PelletTons},
	}
}

func factorFor(c audit.CarrierFactors, carrier string) float64 {
	switch carrier {
	case audit.CarrierElectricity:
		return c.Electricity
	case audit.CarrierNaturalGas:
		return c.NaturalGas
	case audit.CarrierPropane:
		return c.Propane
	case audit.CarrierOil:
		return c.Oil
	case audit.CarrierWood:
		return c.Wood
	case audit.CarrierPellets:
		return c.Pellets
	}
	return 0
}

// Emissions converts a fuel breakdown into annual kg CO2e using the
// effective record's per-unit factors, with a per-carrier split for display.
func Emissions(r audit.EffectiveRecord, f audit.FuelBreakdown) audit.EmissionsResult {
	res := audit.EmissionsResult{ByCarrier: make(map[string]float64, len(audit.Carriers))}
	for _, ca := range carrierAmounts(f) {
		kg := ca.amount * factorFor(r.EmissionFactors, ca.carrier)
		res.ByCarrier[ca.carrier] = kg
		res.TotalKg += kg
	}
	return res
}

// Cost converts a fuel breakdown into annual dollars using the effective
// record's unit prices, with a per-carrier split.
func Cost(r audit.EffectiveRecord, f audit.FuelBreakdown) audit.CostResult {
	res := audit.CostResult{ByCarrier: make(map[string]float64, len(audit.Carriers))}
	for _, ca := range carrierAmounts(f) {
		d := ca.amount * factorFor(r.Prices, ca.carrier)
		res.ByCarrier[ca.carrier] = d
		res.TotalDollars += d
	}
	return res
}

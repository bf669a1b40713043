package engine

import (
	"math"
	"strings"

	audit "home_energy_audit"
)

// EraDefaults are the envelope assumptions for one construction era.
type EraDefaults struct {
	WallR      float64 `json:"wall_r"`
	RoofR      float64 `json:"roof_r"`
	FloorR     float64 `json:"floor_r"`
	WindowU    float64 `json:"window_u"`
	NaturalACH float64 `json:"natural_ach"`
}

// Construction-era envelope table. Four bins; the resolver picks one by
// year built and uses it for any envelope value the caller left out.
var (
	eraPre1980 = EraDefaults{WallR: 9, RoofR: 19, FloorR: 11, WindowU: 0.60, NaturalACH: 0.60}
	era1980s   = EraDefaults{WallR: 13, RoofR: 30, FloorR: 19, WindowU: 0.50, NaturalACH: 0.45}
	era2000s   = EraDefaults{WallR: 15, RoofR: 38, FloorR: 25, WindowU: 0.35, NaturalACH: 0.35}
	eraModern  = EraDefaults{WallR: 21, RoofR: 49, FloorR: 30, WindowU: 0.30, NaturalACH: 0.25}
)

// DefaultsForYear returns the era bin for a construction year. Unknown years
// fall into the 1980–1999 bin, the median of the housing stock.
func DefaultsForYear(year int) EraDefaults {
	switch {
	case year <= 0:
		return era1980s
	case year < 1980:
		return eraPre1980
	case year < 2000:
		return era1980s
	case year < 2016:
		return era2000s
	default:
		return eraModern
	}
}

// effRange is a kind-based efficiency default with its clamp bounds.
type effRange struct {
	def, lo, hi float64
}

// clampDefault resolves an efficiency: the supplied value wins when present,
// and either way the result is clamped to the kind's plausible range.
func (e effRange) clampDefault(supplied float64) float64 {
	return clamp(pick(supplied, e.def), e.lo, e.hi)
}

// Kind-based equipment efficiency tables. An explicitly supplied value
// always wins over the default; both are clamped to the same range.
var heatingAFUE = map[audit.HeatingKind]effRange{
	audit.HeatGasFurnace:     {0.92, 0.50, 0.99},
	audit.HeatGasBoiler:      {0.88, 0.50, 0.99},
	audit.HeatPropaneFurnace: {0.90, 0.50, 0.99},
	audit.HeatOilFurnace:     {0.83, 0.50, 0.99},
	audit.HeatOilBoiler:      {0.84, 0.50, 0.99},
}

var heatingCOP = map[audit.HeatingKind]effRange{
	audit.HeatPumpAirSource: {2.8, 1.0, 5.0},
	audit.HeatPumpDuctless:  {3.2, 1.0, 6.0},
	audit.HeatPumpGround:    {3.8, 1.5, 8.0},
}

var stoveEfficiency = map[audit.HeatingKind]effRange{
	audit.HeatWoodStove:   {0.65, 0.50, 0.99},
	audit.HeatPelletStove: {0.78, 0.50, 0.99},
}

var coolingSEER = map[audit.CoolingKind]effRange{
	audit.CoolCentralAC: {15, 8, 40},
	audit.CoolRoomAC:    {10, 8, 40},
	audit.CoolHeatPump:  {16, 8, 40},
}

var dhwUEF = map[audit.WaterHeaterKind]effRange{
	audit.DHWGasStorage:       {0.62, 0.45, 0.99},
	audit.DHWGasTankless:      {0.90, 0.45, 0.99},
	audit.DHWPropaneStorage:   {0.60, 0.45, 0.99},
	audit.DHWOilStorage:       {0.55, 0.45, 0.99},
	audit.DHWElectricStorage:  {0.92, 0.45, 0.99},
	audit.DHWElectricTankless: {0.98, 0.45, 0.99},
}

var dhwCOP = effRange{2.5, 1.0, 4.5}

// Fixed fallbacks outside the era table.
const (
	defaultYearBuilt    = 1990
	defaultFloorAreaFt2 = 1800.0
	defaultCeilingFt    = 8.0
	defaultStories      = 1.0
	defaultFoundation   = "slab"

	defaultDoorU       = 0.35
	defaultDoorAreaFt2 = 42.0 // two entry doors
	windowToWallRatio  = 0.15
	minOpaqueWallShare = 0.70

	defaultSHGC          = 0.55
	defaultShading       = 0.70
	defaultSolarHeatFrac = 0.60
	defaultSolarCoolFrac = 0.70

	defaultHDD65   = 5000.0
	defaultCDD65   = 1000.0
	defaultNFactor = 0.07
	nFactorMin     = 0.03
	nFactorMax     = 0.20

	defaultOccupants    = 3.0
	defaultGalPerPerson = 17.0
	defaultDHWSetpoint  = 120.0
	defaultDHWInlet     = 55.0
	defaultDHWDays      = 365.0
)

// South-biased distribution applied when no per-orientation window areas are
// supplied.
var windowShares = audit.OrientationValues{South: 0.30, North: 0.25, East: 0.225, West: 0.225}

// Annual incident solar on vertical glazing, Btu/ft²·yr.
var defaultSolarIncident = audit.OrientationValues{South: 220000, North: 120000, East: 160000, West: 160000}

// Qualitative leakiness categories, natural air changes per hour.
var leakinessACH = map[string]float64{
	"tight":   0.25,
	"average": 0.40,
	"leaky":   0.60,
}

// Default per-unit emission factors (kg CO2e) and retail prices ($), in
// FuelBreakdown units. Wood and pellet factors are the net non-biogenic
// share, not gross combustion CO2.
var (
	defaultEmissionFactors = audit.CarrierFactors{
		Electricity: 0.40, NaturalGas: 5.30, Propane: 5.75,
		Oil: 10.21, Wood: 60, Pellets: 50,
	}
	defaultPrices = audit.CarrierFactors{
		Electricity: 0.16, NaturalGas: 1.30, Propane: 2.80,
		Oil: 3.90, Wood: 280, Pellets: 300,
	}
)

// Resolve fills every field the load model and fuel mapper read, producing a
// complete EffectiveRecord from a possibly sparse input. It is total (cannot
// fail) and idempotent: resolving an already-resolved record changes
// nothing.
func Resolve(in audit.InputRecord) audit.EffectiveRecord {
	r := in

	if r.YearBuilt <= 0 {
		r.YearBuilt = defaultYearBuilt
	}
	era := DefaultsForYear(r.YearBuilt)

	resolveGeometry(&r)
	resolveEnvelope(&r, era)
	resolveWindows(&r)
	resolveSolar(&r)
	resolveInfiltration(&r, era)
	resolveEquipment(&r)
	resolveDHWUsage(&r)
	resolveFactors(&r)

	r.HDD65 = pick(r.HDD65, defaultHDD65)
	r.CDD65 = pick(r.CDD65, defaultCDD65)

	return audit.EffectiveRecord(r)
}

func resolveGeometry(r *audit.InputRecord) {
	r.FloorAreaFt2 = floorAt(pick(r.FloorAreaFt2, defaultFloorAreaFt2), MinFloorAreaFt2)
	r.Stories = floorAt(pick(r.Stories, defaultStories), MinStories)
	r.CeilingHeightFt = floorAt(pick(r.CeilingHeightFt, defaultCeilingFt), MinCeilingHeightFt)
	if r.FoundationType == "" {
		r.FoundationType = defaultFoundation
	}
	r.DoorU = pick(r.DoorU, defaultDoorU)
	r.DoorAreaFt2 = pick(r.DoorAreaFt2, defaultDoorAreaFt2)
}

func resolveEnvelope(r *audit.InputRecord, era EraDefaults) {
	r.WallR = pick(r.WallR, era.WallR)
	r.RoofR = pick(r.RoofR, era.RoofR)
	r.FloorR = pick(r.FloorR, era.FloorR)
	r.WindowU = pick(r.WindowU, era.WindowU)
	r.WindowSHGC = clampFraction(pick(r.WindowSHGC, defaultSHGC))

	footprint := r.FloorAreaFt2 / r.Stories
	grossWall := grossWallArea(footprint, r.CeilingHeightFt, r.Stories)

	if !isPresent(r.WindowAreaFt2) && r.WindowAreas.Sum() <= 0 {
		r.WindowAreaFt2 = windowToWallRatio * grossWall
	}

	winTotal := r.WindowAreaFt2
	if s := r.WindowAreas.Sum(); s > 0 {
		winTotal = s
	}
	if !isPresent(r.WallAreaFt2) {
		opaque := grossWall - winTotal - r.DoorAreaFt2
		r.WallAreaFt2 = floorAt(opaque, minOpaqueWallShare*grossWall)
	}
	if !isPresent(r.RoofAreaFt2) {
		r.RoofAreaFt2 = footprint
	}
	// Floor over unconditioned space legitimately defaults to zero (slab or
	// conditioned basement); no fill.
	if r.FloorOverUncondFt2 < 0 {
		r.FloorOverUncondFt2 = 0
	}
}

// grossWallArea estimates gross exterior wall from a square footprint.
func grossWallArea(footprintFt2, heightFt, stories float64) float64 {
	side := math.Sqrt(footprintFt2)
	perimeter := 4 * side
	return perimeter * heightFt * stories
}

func resolveWindows(r *audit.InputRecord) {
	if r.WindowAreas.Sum() <= 0 {
		total := r.WindowAreaFt2
		r.WindowAreas = audit.OrientationValues{
			South: windowShares.South * total,
			North: windowShares.North * total,
			East:  windowShares.East * total,
			West:  windowShares.West * total,
		}
	}
	// The orientation split is authoritative once present; keep the total in
	// step with it so conduction and solar see the same glazing.
	r.WindowAreaFt2 = r.WindowAreas.Sum()
}

func resolveSolar(r *audit.InputRecord) {
	if r.SolarIncident.South <= 0 {
		r.SolarIncident.South = defaultSolarIncident.South
	}
	if r.SolarIncident.North <= 0 {
		r.SolarIncident.North = defaultSolarIncident.North
	}
	if r.SolarIncident.East <= 0 {
		r.SolarIncident.East = defaultSolarIncident.East
	}
	if r.SolarIncident.West <= 0 {
		r.SolarIncident.West = defaultSolarIncident.West
	}
	r.ShadingFactor = clampFraction(pick(r.ShadingFactor, defaultShading))
	r.SolarHeatFraction = clampFraction(pick(r.SolarHeatFraction, defaultSolarHeatFrac))
	r.SolarCoolFraction = clampFraction(pick(r.SolarCoolFraction, defaultSolarCoolFrac))
}

func resolveInfiltration(r *audit.InputRecord, era EraDefaults) {
	r.NFactor = clamp(pick(r.NFactor, defaultNFactor), nFactorMin, nFactorMax)
	if r.BlowerDoorACH50 < 0 {
		r.BlowerDoorACH50 = 0
	}
	r.Leakiness = strings.ToLower(strings.TrimSpace(r.Leakiness))
	if _, ok := leakinessACH[r.Leakiness]; !ok {
		r.Leakiness = ""
	}
}

// NaturalACH resolves the natural infiltration rate with the precedence the
// load model relies on: blower-door test first, then the qualitative
// category, then the construction-era baseline.
func NaturalACH(r audit.EffectiveRecord) float64 {
	if isPresent(r.BlowerDoorACH50) {
		return r.BlowerDoorACH50 * clamp(r.NFactor, nFactorMin, nFactorMax)
	}
	if ach, ok := leakinessACH[r.Leakiness]; ok {
		return ach
	}
	return DefaultsForYear(r.YearBuilt).NaturalACH
}

func resolveEquipment(r *audit.InputRecord) {
	if r.Heating.Kind == "" {
		r.Heating.Kind = audit.HeatGasFurnace
	}
	if e, ok := heatingAFUE[r.Heating.Kind]; ok {
		r.Heating.AFUE = e.clampDefault(r.Heating.AFUE)
	}
	if e, ok := heatingCOP[r.Heating.Kind]; ok {
		r.Heating.COP = e.clampDefault(r.Heating.COP)
	}
	if e, ok := stoveEfficiency[r.Heating.Kind]; ok {
		r.Heating.Efficiency = e.clampDefault(r.Heating.Efficiency)
	}

	if r.Cooling.Kind == "" {
		r.Cooling.Kind = audit.CoolCentralAC
	}
	if e, ok := coolingSEER[r.Cooling.Kind]; ok {
		r.Cooling.SEER = e.clampDefault(r.Cooling.SEER)
	}

	if r.WaterHeater.Kind == "" {
		r.WaterHeater.Kind = audit.DHWGasStorage
	}
	if e, ok := dhwUEF[r.WaterHeater.Kind]; ok {
		r.WaterHeater.UEF = e.clampDefault(r.WaterHeater.UEF)
	}
	if r.WaterHeater.Kind == audit.DHWHeatPump {
		r.WaterHeater.COP = dhwCOP.clampDefault(r.WaterHeater.COP)
	}
}

func resolveDHWUsage(r *audit.InputRecord) {
	r.Occupants = pick(r.Occupants, defaultOccupants)
	r.GalPerPersonDay = pick(r.GalPerPersonDay, defaultGalPerPerson)
	r.DHWSetpointF = pick(r.DHWSetpointF, defaultDHWSetpoint)
	r.DHWInletF = pick(r.DHWInletF, defaultDHWInlet)
	r.DHWDaysPerYear = pick(r.DHWDaysPerYear, defaultDHWDays)
}

func resolveFactors(r *audit.InputRecord) {
	r.EmissionFactors = fillFactors(r.EmissionFactors, defaultEmissionFactors)
	r.Prices = fillFactors(r.Prices, defaultPrices)
}

func fillFactors(given, def audit.CarrierFactors) audit.CarrierFactors {
	return audit.CarrierFactors{
		Electricity: pick(given.Electricity, def.Electricity),
		NaturalGas:  pick(given.NaturalGas, def.NaturalGas),
		Propane:     pick(given.Propane, def.Propane),
		Oil:         pick(given.Oil, def.Oil),
		Wood:        pick(given.Wood, def.Wood),
		Pellets:     pick(given.Pellets, def.Pellets),
	}
}

package home_energy_audit

import "time"

// Energy carriers the estimator accounts for.
const (
	CarrierElectricity = "electricity"
	CarrierNaturalGas  = "natural_gas"
	CarrierPropane     = "propane"
	CarrierOil         = "oil"
	CarrierWood        = "wood"
	CarrierPellets     = "pellets"
)

// Carriers lists every carrier in display order.
var Carriers = []string{
	CarrierElectricity,
	CarrierNaturalGas,
	CarrierPropane,
	CarrierOil,
	CarrierWood,
	CarrierPellets,
}

// FuelBreakdown is annual consumption per carrier: kWh for electricity,
// therms for gas, gallons for propane/oil, cords for wood, tons for pellets.
// All fields are >= 0.
type FuelBreakdown struct {
	ElectricityKWh float64 `json:"electricity_kwh"`
	GasTherms      float64 `json:"gas_therms"`
	PropaneGal     float64 `json:"propane_gal"`
	OilGal         float64 `json:"oil_gal"`
	WoodCords      float64 `json:"wood_cords"`
	PelletTons     float64 `json:"pellet_tons"`
}

// Add returns the element-wise sum of two breakdowns.
func (f FuelBreakdown) Add(o FuelBreakdown) FuelBreakdown {
	return FuelBreakdown{
		ElectricityKWh: f.ElectricityKWh + o.ElectricityKWh,
		GasTherms:      f.GasTherms + o.GasTherms,
		PropaneGal:     f.PropaneGal + o.PropaneGal,
		OilGal:         f.OilGal + o.OilGal,
		WoodCords:      f.WoodCords + o.WoodCords,
		PelletTons:     f.PelletTons + o.PelletTons,
	}
}

// Sub returns f minus o, with every field clamped at zero.
func (f FuelBreakdown) Sub(o FuelBreakdown) FuelBreakdown {
	return FuelBreakdown{
		ElectricityKWh: nonNegative(f.ElectricityKWh - o.ElectricityKWh),
		GasTherms:      nonNegative(f.GasTherms - o.GasTherms),
		PropaneGal:     nonNegative(f.PropaneGal - o.PropaneGal),
		OilGal:         nonNegative(f.OilGal - o.OilGal),
		WoodCords:      nonNegative(f.WoodCords - o.WoodCords),
		PelletTons:     nonNegative(f.PelletTons - o.PelletTons),
	}
}

// Scale multiplies every field by k.
func (f FuelBreakdown) Scale(k float64) FuelBreakdown {
	return FuelBreakdown{
		ElectricityKWh: f.ElectricityKWh * k,
		GasTherms:      f.GasTherms * k,
		PropaneGal:     f.PropaneGal * k,
		OilGal:         f.OilGal * k,
		WoodCords:      f.WoodCords * k,
		PelletTons:     f.PelletTons * k,
	}
}

// IsZero reports whether every carrier quantity is zero.
func (f FuelBreakdown) IsZero() bool {
	return f == FuelBreakdown{}
}

func nonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// CarrierFactors holds one per-unit factor per carrier (kg CO2e/unit for
// emissions, $/unit for prices). Units match FuelBreakdown's.
type CarrierFactors struct {
	Electricity float64 `json:"electricity"`
	NaturalGas  float64 `json:"natural_gas"`
	Propane     float64 `json:"propane"`
	Oil         float64 `json:"oil"`
	Wood        float64 `json:"wood"`
	Pellets     float64 `json:"pellets"`
}

// OrientationValues holds one value per cardinal window orientation
// (window areas in ft², or incident solar in Btu/ft²·yr).
type OrientationValues struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Sum returns the total across all four orientations.
func (o OrientationValues) Sum() float64 {
	return o.South + o.North + o.East + o.West
}

// Heating equipment kinds.
type HeatingKind string

const (
	HeatGasFurnace        HeatingKind = "gas_furnace"
	HeatGasBoiler         HeatingKind = "gas_boiler"
	HeatPropaneFurnace    HeatingKind = "propane_furnace"
	HeatOilFurnace        HeatingKind = "oil_furnace"
	HeatOilBoiler         HeatingKind = "oil_boiler"
	HeatElectricFurnace   HeatingKind = "electric_furnace"
	HeatElectricBaseboard HeatingKind = "electric_baseboard"
	HeatElectricBoiler    HeatingKind = "electric_boiler"
	HeatPumpAirSource     HeatingKind = "heat_pump_air"
	HeatPumpDuctless      HeatingKind = "heat_pump_ductless"
	HeatPumpGround        HeatingKind = "heat_pump_ground"
	HeatWoodStove         HeatingKind = "wood_stove"
	HeatPelletStove       HeatingKind = "pellet_stove"
)

// HeatingSystem is a tagged variant: which of AFUE/COP/Efficiency is
// meaningful depends on Kind (AFUE for combustion, COP for heat pumps,
// Efficiency for solid-fuel stoves).
type HeatingSystem struct {
	Kind       HeatingKind `json:"kind"`
	AFUE       float64     `json:"afue,omitempty"`
	COP        float64     `json:"cop,omitempty"`
	Efficiency float64     `json:"efficiency,omitempty"`
}

// IsHeatPump reports whether the kind is any heat-pump variant.
func (h HeatingSystem) IsHeatPump() bool {
	switch h.Kind {
	case HeatPumpAirSource, HeatPumpDuctless, HeatPumpGround:
		return true
	}
	return false
}

// Cooling equipment kinds.
type CoolingKind string

const (
	CoolNone      CoolingKind = "none"
	CoolCentralAC CoolingKind = "central_ac"
	CoolRoomAC    CoolingKind = "room_ac"
	CoolHeatPump  CoolingKind = "heat_pump"
)

type CoolingSystem struct {
	Kind CoolingKind `json:"kind"`
	SEER float64     `json:"seer,omitempty"`
}

// Water-heater kinds.
type WaterHeaterKind string

const (
	DHWGasStorage       WaterHeaterKind = "gas_storage"
	DHWGasTankless      WaterHeaterKind = "gas_tankless"
	DHWPropaneStorage   WaterHeaterKind = "propane_storage"
	DHWOilStorage       WaterHeaterKind = "oil_storage"
	DHWElectricStorage  WaterHeaterKind = "electric_storage"
	DHWElectricTankless WaterHeaterKind = "electric_tankless"
	DHWHeatPump         WaterHeaterKind = "heat_pump"
)

// WaterHeater is a tagged variant: UEF for combustion/resistance storage and
// tankless units, COP for heat-pump water heaters.
type WaterHeater struct {
	Kind WaterHeaterKind `json:"kind"`
	UEF  float64         `json:"uef,omitempty"`
	COP  float64         `json:"cop,omitempty"`
}

// InputRecord is the raw, possibly-incomplete home description supplied by
// the caller. Any numeric field that is non-finite or <= 0 is treated as
// absent and resolved from defaults; unknown JSON fields are ignored.
type InputRecord struct {
	// Geometry
	YearBuilt       int     `json:"year_built,omitempty"`
	FloorAreaFt2    float64 `json:"floor_area_ft2,omitempty"`
	Stories         float64 `json:"stories,omitempty"`
	CeilingHeightFt float64 `json:"ceiling_height_ft,omitempty"`
	FoundationType  string  `json:"foundation_type,omitempty"` // slab | crawlspace | basement

	// Opaque envelope
	WallR               float64 `json:"wall_r,omitempty"`
	RoofR               float64 `json:"roof_r,omitempty"`
	FloorR              float64 `json:"floor_r,omitempty"`
	WallAreaFt2         float64 `json:"wall_area_ft2,omitempty"` // net opaque
	RoofAreaFt2         float64 `json:"roof_area_ft2,omitempty"`
	FloorOverUncondFt2  float64 `json:"floor_over_uncond_ft2,omitempty"`
	DoorU               float64 `json:"door_u,omitempty"`
	DoorAreaFt2         float64 `json:"door_area_ft2,omitempty"`

	// Windows
	WindowU          float64           `json:"window_u,omitempty"`
	WindowSHGC       float64           `json:"window_shgc,omitempty"`
	WindowAreaFt2    float64           `json:"window_area_ft2,omitempty"` // total, all orientations
	WindowAreas      OrientationValues `json:"window_areas,omitempty"`

	// Solar model (advanced; the form UI does not edit these)
	SolarIncident     OrientationValues `json:"solar_incident,omitempty"` // Btu/ft²·yr
	ShadingFactor     float64           `json:"shading_factor,omitempty"` // [0,1]
	SolarHeatFraction float64           `json:"solar_heat_fraction,omitempty"`
	SolarCoolFraction float64           `json:"solar_cool_fraction,omitempty"`

	// Infiltration
	BlowerDoorACH50 float64 `json:"blower_door_ach50,omitempty"`
	NFactor         float64 `json:"n_factor,omitempty"`
	Leakiness       string  `json:"leakiness,omitempty"` // tight | average | leaky

	// Climate
	HDD65 float64 `json:"hdd65,omitempty"`
	CDD65 float64 `json:"cdd65,omitempty"`

	// Equipment
	Heating     HeatingSystem `json:"heating,omitempty"`
	Cooling     CoolingSystem `json:"cooling,omitempty"`
	WaterHeater WaterHeater   `json:"water_heater,omitempty"`

	// Domestic hot water usage
	Occupants        float64 `json:"occupants,omitempty"`
	GalPerPersonDay  float64 `json:"gal_per_person_day,omitempty"`
	DHWSetpointF     float64 `json:"dhw_setpoint_f,omitempty"`
	DHWInletF        float64 `json:"dhw_inlet_f,omitempty"`
	DHWDaysPerYear   float64 `json:"dhw_days_per_year,omitempty"`

	// Accounting factors (advanced)
	EmissionFactors CarrierFactors `json:"emission_factors,omitempty"` // kg CO2e per carrier unit
	Prices          CarrierFactors `json:"prices,omitempty"`           // $ per carrier unit
}

// EffectiveRecord is an InputRecord after fallback resolution: every field
// the load model and fuel mapper read is present and plausible. Produced by
// engine.Resolve; never mutated in place.
type EffectiveRecord InputRecord

// Loads are annual thermal loads in Btu/yr.
type Loads struct {
	BaseHeatingBtu float64 `json:"base_heating_btu"`
	BaseCoolingBtu float64 `json:"base_cooling_btu"`
	SolarGainBtu   float64 `json:"solar_gain_btu"`
	HeatingBtu     float64 `json:"heating_btu"` // solar-adjusted
	CoolingBtu     float64 `json:"cooling_btu"` // solar-adjusted
}

// Recommendation categories.
const (
	CategoryEnvelope     = "envelope"
	CategorySystem       = "system"
	CategoryWindows      = "windows"
	CategoryWaterHeating = "water_heating"
	CategoryBehavioral   = "behavioral"
)

// Savings is the estimated annual effect of one retrofit.
type Savings struct {
	Fuel           FuelBreakdown `json:"fuel"`
	Dollars        float64       `json:"dollars"`
	CO2Kg          float64       `json:"co2_kg"`
	HeatingLoadBtu float64       `json:"heating_load_btu,omitempty"` // avoided load, when load-driven
	CoolingLoadBtu float64       `json:"cooling_load_btu,omitempty"`
}

// Recommendation is one ranked retrofit suggestion.
type Recommendation struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Explanation string  `json:"explanation"`
	Savings     Savings `json:"savings"`
}

// EmissionsResult is total annual emissions plus the per-carrier split.
type EmissionsResult struct {
	TotalKg   float64            `json:"total_kg"`
	ByCarrier map[string]float64 `json:"by_carrier"`
}

// CostResult is total annual cost plus the per-carrier split.
type CostResult struct {
	TotalDollars float64            `json:"total_dollars"`
	ByCarrier    map[string]float64 `json:"by_carrier"`
}

// AuditResult is the full output of one evaluation pass.
type AuditResult struct {
	Effective       EffectiveRecord  `json:"effective"`
	Loads           Loads            `json:"loads"`
	DHWLoadBtu      float64          `json:"dhw_load_btu"`
	HeatingFuel     FuelBreakdown    `json:"heating_fuel"`
	CoolingFuel     FuelBreakdown    `json:"cooling_fuel"`
	DHWFuel         FuelBreakdown    `json:"dhw_fuel"`
	TotalFuel       FuelBreakdown    `json:"total_fuel"`
	Emissions       EmissionsResult  `json:"emissions"`
	Cost            CostResult       `json:"cost"`
	Recommendations []Recommendation `json:"recommendations"`
}

// AuditRun is one persisted evaluation (the stored history row).
type AuditRun struct {
	ID           string      `json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	Input        InputRecord `json:"input"`
	HeatingBtu   float64     `json:"heating_btu"`
	CoolingBtu   float64     `json:"cooling_btu"`
	DHWLoadBtu   float64     `json:"dhw_load_btu"`
	TotalDollars float64     `json:"total_dollars"`
	TotalCO2Kg   float64     `json:"total_co2_kg"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never expose the hash
}

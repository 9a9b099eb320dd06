package core

import "math"

// Default per-unit costs in USD. Industry averages for commercial LEO
// operations; actual figures vary widely by vendor and volume.
const (
	DefaultGroundStationCostUSD = 5_000_000 // medium-capability commercial station
	DefaultSatelliteBaseCostUSD = 2_000_000 // medium-size LEO bus, 50-200 kg
	DefaultISLHardwareCostUSD   = 500_000   // laser terminal set per satellite
	DefaultAnnualGSOpexUSD      = 500_000   // staffing, leases, maintenance per station
)

// UnitCosts parameterises the comparison. Passed per call; never
// module-level state.
type UnitCosts struct {
	GroundStationUSD float64 `json:"ground_station_usd"`
	SatelliteBaseUSD float64 `json:"satellite_base_usd"`
	ISLHardwareUSD   float64 `json:"isl_hardware_usd"`
	AnnualGSOpexUSD  float64 `json:"annual_gs_opex_usd"`
}

// DefaultUnitCosts returns the documented industry-average figures.
func DefaultUnitCosts() UnitCosts {
	return UnitCosts{
		GroundStationUSD: DefaultGroundStationCostUSD,
		SatelliteBaseUSD: DefaultSatelliteBaseCostUSD,
		ISLHardwareUSD:   DefaultISLHardwareCostUSD,
		AnnualGSOpexUSD:  DefaultAnnualGSOpexUSD,
	}
}

// ArchitectureCost breaks down one architecture's CapEx.
type ArchitectureCost struct {
	GroundStations   int     `json:"ground_stations"`
	Satellites       int     `json:"satellites"`
	GroundStationUSD float64 `json:"ground_station_usd"`
	SatelliteUSD     float64 `json:"satellite_usd"`
	ISLHardwareUSD   float64 `json:"isl_hardware_usd"`
	TotalCapExUSD    float64 `json:"total_capex_usd"`
	AnnualOpexUSD    float64 `json:"annual_opex_usd"`
}

// CostComparison is the scalar cost summary for both architectures.
// Derived purely from configuration; independent of simulation output.
type CostComparison struct {
	GroundOnly  ArchitectureCost `json:"ground_only"`
	Crosslinked ArchitectureCost `json:"crosslinked"`

	SavingsUSD          float64 `json:"savings_usd"`
	SavingsPercent      float64 `json:"savings_percent"`
	GroundStationsSaved int     `json:"ground_stations_saved"`
	GSReductionPercent  float64 `json:"gs_reduction_percent"`

	AnnualOpexSavingsUSD float64 `json:"annual_opex_savings_usd"`

	// TippingPoint is the satellite count at which ISL hardware cost
	// equals the ground-station CapEx saved. Undefined when the ISL
	// unit cost is zero.
	TippingPoint IntMetric `json:"tipping_point"`

	// PaybackYears is how long OpEx savings take to recover the extra
	// crosslink CapEx. Zero means immediate (crosslinked CapEx is
	// already lower); undefined when there are no OpEx savings to
	// recover it with.
	PaybackYears Metric `json:"payback_years"`
}

// CompareCosts computes CapEx, savings, tipping point, and payback for
// the two architectures. Pure arithmetic; the only failure modes are
// invalid configuration and the documented undefined sentinels.
func CompareCosts(satellites, gsGroundOnly, gsCrosslinked int, costs UnitCosts) (CostComparison, error) {
	if satellites <= 0 {
		return CostComparison{}, configErrorf("cost.satellites", "must be > 0, got %d", satellites)
	}
	if gsGroundOnly <= 0 {
		return CostComparison{}, configErrorf("cost.gs_ground_only", "must be > 0, got %d", gsGroundOnly)
	}
	if gsCrosslinked <= 0 {
		return CostComparison{}, configErrorf("cost.gs_crosslinked", "must be > 0, got %d", gsCrosslinked)
	}
	if costs.GroundStationUSD < 0 || costs.SatelliteBaseUSD < 0 || costs.ISLHardwareUSD < 0 || costs.AnnualGSOpexUSD < 0 {
		return CostComparison{}, configErrorf("cost.unit_costs", "must be non-negative")
	}

	ground := ArchitectureCost{
		GroundStations:   gsGroundOnly,
		Satellites:       satellites,
		GroundStationUSD: float64(gsGroundOnly) * costs.GroundStationUSD,
		SatelliteUSD:     float64(satellites) * costs.SatelliteBaseUSD,
		AnnualOpexUSD:    float64(gsGroundOnly) * costs.AnnualGSOpexUSD,
	}
	ground.TotalCapExUSD = ground.GroundStationUSD + ground.SatelliteUSD

	cross := ArchitectureCost{
		GroundStations:   gsCrosslinked,
		Satellites:       satellites,
		GroundStationUSD: float64(gsCrosslinked) * costs.GroundStationUSD,
		SatelliteUSD:     float64(satellites) * costs.SatelliteBaseUSD,
		ISLHardwareUSD:   float64(satellites) * costs.ISLHardwareUSD,
		AnnualOpexUSD:    float64(gsCrosslinked) * costs.AnnualGSOpexUSD,
	}
	cross.TotalCapExUSD = cross.GroundStationUSD + cross.SatelliteUSD + cross.ISLHardwareUSD

	cmp := CostComparison{
		GroundOnly:           ground,
		Crosslinked:          cross,
		SavingsUSD:           ground.TotalCapExUSD - cross.TotalCapExUSD,
		GroundStationsSaved:  gsGroundOnly - gsCrosslinked,
		AnnualOpexSavingsUSD: ground.AnnualOpexUSD - cross.AnnualOpexUSD,
	}
	if ground.TotalCapExUSD > 0 {
		cmp.SavingsPercent = cmp.SavingsUSD / ground.TotalCapExUSD * 100.0
	}
	cmp.GSReductionPercent = float64(cmp.GroundStationsSaved) / float64(gsGroundOnly) * 100.0
	cmp.TippingPoint = tippingPoint(cmp.GroundStationsSaved, costs)
	cmp.PaybackYears = paybackYears(cmp)
	return cmp, nil
}

// tippingPoint solves N·ISL_cost = saved_GS·GS_cost for N, rounded up.
// Never below 1 satellite when defined.
func tippingPoint(stationsSaved int, costs UnitCosts) IntMetric {
	if costs.ISLHardwareUSD == 0 {
		return UndefinedIntMetric(ReasonZeroISLCost)
	}
	savedUSD := float64(stationsSaved) * costs.GroundStationUSD
	n := int(math.Ceil(savedUSD / costs.ISLHardwareUSD))
	if n < 1 {
		n = 1
	}
	return DefinedIntMetric(n)
}

func paybackYears(cmp CostComparison) Metric {
	extra := cmp.Crosslinked.TotalCapExUSD - cmp.GroundOnly.TotalCapExUSD
	if extra <= 0 {
		// Crosslinked is already cheaper up front.
		return DefinedMetric(0)
	}
	if cmp.AnnualOpexSavingsUSD <= 0 {
		return UndefinedMetric(ReasonZeroOpexSavings)
	}
	return DefinedMetric(extra / cmp.AnnualOpexSavingsUSD)
}

// MissionOpexSavings projects the OpEx delta over a mission lifetime.
func MissionOpexSavings(cmp CostComparison, years int) float64 {
	return cmp.AnnualOpexSavingsUSD * float64(years)
}

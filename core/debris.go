package core

import "math"

// Debris environment constants. Order-of-magnitude educational
// estimates, not an authoritative debris catalog (the real environment
// is far more structured than three bands).
const (
	DebrisDensityLowPerKm3  = 0.00001 // below 600 km
	DebrisDensityMedPerKm3  = 0.0001  // 600-800 km
	DebrisDensityHighPerKm3 = 0.001   // above 800 km

	// SatelliteCrossSectionM2 is the assumed average cross-section.
	SatelliteCrossSectionM2 = 10.0
)

// Regulatory disposal-time limits, in years. The applicable rule
// changed in September 2022; the limit is a configuration field so the
// compliance verdict tracks whichever rule the caller analyses under.
const (
	DisposalLimitYearsFCC2022 = 5  // as of FCC order, September 2022
	DisposalLimitYearsPre2022 = 25 // historical IADC guideline
)

// Mitigation cost constants (USD).
const (
	CollisionAvoidanceCostPerSatUSD = 50_000  // annual, tracking + maneuvers
	DeorbitPropulsionCostUSD        = 100_000 // hardware per satellite
	InsuranceBaseRate               = 0.02    // fraction of satellite value per year
)

// expSaturationArg is where 1-exp(-x) is 1.0 to double precision; past
// it the probability is clamped and flagged.
const expSaturationArg = 40.0

// maxExpArg bounds exponentials that can overflow float64.
const maxExpArg = 700.0

// DebrisParams configures an assessment. Passed explicitly per call.
type DebrisParams struct {
	MissionYears         int     `json:"mission_years"`
	SatelliteDryMassKg   float64 `json:"satellite_dry_mass_kg"`
	SpecificImpulseS     float64 `json:"specific_impulse_s"`
	SatelliteValueUSD    float64 `json:"satellite_value_usd"`
	HasActiveDeorbit     bool    `json:"has_active_deorbit"`
	DisposalLimitYears   float64 `json:"disposal_limit_years"`
	DisposalRuleRevision string  `json:"disposal_rule_revision"`
}

// DefaultDebrisParams returns a 5-year mission of 200 kg satellites
// with hydrazine-class propulsion, assessed under the 2022 rule.
func DefaultDebrisParams() DebrisParams {
	return DebrisParams{
		MissionYears:         5,
		SatelliteDryMassKg:   200,
		SpecificImpulseS:     220,
		SatelliteValueUSD:    2_000_000,
		DisposalLimitYears:   DisposalLimitYearsFCC2022,
		DisposalRuleRevision: "FCC-2022-09",
	}
}

// RiskLevel buckets the collision probability.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// SustainabilityGrade maps the composite score to a verdict.
type SustainabilityGrade string

const (
	GradeExcellent  SustainabilityGrade = "Excellent"
	GradeGood       SustainabilityGrade = "Good"
	GradeAcceptable SustainabilityGrade = "Acceptable"
	GradePoor       SustainabilityGrade = "Poor"
)

// MitigationCosts breaks down debris-mitigation spending over the
// mission.
type MitigationCosts struct {
	CollisionAvoidanceAnnualUSD float64 `json:"collision_avoidance_annual_usd"`
	CollisionAvoidanceTotalUSD  float64 `json:"collision_avoidance_total_usd"`
	DeorbitHardwareUSD          float64 `json:"deorbit_hardware_usd"`
	InsuranceAnnualUSD          float64 `json:"insurance_annual_usd"`
	InsuranceTotalUSD           float64 `json:"insurance_total_usd"`
	TrackingAnnualUSD           float64 `json:"tracking_annual_usd"`
	TrackingTotalUSD            float64 `json:"tracking_total_usd"`
	TotalUSD                    float64 `json:"total_usd"`
	PerSatelliteUSD             float64 `json:"per_satellite_usd"`
}

// Sustainability is the composite 0-100 score with its sub-scores.
type Sustainability struct {
	Total           int                 `json:"total"`
	Grade           SustainabilityGrade `json:"grade"`
	AltitudeScore   int                 `json:"altitude_score"`   // 0-30
	RiskScore       int                 `json:"risk_score"`       // 0-30
	DeorbitScore    int                 `json:"deorbit_score"`    // 0-25
	ComplianceScore int                 `json:"compliance_score"` // 0-15
}

// DebrisAssessment is the full scalar result. Derived from altitude
// and satellite count only; no dependency on simulation output.
type DebrisAssessment struct {
	AltitudeKm float64 `json:"altitude_km"`
	Satellites int     `json:"satellites"`

	DebrisDensityPerKm3    float64   `json:"debris_density_per_km3"`
	ExpectedEncounters     float64   `json:"expected_encounters"`
	CollisionProbability   float64   `json:"collision_probability"`
	AnnualCollisionProb    float64   `json:"annual_collision_probability"`
	ProbabilityClamped     bool      `json:"probability_clamped"`
	RiskLevel              RiskLevel `json:"risk_level"`
	NaturalDecayYears      float64   `json:"natural_decay_years"`
	ActiveDeorbitRequired  bool      `json:"active_deorbit_required"`
	Compliant              bool      `json:"compliant"`
	DisposalLimitYears     float64   `json:"disposal_limit_years"`
	DisposalRuleRevision   string    `json:"disposal_rule_revision"`
	DeltaVRequiredMPerS    float64   `json:"delta_v_required_m_per_s"`
	PropellantMassKg       float64   `json:"propellant_mass_kg"`
	PropellantMassClamped  bool      `json:"propellant_mass_clamped"`
	PropulsionSystemMassKg float64   `json:"propulsion_system_mass_kg"`
	TotalMassPenaltyKg     float64   `json:"total_mass_penalty_kg"`

	Mitigation     MitigationCosts `json:"mitigation"`
	Sustainability Sustainability  `json:"sustainability"`
}

// debrisDensity returns the piecewise band density at an altitude.
func debrisDensity(altitudeKm float64) float64 {
	switch {
	case altitudeKm < 600:
		return DebrisDensityLowPerKm3
	case altitudeKm < 800:
		return DebrisDensityMedPerKm3
	default:
		return DebrisDensityHighPerKm3
	}
}

// naturalDecayYears is a step function of altitude: lower orbits decay
// far faster under atmospheric drag.
func naturalDecayYears(altitudeKm float64) float64 {
	switch {
	case altitudeKm < 400:
		return 1
	case altitudeKm < 500:
		return 5
	case altitudeKm < 600:
		return 15
	default:
		return 100 + (altitudeKm-600)*5
	}
}

// AssessDebris computes collision probability, deorbit requirements,
// mitigation costs, and the sustainability score for a constellation.
// All formulas are deterministic and closed-form.
func AssessDebris(altitudeKm float64, satellites int, p DebrisParams) (DebrisAssessment, error) {
	if altitudeKm <= 0 {
		return DebrisAssessment{}, configErrorf("debris.altitude_km", "must be > 0, got %g", altitudeKm)
	}
	if altitudeKm > MaxLEOAltitudeKm {
		return DebrisAssessment{}, configErrorf("debris.altitude_km", "must be <= %g (LEO bound), got %g", MaxLEOAltitudeKm, altitudeKm)
	}
	if satellites <= 0 {
		return DebrisAssessment{}, configErrorf("debris.satellites", "must be > 0, got %d", satellites)
	}
	if p.MissionYears <= 0 {
		return DebrisAssessment{}, configErrorf("debris.mission_years", "must be > 0, got %d", p.MissionYears)
	}
	if p.DisposalLimitYears <= 0 {
		return DebrisAssessment{}, configErrorf("debris.disposal_limit_years", "must be > 0, got %g", p.DisposalLimitYears)
	}

	a := DebrisAssessment{
		AltitudeKm:           altitudeKm,
		Satellites:           satellites,
		DisposalLimitYears:   p.DisposalLimitYears,
		DisposalRuleRevision: p.DisposalRuleRevision,
	}

	// Collision probability: Poisson encounters in the swept volume.
	a.DebrisDensityPerKm3 = debrisDensity(altitudeKm)
	orbitalVelocityKmPerS := 7.8 * math.Sqrt(EarthRadiusKm/OrbitRadiusKm(altitudeKm))
	sweptKm3PerSatPerYear := SatelliteCrossSectionM2 * 1e-6 * orbitalVelocityKmPerS * 365.25 * 24 * 3600
	totalSweptKm3 := sweptKm3PerSatPerYear * float64(satellites) * float64(p.MissionYears)
	a.ExpectedEncounters = totalSweptKm3 * a.DebrisDensityPerKm3

	a.CollisionProbability, a.ProbabilityClamped = saturatingPoisson(a.ExpectedEncounters)
	annual, _ := saturatingPoisson(a.ExpectedEncounters / float64(p.MissionYears))
	a.AnnualCollisionProb = annual
	a.RiskLevel = riskLevel(a.CollisionProbability)

	// Decay and disposal. Decay time strictly above the limit requires
	// active deorbit; exactly at the limit counts as naturally compliant.
	a.NaturalDecayYears = naturalDecayYears(altitudeKm)
	a.ActiveDeorbitRequired = a.NaturalDecayYears > p.DisposalLimitYears
	a.Compliant = !a.ActiveDeorbitRequired || p.HasActiveDeorbit

	// Deorbit burn: lower perigee to ~200 km and let drag finish.
	altitudeDrop := altitudeKm - 200
	if altitudeDrop < 0 {
		altitudeDrop = 0
	}
	a.DeltaVRequiredMPerS = 50 + altitudeDrop*0.5

	// Tsiolkovsky. Clamp the exponent so absurd delta-v requests
	// degrade to a flagged ceiling instead of +Inf.
	const g0 = 9.81
	exponent := a.DeltaVRequiredMPerS / (p.SpecificImpulseS * g0)
	if exponent > maxExpArg {
		exponent = maxExpArg
		a.PropellantMassClamped = true
	}
	a.PropellantMassKg = p.SatelliteDryMassKg * (math.Exp(exponent) - 1)
	a.PropulsionSystemMassKg = a.PropellantMassKg * 0.1
	a.TotalMassPenaltyKg = a.PropellantMassKg + a.PropulsionSystemMassKg

	a.Mitigation = mitigationCosts(a, satellites, p)
	a.Sustainability = sustainability(a, p)
	return a, nil
}

// saturatingPoisson returns 1-exp(-x) clamped to [0,1], flagging when
// the argument saturated the exponential.
func saturatingPoisson(x float64) (float64, bool) {
	if x < 0 {
		return 0, false
	}
	if x > expSaturationArg {
		return 1, true
	}
	return 1 - math.Exp(-x), false
}

func riskLevel(prob float64) RiskLevel {
	switch {
	case prob < 0.01:
		return RiskLow
	case prob < 0.05:
		return RiskModerate
	case prob < 0.15:
		return RiskHigh
	default:
		return RiskCritical
	}
}

func mitigationCosts(a DebrisAssessment, satellites int, p DebrisParams) MitigationCosts {
	years := float64(p.MissionYears)
	m := MitigationCosts{
		CollisionAvoidanceAnnualUSD: float64(satellites) * CollisionAvoidanceCostPerSatUSD,
	}
	m.CollisionAvoidanceTotalUSD = m.CollisionAvoidanceAnnualUSD * years

	if a.ActiveDeorbitRequired {
		m.DeorbitHardwareUSD = float64(satellites) * DeorbitPropulsionCostUSD
	}

	riskMultiplier := 1.0 + a.CollisionProbability
	m.InsuranceAnnualUSD = float64(satellites) * p.SatelliteValueUSD * InsuranceBaseRate * riskMultiplier
	m.InsuranceTotalUSD = m.InsuranceAnnualUSD * years

	// Tracking subscriptions scale sub-linearly with fleet size.
	m.TrackingAnnualUSD = 10_000 * math.Sqrt(float64(satellites))
	m.TrackingTotalUSD = m.TrackingAnnualUSD * years

	m.TotalUSD = m.CollisionAvoidanceTotalUSD + m.DeorbitHardwareUSD + m.InsuranceTotalUSD + m.TrackingTotalUSD
	m.PerSatelliteUSD = m.TotalUSD / float64(satellites)
	return m
}

// sustainability sums four independently bounded sub-scores:
// altitude 30, collision risk 30, deorbit capability 25, regulatory
// compliance 15.
func sustainability(a DebrisAssessment, p DebrisParams) Sustainability {
	s := Sustainability{}

	switch {
	case a.AltitudeKm < 500:
		s.AltitudeScore = 30
	case a.AltitudeKm < 600:
		s.AltitudeScore = 25
	case a.AltitudeKm < 700:
		s.AltitudeScore = 15
	default:
		s.AltitudeScore = 5
	}

	switch a.RiskLevel {
	case RiskLow:
		s.RiskScore = 30
	case RiskModerate:
		s.RiskScore = 20
	case RiskHigh:
		s.RiskScore = 10
	default:
		s.RiskScore = 0
	}

	if p.HasActiveDeorbit || !a.ActiveDeorbitRequired {
		s.DeorbitScore = 25
	}
	if a.Compliant {
		s.ComplianceScore = 15
	}

	s.Total = s.AltitudeScore + s.RiskScore + s.DeorbitScore + s.ComplianceScore
	switch {
	case s.Total >= 85:
		s.Grade = GradeExcellent
	case s.Total >= 70:
		s.Grade = GradeGood
	case s.Total >= 55:
		s.Grade = GradeAcceptable
	default:
		s.Grade = GradePoor
	}
	return s
}

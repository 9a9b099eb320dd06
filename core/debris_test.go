package core

import (
	"math"
	"testing"
)

func TestDebrisDensityBands(t *testing.T) {
	cases := []struct {
		alt  float64
		want float64
	}{
		{300, DebrisDensityLowPerKm3},
		{599.9, DebrisDensityLowPerKm3},
		{600, DebrisDensityMedPerKm3},
		{799.9, DebrisDensityMedPerKm3},
		{800, DebrisDensityHighPerKm3},
		{1500, DebrisDensityHighPerKm3},
	}
	for _, tc := range cases {
		if got := debrisDensity(tc.alt); got != tc.want {
			t.Errorf("debrisDensity(%v) = %v, want %v", tc.alt, got, tc.want)
		}
	}
}

func TestNaturalDecayYears(t *testing.T) {
	cases := []struct {
		alt  float64
		want float64
	}{
		{350, 1},
		{450, 5},
		{550, 15},
		{600, 100},
		{800, 100 + 200*5},
	}
	for _, tc := range cases {
		if got := naturalDecayYears(tc.alt); got != tc.want {
			t.Errorf("naturalDecayYears(%v) = %v, want %v", tc.alt, got, tc.want)
		}
	}
}

func TestAssessDebrisValidation(t *testing.T) {
	p := DefaultDebrisParams()
	if _, err := AssessDebris(0, 6, p); err == nil {
		t.Error("zero altitude accepted")
	}
	if _, err := AssessDebris(2500, 6, p); err == nil {
		t.Error("altitude above LEO accepted")
	}
	if _, err := AssessDebris(500, 0, p); err == nil {
		t.Error("zero satellites accepted")
	}
	bad := p
	bad.MissionYears = 0
	if _, err := AssessDebris(500, 6, bad); err == nil {
		t.Error("zero mission years accepted")
	}
	bad = p
	bad.DisposalLimitYears = 0
	if _, err := AssessDebris(500, 6, bad); err == nil {
		t.Error("zero disposal limit accepted")
	}
}

func TestDeorbitRequirementBoundary(t *testing.T) {
	p := DefaultDebrisParams() // 5-year disposal limit

	// 450 km decays in 5 years: exactly at the limit is still
	// naturally compliant, no active deorbit required.
	a, err := AssessDebris(450, 6, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	if a.ActiveDeorbitRequired {
		t.Errorf("decay == limit flagged as requiring active deorbit")
	}
	if !a.Compliant {
		t.Errorf("decay == limit flagged as non-compliant")
	}

	// 550 km decays in 15 years: active deorbit required, and without
	// the capability the constellation is non-compliant.
	a, err = AssessDebris(550, 6, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	if !a.ActiveDeorbitRequired {
		t.Errorf("15-year decay not flagged against 5-year limit")
	}
	if a.Compliant {
		t.Errorf("compliant without active deorbit capability")
	}

	// Adding the capability restores compliance.
	p.HasActiveDeorbit = true
	a, err = AssessDebris(550, 6, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	if !a.Compliant {
		t.Errorf("non-compliant despite active deorbit capability")
	}
}

func TestLegacyDisposalLimit(t *testing.T) {
	p := DefaultDebrisParams()
	p.DisposalLimitYears = DisposalLimitYearsPre2022 // 25 years
	p.DisposalRuleRevision = "pre-2022"

	// Under the legacy 25-year rule a 15-year decay needs no action.
	a, err := AssessDebris(550, 6, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	if a.ActiveDeorbitRequired || !a.Compliant {
		t.Errorf("15-year decay flagged under 25-year rule: %+v", a)
	}
	if a.DisposalRuleRevision != "pre-2022" {
		t.Errorf("rule revision = %q not carried through", a.DisposalRuleRevision)
	}
}

func TestDeltaVAndPropellant(t *testing.T) {
	p := DefaultDebrisParams()
	a, err := AssessDebris(500, 6, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}

	// 500 km → 200 km: Δv = 50 + 300·0.5 = 200 m/s.
	if math.Abs(a.DeltaVRequiredMPerS-200) > 1e-9 {
		t.Errorf("delta-v = %v, want 200", a.DeltaVRequiredMPerS)
	}

	// Tsiolkovsky with Isp 220 s: m_prop = 200·(e^(200/(220·9.81)) − 1).
	wantProp := 200.0 * (math.Exp(200.0/(220.0*9.81)) - 1)
	if math.Abs(a.PropellantMassKg-wantProp) > 1e-9 {
		t.Errorf("propellant = %v kg, want %v", a.PropellantMassKg, wantProp)
	}
	if a.PropellantMassClamped {
		t.Error("ordinary delta-v flagged as clamped")
	}
	if math.Abs(a.TotalMassPenaltyKg-wantProp*1.1) > 1e-9 {
		t.Errorf("total mass penalty = %v, want propellant + 10%% system mass", a.TotalMassPenaltyKg)
	}
}

func TestPropellantClampFlag(t *testing.T) {
	p := DefaultDebrisParams()
	// An absurdly inefficient thruster drives the Tsiolkovsky exponent
	// past the overflow guard; the result must be flagged, not +Inf.
	p.SpecificImpulseS = 1e-5
	a, err := AssessDebris(1500, 6, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	if !a.PropellantMassClamped {
		t.Error("clamp flag not set")
	}
	if math.IsInf(a.PropellantMassKg, 0) || math.IsNaN(a.PropellantMassKg) {
		t.Errorf("propellant = %v, want finite", a.PropellantMassKg)
	}
}

func TestCollisionProbabilityBounds(t *testing.T) {
	p := DefaultDebrisParams()
	for _, alt := range []float64{300, 500, 700, 900, 1500, 2000} {
		for _, n := range []int{1, 6, 100, 10000} {
			a, err := AssessDebris(alt, n, p)
			if err != nil {
				t.Fatalf("AssessDebris(%v, %d): %v", alt, n, err)
			}
			if a.CollisionProbability < 0 || a.CollisionProbability > 1 {
				t.Errorf("alt %v n %d: probability %v out of [0,1]", alt, n, a.CollisionProbability)
			}
			if a.AnnualCollisionProb > a.CollisionProbability+1e-12 {
				t.Errorf("alt %v n %d: annual %v exceeds mission %v", alt, n, a.AnnualCollisionProb, a.CollisionProbability)
			}
			if a.Sustainability.Total < 0 || a.Sustainability.Total > 100 {
				t.Errorf("alt %v n %d: sustainability %d out of [0,100]", alt, n, a.Sustainability.Total)
			}
		}
	}
}

func TestRiskLevelsIncreaseWithAltitudeBand(t *testing.T) {
	p := DefaultDebrisParams()
	low, err := AssessDebris(400, 6, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	high, err := AssessDebris(900, 6, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	if high.CollisionProbability <= low.CollisionProbability {
		t.Errorf("900 km probability %v not above 400 km %v",
			high.CollisionProbability, low.CollisionProbability)
	}
}

func TestMitigationCosts(t *testing.T) {
	p := DefaultDebrisParams()
	a, err := AssessDebris(550, 9, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	m := a.Mitigation

	if m.CollisionAvoidanceAnnualUSD != 9*CollisionAvoidanceCostPerSatUSD {
		t.Errorf("avoidance annual = %v", m.CollisionAvoidanceAnnualUSD)
	}
	// Active deorbit is required at 550 km, so hardware is costed.
	if m.DeorbitHardwareUSD != 9*DeorbitPropulsionCostUSD {
		t.Errorf("deorbit hardware = %v", m.DeorbitHardwareUSD)
	}
	// sqrt(9) = 3 tracking units.
	if math.Abs(m.TrackingAnnualUSD-30_000) > 1e-9 {
		t.Errorf("tracking annual = %v, want 30000", m.TrackingAnnualUSD)
	}
	wantTotal := m.CollisionAvoidanceTotalUSD + m.DeorbitHardwareUSD + m.InsuranceTotalUSD + m.TrackingTotalUSD
	if m.TotalUSD != wantTotal {
		t.Errorf("total = %v, want %v", m.TotalUSD, wantTotal)
	}
	if math.Abs(m.PerSatelliteUSD-m.TotalUSD/9) > 1e-9 {
		t.Errorf("per satellite = %v", m.PerSatelliteUSD)
	}
}

func TestSustainabilityGrades(t *testing.T) {
	p := DefaultDebrisParams()
	p.HasActiveDeorbit = true
	p.MissionYears = 1

	// A single satellite at 450 km for one year: full altitude, deorbit
	// and compliance scores, moderate collision risk. 30+20+25+15 = 90.
	a, err := AssessDebris(450, 1, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	s := a.Sustainability
	if s.AltitudeScore != 30 || s.DeorbitScore != 25 || s.ComplianceScore != 15 {
		t.Errorf("sub-scores = %+v", s)
	}
	if s.Total != 90 || s.Grade != GradeExcellent {
		t.Errorf("sustainability = %+v, want 90/Excellent", s)
	}

	// 900 km without deorbit capability scores poorly: altitude 5,
	// deorbit 0, compliance 0.
	p.HasActiveDeorbit = false
	a, err = AssessDebris(900, 6, p)
	if err != nil {
		t.Fatalf("AssessDebris: %v", err)
	}
	if a.Sustainability.Grade == GradeExcellent || a.Sustainability.Grade == GradeGood {
		t.Errorf("high-altitude no-deorbit grade = %v, want Acceptable or Poor", a.Sustainability.Grade)
	}
	if a.Sustainability.Total > 5+30+0+0 {
		t.Errorf("sustainability total = %d, want at most 35", a.Sustainability.Total)
	}
}

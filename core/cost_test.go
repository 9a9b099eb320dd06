package core

import (
	"errors"
	"math"
	"testing"
)

func TestCompareCostsDefaultFigures(t *testing.T) {
	// 6 satellites, 5 stations ground-only vs 2 crosslinked, at the
	// documented unit costs.
	cmp, err := CompareCosts(6, 5, 2, DefaultUnitCosts())
	if err != nil {
		t.Fatalf("CompareCosts: %v", err)
	}

	if got := cmp.GroundOnly.TotalCapExUSD; got != 5*5_000_000+6*2_000_000 {
		t.Errorf("ground CapEx = %v", got)
	}
	if got := cmp.Crosslinked.TotalCapExUSD; got != 2*5_000_000+6*2_000_000+6*500_000 {
		t.Errorf("crosslinked CapEx = %v", got)
	}
	// $37M vs $25M: crosslinks save $12M.
	if cmp.SavingsUSD != 12_000_000 {
		t.Errorf("savings = %v, want 12M", cmp.SavingsUSD)
	}
	if cmp.GroundStationsSaved != 3 {
		t.Errorf("stations saved = %v, want 3", cmp.GroundStationsSaved)
	}
	if math.Abs(cmp.GSReductionPercent-60.0) > 1e-9 {
		t.Errorf("gs reduction = %v%%, want 60", cmp.GSReductionPercent)
	}
	if cmp.AnnualOpexSavingsUSD != 3*500_000 {
		t.Errorf("annual opex savings = %v, want 1.5M", cmp.AnnualOpexSavingsUSD)
	}
}

func TestTippingPoint(t *testing.T) {
	// 3 stations saved × $5M each = $15M of ISL budget; at $500K per
	// terminal set the fleet breaks even at 30 satellites.
	cmp, err := CompareCosts(6, 5, 2, DefaultUnitCosts())
	if err != nil {
		t.Fatalf("CompareCosts: %v", err)
	}
	if !cmp.TippingPoint.Defined || cmp.TippingPoint.Value != 30 {
		t.Errorf("tipping point = %v, want 30", cmp.TippingPoint)
	}
}

func TestTippingPointRoundsUpAndFloorsAtOne(t *testing.T) {
	costs := DefaultUnitCosts()
	costs.GroundStationUSD = 1_000_000
	costs.ISLHardwareUSD = 300_000

	// 1 station saved: 1M / 300K = 3.33 → 4 satellites.
	cmp, err := CompareCosts(6, 3, 2, costs)
	if err != nil {
		t.Fatalf("CompareCosts: %v", err)
	}
	if cmp.TippingPoint.Value != 4 {
		t.Errorf("tipping point = %v, want 4 (ceil)", cmp.TippingPoint)
	}

	// No stations saved still reports a floor of 1, never 0.
	cmp, err = CompareCosts(6, 2, 2, costs)
	if err != nil {
		t.Fatalf("CompareCosts: %v", err)
	}
	if !cmp.TippingPoint.Defined || cmp.TippingPoint.Value != 1 {
		t.Errorf("tipping point = %v, want 1", cmp.TippingPoint)
	}
}

func TestTippingPointUndefinedOnZeroISLCost(t *testing.T) {
	costs := DefaultUnitCosts()
	costs.ISLHardwareUSD = 0

	cmp, err := CompareCosts(6, 5, 2, costs)
	if err != nil {
		t.Fatalf("CompareCosts: %v", err)
	}
	if cmp.TippingPoint.Defined {
		t.Fatalf("tipping point defined with zero ISL cost: %v", cmp.TippingPoint)
	}
	if cmp.TippingPoint.Reason != ReasonZeroISLCost {
		t.Errorf("reason = %v, want %v", cmp.TippingPoint.Reason, ReasonZeroISLCost)
	}
}

func TestPaybackYears(t *testing.T) {
	// Construct a case where crosslinked CapEx is higher: 18 satellites
	// at $1M ISL hardware each against 3 stations saved at $5M.
	// Extra CapEx: 18M − 15M = 3M; OpEx savings 3 × $500K = 1.5M/yr.
	costs := DefaultUnitCosts()
	costs.ISLHardwareUSD = 1_000_000

	cmp, err := CompareCosts(18, 5, 2, costs)
	if err != nil {
		t.Fatalf("CompareCosts: %v", err)
	}
	if !cmp.PaybackYears.Defined || math.Abs(cmp.PaybackYears.Value-2.0) > 1e-9 {
		t.Errorf("payback = %v, want 2.0 years", cmp.PaybackYears)
	}
}

func TestPaybackImmediateWhenCrosslinkedCheaper(t *testing.T) {
	cmp, err := CompareCosts(6, 5, 2, DefaultUnitCosts())
	if err != nil {
		t.Fatalf("CompareCosts: %v", err)
	}
	// Crosslinked CapEx is already lower, so payback is immediate.
	if !cmp.PaybackYears.Defined || cmp.PaybackYears.Value != 0 {
		t.Errorf("payback = %v, want defined 0", cmp.PaybackYears)
	}
}

func TestPaybackUndefinedWithoutOpexSavings(t *testing.T) {
	// Same station count on both sides: extra CapEx with no OpEx delta.
	costs := DefaultUnitCosts()
	cmp, err := CompareCosts(6, 2, 2, costs)
	if err != nil {
		t.Fatalf("CompareCosts: %v", err)
	}
	if cmp.PaybackYears.Defined {
		t.Fatalf("payback defined without opex savings: %v", cmp.PaybackYears)
	}
	if cmp.PaybackYears.Reason != ReasonZeroOpexSavings {
		t.Errorf("reason = %v, want %v", cmp.PaybackYears.Reason, ReasonZeroOpexSavings)
	}
}

func TestCompareCostsValidation(t *testing.T) {
	costs := DefaultUnitCosts()
	cases := []struct {
		name           string
		sats, gsG, gsC int
	}{
		{"zero satellites", 0, 5, 2},
		{"zero ground-only stations", 6, 0, 2},
		{"zero crosslinked stations", 6, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CompareCosts(tc.sats, tc.gsG, tc.gsC, costs)
			if err == nil {
				t.Fatal("invalid input accepted")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
		})
	}

	bad := costs
	bad.SatelliteBaseUSD = -1
	if _, err := CompareCosts(6, 5, 2, bad); err == nil {
		t.Error("negative unit cost accepted")
	}
}

func TestMissionOpexSavings(t *testing.T) {
	cmp, err := CompareCosts(6, 5, 2, DefaultUnitCosts())
	if err != nil {
		t.Fatalf("CompareCosts: %v", err)
	}
	if got := MissionOpexSavings(cmp, 10); got != 15_000_000 {
		t.Errorf("10-year opex savings = %v, want 15M", got)
	}
}

package core

import (
	"math"
	"testing"
)

func TestFriisDoublingDistanceCostsSixDB(t *testing.T) {
	p := DefaultRFParams()

	pr1 := FriisReceivedPowerDBW(p, 1000)
	pr2 := FriisReceivedPowerDBW(p, 2000)

	// Free-space path loss grows by exactly 20·log10(2) ≈ 6.0206 dB per
	// distance doubling; the fixed losses cancel in the difference.
	want := 20 * math.Log10(2)
	if got := pr1 - pr2; math.Abs(got-want) > 1e-9 {
		t.Errorf("power drop per doubling = %v dB, want %v", got, want)
	}
}

func TestSNRMonotonicallyDecreasesWithDistance(t *testing.T) {
	p := DefaultRFParams()
	prev := math.Inf(1)
	for _, d := range []float64{500, 1000, 2000, 4000, 8000} {
		b := EvaluateLink(p, d)
		if b.SNRdB >= prev {
			t.Fatalf("SNR at %v km = %v, not below previous %v", d, b.SNRdB, prev)
		}
		prev = b.SNRdB
	}
}

func TestEvaluateLinkThreshold(t *testing.T) {
	p := DefaultRFParams()

	// Walk out until the link crosses the threshold; the feasibility flag
	// and the margin sign must agree at every distance.
	for d := 100.0; d < 2e6; d *= 3 {
		b := EvaluateLink(p, d)
		if b.Feasible != (b.SNRdB >= p.SNRThresholdDB) {
			t.Fatalf("at %v km: feasible=%v but snr=%v threshold=%v", d, b.Feasible, b.SNRdB, p.SNRThresholdDB)
		}
		if math.Abs(b.MarginDB-(b.SNRdB-p.SNRThresholdDB)) > 1e-12 {
			t.Fatalf("at %v km: margin=%v, want snr-threshold", d, b.MarginDB)
		}
	}
}

func TestEvaluateLinkIsPure(t *testing.T) {
	p := DefaultRFParams()
	first := EvaluateLink(p, 1234.5)
	for i := 0; i < 10; i++ {
		if got := EvaluateLink(p, 1234.5); got != first {
			t.Fatalf("evaluation %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestEvaluateLinkSubMeterFloor(t *testing.T) {
	p := DefaultRFParams()
	// Distances under a metre clamp to the 1 m floor instead of blowing
	// up the log.
	tiny := EvaluateLink(p, 0)
	floor := EvaluateLink(p, 0.001)
	if tiny.ReceivedPowerDBW != floor.ReceivedPowerDBW {
		t.Errorf("zero-distance power %v != 1 m floor power %v", tiny.ReceivedPowerDBW, floor.ReceivedPowerDBW)
	}
	if math.IsInf(tiny.SNRdB, 0) || math.IsNaN(tiny.SNRdB) {
		t.Errorf("zero-distance SNR = %v, want finite", tiny.SNRdB)
	}
}

func TestClassifySNRBuckets(t *testing.T) {
	cases := []struct {
		snr  float64
		want LinkQuality
	}{
		{-3, LinkQualityDown},
		{0, LinkQualityPoor},
		{4.9, LinkQualityPoor},
		{5, LinkQualityFair},
		{9.9, LinkQualityFair},
		{10, LinkQualityGood},
		{19.9, LinkQualityGood},
		{20, LinkQualityExcellent},
		{45, LinkQualityExcellent},
	}
	for _, tc := range cases {
		if got := classifySNR(tc.snr); got != tc.want {
			t.Errorf("classifySNR(%v) = %v, want %v", tc.snr, got, tc.want)
		}
	}
}

func TestRFParamsValidate(t *testing.T) {
	valid := DefaultRFParams()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	bad := valid
	bad.FrequencyGHz = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero frequency accepted")
	}
	bad = valid
	bad.BandwidthHz = -1
	if err := bad.Validate(); err == nil {
		t.Error("negative bandwidth accepted")
	}
	bad = valid
	bad.NoiseTempK = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero noise temperature accepted")
	}
}

func TestSNRAgainstHandComputedNoiseFloor(t *testing.T) {
	// kTB for 290 K and 1 MHz: 10·log10(1.380649e-23 · 290 · 1e6) ≈ −143.97 dBW.
	noiseFloor := 10 * math.Log10(BoltzmannJPerK*290*1e6)
	got := SNRdB(-100, 290, 1e6)
	want := -100 - noiseFloor
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("SNR = %v, want %v", got, want)
	}
	if noiseFloor > -143 || noiseFloor < -145 {
		t.Errorf("noise floor = %v dBW, want ≈ -143.97", noiseFloor)
	}
}

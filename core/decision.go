package core

import "fmt"

// Recommendation is the synthesizer's verdict.
type Recommendation string

const (
	RecommendGroundOnly   Recommendation = "ground_only"
	RecommendCrosslinked  Recommendation = "crosslinked"
	RecommendInconclusive Recommendation = "inconclusive"
)

// Confidence qualifies a recommendation.
type Confidence string

const (
	ConfidenceHigh     Confidence = "high"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceLow      Confidence = "low"
)

// Scoring constants. Points are small integers so the rationale stays
// explainable; the tie band turns near-misses into "inconclusive"
// instead of an arbitrary winner.
const (
	crosslinkComplexityPenalty = 1 // routing/acquisition overhead not otherwise modeled
	crosslinkWinMargin         = 2 // crosslink must beat ground by more than this
	groundWinMargin            = 1 // ground must beat crosslink by more than this
	tippingNeutralBand         = 5 // satellites within this of the tipping point score neutral
)

// Decision is a ranked recommendation with explicit rationale.
type Decision struct {
	Recommendation Recommendation `json:"recommendation"`
	Confidence     Confidence     `json:"confidence"`
	CrosslinkScore int            `json:"crosslink_score"`
	GroundScore    int            `json:"ground_score"`
	Rationale      []string       `json:"rationale"`
}

// SynthesizeDecision combines both simulation runs, the cost
// comparison, and the debris assessment into one verdict.
//
// Tipping-point standing gates all cost credit: positive savings below
// the tipping point award points to ground-only, never to crosslinked.
// Any undefined upstream metric forces the inconclusive branch rather
// than a guess.
func SynthesizeDecision(ground, crosslinked *SimulationRun, costs CostComparison, debris DebrisAssessment) Decision {
	d := Decision{}

	if ground == nil || crosslinked == nil {
		d.Recommendation = RecommendInconclusive
		d.Confidence = ConfidenceLow
		d.Rationale = append(d.Rationale, "missing simulation results for one or both architectures")
		return d
	}
	if reason, undefined := upstreamUndefined(ground, crosslinked, costs); undefined {
		d.Recommendation = RecommendInconclusive
		d.Confidence = ConfidenceLow
		d.Rationale = append(d.Rationale, "upstream result undefined: "+reason)
		return d
	}

	satellites := costs.GroundOnly.Satellites
	tipping := costs.TippingPoint.Value
	cross, groundPts := 0, 0

	// Tipping point standing is the dominant financial factor.
	switch {
	case satellites >= tipping+tippingNeutralBand:
		cross += 3
		d.Rationale = append(d.Rationale, fmt.Sprintf("satellite count %d is well above the tipping point of %d", satellites, tipping))
	case satellites >= tipping:
		cross += 2
		d.Rationale = append(d.Rationale, fmt.Sprintf("satellite count %d is at or above the tipping point of %d", satellites, tipping))
	case satellites >= tipping-tippingNeutralBand:
		d.Rationale = append(d.Rationale, fmt.Sprintf("satellite count %d is near the tipping point of %d; financially neutral", satellites, tipping))
	default:
		groundPts += 2
		d.Rationale = append(d.Rationale, fmt.Sprintf("satellite count %d is below the tipping point of %d; crosslink hardware does not pay for itself", satellites, tipping))
	}

	// Cost savings only count once the fleet clears the tipping point.
	switch {
	case costs.SavingsPercent > 30 && satellites >= tipping:
		cross += 2
		d.Rationale = append(d.Rationale, fmt.Sprintf("crosslinking saves %.1f%% of CapEx", costs.SavingsPercent))
	case costs.SavingsPercent > 10 && satellites >= tipping:
		cross += 1
		d.Rationale = append(d.Rationale, fmt.Sprintf("crosslinking saves %.1f%% of CapEx", costs.SavingsPercent))
	case costs.SavingsPercent < 0:
		groundPts += 2
		d.Rationale = append(d.Rationale, fmt.Sprintf("crosslinking costs %.1f%% more CapEx", -costs.SavingsPercent))
	}

	// Latency.
	gLat := ground.Summary.AvgLatencyMs.Value
	cLat := crosslinked.Summary.AvgLatencyMs.Value
	latImprovementPct := 0.0
	if gLat > 0 {
		latImprovementPct = (gLat - cLat) / gLat * 100.0
	}
	switch {
	case latImprovementPct > 70:
		cross += 2
		d.Rationale = append(d.Rationale, fmt.Sprintf("crosslinks cut average latency by %.0f%%", latImprovementPct))
	case latImprovementPct > 40:
		cross += 1
		d.Rationale = append(d.Rationale, fmt.Sprintf("crosslinks cut average latency by %.0f%%", latImprovementPct))
	case latImprovementPct < 20:
		groundPts += 1
		d.Rationale = append(d.Rationale, "latency benefit of crosslinks is marginal")
	}

	// Coverage (percentage points).
	covImprovement := crosslinked.Summary.CoveragePercent - ground.Summary.CoveragePercent
	switch {
	case covImprovement > 15:
		cross += 2
		d.Rationale = append(d.Rationale, fmt.Sprintf("crosslinks add %.1f points of coverage", covImprovement))
	case covImprovement > 5:
		cross += 1
		d.Rationale = append(d.Rationale, fmt.Sprintf("crosslinks add %.1f points of coverage", covImprovement))
	case covImprovement < 0:
		groundPts += 1
		d.Rationale = append(d.Rationale, "ground-only coverage is already as good or better")
	}

	// Fleet size: larger fleets amortise ISL hardware and operations.
	if satellites >= 8 {
		cross += 1
	} else if satellites <= 4 {
		groundPts += 1
	}

	// A small ground segment is easy to operate without crosslinks.
	if costs.GroundOnly.GroundStations <= 3 {
		groundPts += 1
		d.Rationale = append(d.Rationale, "small ground segment keeps the relay-only architecture simple")
	}

	// Fixed complexity penalty for ISL routing and acquisition.
	cross -= crosslinkComplexityPenalty

	if debris.Sustainability.Grade == GradePoor {
		d.Rationale = append(d.Rationale, fmt.Sprintf("debris sustainability is %s (%d/100) at this altitude regardless of architecture", debris.Sustainability.Grade, debris.Sustainability.Total))
	}

	d.CrosslinkScore = cross
	d.GroundScore = groundPts
	switch {
	case cross > groundPts+crosslinkWinMargin:
		d.Recommendation = RecommendCrosslinked
		d.Confidence = confidenceFromMargin(cross - groundPts)
		// A crosslink verdict from link metrics alone, before the fleet
		// has cleared the tipping point, is never high confidence.
		if satellites < tipping && d.Confidence == ConfidenceHigh {
			d.Confidence = ConfidenceModerate
			d.Rationale = append(d.Rationale, "confidence capped while the fleet remains below the tipping point")
		}
	case groundPts > cross+groundWinMargin:
		d.Recommendation = RecommendGroundOnly
		d.Confidence = confidenceFromMargin(groundPts - cross)
	default:
		d.Recommendation = RecommendInconclusive
		d.Confidence = ConfidenceLow
		d.Rationale = append(d.Rationale, "scores are within the tie band; further analysis required")
	}
	return d
}

func upstreamUndefined(ground, crosslinked *SimulationRun, costs CostComparison) (string, bool) {
	if !costs.TippingPoint.Defined {
		return "tipping point: " + string(costs.TippingPoint.Reason), true
	}
	if !ground.Summary.AvgLatencyMs.Defined || !ground.Summary.AvgSNRdB.Defined {
		return "ground-only aggregates: " + string(ReasonNoFeasibleSamples), true
	}
	if !crosslinked.Summary.AvgLatencyMs.Defined || !crosslinked.Summary.AvgSNRdB.Defined {
		return "crosslinked aggregates: " + string(ReasonNoFeasibleSamples), true
	}
	return "", false
}

func confidenceFromMargin(margin int) Confidence {
	if margin >= 4 {
		return ConfidenceHigh
	}
	return ConfidenceModerate
}

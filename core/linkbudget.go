package core

import "math"

// Physical constants.
const (
	BoltzmannJPerK    = 1.380649e-23
	SpeedOfLightMPerS = 299792458.0
)

// Link budget defaults. These are deliberately conservative clear-sky
// values; precipitation fade is NOT modeled anywhere in this engine.
const (
	DefaultAtmosphericLossDB = 2.0 // fixed clear-sky absorption allowance
	DefaultSystemLossDB      = 3.0 // pointing, polarization, implementation margin
	DefaultNoiseTempK        = 290.0
	DefaultBandwidthHz       = 1e6
	DefaultSNRThresholdDB    = 10.0 // standard digital-modulation requirement
)

// RFParams carries every constant the link budget needs. It is passed
// explicitly into each evaluation so overriding a value for one
// scenario can never leak into a concurrent run.
type RFParams struct {
	TxPowerDBW        float64 `json:"tx_power_dbw"`
	TxGainDBi         float64 `json:"tx_gain_dbi"`
	RxGainDBi         float64 `json:"rx_gain_dbi"`
	FrequencyGHz      float64 `json:"frequency_ghz"`
	AtmosphericLossDB float64 `json:"atmospheric_loss_db"`
	SystemLossDB      float64 `json:"system_loss_db"`
	NoiseTempK        float64 `json:"noise_temp_k"`
	BandwidthHz       float64 `json:"bandwidth_hz"`
	SNRThresholdDB    float64 `json:"snr_threshold_db"`
}

// DefaultRFParams returns the demo RF configuration: 20 dBW, 20 dBi,
// S-band 2.4 GHz, 1 MHz bandwidth.
func DefaultRFParams() RFParams {
	return RFParams{
		TxPowerDBW:        20.0,
		TxGainDBi:         20.0,
		RxGainDBi:         30.0,
		FrequencyGHz:      2.4,
		AtmosphericLossDB: DefaultAtmosphericLossDB,
		SystemLossDB:      DefaultSystemLossDB,
		NoiseTempK:        DefaultNoiseTempK,
		BandwidthHz:       DefaultBandwidthHz,
		SNRThresholdDB:    DefaultSNRThresholdDB,
	}
}

// Validate rejects RF parameters the budget cannot be computed from.
func (p RFParams) Validate() error {
	if p.FrequencyGHz <= 0 {
		return configErrorf("rf.frequency_ghz", "must be > 0, got %g", p.FrequencyGHz)
	}
	if p.BandwidthHz <= 0 {
		return configErrorf("rf.bandwidth_hz", "must be > 0, got %g", p.BandwidthHz)
	}
	if p.NoiseTempK <= 0 {
		return configErrorf("rf.noise_temp_k", "must be > 0, got %g", p.NoiseTempK)
	}
	return nil
}

// LinkQuality is a coarse, human-readable classification of link
// quality derived from the SNR estimate.
type LinkQuality string

const (
	LinkQualityDown      LinkQuality = "down"
	LinkQualityPoor      LinkQuality = "poor"
	LinkQualityFair      LinkQuality = "fair"
	LinkQualityGood      LinkQuality = "good"
	LinkQualityExcellent LinkQuality = "excellent"
)

// LinkBudget is the result of one pairwise evaluation.
type LinkBudget struct {
	DistanceKm       float64
	ReceivedPowerDBW float64
	SNRdB            float64
	MarginDB         float64
	Feasible         bool
	Quality          LinkQuality
}

// FriisReceivedPowerDBW computes received power in log form:
//
//	Pr = Pt + Gt + Gr − Lp − Latm − Lsys
//	Lp = 20·log10(4πd/λ)
//
// The evaluator is pure: identical inputs always yield identical
// outputs and nothing is cached or mutated.
func FriisReceivedPowerDBW(p RFParams, distanceKm float64) float64 {
	distanceM := distanceKm * 1000.0
	if distanceM < 1 {
		distanceM = 1
	}
	wavelengthM := SpeedOfLightMPerS / (p.FrequencyGHz * 1e9)
	pathLossDB := 20 * math.Log10(4*math.Pi*distanceM/wavelengthM)
	totalLossDB := pathLossDB + p.AtmosphericLossDB + p.SystemLossDB
	return p.TxPowerDBW + p.TxGainDBi + p.RxGainDBi - totalLossDB
}

// SNRdB converts received power to a signal-to-noise ratio against the
// thermal noise floor 10·log10(k·T·B).
func SNRdB(receivedPowerDBW, noiseTempK, bandwidthHz float64) float64 {
	noiseFloorDBW := 10 * math.Log10(BoltzmannJPerK*noiseTempK*bandwidthHz)
	return receivedPowerDBW - noiseFloorDBW
}

// EvaluateLink runs the full budget for one pair at one distance. The
// caller fills RFParams per pair, so a receiving terminal with its own
// antenna gain or system temperature just swaps those fields in.
func EvaluateLink(p RFParams, distanceKm float64) LinkBudget {
	pr := FriisReceivedPowerDBW(p, distanceKm)
	snr := SNRdB(pr, p.NoiseTempK, p.BandwidthHz)
	return LinkBudget{
		DistanceKm:       distanceKm,
		ReceivedPowerDBW: pr,
		SNRdB:            snr,
		MarginDB:         snr - p.SNRThresholdDB,
		Feasible:         snr >= p.SNRThresholdDB,
		Quality:          classifySNR(snr),
	}
}

// classifySNR maps SNR to quality buckets. Thresholds are soft and
// only meant to give reports a readable label.
func classifySNR(snr float64) LinkQuality {
	switch {
	case snr < 0:
		return LinkQualityDown
	case snr < 5:
		return LinkQualityPoor
	case snr < 10:
		return LinkQualityFair
	case snr < 20:
		return LinkQualityGood
	default:
		return LinkQualityExcellent
	}
}

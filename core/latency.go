package core

// PathType identifies which relay topology a latency estimate models.
type PathType string

const (
	// PathGroundRelay models satellite → ground → terrestrial network
	// → ground → satellite. The processing constant absorbs routing,
	// switching, and protocol overhead on the terrestrial segment.
	PathGroundRelay PathType = "ground_relay"
	// PathCrosslink models a direct satellite-to-satellite hop with
	// onboard switching only. Link acquisition time is not modeled;
	// crosslinks are assumed already established.
	PathCrosslink PathType = "crosslink"
)

// LatencyParams holds the fixed processing-delay constants per path
// type, in milliseconds.
type LatencyParams struct {
	GroundRelayProcessingMs float64 `json:"ground_relay_processing_ms"`
	CrosslinkProcessingMs   float64 `json:"crosslink_processing_ms"`
}

// DefaultLatencyParams returns 50 ms for ground relays and 5 ms for
// crosslinks.
func DefaultLatencyParams() LatencyParams {
	return LatencyParams{
		GroundRelayProcessingMs: 50.0,
		CrosslinkProcessingMs:   5.0,
	}
}

// OneWayDelayMs estimates one-way latency as propagation delay plus
// the path's processing constant. Routing hops beyond the first relay
// are deliberately not modeled; this is a single-hop estimate.
func OneWayDelayMs(path PathType, distanceKm float64, p LatencyParams) float64 {
	propagationMs := distanceKm * 1000.0 / SpeedOfLightMPerS * 1000.0
	processing := p.GroundRelayProcessingMs
	if path == PathCrosslink {
		processing = p.CrosslinkProcessingMs
	}
	return propagationMs + processing
}

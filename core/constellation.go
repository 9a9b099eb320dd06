package core

import (
	"fmt"
	"math"
)

// Satellite is a member of a Constellation on a circular orbit. Orbital
// parameters are immutable after construction; positions are always
// derived for a requested time offset, never stored.
type Satellite struct {
	ID         string
	AltitudeKm float64
	// PhaseRad is the in-plane angular position at t=0.
	PhaseRad float64

	TxPowerDBW     float64
	AntennaGainDBi float64
	FrequencyGHz   float64

	// Provider, when set, overrides the synthetic circular orbit with
	// externally-supplied ephemerides (e.g. an SGP4 propagation).
	Provider PositionProvider

	angularVelRadPerS float64
}

// NewSatellite validates the orbital and RF parameters and derives the
// angular velocity from Kepler's third law.
func NewSatellite(id string, altitudeKm, phaseRad, txPowerDBW, antennaGainDBi, frequencyGHz float64) (Satellite, error) {
	if id == "" {
		return Satellite{}, configErrorf("satellite.id", "must not be empty")
	}
	if altitudeKm <= 0 {
		return Satellite{}, configErrorf("satellite.altitude_km", "must be > 0, got %g", altitudeKm)
	}
	if altitudeKm > MaxLEOAltitudeKm {
		return Satellite{}, configErrorf("satellite.altitude_km", "must be <= %g (LEO bound), got %g", MaxLEOAltitudeKm, altitudeKm)
	}
	if frequencyGHz <= 0 {
		return Satellite{}, configErrorf("satellite.frequency_ghz", "must be > 0, got %g", frequencyGHz)
	}
	return Satellite{
		ID:                id,
		AltitudeKm:        altitudeKm,
		PhaseRad:          phaseRad,
		TxPowerDBW:        txPowerDBW,
		AntennaGainDBi:    antennaGainDBi,
		FrequencyGHz:      frequencyGHz,
		angularVelRadPerS: AngularVelocityRadPerS(altitudeKm),
	}, nil
}

// AngularVelocity returns the satellite's mean motion in rad/s.
func (s *Satellite) AngularVelocity() float64 {
	return s.angularVelRadPerS
}

// PositionAt returns the satellite position at elapsed seconds since
// epoch. The synthetic model is an equatorial circular orbit; when an
// ephemeris provider is attached it takes precedence.
func (s *Satellite) PositionAt(elapsedS float64) Vec3 {
	if s.Provider != nil {
		return s.Provider.PositionAt(elapsedS)
	}
	r := OrbitRadiusKm(s.AltitudeKm)
	theta := s.PhaseRad + s.angularVelRadPerS*elapsedS
	return Vec3{
		X: r * math.Cos(theta),
		Y: r * math.Sin(theta),
		Z: 0,
	}
}

// GroundStation is a fixed surface terminal. Immutable after creation.
type GroundStation struct {
	ID             string
	LatitudeDeg    float64
	LongitudeDeg   float64
	AltitudeKm     float64
	AntennaGainDBi float64
	SystemTempK    float64

	position Vec3
}

// NewGroundStation validates the geodetic inputs and precomputes the
// ECEF position (stations do not move during a run).
func NewGroundStation(id string, latDeg, lonDeg, altKm, antennaGainDBi, systemTempK float64) (GroundStation, error) {
	if id == "" {
		return GroundStation{}, configErrorf("ground_station.id", "must not be empty")
	}
	if latDeg < -90 || latDeg > 90 {
		return GroundStation{}, configErrorf("ground_station.latitude_deg", "must be in [-90, 90], got %g", latDeg)
	}
	if lonDeg < -180 || lonDeg > 180 {
		return GroundStation{}, configErrorf("ground_station.longitude_deg", "must be in [-180, 180], got %g", lonDeg)
	}
	if systemTempK <= 0 {
		systemTempK = DefaultNoiseTempK
	}
	return GroundStation{
		ID:             id,
		LatitudeDeg:    latDeg,
		LongitudeDeg:   lonDeg,
		AltitudeKm:     altKm,
		AntennaGainDBi: antennaGainDBi,
		SystemTempK:    systemTempK,
		position:       GeodeticToECEF(latDeg, lonDeg, altKm),
	}, nil
}

// Position returns the station's fixed ECEF position in kilometres.
func (g *GroundStation) Position() Vec3 {
	return g.position
}

// Constellation is an ordered, fixed-size set of satellites sharing a
// common altitude in the simplified model.
type Constellation struct {
	Name       string
	AltitudeKm float64
	Satellites []Satellite
}

// NewRingConstellation builds n satellites evenly phased around one
// equatorial circular orbit, all with the same RF parameters.
func NewRingConstellation(name string, n int, altitudeKm, txPowerDBW, antennaGainDBi, frequencyGHz float64) (Constellation, error) {
	if n <= 0 {
		return Constellation{}, configErrorf("constellation.satellites", "count must be > 0, got %d", n)
	}
	sats := make([]Satellite, 0, n)
	for i := 0; i < n; i++ {
		phase := 2 * math.Pi * float64(i) / float64(n)
		sat, err := NewSatellite(fmt.Sprintf("SAT_%02d", i+1), altitudeKm, phase, txPowerDBW, antennaGainDBi, frequencyGHz)
		if err != nil {
			return Constellation{}, err
		}
		sats = append(sats, sat)
	}
	return Constellation{Name: name, AltitudeKm: altitudeKm, Satellites: sats}, nil
}

// Size returns the satellite count.
func (c *Constellation) Size() int { return len(c.Satellites) }

// DefaultGroundStations returns a small globally distributed station
// set useful for demos and tests.
func DefaultGroundStations() []GroundStation {
	specs := []struct {
		id       string
		lat, lon float64
	}{
		{"GS_01", 40.7128, -74.0060},  // New York
		{"GS_02", 51.5074, -0.1278},   // London
		{"GS_03", 35.6762, 139.6503},  // Tokyo
		{"GS_04", -33.8688, 151.2093}, // Sydney
		{"GS_05", 55.7558, 37.6176},   // Moscow
	}
	stations := make([]GroundStation, 0, len(specs))
	for _, s := range specs {
		gs, err := NewGroundStation(s.id, s.lat, s.lon, 0, 30.0, DefaultNoiseTempK)
		if err != nil {
			// The built-in coordinates are valid by construction.
			panic(err)
		}
		stations = append(stations, gs)
	}
	return stations
}

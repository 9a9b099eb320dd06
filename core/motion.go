package core

import (
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// PositionProvider supplies a position for an elapsed simulation time.
// The engine accepts synthetic circular orbits and externally-supplied
// ephemerides through this one interface; parsing and validating
// orbital-element catalogs is the caller's responsibility.
type PositionProvider interface {
	PositionAt(elapsedS float64) Vec3
}

// CircularOrbitProvider is the synthetic provider matching the
// Satellite's built-in equatorial circular orbit, exposed separately
// so mixed constellations can pair it with ephemeris-backed members.
type CircularOrbitProvider struct {
	AltitudeKm float64
	PhaseRad   float64
}

func (c CircularOrbitProvider) PositionAt(elapsedS float64) Vec3 {
	s := Satellite{
		AltitudeKm:        c.AltitudeKm,
		PhaseRad:          c.PhaseRad,
		angularVelRadPerS: AngularVelocityRadPerS(c.AltitudeKm),
	}
	return s.PositionAt(elapsedS)
}

// SGP4Provider propagates a two-line element set with SGP4 and returns
// ECEF positions in kilometres. The TLE lines arrive already parsed
// and unit-checked by the catalog collaborator.
type SGP4Provider struct {
	sat   satellite.Satellite
	epoch time.Time
}

// NewSGP4Provider constructs a provider from TLE lines and the epoch
// that elapsed offsets are measured from.
func NewSGP4Provider(line1, line2 string, epoch time.Time) *SGP4Provider {
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	return &SGP4Provider{sat: sat, epoch: epoch.UTC()}
}

// PositionAt propagates to epoch+elapsed and converts ECI → ECEF.
// go-satellite works in kilometres, matching the engine's units.
func (p *SGP4Provider) PositionAt(elapsedS float64) Vec3 {
	t := p.epoch.Add(time.Duration(elapsedS * float64(time.Second)))
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(p.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	return Vec3{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z}
}

package core

// VisibilityPolicy decides whether a geometric line can carry a link.
// The Orbit Simulator consults it for every pair; swapping in a
// stricter model never requires touching the step loop.
type VisibilityPolicy interface {
	// SatGroundVisible reports whether a satellite at satPos is usable
	// from a ground terminal at groundPos.
	SatGroundVisible(satPos, groundPos Vec3) bool
	// SatSatVisible reports whether two satellites can see each other.
	SatSatVisible(a, b Vec3) bool
}

// SamePlaneVisibility is the simplified default: satellites sharing an
// orbital plane are always mutually visible, and ground visibility is
// a bare above-the-horizon check.
type SamePlaneVisibility struct {
	// MinElevationDeg is the elevation mask for ground terminals.
	// 0 means "above the geometric horizon".
	MinElevationDeg float64
}

func (p SamePlaneVisibility) SatGroundVisible(satPos, groundPos Vec3) bool {
	return ElevationDegrees(groundPos, satPos) >= p.MinElevationDeg
}

func (p SamePlaneVisibility) SatSatVisible(a, b Vec3) bool {
	return true
}

// ElevationMaskVisibility applies the elevation mask to ground links
// and an Earth-occlusion test to inter-satellite lines.
type ElevationMaskVisibility struct {
	MinElevationDeg float64
}

func (p ElevationMaskVisibility) SatGroundVisible(satPos, groundPos Vec3) bool {
	if !hasLineOfSight(groundPos, satPos) {
		return false
	}
	return ElevationDegrees(groundPos, satPos) >= p.MinElevationDeg
}

func (p ElevationMaskVisibility) SatSatVisible(a, b Vec3) bool {
	return hasLineOfSight(a, b)
}

// FuncVisibility adapts externally-supplied visibility functions, for
// callers that precomputed visibility from real ephemerides. A nil
// function defaults to visible.
type FuncVisibility struct {
	SatGround func(satPos, groundPos Vec3) bool
	SatSat    func(a, b Vec3) bool
}

func (p FuncVisibility) SatGroundVisible(satPos, groundPos Vec3) bool {
	if p.SatGround == nil {
		return true
	}
	return p.SatGround(satPos, groundPos)
}

func (p FuncVisibility) SatSatVisible(a, b Vec3) bool {
	if p.SatSat == nil {
		return true
	}
	return p.SatSat(a, b)
}

package shower

import "math"

// OutsideRegion decides whether a four-vector lies in the vetoed
// ("outside") angular region that defines the observable. The shower
// treats it as an opaque classifier: no side effects, O(1) per query.
//
// There is no always-false default; a shower built without a region
// fails with ErrRegionRequired rather than silently vetoing nothing.
type OutsideRegion interface {
	Outside(v Vector) bool
}

// Excluder is an optional second interface for regions that carve
// exclusion zones out of the sampling phase space (e.g. jet-veto cones
// around heavy-flavor axes). Candidate emissions landing in an
// excluded zone are resampled without advancing the evolution.
type Excluder interface {
	Excluded(v Vector) bool
}

// RegionFunc adapts a plain predicate to the OutsideRegion interface.
type RegionFunc func(Vector) bool

// Outside implements OutsideRegion.
func (f RegionFunc) Outside(v Vector) bool {
	return f(v)
}

// RapidityGap is the central rapidity-slice region: a vector is
// outside when |y| < HalfWidth.
type RapidityGap struct {
	HalfWidth float64
}

// Outside implements OutsideRegion.
func (g RapidityGap) Outside(v Vector) bool {
	return math.Abs(v.Rapidity()) < g.HalfWidth
}

// GapWithCones is a rapidity gap with ΔR exclusion cones around jet
// axes (typically derived from b-quark directions). Emissions inside a
// cone are neither counted as outside nor accepted: the cones are
// excluded from the radiating phase space.
type GapWithCones struct {
	HalfWidth float64
	Axes      []Vector
	// ConeR is the ΔR radius of each exclusion cone.
	ConeR float64
}

// Outside implements OutsideRegion.
func (g GapWithCones) Outside(v Vector) bool {
	if math.Abs(v.Rapidity()) >= g.HalfWidth {
		return false
	}
	return !g.Excluded(v)
}

// Excluded implements Excluder.
func (g GapWithCones) Excluded(v Vector) bool {
	r2 := g.ConeR * g.ConeR
	for _, axis := range g.Axes {
		if v.R2(axis) < r2 {
			return true
		}
	}
	return false
}

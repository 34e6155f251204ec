package shower

import "math"

// Vector is a Lorentz four-vector (E, px, py, pz).
//
// Vector is an immutable value type: all arithmetic returns a new
// Vector. Derived quantities follow the usual collider conventions
// (z is the beam axis, azimuth measured in the x-y plane).
type Vector struct {
	E  float64
	Px float64
	Py float64
	Pz float64
}

// NewVector creates a four-vector from its components.
func NewVector(e, px, py, pz float64) Vector {
	return Vector{E: e, Px: px, Py: py, Pz: pz}
}

// Add returns the component-wise sum v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.E + o.E, v.Px + o.Px, v.Py + o.Py, v.Pz + o.Pz}
}

// Sub returns the component-wise difference v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.E - o.E, v.Px - o.Px, v.Py - o.Py, v.Pz - o.Pz}
}

// Div returns v scaled by 1/s. Dividing by zero is a caller error;
// the shower's collinear cutoff guarantees it never produces a
// zero-energy emission to normalize.
func (v Vector) Div(s float64) Vector {
	return Vector{v.E / s, v.Px / s, v.Py / s, v.Pz / s}
}

// Dot returns the Minkowski product v·o with metric (+,-,-,-).
func (v Vector) Dot(o Vector) float64 {
	return v.E*o.E - v.Px*o.Px - v.Py*o.Py - v.Pz*o.Pz
}

// M2 returns the squared invariant mass v·v.
func (v Vector) M2() float64 {
	return v.Dot(v)
}

// P returns the magnitude of the spatial momentum.
func (v Vector) P() float64 {
	return math.Sqrt(v.Px*v.Px + v.Py*v.Py + v.Pz*v.Pz)
}

// Pt returns the transverse momentum.
func (v Vector) Pt() float64 {
	return math.Sqrt(v.Px*v.Px + v.Py*v.Py)
}

// Et returns the transverse energy E·sinθ. Zero for a vector with no
// spatial momentum.
func (v Vector) Et() float64 {
	p := v.P()
	if p == 0 {
		return 0
	}
	return v.E * v.Pt() / p
}

// Phi returns the azimuthal angle in (-π, π].
func (v Vector) Phi() float64 {
	return math.Atan2(v.Py, v.Px)
}

// maxRapidity caps the rapidity of beam-collinear vectors, for which
// the exact value diverges. Large enough to sit beyond any physical
// region, small enough that rapidity differences stay finite.
const maxRapidity = 1e3

// Rapidity returns y = ½ ln((E+pz)/(E-pz)). Beam-collinear vectors
// (E = |pz|, e.g. massless beam momenta) are clamped to ±maxRapidity
// so derived quantities like R2 stay finite.
func (v Vector) Rapidity() float64 {
	if v.E-v.Pz <= 0 {
		return maxRapidity
	}
	if v.E+v.Pz <= 0 {
		return -maxRapidity
	}
	return 0.5 * math.Log((v.E+v.Pz)/(v.E-v.Pz))
}

// Eta returns the pseudorapidity, the rapidity of the massless vector
// pointing along the same spatial direction. Clamped like Rapidity for
// vectors along the beam axis.
func (v Vector) Eta() float64 {
	p := v.P()
	if p-v.Pz <= 0 {
		return maxRapidity
	}
	if p+v.Pz <= 0 {
		return -maxRapidity
	}
	return 0.5 * math.Log((p+v.Pz)/(p-v.Pz))
}

// R2 returns the squared angular separation Δy² + Δφ² between v and o,
// with the azimuthal difference wrapped into [-π, π]. Symmetric in its
// arguments.
func (v Vector) R2(o Vector) float64 {
	dy := v.Rapidity() - o.Rapidity()
	dphi := deltaPhi(v.Phi(), o.Phi())
	return dy*dy + dphi*dphi
}

// Unit returns v rescaled to unit energy.
func (v Vector) Unit() Vector {
	return v.Div(v.E)
}

// direction returns the lightlike unit-energy vector along v's spatial
// direction. The eikonal antenna depends on its emitters only through
// these.
func (v Vector) direction() Vector {
	p := v.P()
	return Vector{1, v.Px / p, v.Py / p, v.Pz / p}
}

// deltaPhi wraps the azimuthal difference a-b into [-π, π].
func deltaPhi(a, b float64) float64 {
	d := a - b
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// finite reports whether all components are finite numbers.
func (v Vector) finite() bool {
	ok := func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
	return ok(v.E) && ok(v.Px) && ok(v.Py) && ok(v.Pz)
}

package shower

import (
	"math"
	"math/rand"
)

// Dipole is an ordered pair of color-connected emitters. The eikonal
// antenna sees its emitters only through their directions, so both
// legs are stored as lightlike unit-energy direction vectors: the rest
// frame of two massless legs is exactly their back-to-back frame,
// which keeps the flat-rapidity antenna correct for every daughter
// dipole, not just the initial one. T is the evolution scale the
// dipole has reached.
type Dipole struct {
	LegA  Vector
	LegB  Vector
	Color float64
	T     float64
}

// NewDipole creates a dipole from two legs and a color weight. Legs
// with non-positive energy or no spatial direction cannot anchor an
// antenna and are rejected here rather than silently showered. Leg
// masses are discarded: only the directions matter.
func NewDipole(a, b Vector, color float64) (Dipole, error) {
	if a.E <= 0 || b.E <= 0 {
		return Dipole{}, ErrZeroEnergyLeg
	}
	if a.P() == 0 || b.P() == 0 {
		return Dipole{}, ErrNoDirection
	}
	if color <= 0 {
		return Dipole{}, ErrColorWeight
	}
	return Dipole{LegA: a.direction(), LegB: b.direction(), Color: color}, nil
}

// Alive reports whether the dipole still has radiating phase space.
// Dipoles with a degenerate leg are skipped by the evolution.
func (d *Dipole) Alive() bool {
	return d.LegA.E > 0 && d.LegB.E > 0
}

// Rate returns the integrated soft-emission probability density per
// unit evolution variable. The eikonal antenna is flat in rapidity and
// azimuth in the dipole rest frame with measure 4 dt dη dφ/(2π);
// restricted to |η| < cutoff this integrates to 8·cutoff, weighted by
// the dipole's color factor.
func (d *Dipole) Rate(cutoff float64) float64 {
	if !d.Alive() {
		return 0
	}
	return 8 * cutoff * d.Color
}

// Propose samples the dipole's next branching scale from its radiation
// pattern: the gap above the current scale is exponential with the
// dipole's rate (competing-exponentials sampling). Returns +Inf for a
// dipole that cannot radiate.
func (d *Dipole) Propose(rng *rand.Rand, cutoff float64) float64 {
	r := d.Rate(cutoff)
	if r <= 0 {
		return math.Inf(1)
	}
	return d.T + rng.ExpFloat64()/r
}

// Emit samples a candidate emission four-vector: azimuth uniform,
// rapidity uniform in [-cutoff, cutoff] in the dipole rest frame, then
// mapped to the lab frame and normalized to unit energy.
func (d *Dipole) Emit(rng *rand.Rand, cutoff float64) Vector {
	eta := (2*rng.Float64() - 1) * cutoff
	phi := 2 * math.Pi * rng.Float64()
	k := Vector{
		E:  math.Cosh(eta),
		Px: math.Cos(phi),
		Py: math.Sin(phi),
		Pz: math.Sinh(eta),
	}
	return d.toLab(k).Unit()
}

// toLab maps a vector sampled in the frame where the dipole legs are
// back to back along z into the lab frame: rotate z onto the direction
// of LegA in the pair rest frame, then boost with the pair velocity.
// The legs are lightlike, so the pair rest frame is exactly the frame
// where they are back to back with equal energy.
func (d *Dipole) toLab(k Vector) Vector {
	tot := d.LegA.Add(d.LegB)
	bx := tot.Px / tot.E
	by := tot.Py / tot.E
	bz := tot.Pz / tot.E
	b2 := bx*bx + by*by + bz*bz

	aRest := d.LegA
	if b2 > 1e-14 {
		aRest = boost(d.LegA, -bx, -by, -bz)
	}
	k = rotateZTo(k, aRest.Px, aRest.Py, aRest.Pz)
	if b2 > 1e-14 {
		k = boost(k, bx, by, bz)
	}
	return k
}

// Split replaces the dipole with the (emitter, emission) and
// (emission, spectator) daughters for an accepted emission. Daughter
// color weights come from the supplied policy; both daughters start at
// the parent's evolution scale. The parent's legs are preserved
// exactly: daughters carry {LegA, k} and {k, LegB}.
func (d Dipole) Split(k Vector, policy ColorPolicy) (Dipole, Dipole) {
	wa, wb := policy.Split(d, k)
	k = k.direction()
	first := Dipole{LegA: d.LegA, LegB: k, Color: wa, T: d.T}
	second := Dipole{LegA: k, LegB: d.LegB, Color: wb, T: d.T}
	return first, second
}

// ColorPolicy decides how a parent dipole's color weight is divided
// between its daughters when it branches. The large-Nc dipole cascade
// is the default; alternative weight assignments plug in here.
type ColorPolicy interface {
	// Split returns the color weights of the (emitter, emission) and
	// (emission, spectator) daughters.
	Split(parent Dipole, emission Vector) (float64, float64)
}

// LeadingColor is the leading-Nc dipole cascade: each daughter dipole
// radiates with the parent's full weight.
type LeadingColor struct{}

// Split implements ColorPolicy.
func (LeadingColor) Split(parent Dipole, _ Vector) (float64, float64) {
	return parent.Color, parent.Color
}

// boost applies a pure Lorentz boost with velocity (bx, by, bz).
func boost(v Vector, bx, by, bz float64) Vector {
	b2 := bx*bx + by*by + bz*bz
	if b2 == 0 {
		return v
	}
	gamma := 1 / math.Sqrt(1-b2)
	bp := bx*v.Px + by*v.Py + bz*v.Pz
	f := (gamma-1)/b2*bp + gamma*v.E
	return Vector{
		E:  gamma * (v.E + bp),
		Px: v.Px + f*bx,
		Py: v.Py + f*by,
		Pz: v.Pz + f*bz,
	}
}

// rotateZTo rotates v so that the +z axis maps onto the direction
// (nx, ny, nz). The energy component is untouched.
func rotateZTo(v Vector, nx, ny, nz float64) Vector {
	n := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if n == 0 {
		return v
	}
	nx, ny, nz = nx/n, ny/n, nz/n

	if nz > 1-1e-12 {
		return v
	}
	if nz < -(1 - 1e-12) {
		// 180° about x
		return Vector{v.E, v.Px, -v.Py, -v.Pz}
	}

	// Rodrigues rotation about u = ẑ×n̂ by the angle between ẑ and n̂.
	sin := math.Sqrt(nx*nx + ny*ny)
	cos := nz
	ux, uy := -ny/sin, nx/sin

	udotv := ux*v.Px + uy*v.Py
	cx := uy * v.Pz
	cy := -ux * v.Pz
	cz := ux*v.Py - uy*v.Px

	return Vector{
		E:  v.E,
		Px: cos*v.Px + sin*cx + (1-cos)*udotv*ux,
		Py: cos*v.Py + sin*cy + (1-cos)*udotv*uy,
		Pz: cos*v.Pz + sin*cz,
	}
}

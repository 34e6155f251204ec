package shower_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nglab/nglshower/pkg/shower"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDipole(t *testing.T, a, b shower.Vector, color float64) shower.Dipole {
	t.Helper()
	d, err := shower.NewDipole(a, b, color)
	require.NoError(t, err)
	return d
}

func TestNewDipole(t *testing.T) {
	tests := []struct {
		name    string
		a, b    shower.Vector
		color   float64
		wantErr error
	}{
		{"valid", shower.NewVector(1, 0, 0, 0.9), shower.NewVector(1, 0, 0, -0.9), 1, nil},
		{"zero energy leg a", shower.NewVector(0, 0, 0, 1), shower.NewVector(1, 0, 0, -0.9), 1, shower.ErrZeroEnergyLeg},
		{"no spatial direction", shower.NewVector(1, 0, 0, 0), shower.NewVector(1, 0, 0, -0.9), 1, shower.ErrNoDirection},
		{"negative energy leg b", shower.NewVector(1, 0, 0, 0.9), shower.NewVector(-1, 0, 0, 0.5), 1, shower.ErrZeroEnergyLeg},
		{"zero color", shower.NewVector(1, 0, 0, 0.9), shower.NewVector(1, 0, 0, -0.9), 0, shower.ErrColorWeight},
		{"negative color", shower.NewVector(1, 0, 0, 0.9), shower.NewVector(1, 0, 0, -0.9), -2, shower.ErrColorWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := shower.NewDipole(tt.a, tt.b, tt.color)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			// Legs come out rescaled to unit energy.
			assert.InDelta(t, 1, d.LegA.E, 1e-12)
			assert.InDelta(t, 1, d.LegB.E, 1e-12)
		})
	}
}

func TestNewDipole_LightlikeLegs(t *testing.T) {
	// Massive input momenta: only their directions survive, so both
	// stored legs are massless with unit energy.
	d := mustDipole(t, shower.NewVector(2, 0.3, 0.2, 0.8), shower.NewVector(5, -0.1, 0.4, -0.6), 1)

	for _, leg := range []shower.Vector{d.LegA, d.LegB} {
		assert.InDelta(t, 1, leg.E, 1e-12)
		assert.InDelta(t, 1, leg.P(), 1e-12)
		assert.InDelta(t, 0, leg.M2(), 1e-12)
	}
}

func TestDipole_Emit_MassIndependent(t *testing.T) {
	// Legs differing only in mass and scale define the same antenna, so
	// identically seeded streams must yield identical emissions.
	// Radiating off the massive momenta directly would misplace the
	// pair rest frame of daughter dipoles and leak a collinear-cutoff
	// dependence into the gap distribution.
	massive := mustDipole(t, shower.NewVector(1, 0, 0, 0.9), shower.NewVector(1, 0, 0, -0.9), 1)
	light := mustDipole(t, shower.NewVector(3, 0, 0, 3), shower.NewVector(7, 0, 0, -7), 1)

	ra := rand.New(rand.NewSource(5))
	rb := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		ka := massive.Emit(ra, 5)
		kb := light.Emit(rb, 5)
		assert.InDelta(t, kb.E, ka.E, 1e-9)
		assert.InDelta(t, 0, ka.Sub(kb).P(), 1e-9)
	}
}

func TestDipole_Rate(t *testing.T) {
	d := mustDipole(t, shower.NewVector(2, 0, 0, 1.8), shower.NewVector(2, 0, 0, -1.8), 1.5)
	assert.InDelta(t, 8*5*1.5, d.Rate(5), 1e-12)

	// Dead dipole does not radiate.
	d.LegA.E = 0
	assert.Zero(t, d.Rate(5))
	assert.False(t, d.Alive())
}

func TestDipole_Propose(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	d := mustDipole(t, shower.NewVector(1, 0, 0, 0.9), shower.NewVector(1, 0, 0, -0.9), 1)
	d.T = 0.03

	for i := 0; i < 100; i++ {
		p := d.Propose(rng, 5)
		assert.Greater(t, p, d.T)
	}

	dead := d
	dead.LegB.E = 0
	assert.True(t, math.IsInf(dead.Propose(rng, 5), 1))
}

func TestDipole_Emit_BackToBack(t *testing.T) {
	// Back-to-back equal-energy legs: the dipole frame is the lab
	// frame, so the emission rapidity is bounded by the cutoff
	// directly.
	rng := rand.New(rand.NewSource(42))
	d := mustDipole(t, shower.NewVector(1, 0, 0, 0.9), shower.NewVector(1, 0, 0, -0.9), 1)

	const cutoff = 5.0
	for i := 0; i < 1000; i++ {
		k := d.Emit(rng, cutoff)
		assert.InDelta(t, 1, k.E, 1e-12)
		assert.InDelta(t, 0, k.M2(), 1e-9)
		assert.LessOrEqual(t, math.Abs(k.Rapidity()), cutoff+1e-9)
	}
}

func TestDipole_Emit_BoostedPair(t *testing.T) {
	// Asymmetric legs: the emission is sampled in the pair rest frame
	// and boosted back. It must still be massless with unit energy.
	rng := rand.New(rand.NewSource(42))
	d := mustDipole(t, shower.NewVector(1, 0.3, 0.2, 0.8), shower.NewVector(1, -0.1, 0.4, -0.6), 1)

	for i := 0; i < 1000; i++ {
		k := d.Emit(rng, 5)
		assert.InDelta(t, 1, k.E, 1e-12)
		assert.InDelta(t, 0, k.M2(), 1e-9)
	}
}

func TestDipole_Emit_CoversAzimuth(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := mustDipole(t, shower.NewVector(1, 0, 0, 0.9), shower.NewVector(1, 0, 0, -0.9), 1)

	var quadrants [4]int
	for i := 0; i < 400; i++ {
		k := d.Emit(rng, 5)
		phi := k.Phi()
		q := int((phi + math.Pi) / (math.Pi / 2))
		if q > 3 {
			q = 3
		}
		quadrants[q]++
	}
	for q, n := range quadrants {
		assert.Positivef(t, n, "azimuth quadrant %d never sampled", q)
	}
}

func TestDipole_Split(t *testing.T) {
	d := mustDipole(t, shower.NewVector(1, 0, 0, 0.9), shower.NewVector(1, 0, 0, -0.9), 2)
	d.T = 0.05
	k := shower.NewVector(1, 0.6, 0, 0.8).Unit()

	first, second := d.Split(k, shower.LeadingColor{})

	// Emitter and spectator legs are preserved exactly; the emission
	// becomes the shared middle leg.
	assert.Equal(t, d.LegA, first.LegA)
	assert.Equal(t, d.LegB, second.LegB)
	assert.Equal(t, first.LegB, second.LegA)
	assert.InDelta(t, 1, first.LegB.E, 1e-12)

	// Leading color: both daughters inherit the parent weight.
	assert.Equal(t, d.Color, first.Color)
	assert.Equal(t, d.Color, second.Color)

	// Daughters start at the parent scale.
	assert.Equal(t, d.T, first.T)
	assert.Equal(t, d.T, second.T)
}

type halvingColor struct{}

func (halvingColor) Split(parent shower.Dipole, _ shower.Vector) (float64, float64) {
	return parent.Color / 2, parent.Color / 2
}

func TestDipole_Split_CustomPolicy(t *testing.T) {
	d := mustDipole(t, shower.NewVector(1, 0, 0, 0.9), shower.NewVector(1, 0, 0, -0.9), 4)
	k := shower.NewVector(1, 1, 0, 0).Unit()

	first, second := d.Split(k, halvingColor{})
	assert.Equal(t, 2.0, first.Color)
	assert.Equal(t, 2.0, second.Color)
}

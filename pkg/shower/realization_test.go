package shower_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nglab/nglshower/pkg/shower"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backToBackEvent(t *testing.T) *shower.Event {
	t.Helper()
	ev, err := shower.FeedDipole(
		shower.NewVector(1, 0, 0, 0.9),
		shower.NewVector(1, 0, 0, -0.9),
		1)
	require.NoError(t, err)
	return ev
}

func TestRunOne_Deterministic(t *testing.T) {
	sh, err := shower.New(testConfig(), shower.RapidityGap{HalfWidth: 0.8})
	require.NoError(t, err)
	ev := backToBackEvent(t)

	a, err := sh.RunOne(ev, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	b, err := sh.RunOne(ev, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	assert.Equal(t, a.Emissions, b.Emissions)
	assert.Equal(t, a.NGL1, b.NGL1)
	assert.Equal(t, a.NGL2, b.NGL2)
	assert.Equal(t, a.TOut, b.TOut)
	for i := 0; i < a.Hist.Bins(); i++ {
		assert.Equal(t, a.Hist.Value(i), b.Hist.Value(i))
	}
}

func TestRunOne_IndicatorShape(t *testing.T) {
	sh, err := shower.New(testConfig(), shower.RapidityGap{HalfWidth: 0.8})
	require.NoError(t, err)
	ev := backToBackEvent(t)

	for seed := int64(0); seed < 50; seed++ {
		rl, err := sh.RunOne(ev, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		// Every bin carries a 0/1 indicator, monotone non-increasing
		// in t: once radiation enters the outside region it stays
		// counted.
		prev := 1.0
		for i := 0; i < rl.Hist.Bins(); i++ {
			v := rl.Hist.Value(i)
			assert.Contains(t, []float64{0, 1}, v)
			assert.LessOrEqual(t, v, prev)
			prev = v
		}
		assert.Zero(t, rl.Hist.Dropped())

		// The loop-coefficient estimators always see two branchings.
		assert.GreaterOrEqual(t, rl.Emissions, 2)
	}
}

func TestRunOne_IndicatorMatchesTOut(t *testing.T) {
	sh, err := shower.New(testConfig(), shower.RapidityGap{HalfWidth: 0.8})
	require.NoError(t, err)
	ev := backToBackEvent(t)

	for seed := int64(0); seed < 50; seed++ {
		rl, err := sh.RunOne(ev, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		for i := 0; i < rl.Hist.Bins(); i++ {
			c := rl.Hist.BinCenter(i)
			want := 1.0
			if c >= rl.TOut {
				want = 0
			}
			assert.Equal(t, want, rl.Hist.Value(i))
		}
	}
}

func TestRunOne_LoopEstimatorExclusivity(t *testing.T) {
	sh, err := shower.New(testConfig(), shower.RapidityGap{HalfWidth: 0.8})
	require.NoError(t, err)
	ev := backToBackEvent(t)

	var sawOne, sawTwo bool
	for seed := int64(0); seed < 200; seed++ {
		rl, err := sh.RunOne(ev, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		// A realization contributes to one estimator or the other,
		// never both, and the one-loop contribution is never positive.
		if rl.NGL1 != 0 {
			assert.Zero(t, rl.NGL2)
			assert.Negative(t, rl.NGL1)
			sawOne = true
		}
		if rl.NGL2 != 0 {
			assert.Zero(t, rl.NGL1)
			sawTwo = true
		}
	}
	assert.True(t, sawOne, "no realization hit the one-loop estimator")
	assert.True(t, sawTwo, "no realization hit the two-loop estimator")
}

func TestRunOne_NilEvent(t *testing.T) {
	sh, err := shower.New(testConfig(), shower.RapidityGap{HalfWidth: 0.8})
	require.NoError(t, err)

	_, err = sh.RunOne(nil, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, shower.ErrNilEvent)
}

func TestRunOne_ExclusionConesNeverOutside(t *testing.T) {
	// A cone completely covering the gap: every candidate in the gap
	// is excluded and resampled, so no realization ever records an
	// outside emission.
	region := shower.GapWithCones{
		HalfWidth: 0.3,
		Axes: []shower.Vector{
			shower.NewVector(1, 1, 0, 0),
			shower.NewVector(1, -1, 0, 0),
		},
		ConeR: 4,
	}
	cfg := testConfig()
	sh, err := shower.New(cfg, region)
	require.NoError(t, err)
	ev := backToBackEvent(t)

	for seed := int64(0); seed < 20; seed++ {
		rl, err := sh.RunOne(ev, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.True(t, math.IsInf(rl.TOut, 1))
		for i := 0; i < rl.Hist.Bins(); i++ {
			assert.Equal(t, 1.0, rl.Hist.Value(i))
		}
	}
}

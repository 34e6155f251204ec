package shower

import (
	"fmt"
	"math"
)

// Histogram is a fixed-bin accumulator over the evolution variable
// t in [0, tmax). It optionally tracks per-bin sums of squares so a
// variance-of-mean can be recomputed from raw sums after all samples
// are merged.
//
// Histogram follows the accumulate-then-divide rule: merge raw sums
// across realizations and events, divide once at the very end.
type Histogram struct {
	nbins   int
	tmax    float64
	vals    []float64
	sumw2   []float64 // nil when error tracking is off
	dropped int
}

// NewHistogram creates a histogram with nbins fixed-width bins over
// [0, tmax). trackErrors enables the per-bin variance accumulator.
func NewHistogram(nbins int, tmax float64, trackErrors bool) (*Histogram, error) {
	if nbins <= 0 {
		return nil, &ConfigError{Field: "nbins", Err: fmt.Errorf("must be positive, got %d", nbins)}
	}
	if tmax <= 0 {
		return nil, &ConfigError{Field: "tmax", Err: fmt.Errorf("must be positive, got %g", tmax)}
	}
	h := &Histogram{
		nbins: nbins,
		tmax:  tmax,
		vals:  make([]float64, nbins),
	}
	if trackErrors {
		h.sumw2 = make([]float64, nbins)
	}
	return h, nil
}

// Bins returns the number of bins.
func (h *Histogram) Bins() int { return h.nbins }

// TMax returns the upper edge of the histogram range.
func (h *Histogram) TMax() float64 { return h.tmax }

// TracksErrors reports whether the variance accumulator is enabled.
func (h *Histogram) TracksErrors() bool { return h.sumw2 != nil }

// Dropped returns the number of fills that fell at or above tmax.
func (h *Histogram) Dropped() int { return h.dropped }

// Fill adds w to the bin containing t and, when error tracking is
// enabled, w² to that bin's variance accumulator. Values at or above
// tmax are counted as dropped, not fatal.
func (h *Histogram) Fill(t, w float64) {
	if t < 0 || t >= h.tmax {
		h.dropped++
		return
	}
	i := int(t / h.tmax * float64(h.nbins))
	if i >= h.nbins {
		i = h.nbins - 1
	}
	h.vals[i] += w
	if h.sumw2 != nil {
		h.sumw2[i] += w * w
	}
}

// Merge adds the bins of o element-wise into h. Both histograms must
// have the same shape and the same error-tracking mode. Merge is
// commutative and associative, so independent samples can be combined
// in any order.
func (h *Histogram) Merge(o *Histogram) error {
	if h.nbins != o.nbins || h.tmax != o.tmax {
		return ErrShapeMismatch
	}
	if (h.sumw2 == nil) != (o.sumw2 == nil) {
		return ErrErrorModeMismatch
	}
	for i := range h.vals {
		h.vals[i] += o.vals[i]
	}
	if h.sumw2 != nil {
		for i := range h.sumw2 {
			h.sumw2[i] += o.sumw2[i]
		}
	}
	h.dropped += o.dropped
	return nil
}

// Scale multiplies every bin by s. Rejected for error-tracking
// histograms: scaling the accumulated squares is not a valid variance
// operation.
func (h *Histogram) Scale(s float64) error {
	if h.sumw2 != nil {
		return ErrScaleTracked
	}
	for i := range h.vals {
		h.vals[i] *= s
	}
	return nil
}

// BinCenter returns the center of bin i.
func (h *Histogram) BinCenter(i int) float64 {
	w := h.tmax / float64(h.nbins)
	return (float64(i) + 0.5) * w
}

// Value returns the accumulated value of bin i.
func (h *Histogram) Value(i int) float64 {
	return h.vals[i]
}

// SumW2 returns the accumulated sum of squares of bin i, or zero when
// error tracking is off.
func (h *Histogram) SumW2(i int) float64 {
	if h.sumw2 == nil {
		return 0
	}
	return h.sumw2[i]
}

// StdErr returns the standard error of the mean of bin i over n
// samples: sqrt((Σw²/n − (Σw/n)²)/n). Returns zero when error
// tracking is off or n < 2.
func (h *Histogram) StdErr(i, n int) float64 {
	if h.sumw2 == nil || n < 2 {
		return 0
	}
	fn := float64(n)
	mean := h.vals[i] / fn
	variance := h.sumw2[i]/fn - mean*mean
	if variance < 0 {
		// rounding below zero for near-constant samples
		variance = 0
	}
	return math.Sqrt(variance / fn)
}

// Clone returns a deep copy of the histogram.
func (h *Histogram) Clone() *Histogram {
	c := &Histogram{
		nbins:   h.nbins,
		tmax:    h.tmax,
		vals:    append([]float64(nil), h.vals...),
		dropped: h.dropped,
	}
	if h.sumw2 != nil {
		c.sumw2 = append([]float64(nil), h.sumw2...)
	}
	return c
}

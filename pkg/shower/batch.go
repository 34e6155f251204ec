package shower

import (
	"log/slog"
	"math"

	"github.com/nglab/nglshower/pkg/shower/observability"
)

// Accumulator combines results from a batch of events. Results are
// merged raw and divided once at the end, which is the only ordering
// that keeps the per-bin variance estimate valid.
//
// The event weight is not consumed here; it is checked for
// consistency because mixing events of different weight into one
// plain sum silently biases the estimate. A mismatch is reported as a
// warning and the batch continues.
type Accumulator struct {
	res    *Result
	weight float64
	events int
	logger *slog.Logger
}

// NewAccumulator creates an accumulator matching the shower's
// histogram shape. The logger may be nil.
func NewAccumulator(cfg Config, logger *slog.Logger) (*Accumulator, error) {
	res, err := newResult(cfg.NBins, cfg.TMax)
	if err != nil {
		return nil, err
	}
	return &Accumulator{res: res, weight: math.NaN(), logger: logger}, nil
}

// Add folds one event's run result into the batch.
func (a *Accumulator) Add(ev *Event, res *Result) error {
	if ev == nil {
		return ErrNilEvent
	}
	if math.IsNaN(a.weight) {
		a.weight = ev.Weight()
	} else if ev.Weight() != a.weight {
		observability.LogWeightMismatch(a.logger, a.weight, ev.Weight())
	}
	if err := a.res.Merge(res); err != nil {
		return err
	}
	a.events++
	return nil
}

// Result returns the accumulated batch result.
func (a *Accumulator) Result() *Result {
	return a.res
}

// Events returns the number of events folded in so far.
func (a *Accumulator) Events() int {
	return a.events
}

// Weight returns the batch event weight, or NaN before the first
// event.
func (a *Accumulator) Weight() float64 {
	return a.weight
}

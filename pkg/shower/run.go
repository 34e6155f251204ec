package shower

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/nglab/nglshower/pkg/shower/observability"
	"github.com/nglab/nglshower/pkg/shower/store"
)

// Run evolves NSh shower realizations of the event and returns the
// raw accumulation. Realizations draw from independent RNG streams
// seeded by Config.Seed, so a fixed seed reproduces the result exactly
// regardless of the worker count.
//
// The returned Result is unnormalized; use its MeanBin/OneLoop/TwoLoop
// helpers (or divide by a batch-wide count) for the final estimate.
func (s *Shower) Run(ctx context.Context, ev *Event, opts ...RunOption) (res *Result, runErr error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if ev == nil {
		return nil, ErrNilEvent
	}

	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.New().String()
	}

	startTime := time.Now()
	observability.LogRunStart(cfg.logger, cfg.runID, s.cfg.NSh, len(ev.dipoles))

	var runSpan trace.Span
	if cfg.tracingEnabled {
		_, runSpan = cfg.spans.StartRunSpan(ctx, cfg.runID, s.cfg.NSh)
		defer func() {
			cfg.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	var emissions int
	if s.cfg.Workers > 1 {
		res, emissions, runErr = s.runParallel(ctx, ev, &cfg)
	} else {
		res, emissions, runErr = s.runSerial(ctx, ev, &cfg)
	}

	duration := time.Since(startTime)
	if runErr != nil {
		cfg.metrics.RecordRun(ctx, false, duration, 0)
		observability.LogRunError(cfg.logger, cfg.runID, runErr, float64(duration.Milliseconds()))
		return nil, runErr
	}

	cfg.metrics.RecordRun(ctx, true, duration, res.Realizations)
	observability.LogDroppedFills(cfg.logger, cfg.runID, res.ResLL.Dropped())
	observability.LogRunComplete(cfg.logger, cfg.runID, float64(duration.Milliseconds()), res.Realizations, emissions)

	if cfg.store != nil {
		if err := s.saveResult(cfg.store, cfg.runID, res); err != nil {
			observability.LogResultSaveError(cfg.logger, cfg.runID, err)
		} else {
			cfg.metrics.RecordResultSave(ctx, res.ResLL.Bins())
			observability.LogResultSaved(cfg.logger, cfg.runID, res.ResLL.Bins())
		}
	}
	return res, nil
}

// runSerial evolves all realizations on the calling goroutine.
func (s *Shower) runSerial(ctx context.Context, ev *Event, cfg *runConfig) (*Result, int, error) {
	res, err := newResult(s.cfg.NBins, s.cfg.TMax)
	if err != nil {
		return nil, 0, err
	}

	emissions := 0
	for i := 0; i < s.cfg.NSh; i++ {
		select {
		case <-ctx.Done():
			return nil, emissions, fmt.Errorf("run %s cancelled after %d realizations: %w", cfg.runID, i, ctx.Err())
		default:
		}

		done := observability.TimedOperation()
		rng := rand.New(rand.NewSource(s.cfg.Seed + int64(i)))
		rl, err := s.RunOne(ev, rng)
		if err != nil {
			return nil, emissions, fmt.Errorf("realization %d: %w", i, err)
		}
		cfg.metrics.RecordRealization(ctx, rl.Emissions, time.Duration(done()*float64(time.Millisecond)))
		res.add(rl)
		emissions += rl.Emissions
	}
	return res, emissions, nil
}

// chunkResult carries one worker's local accumulation back to the
// reduction barrier.
type chunkResult struct {
	res       *Result
	emissions int
	err       error
}

// runParallel fans realizations out to Workers goroutines in
// contiguous index chunks, each with its own RNG streams and local
// accumulation, then reduces the locals in worker order. The in-order
// reduction keeps floating-point sums identical to a serial run.
func (s *Shower) runParallel(ctx context.Context, ev *Event, cfg *runConfig) (*Result, int, error) {
	workers := s.cfg.Workers
	if workers > s.cfg.NSh {
		workers = s.cfg.NSh
	}
	per := s.cfg.NSh / workers
	rem := s.cfg.NSh % workers

	chunks := make([]chunkResult, workers)
	var wg sync.WaitGroup
	wg.Add(workers)

	start := 0
	for w := 0; w < workers; w++ {
		count := per
		if w < rem {
			count++
		}
		go func(slot, first, n int) {
			defer wg.Done()

			local, err := newResult(s.cfg.NBins, s.cfg.TMax)
			if err != nil {
				chunks[slot] = chunkResult{err: err}
				return
			}
			emissions := 0
			for i := first; i < first+n; i++ {
				select {
				case <-ctx.Done():
					chunks[slot] = chunkResult{err: fmt.Errorf("run %s cancelled: %w", cfg.runID, ctx.Err())}
					return
				default:
				}
				done := observability.TimedOperation()
				rng := rand.New(rand.NewSource(s.cfg.Seed + int64(i)))
				rl, err := s.RunOne(ev, rng)
				if err != nil {
					chunks[slot] = chunkResult{err: fmt.Errorf("realization %d: %w", i, err)}
					return
				}
				cfg.metrics.RecordRealization(ctx, rl.Emissions, time.Duration(done()*float64(time.Millisecond)))
				local.add(rl)
				emissions += rl.Emissions
			}
			chunks[slot] = chunkResult{res: local, emissions: emissions}
		}(w, start, count)
		start += count
	}
	wg.Wait()

	res, err := newResult(s.cfg.NBins, s.cfg.TMax)
	if err != nil {
		return nil, 0, err
	}
	emissions := 0
	for w := 0; w < workers; w++ {
		if chunks[w].err != nil {
			return nil, 0, chunks[w].err
		}
		if err := res.Merge(chunks[w].res); err != nil {
			return nil, 0, err
		}
		emissions += chunks[w].emissions
	}
	return res, emissions, nil
}

// saveResult persists the accumulated run as a store summary.
func (s *Shower) saveResult(st store.Store, runID string, res *Result) error {
	bins := make([]store.Bin, res.ResLL.Bins())
	for i := range bins {
		bins[i] = store.Bin{
			Center: res.ResLL.BinCenter(i),
			Value:  res.ResLL.Value(i),
			SumW2:  res.ResLL.SumW2(i),
		}
	}
	return st.Save(store.Summary{
		RunID:        runID,
		CreatedAt:    time.Now().UTC(),
		Realizations: res.Realizations,
		NGL1Loop:     res.NGL1Loop,
		NGL2Loop:     res.NGL2Loop,
		TMax:         res.ResLL.TMax(),
		Bins:         bins,
	})
}

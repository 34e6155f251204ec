/*
Package shower resums non-global logarithms (NGLs) by Monte-Carlo
simulation of a soft-gluon dipole shower.

# Overview

The observable is R(t), the probability that a color-dipole ensemble
radiates nothing into a vetoed "outside" angular region below the
evolution scale t. Starting from an initial set of dipoles, the shower
repeatedly samples soft-gluon emissions from the eikonal antenna
pattern of each dipole (a competing-exponentials veto algorithm),
splits the emitting dipole at large Nc, and records when radiation
first enters the outside region. Averaging many realizations yields
the resummed distribution plus its one- and two-loop expansion
coefficients.

# Basic Usage

Build an event, pick an outside region, and run:

	ev, err := shower.FeedDipole(
	    shower.NewVector(1, 0, 0, 0.9),
	    shower.NewVector(1, 0, 0, -0.9),
	    1.0)
	if err != nil {
	    log.Fatal(err)
	}

	cfg := shower.Config{NSh: 100000, NBins: 10, TMax: 0.1, Cutoff: 6, Seed: 1}
	sh, err := shower.New(cfg, shower.RapidityGap{HalfWidth: 0.8})
	if err != nil {
	    log.Fatal(err)
	}

	res, err := sh.Run(context.Background(), ev)
	if err != nil {
	    log.Fatal(err)
	}
	for i := 0; i < cfg.NBins; i++ {
	    fmt.Printf("t=%.4f  R=%.4f ± %.4f\n",
	        res.ResLL.BinCenter(i), res.MeanBin(i), res.StdErrBin(i))
	}
	fmt.Println("one loop:", res.OneLoop())
	fmt.Println("two loop total:", res.TwoLoop()+0.5*res.OneLoop()*res.OneLoop())

# Physical Events

Events can also be built from classified particle momenta with a
configurable dipole-construction policy:

	ev, err := shower.FromParticles(set, shower.EventOptions{
	    Production:   shower.ProductionOutgoing,
	    DecayDipoles: true,
	})

The outside region is injected per event; any predicate works:

	region := shower.RegionFunc(func(v shower.Vector) bool {
	    return math.Abs(v.Rapidity()) < 0.8
	})

# Accumulation

Results are raw sums. Combine events with an Accumulator and divide
once at the end; never normalize per event, or the error bars are
wrong:

	acc, _ := shower.NewAccumulator(cfg, logger)
	for _, ev := range events {
	    res, err := sh.Run(ctx, ev)
	    ...
	    acc.Add(ev, res)
	}

# Observability

Enable logging, metrics, and tracing per run:

	res, err := sh.Run(ctx, ev,
	    shower.WithLogger(logger),
	    shower.WithMetrics(true),
	    shower.WithTracing(true),
	    shower.WithRunID("run-123"))

# Thread Safety

  - Shower is immutable after New and safe for concurrent use
  - Event is immutable after construction
  - Each realization owns its working dipole ensemble exclusively;
    histograms are only merged at the fan-in barrier
  - Store implementations are safe for concurrent use

# Subpackages

  - config: YAML/JSON configuration loading
  - observability: logging, metrics, and tracing helpers
  - store: run-summary persistence (memory, SQLite)
*/
package shower

package benchmarks

import (
	"context"
	"math/rand"
	"testing"

	"github.com/nglab/nglshower/pkg/shower"
)

func benchEvent(b *testing.B) *shower.Event {
	b.Helper()
	ev, err := shower.FeedDipole(
		shower.NewVector(1, 0, 0, 0.9),
		shower.NewVector(1, 0, 0, -0.9),
		1)
	if err != nil {
		b.Fatal(err)
	}
	return ev
}

func benchShower(b *testing.B, workers int) *shower.Shower {
	b.Helper()
	sh, err := shower.New(shower.Config{
		NSh:     1000,
		NBins:   10,
		TMax:    0.1,
		Cutoff:  5,
		Seed:    1,
		Workers: workers,
	}, shower.RapidityGap{HalfWidth: 0.8})
	if err != nil {
		b.Fatal(err)
	}
	return sh
}

// BenchmarkEmit measures a single antenna sample with the frame
// transform.
func BenchmarkEmit(b *testing.B) {
	d, err := shower.NewDipole(
		shower.NewVector(1, 0.3, 0.2, 0.8),
		shower.NewVector(1, -0.1, 0.4, -0.6),
		1)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Emit(rng, 5)
	}
}

// BenchmarkRunOne measures one full shower realization.
func BenchmarkRunOne(b *testing.B) {
	sh := benchShower(b, 1)
	ev := benchEvent(b)
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sh.RunOne(ev, rng); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRun_Serial measures a 1000-realization run on one
// goroutine.
func BenchmarkRun_Serial(b *testing.B) {
	sh := benchShower(b, 1)
	ev := benchEvent(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sh.Run(ctx, ev); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRun_Parallel measures the same run fanned over 8 workers.
func BenchmarkRun_Parallel(b *testing.B) {
	sh := benchShower(b, 8)
	ev := benchEvent(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sh.Run(ctx, ev); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkHistogramFill measures the accumulator hot path.
func BenchmarkHistogramFill(b *testing.B) {
	h, err := shower.NewHistogram(50, 0.1, true)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Fill(0.05, 1)
	}
}

package shower

import (
	"math"
	"math/rand"
)

// maxEmitAttempts bounds the local resampling of candidate emissions
// that land in an excluded zone or come out degenerate.
const maxEmitAttempts = 64

// Realization is the outcome of a single shower evolution: one sample
// of the resummed distribution plus its loop-coefficient
// contributions.
type Realization struct {
	// Hist holds the per-realization indicator filled at each bin
	// center: 1 while no emission has entered the outside region, 0
	// afterwards.
	Hist *Histogram
	// NGL1 and NGL2 are this realization's contributions to the one-
	// and two-loop coefficient estimators.
	NGL1 float64
	NGL2 float64
	// Emissions counts accepted branchings.
	Emissions int
	// TOut is the scale of the first outside emission, +Inf when the
	// realization stayed clean.
	TOut float64
}

// RunOne evolves a single shower realization. It is a pure function of
// the event, the shower's region and policies, and the RNG stream:
// callers may fan realizations out across goroutines by giving each
// its own rand.Rand.
func (s *Shower) RunOne(ev *Event, rng *rand.Rand) (*Realization, error) {
	if ev == nil {
		return nil, ErrNilEvent
	}
	dipoles := ev.Dipoles()
	if len(dipoles) == 0 {
		return nil, ErrNoDipoles
	}

	hist, err := NewHistogram(s.cfg.NBins, s.cfg.TMax, false)
	if err != nil {
		return nil, err
	}

	cutoff := s.cfg.Cutoff
	r0 := totalRate(dipoles, cutoff)

	// Independent trial emission from the initial ensemble, used by
	// the two-loop estimator as an unbiased sample of the outside
	// rate. Drawn before the evolution so the stream layout is fixed.
	w0hat := 0.0
	if k, ok := s.trialEmission(dipoles, r0, rng); ok && s.region.Outside(k) {
		w0hat = r0
	}

	t := 0.0
	indicator := 1.0
	tOut := math.Inf(1)
	nextBin := 0
	emissions := 0

	var o1, o2 bool
	var r1 float64

	// Evolve until the histogram range is exhausted. The first two
	// branchings are always generated: the loop-coefficient
	// estimators need them even when tmax is tiny.
	for t < s.cfg.TMax || emissions < 2 {
		best := -1
		bestT := math.Inf(1)
		for i := range dipoles {
			p := dipoles[i].Propose(rng, cutoff)
			if p < bestT {
				bestT = p
				best = i
			}
		}
		if best < 0 || math.IsInf(bestT, 1) {
			break
		}

		k, ok := s.sampleEmission(&dipoles[best], rng)
		if !ok {
			// No usable phase space left on this dipole; deaden it so
			// the proposal loop stops considering it.
			dipoles[best].LegA.E = 0
			continue
		}

		// Fill every bin center crossed before this branching with the
		// pre-branching indicator.
		for nextBin < s.cfg.NBins && hist.BinCenter(nextBin) < bestT {
			hist.Fill(hist.BinCenter(nextBin), indicator)
			nextBin++
		}
		t = bestT
		emissions++

		outside := s.region.Outside(k)
		if outside && indicator != 0 {
			indicator = 0
			tOut = t
		}

		first, second := dipoles[best].Split(k, s.colors)
		first.T, second.T = t, t
		dipoles[best] = first
		dipoles = append(dipoles, second)
		for i := range dipoles {
			dipoles[i].T = t
		}

		switch emissions {
		case 1:
			o1 = outside
			r1 = totalRate(dipoles, cutoff)
		case 2:
			o2 = outside
		}
	}

	// The ensemble stopped radiating or left the histogram range; the
	// indicator holds for all remaining bins.
	for nextBin < s.cfg.NBins {
		hist.Fill(hist.BinCenter(nextBin), indicator)
		nextBin++
	}

	rl := &Realization{
		Hist:      hist,
		Emissions: emissions,
		TOut:      tOut,
	}

	// One-loop estimator: -R0 when the first emission lands outside,
	// averaging to minus the outside rate of the initial ensemble.
	if o1 {
		rl.NGL1 = -r0
	} else {
		// Two-loop estimator for the genuinely non-global term,
		// (R0/2)·(Ŵ0 − R1·o2) conditioned on the first emission
		// staying inside. Both factors are unbiased samples of the
		// outside rate, before and after the first branching.
		w1hat := 0.0
		if o2 {
			w1hat = r1
		}
		rl.NGL2 = r0 / 2 * (w0hat - w1hat)
	}
	return rl, nil
}

// sampleEmission draws a candidate emission from the dipole, locally
// resampling candidates that are degenerate or overlap an exclusion
// zone. The evolution scale never advances during resampling.
func (s *Shower) sampleEmission(d *Dipole, rng *rand.Rand) (Vector, bool) {
	for attempt := 0; attempt < maxEmitAttempts; attempt++ {
		k := d.Emit(rng, s.cfg.Cutoff)
		if !k.finite() || k.E <= 0 {
			continue
		}
		if s.excluder != nil && s.excluder.Excluded(k) {
			continue
		}
		return k, true
	}
	return Vector{}, false
}

// trialEmission draws one emission from the ensemble measure: a dipole
// picked proportionally to its rate, then a location from its
// radiation pattern.
func (s *Shower) trialEmission(dipoles []Dipole, total float64, rng *rand.Rand) (Vector, bool) {
	if total <= 0 {
		return Vector{}, false
	}
	x := rng.Float64() * total
	for i := range dipoles {
		x -= dipoles[i].Rate(s.cfg.Cutoff)
		if x <= 0 {
			return s.sampleEmission(&dipoles[i], rng)
		}
	}
	return s.sampleEmission(&dipoles[len(dipoles)-1], rng)
}

// totalRate sums the emission rates of all live dipoles.
func totalRate(dipoles []Dipole, cutoff float64) float64 {
	var sum float64
	for i := range dipoles {
		sum += dipoles[i].Rate(cutoff)
	}
	return sum
}

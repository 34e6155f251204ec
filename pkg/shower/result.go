package shower

// Result holds the raw accumulation of many shower realizations: the
// resummed histogram and the loop-coefficient sums. Nothing here is
// averaged; divide by Realizations (or the valid-event count) once,
// at the very end, for the Monte-Carlo estimate.
type Result struct {
	// ResLL accumulates the resummed R(t) samples with error
	// tracking: each realization contributes its per-bin indicator as
	// one sample.
	ResLL *Histogram
	// NGL1Loop and NGL2Loop accumulate the loop-coefficient estimator
	// contributions.
	NGL1Loop float64
	NGL2Loop float64
	// Realizations counts the samples accumulated so far.
	Realizations int
}

// newResult allocates an empty accumulation target.
func newResult(nbins int, tmax float64) (*Result, error) {
	h, err := NewHistogram(nbins, tmax, true)
	if err != nil {
		return nil, err
	}
	return &Result{ResLL: h}, nil
}

// add folds one realization into the accumulation.
func (r *Result) add(rl *Realization) {
	for i := 0; i < rl.Hist.Bins(); i++ {
		r.ResLL.Fill(rl.Hist.BinCenter(i), rl.Hist.Value(i))
	}
	r.NGL1Loop += rl.NGL1
	r.NGL2Loop += rl.NGL2
	r.Realizations++
}

// Merge combines two independent accumulations. Commutative and
// associative, so worker-local and per-event results can be reduced in
// any grouping.
func (r *Result) Merge(o *Result) error {
	if err := r.ResLL.Merge(o.ResLL); err != nil {
		return err
	}
	r.NGL1Loop += o.NGL1Loop
	r.NGL2Loop += o.NGL2Loop
	r.Realizations += o.Realizations
	return nil
}

// MeanBin returns the Monte-Carlo estimate of R(t) at the center of
// bin i.
func (r *Result) MeanBin(i int) float64 {
	if r.Realizations == 0 {
		return 0
	}
	return r.ResLL.Value(i) / float64(r.Realizations)
}

// StdErrBin returns the standard error of MeanBin(i).
func (r *Result) StdErrBin(i int) float64 {
	return r.ResLL.StdErr(i, r.Realizations)
}

// OneLoop returns the one-loop coefficient estimate.
func (r *Result) OneLoop() float64 {
	if r.Realizations == 0 {
		return 0
	}
	return r.NGL1Loop / float64(r.Realizations)
}

// TwoLoop returns the genuinely non-global two-loop coefficient
// estimate. The conventional two-loop total is
// TwoLoop() + 0.5·OneLoop()², combined by the caller.
func (r *Result) TwoLoop() float64 {
	if r.Realizations == 0 {
		return 0
	}
	return r.NGL2Loop / float64(r.Realizations)
}

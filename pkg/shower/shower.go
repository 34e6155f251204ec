package shower

import (
	"fmt"
)

// Config holds the caller-supplied shower configuration. There is no
// process-wide state: every Shower carries its own copy.
type Config struct {
	// NSh is the number of shower realizations per event.
	NSh int
	// NBins is the histogram bin count.
	NBins int
	// TMax is the histogram upper bound on the evolution variable.
	TMax float64
	// Cutoff is the collinear angular regulator η_max bounding the
	// dipole-frame rapidity of emissions. Reliable range is roughly
	// 4–7: small values bias the resummation, large values only cost
	// statistics.
	Cutoff float64
	// Seed seeds the per-realization RNG streams. Realization i draws
	// from Seed+i, so results are reproducible for a fixed seed.
	Seed int64
	// Workers bounds the number of goroutines evolving realizations.
	// Values below 2 run serially.
	Workers int
}

// DefaultConfig returns a usable starting configuration.
func DefaultConfig() Config {
	return Config{
		NSh:     1000,
		NBins:   50,
		TMax:    0.1,
		Cutoff:  5,
		Workers: 1,
	}
}

// validate rejects configurations that would corrupt the simulation.
func (c Config) validate() error {
	if c.NSh <= 0 {
		return &ConfigError{Field: "nsh", Err: fmt.Errorf("must be positive, got %d", c.NSh)}
	}
	if c.NBins <= 0 {
		return &ConfigError{Field: "nbins", Err: fmt.Errorf("must be positive, got %d", c.NBins)}
	}
	if c.TMax <= 0 {
		return &ConfigError{Field: "tmax", Err: fmt.Errorf("must be positive, got %g", c.TMax)}
	}
	if c.Cutoff <= 0 {
		return &ConfigError{Field: "shower_cutoff", Err: fmt.Errorf("must be positive, got %g", c.Cutoff)}
	}
	return nil
}

// Shower evolves the dipole ensemble of one event at a time under an
// outside-region veto. It is immutable after New and safe for
// concurrent use; all mutable state lives inside a realization.
type Shower struct {
	cfg      Config
	region   OutsideRegion
	excluder Excluder
	colors   ColorPolicy
}

// Option configures a Shower at construction time.
type Option func(*Shower)

// WithColorPolicy replaces the default leading-color split rule.
func WithColorPolicy(p ColorPolicy) Option {
	return func(s *Shower) {
		if p != nil {
			s.colors = p
		}
	}
}

// New creates a shower for the given configuration and outside-region
// predicate. The region is mandatory: there is no silent always-false
// default.
func New(cfg Config, region OutsideRegion, opts ...Option) (*Shower, error) {
	if region == nil {
		return nil, ErrRegionRequired
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Shower{
		cfg:    cfg,
		region: region,
		colors: LeadingColor{},
	}
	if ex, ok := region.(Excluder); ok {
		s.excluder = ex
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the shower's configuration.
func (s *Shower) Config() Config {
	return s.cfg
}

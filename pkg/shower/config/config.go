// Package config loads shower configuration from YAML or JSON files.
package config

import (
	"fmt"

	"github.com/nglab/nglshower/pkg/shower"
)

// Config is the file representation of a shower setup: the simulation
// parameters plus the event dipole-construction policy.
type Config struct {
	// NSh is the number of shower realizations per event.
	NSh int `yaml:"nsh" json:"nsh"`
	// NBins is the histogram bin count.
	NBins int `yaml:"nbins" json:"nbins"`
	// TMax is the histogram upper bound on the evolution variable.
	TMax float64 `yaml:"tmax" json:"tmax"`
	// Cutoff is the collinear regulator η_max (reliable range 4–7).
	Cutoff float64 `yaml:"shower_cutoff" json:"shower_cutoff"`
	// Seed seeds the per-realization RNG streams.
	Seed int64 `yaml:"seed" json:"seed"`
	// Workers bounds the realization goroutines (0 or 1 = serial).
	Workers int `yaml:"workers" json:"workers"`

	// Production selects which particle role anchors the hard-process
	// dipole: "incoming", "outgoing", or "intermediate".
	Production string `yaml:"production_dipoles" json:"production_dipoles"`
	// DecayDipoles adds dipoles modeling color flow in unstable-
	// particle decays.
	DecayDipoles bool `yaml:"decay_dipoles" json:"decay_dipoles"`
}

// Default returns the default configuration.
func Default() Config {
	c := shower.DefaultConfig()
	return Config{
		NSh:        c.NSh,
		NBins:      c.NBins,
		TMax:       c.TMax,
		Cutoff:     c.Cutoff,
		Workers:    c.Workers,
		Production: string(shower.ProductionOutgoing),
	}
}

// Validate checks the configuration for values that would corrupt the
// simulation.
func (c Config) Validate() error {
	if c.NSh <= 0 {
		return fmt.Errorf("nsh: must be positive, got %d", c.NSh)
	}
	if c.NBins <= 0 {
		return fmt.Errorf("nbins: must be positive, got %d", c.NBins)
	}
	if c.TMax <= 0 {
		return fmt.Errorf("tmax: must be positive, got %g", c.TMax)
	}
	if c.Cutoff <= 0 {
		return fmt.Errorf("shower_cutoff: must be positive, got %g", c.Cutoff)
	}
	switch shower.Production(c.Production) {
	case shower.ProductionIncoming, shower.ProductionOutgoing, shower.ProductionIntermediate, "":
	default:
		return fmt.Errorf("production_dipoles: unknown policy %q", c.Production)
	}
	return nil
}

// Shower converts the file configuration into the engine's Config.
func (c Config) Shower() shower.Config {
	return shower.Config{
		NSh:     c.NSh,
		NBins:   c.NBins,
		TMax:    c.TMax,
		Cutoff:  c.Cutoff,
		Seed:    c.Seed,
		Workers: c.Workers,
	}
}

// EventOptions converts the file configuration into event
// dipole-construction options.
func (c Config) EventOptions() shower.EventOptions {
	p := shower.Production(c.Production)
	if p == "" {
		p = shower.ProductionOutgoing
	}
	return shower.EventOptions{
		Production:   p,
		DecayDipoles: c.DecayDipoles,
	}
}

package shower

import (
	"errors"
	"fmt"
)

// Sentinel errors for event and dipole construction.
var (
	// ErrZeroEnergyLeg indicates a dipole leg with non-positive energy.
	ErrZeroEnergyLeg = errors.New("dipole leg has non-positive energy")

	// ErrNoDirection indicates a dipole leg with zero spatial momentum,
	// which defines no antenna axis.
	ErrNoDirection = errors.New("dipole leg has no spatial direction")

	// ErrColorWeight indicates a non-positive dipole color weight.
	ErrColorWeight = errors.New("dipole color weight must be positive")

	// ErrNoDipoles indicates an event that produced no dipoles.
	ErrNoDipoles = errors.New("event has no dipoles")

	// ErrMissingRole indicates a particle role required by the dipole
	// construction policy is absent.
	ErrMissingRole = errors.New("required particle role missing")

	// ErrMultiplicity indicates a particle role with the wrong number
	// of entries for the dipole construction policy.
	ErrMultiplicity = errors.New("wrong particle multiplicity")

	// ErrUnknownProduction indicates an unrecognized production-dipole
	// policy.
	ErrUnknownProduction = errors.New("unknown production dipole policy")
)

// Sentinel errors for histogram operations.
var (
	// ErrShapeMismatch indicates a merge of histograms with different
	// binning.
	ErrShapeMismatch = errors.New("histogram shapes differ")

	// ErrErrorModeMismatch indicates a merge of an error-tracking
	// histogram with a plain one.
	ErrErrorModeMismatch = errors.New("histogram error tracking differs")

	// ErrScaleTracked indicates Scale was called on an error-tracking
	// histogram. Dividing accumulated squares by a scalar corrupts the
	// variance estimate; recompute from raw sums instead.
	ErrScaleTracked = errors.New("cannot scale an error-tracking histogram")
)

// Sentinel errors for shower configuration and execution.
var (
	// ErrRegionRequired indicates the shower was built without an
	// outside-region predicate.
	ErrRegionRequired = errors.New("outside region not configured")

	// ErrNilContext indicates Run was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrNilEvent indicates Run was called with a nil event.
	ErrNilEvent = errors.New("event cannot be nil")
)

// ConstructionError wraps an event construction failure with the
// particle role that caused it.
type ConstructionError struct {
	// Role is the particle role that failed validation
	// ("incoming", "outgoing", "intermediate", "decay").
	Role string
	// Want and Got describe the expected and observed multiplicity.
	Want int
	Got  int
	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("event construction: role %s: want %d, got %d: %v", e.Role, e.Want, e.Got, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid shower configuration field.
type ConfigError struct {
	// Field is the configuration field that failed validation.
	Field string
	// Err describes why.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("shower config: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

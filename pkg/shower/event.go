package shower

// Production selects which particle role anchors the hard-process
// color dipole when an event is built from classified momenta.
type Production string

// Recognized production-dipole policies.
const (
	ProductionIncoming     Production = "incoming"
	ProductionOutgoing     Production = "outgoing"
	ProductionIntermediate Production = "intermediate"
)

// ParticleSet is a classified bag of four-vectors handed over by the
// event source. The core never parses event files; it receives momenta
// already validated and grouped by role. Outgoing[i] holds the decay
// products of Intermediate[i].
type ParticleSet struct {
	Incoming     []Vector
	Intermediate []Vector
	Outgoing     [][]Vector
	Weight       float64
}

// EventOptions configures how dipoles are built from a ParticleSet.
type EventOptions struct {
	// Production selects the role pair anchoring the hard-process
	// dipole.
	Production Production
	// DecayDipoles adds one dipole per intermediate particle, spanning
	// its first two decay products, to model color flow in the decay.
	DecayDipoles bool
}

// Event is the initial state of a shower: an ordered color-dipole
// ensemble plus the event weight carried through from the source.
// Immutable after construction.
type Event struct {
	dipoles []Dipole
	weight  float64
}

// FeedDipole builds an event from a single directly-fed dipole. Used
// for analytic and toy-model studies.
func FeedDipole(a, b Vector, weight float64) (*Event, error) {
	d, err := NewDipole(a, b, 1)
	if err != nil {
		return nil, err
	}
	return &Event{dipoles: []Dipole{d}, weight: weight}, nil
}

// FromParticles builds the dipole ensemble from classified particle
// momenta according to the given options.
func FromParticles(set ParticleSet, opts EventOptions) (*Event, error) {
	var dipoles []Dipole

	anchorA, anchorB, err := productionAnchors(set, opts.Production)
	if err != nil {
		return nil, err
	}
	prod, err := NewDipole(anchorA, anchorB, 1)
	if err != nil {
		return nil, err
	}
	dipoles = append(dipoles, prod)

	if opts.DecayDipoles {
		if len(set.Outgoing) != len(set.Intermediate) {
			return nil, &ConstructionError{
				Role: "decay",
				Want: len(set.Intermediate),
				Got:  len(set.Outgoing),
				Err:  ErrMultiplicity,
			}
		}
		for _, products := range set.Outgoing {
			if len(products) < 2 {
				return nil, &ConstructionError{Role: "decay", Want: 2, Got: len(products), Err: ErrMultiplicity}
			}
			d, err := NewDipole(products[0], products[1], 1)
			if err != nil {
				return nil, err
			}
			dipoles = append(dipoles, d)
		}
	}

	if len(dipoles) == 0 {
		return nil, ErrNoDipoles
	}
	return &Event{dipoles: dipoles, weight: set.Weight}, nil
}

// productionAnchors picks the two legs of the hard-process dipole.
func productionAnchors(set ParticleSet, p Production) (Vector, Vector, error) {
	switch p {
	case ProductionIncoming:
		if len(set.Incoming) < 2 {
			return Vector{}, Vector{}, &ConstructionError{Role: "incoming", Want: 2, Got: len(set.Incoming), Err: ErrMissingRole}
		}
		return set.Incoming[0], set.Incoming[1], nil
	case ProductionIntermediate:
		if len(set.Intermediate) < 2 {
			return Vector{}, Vector{}, &ConstructionError{Role: "intermediate", Want: 2, Got: len(set.Intermediate), Err: ErrMissingRole}
		}
		return set.Intermediate[0], set.Intermediate[1], nil
	case ProductionOutgoing:
		if len(set.Outgoing) < 2 || len(set.Outgoing[0]) == 0 || len(set.Outgoing[1]) == 0 {
			return Vector{}, Vector{}, &ConstructionError{Role: "outgoing", Want: 2, Got: len(set.Outgoing), Err: ErrMissingRole}
		}
		return set.Outgoing[0][0], set.Outgoing[1][0], nil
	default:
		return Vector{}, Vector{}, ErrUnknownProduction
	}
}

// Dipoles returns a copy of the initial dipole ensemble. Each call
// yields a fresh working copy, so realizations never share mutable
// state.
func (e *Event) Dipoles() []Dipole {
	out := make([]Dipole, len(e.dipoles))
	copy(out, e.dipoles)
	return out
}

// Weight returns the event weight from the source. The shower itself
// never consumes it; it exists for caller-side aggregation.
func (e *Event) Weight() float64 {
	return e.weight
}

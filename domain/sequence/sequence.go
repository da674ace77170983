// Package sequence provides the part registry domain: named immutable DNA
// modules and their oriented views.
package sequence

import (
	"errors"
	"fmt"
)

// Orientation selects the strand a module is placed on.
type Orientation string

// Recognized orientations. Forward places the module sequence as-is,
// Reverse places its reverse complement.
const (
	Forward Orientation = "+"
	Reverse Orientation = "-"
)

// ErrUnknownOrientation indicates an orientation symbol outside {"+", "-"}.
var ErrUnknownOrientation = errors.New("unknown orientation")

// ParseOrientation validates an orientation symbol.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case Forward, Reverse:
		return Orientation(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOrientation, s)
	}
}

// Opposite returns the other orientation.
func (o Orientation) Opposite() Orientation {
	if o == Forward {
		return Reverse
	}
	return Forward
}

// Module is a named, immutable nucleotide sequence representing a
// biological part (enhancer, promoter, CTCF motif). Orientation is chosen
// at placement time and never stored on the module.
type Module struct {
	name string
	kind Kind
	seq  string
}

// NewModule creates a Module after validating the sequence alphabet.
func NewModule(name string, kind Kind, seq string) (Module, error) {
	if len(seq) == 0 {
		return Module{}, fmt.Errorf("module %s: empty sequence", name)
	}
	if err := Validate(seq); err != nil {
		return Module{}, fmt.Errorf("module %s: %w", name, err)
	}
	return Module{name: name, kind: kind, seq: seq}, nil
}

// Name returns the module name.
func (m Module) Name() string { return m.name }

// Kind returns the module kind.
func (m Module) Kind() Kind { return m.kind }

// Sequence returns the forward-strand sequence.
func (m Module) Sequence() string { return m.seq }

// Len returns the sequence length in bases.
func (m Module) Len() int { return len(m.seq) }

// Oriented returns the sequence as placed on the given strand. The
// reverse complement is recomputed per call rather than cached.
func (m Module) Oriented(o Orientation) (string, error) {
	switch o {
	case Forward:
		return m.seq, nil
	case Reverse:
		return ReverseComplement(m.seq), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOrientation, string(o))
	}
}

package construct

import (
	"errors"
	"fmt"
	"strings"

	"github.com/synthome/stitch/domain/filler"
	"github.com/synthome/stitch/domain/sequence"
)

// LabelDownstreamFiller is the label Finish records for the padding span
// between the last placed part and the target length.
const LabelDownstreamFiller = "downstream_filler"

// ErrBackwardPlacement indicates a recipe asked to move the write cursor
// backward, usually because a placed block overran a reserved coordinate.
var ErrBackwardPlacement = errors.New("backward placement")

// ErrOverflow indicates accumulated content exceeds the target length.
var ErrOverflow = errors.New("construct overflow")

// ErrFinalized indicates an operation on a builder after Finish.
var ErrFinalized = errors.New("builder already finalized")

// Builder assembles one construct. It appends parts and filler in order,
// tracks a monotonically non-decreasing write cursor, and records feature
// and event annotations as a side effect of appending. A builder is a
// one-shot object: after Finish it accepts no further operations.
type Builder struct {
	name     string
	cycler   *filler.Cycler
	buf      []byte
	features []Feature
	events   []Event
	finished bool
}

// NewBuilder creates a Builder for a single construct. The cycler must
// not be shared with a concurrent build, since its cursor advances with
// every filler draw.
func NewBuilder(name string, cycler *filler.Cycler) (*Builder, error) {
	if cycler == nil {
		return nil, fmt.Errorf("builder %s: nil filler cycler", name)
	}
	return &Builder{name: name, cycler: cycler}, nil
}

// Name returns the construct name this builder assembles.
func (b *Builder) Name() string { return b.name }

// Cursor returns the next write position.
func (b *Builder) Cursor() int { return len(b.buf) }

// AppendSequence writes seq at the cursor and, when label is non-empty,
// records a Feature spanning the written bytes. An empty seq with a label
// records a zero-width Feature marking an absent input; an empty seq
// without a label is a no-op.
func (b *Builder) AppendSequence(seq, label string, metadata map[string]any) error {
	if b.finished {
		return fmt.Errorf("%w: append %q", ErrFinalized, label)
	}
	start := len(b.buf)
	b.buf = append(b.buf, seq...)
	if label != "" {
		b.features = append(b.features, NewFeature(label, start, len(b.buf), metadata))
	}
	return nil
}

// AppendFiller draws n bases from the cycler and appends them. A
// non-positive n is a no-op and records nothing.
func (b *Builder) AppendFiller(n int, label string, metadata map[string]any) error {
	if b.finished {
		return fmt.Errorf("%w: filler %q", ErrFinalized, label)
	}
	if n <= 0 {
		return nil
	}
	return b.AppendSequence(b.cycler.Take(n), label, metadata)
}

// AppendModule orients the module and appends it, augmenting the feature
// metadata with the module name and orientation for provenance.
func (b *Builder) AppendModule(mod sequence.Module, o sequence.Orientation, label string, metadata map[string]any) error {
	if b.finished {
		return fmt.Errorf("%w: module %s", ErrFinalized, mod.Name())
	}
	oriented, err := mod.Oriented(o)
	if err != nil {
		return fmt.Errorf("module %s: %w", mod.Name(), err)
	}
	md := make(map[string]any, len(metadata)+2)
	for k, v := range metadata {
		md[k] = v
	}
	md["module"] = mod.Name()
	md["orientation"] = string(o)
	return b.AppendSequence(oriented, label, md)
}

// AppendModuleBlock appends copies tandem repeats of the oriented module
// as one contiguous block recorded as a single Feature carrying the copy
// count and unit length, never as N separate features.
func (b *Builder) AppendModuleBlock(mod sequence.Module, o sequence.Orientation, copies int, label string, metadata map[string]any) error {
	if b.finished {
		return fmt.Errorf("%w: block %q", ErrFinalized, label)
	}
	if copies < 1 {
		return fmt.Errorf("block %q: copies must be positive, got %d", label, copies)
	}
	oriented, err := mod.Oriented(o)
	if err != nil {
		return fmt.Errorf("module %s: %w", mod.Name(), err)
	}
	md := make(map[string]any, len(metadata)+4)
	for k, v := range metadata {
		md[k] = v
	}
	md["module"] = mod.Name()
	md["orientation"] = string(o)
	md["copies"] = copies
	md["unit_length"] = len(oriented)
	return b.AppendSequence(strings.Repeat(oriented, copies), label, md)
}

// AppendTo pads with filler until the cursor reaches pos. Asking for a
// position behind the cursor fails with ErrBackwardPlacement; the current
// position is a no-op.
func (b *Builder) AppendTo(pos int, label string, metadata map[string]any) error {
	if b.finished {
		return fmt.Errorf("%w: append to %d", ErrFinalized, pos)
	}
	cursor := len(b.buf)
	if pos < cursor {
		return fmt.Errorf("%w: target %d behind cursor %d", ErrBackwardPlacement, pos, cursor)
	}
	if pos == cursor {
		return nil
	}
	return b.AppendFiller(pos-cursor, label, metadata)
}

// RecordEvent attaches a discrete annotation at the current cursor
// position without writing any sequence content.
func (b *Builder) RecordEvent(name string, metadata map[string]any) error {
	if b.finished {
		return fmt.Errorf("%w: event %q", ErrFinalized, name)
	}
	b.events = append(b.events, NewEvent(name, len(b.buf), metadata))
	return nil
}

// Finish pads the remainder with filler up to target, transitions the
// builder to its terminal state, and returns the completed construct.
// A cursor already past target fails with ErrOverflow and leaves the
// builder untouched.
func (b *Builder) Finish(target int) (Construct, error) {
	if b.finished {
		return Construct{}, fmt.Errorf("%w: finish", ErrFinalized)
	}
	cursor := len(b.buf)
	if cursor > target {
		return Construct{}, fmt.Errorf("%w: cursor %d exceeds target length %d", ErrOverflow, cursor, target)
	}
	if cursor < target {
		if err := b.AppendFiller(target-cursor, LabelDownstreamFiller, nil); err != nil {
			return Construct{}, err
		}
	}
	b.finished = true
	return Construct{
		name:     b.name,
		sequence: string(b.buf),
		features: b.features,
		events:   b.events,
	}, nil
}

// Package construct provides the sequence builder state machine that
// assembles fixed-length constructs and records placed-part annotations.
package construct

// Feature is an annotation over a half-open interval [start, end) of the
// assembled sequence: a semantic label plus free-form metadata such as
// module name, orientation, or copy count. Zero-width features mark
// inputs that were deliberately absent.
type Feature struct {
	label    string
	start    int
	end      int
	metadata map[string]any
}

// NewFeature creates a Feature. The metadata map is copied.
func NewFeature(label string, start, end int, metadata map[string]any) Feature {
	return Feature{
		label:    label,
		start:    start,
		end:      end,
		metadata: cloneMetadata(metadata),
	}
}

// Label returns the semantic label.
func (f Feature) Label() string { return f.label }

// Start returns the inclusive start coordinate.
func (f Feature) Start() int { return f.start }

// End returns the exclusive end coordinate.
func (f Feature) End() int { return f.end }

// Width returns the number of bases the feature spans.
func (f Feature) Width() int { return f.end - f.start }

// Metadata returns a copy of the feature metadata.
func (f Feature) Metadata() map[string]any { return cloneMetadata(f.metadata) }

// Event is a discrete, positionless annotation attached to the cursor
// location at the time it was recorded. Events document structural
// deviations from a baseline layout (anchor inversions, deletions,
// relocations) that are not themselves sequence content.
type Event struct {
	name     string
	position int
	metadata map[string]any
}

// NewEvent creates an Event. The metadata map is copied.
func NewEvent(name string, position int, metadata map[string]any) Event {
	return Event{
		name:     name,
		position: position,
		metadata: cloneMetadata(metadata),
	}
}

// Name returns the event name.
func (e Event) Name() string { return e.name }

// Position returns the cursor position the event was recorded at.
func (e Event) Position() int { return e.position }

// Metadata returns a copy of the event metadata.
func (e Event) Metadata() map[string]any { return cloneMetadata(e.metadata) }

// Construct is the finished output: a sequence of exact target length
// plus its ordered feature and event annotations.
type Construct struct {
	name     string
	sequence string
	features []Feature
	events   []Event
}

// ReconstructConstruct rebuilds a Construct from persistence.
func ReconstructConstruct(name, sequence string, features []Feature, events []Event) Construct {
	fs := make([]Feature, len(features))
	copy(fs, features)
	es := make([]Event, len(events))
	copy(es, events)
	return Construct{name: name, sequence: sequence, features: fs, events: es}
}

// Name returns the construct name.
func (c Construct) Name() string { return c.name }

// Sequence returns the assembled nucleotide sequence.
func (c Construct) Sequence() string { return c.sequence }

// Length returns the sequence length in bases.
func (c Construct) Length() int { return len(c.sequence) }

// Features returns a copy of the ordered feature annotations.
func (c Construct) Features() []Feature {
	fs := make([]Feature, len(c.features))
	copy(fs, c.features)
	return fs
}

// Events returns a copy of the ordered event annotations.
func (c Construct) Events() []Event {
	es := make([]Event, len(c.events))
	copy(es, c.events)
	return es
}

func cloneMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return nil
	}
	out := make(map[string]any, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}

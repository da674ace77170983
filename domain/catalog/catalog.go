// Package catalog records built constructs so a batch can be queried after
// the fact: which constructs a run produced, where their FASTA artifacts
// live, and the feature and event annotations they carry.
package catalog

import (
	"time"

	"github.com/synthome/stitch/domain/construct"
)

// Entry is the catalog record of one built construct. The sequence itself
// is not part of the record; the FASTA artifact referenced by FastaKey is
// the sequence of record.
type Entry struct {
	id          int64
	runID       string
	name        string
	experiment  string
	description string
	length      int
	fastaKey    string
	features    []construct.Feature
	events      []construct.Event
	createdAt   time.Time
}

// NewEntry records a freshly built construct. The id is assigned on save.
func NewEntry(runID, name, experiment, description string, length int, fastaKey string, features []construct.Feature, events []construct.Event) Entry {
	return Entry{
		runID:       runID,
		name:        name,
		experiment:  experiment,
		description: description,
		length:      length,
		fastaKey:    fastaKey,
		features:    cloneFeatures(features),
		events:      cloneEvents(events),
		createdAt:   time.Now(),
	}
}

// ReconstructEntry rebuilds an Entry from persisted state.
func ReconstructEntry(id int64, runID, name, experiment, description string, length int, fastaKey string, features []construct.Feature, events []construct.Event, createdAt time.Time) Entry {
	return Entry{
		id:          id,
		runID:       runID,
		name:        name,
		experiment:  experiment,
		description: description,
		length:      length,
		fastaKey:    fastaKey,
		features:    cloneFeatures(features),
		events:      cloneEvents(events),
		createdAt:   createdAt,
	}
}

// ID returns the database id, or 0 before the entry is saved.
func (e Entry) ID() int64 { return e.id }

// RunID returns the uuid of the batch run that produced the construct.
func (e Entry) RunID() string { return e.runID }

// Name returns the construct name.
func (e Entry) Name() string { return e.name }

// Experiment returns the experiment family the construct belongs to.
func (e Entry) Experiment() string { return e.experiment }

// Description returns the human-readable recipe description.
func (e Entry) Description() string { return e.description }

// Length returns the construct length in bases.
func (e Entry) Length() int { return e.length }

// FastaKey returns the artifact store key of the construct's FASTA document.
func (e Entry) FastaKey() string { return e.fastaKey }

// Features returns a copy of the ordered feature annotations.
func (e Entry) Features() []construct.Feature { return cloneFeatures(e.features) }

// Events returns a copy of the ordered event annotations.
func (e Entry) Events() []construct.Event { return cloneEvents(e.events) }

// CreatedAt returns when the entry was recorded.
func (e Entry) CreatedAt() time.Time { return e.createdAt }

func cloneFeatures(features []construct.Feature) []construct.Feature {
	out := make([]construct.Feature, len(features))
	copy(out, features)
	return out
}

func cloneEvents(events []construct.Event) []construct.Event {
	out := make([]construct.Event, len(events))
	copy(out, events)
	return out
}

package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/synthome/stitch/domain/catalog"
	"github.com/synthome/stitch/domain/construct"
)

// ConstructMapper maps between catalog.Entry and ConstructRecord.
// Features and events live in their own tables; ConstructStore loads and
// attaches them, so ToDomain leaves both slices empty.
type ConstructMapper struct{}

// ToDomain converts a ConstructRecord to a catalog.Entry.
func (m ConstructMapper) ToDomain(e ConstructRecord) catalog.Entry {
	return catalog.ReconstructEntry(
		e.ID,
		e.RunID,
		e.Name,
		e.Experiment,
		e.Description,
		e.Length,
		e.FastaKey,
		nil,
		nil,
		e.CreatedAt,
	)
}

// ToModel converts a catalog.Entry to a ConstructRecord.
func (m ConstructMapper) ToModel(entry catalog.Entry) ConstructRecord {
	return ConstructRecord{
		ID:          entry.ID(),
		RunID:       entry.RunID(),
		Name:        entry.Name(),
		Experiment:  entry.Experiment(),
		Description: entry.Description(),
		Length:      entry.Length(),
		FastaKey:    entry.FastaKey(),
		CreatedAt:   entry.CreatedAt(),
	}
}

// featureRecords converts a construct's features for insertion.
func featureRecords(constructID int64, features []construct.Feature) ([]FeatureRecord, error) {
	records := make([]FeatureRecord, len(features))
	for i, f := range features {
		metadata, err := marshalMetadata(f.Metadata())
		if err != nil {
			return nil, fmt.Errorf("marshal feature %s metadata: %w", f.Label(), err)
		}
		records[i] = FeatureRecord{
			ConstructID: constructID,
			Ordinal:     i,
			Label:       f.Label(),
			StartPos:    f.Start(),
			EndPos:      f.End(),
			Metadata:    metadata,
		}
	}
	return records, nil
}

// featuresFromRecords converts persisted feature rows back to domain
// features. Callers order the rows by ordinal.
func featuresFromRecords(records []FeatureRecord) ([]construct.Feature, error) {
	features := make([]construct.Feature, len(records))
	for i, r := range records {
		metadata, err := unmarshalMetadata(r.Metadata)
		if err != nil {
			return nil, fmt.Errorf("unmarshal feature %s metadata: %w", r.Label, err)
		}
		features[i] = construct.NewFeature(r.Label, r.StartPos, r.EndPos, metadata)
	}
	return features, nil
}

// eventRecords converts a construct's events for insertion.
func eventRecords(constructID int64, events []construct.Event) ([]EventRecord, error) {
	records := make([]EventRecord, len(events))
	for i, e := range events {
		metadata, err := marshalMetadata(e.Metadata())
		if err != nil {
			return nil, fmt.Errorf("marshal event %s metadata: %w", e.Name(), err)
		}
		records[i] = EventRecord{
			ConstructID: constructID,
			Ordinal:     i,
			Name:        e.Name(),
			Position:    e.Position(),
			Metadata:    metadata,
		}
	}
	return records, nil
}

// eventsFromRecords converts persisted event rows back to domain events.
func eventsFromRecords(records []EventRecord) ([]construct.Event, error) {
	events := make([]construct.Event, len(records))
	for i, r := range records {
		metadata, err := unmarshalMetadata(r.Metadata)
		if err != nil {
			return nil, fmt.Errorf("unmarshal event %s metadata: %w", r.Name, err)
		}
		events[i] = construct.NewEvent(r.Name, r.Position, metadata)
	}
	return events, nil
}

func marshalMetadata(metadata map[string]any) (json.RawMessage, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	return json.Marshal(metadata)
}

func unmarshalMetadata(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var metadata map[string]any
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

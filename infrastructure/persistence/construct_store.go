package persistence

import (
	"context"
	"fmt"

	"github.com/synthome/stitch/domain/catalog"
	"github.com/synthome/stitch/internal/database"
	"gorm.io/gorm"
)

// ConstructStore implements catalog.Store using GORM.
type ConstructStore struct {
	database.Repository[catalog.Entry, ConstructRecord]
	db database.Database
}

// NewConstructStore creates a new ConstructStore.
func NewConstructStore(db database.Database) ConstructStore {
	return ConstructStore{
		Repository: database.NewRepository[catalog.Entry, ConstructRecord](db, ConstructMapper{}, "construct"),
		db:         db,
	}
}

// SaveBatch writes the entries of one run in a single transaction. Each
// entry's features and events are written alongside its record.
func (s ConstructStore) SaveBatch(ctx context.Context, entries []catalog.Entry) ([]catalog.Entry, error) {
	if len(entries) == 0 {
		return []catalog.Entry{}, nil
	}

	saved := make([]catalog.Entry, len(entries))
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		for i, entry := range entries {
			record := s.Mapper().ToModel(entry)
			if result := tx.Create(&record); result.Error != nil {
				return fmt.Errorf("save construct %s: %w", entry.Name(), result.Error)
			}

			features, err := featureRecords(record.ID, entry.Features())
			if err != nil {
				return err
			}
			if len(features) > 0 {
				if result := tx.Create(&features); result.Error != nil {
					return fmt.Errorf("save construct %s features: %w", entry.Name(), result.Error)
				}
			}

			events, err := eventRecords(record.ID, entry.Events())
			if err != nil {
				return err
			}
			if len(events) > 0 {
				if result := tx.Create(&events); result.Error != nil {
					return fmt.Errorf("save construct %s events: %w", entry.Name(), result.Error)
				}
			}

			saved[i] = catalog.ReconstructEntry(
				record.ID,
				entry.RunID(),
				entry.Name(),
				entry.Experiment(),
				entry.Description(),
				entry.Length(),
				entry.FastaKey(),
				entry.Features(),
				entry.Events(),
				record.CreatedAt,
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Find retrieves entries matching the query with features and events
// attached.
func (s ConstructStore) Find(ctx context.Context, query database.Query) ([]catalog.Entry, error) {
	var records []ConstructRecord
	if result := query.Apply(s.DB(ctx).Model(&ConstructRecord{})).Find(&records); result.Error != nil {
		return nil, fmt.Errorf("find constructs: %w", result.Error)
	}
	return s.assemble(ctx, records)
}

// ByRun retrieves the entries recorded under one run id in insertion order.
func (s ConstructStore) ByRun(ctx context.Context, runID string) ([]catalog.Entry, error) {
	return s.Find(ctx, database.NewQuery().Equal("run_id", runID).OrderAsc("id"))
}

// ByExperiment retrieves the entries recorded for an experiment family.
func (s ConstructStore) ByExperiment(ctx context.Context, experiment string) ([]catalog.Entry, error) {
	return s.Find(ctx, database.NewQuery().Equal("experiment", experiment).OrderAsc("id"))
}

// GetByName retrieves the most recently recorded entry for a construct name.
func (s ConstructStore) GetByName(ctx context.Context, name string) (catalog.Entry, error) {
	entries, err := s.Find(ctx, database.NewQuery().Equal("name", name).OrderDesc("id").Limit(1))
	if err != nil {
		return catalog.Entry{}, err
	}
	if len(entries) == 0 {
		return catalog.Entry{}, fmt.Errorf("%w: construct %s", database.ErrNotFound, name)
	}
	return entries[0], nil
}

// Experiments lists the distinct experiment families recorded.
func (s ConstructStore) Experiments(ctx context.Context) ([]string, error) {
	var experiments []string
	result := s.DB(ctx).
		Model(&ConstructRecord{}).
		Distinct("experiment").
		Order("experiment").
		Pluck("experiment", &experiments)
	if result.Error != nil {
		return nil, fmt.Errorf("list experiments: %w", result.Error)
	}
	return experiments, nil
}

// CountByRun returns the number of entries recorded under a run id.
func (s ConstructStore) CountByRun(ctx context.Context, runID string) (int64, error) {
	return s.Count(ctx, database.NewQuery().Equal("run_id", runID))
}

// DeleteByRun removes the entries of one run with their features and events.
func (s ConstructStore) DeleteByRun(ctx context.Context, runID string) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var ids []int64
		if result := tx.Model(&ConstructRecord{}).Where("run_id = ?", runID).Pluck("id", &ids); result.Error != nil {
			return fmt.Errorf("find run constructs: %w", result.Error)
		}
		if len(ids) == 0 {
			return nil
		}
		if result := tx.Where("construct_id IN ?", ids).Delete(&FeatureRecord{}); result.Error != nil {
			return fmt.Errorf("delete run features: %w", result.Error)
		}
		if result := tx.Where("construct_id IN ?", ids).Delete(&EventRecord{}); result.Error != nil {
			return fmt.Errorf("delete run events: %w", result.Error)
		}
		if result := tx.Where("run_id = ?", runID).Delete(&ConstructRecord{}); result.Error != nil {
			return fmt.Errorf("delete run constructs: %w", result.Error)
		}
		return nil
	})
}

// assemble loads the features and events for a page of construct records and
// rebuilds full catalog entries, preserving the record order.
func (s ConstructStore) assemble(ctx context.Context, records []ConstructRecord) ([]catalog.Entry, error) {
	if len(records) == 0 {
		return []catalog.Entry{}, nil
	}

	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}

	var featureRecs []FeatureRecord
	result := s.DB(ctx).Where("construct_id IN ?", ids).Order("construct_id, ordinal").Find(&featureRecs)
	if result.Error != nil {
		return nil, fmt.Errorf("load features: %w", result.Error)
	}

	var eventRecs []EventRecord
	result = s.DB(ctx).Where("construct_id IN ?", ids).Order("construct_id, ordinal").Find(&eventRecs)
	if result.Error != nil {
		return nil, fmt.Errorf("load events: %w", result.Error)
	}

	featuresByConstruct := make(map[int64][]FeatureRecord, len(records))
	for _, fr := range featureRecs {
		featuresByConstruct[fr.ConstructID] = append(featuresByConstruct[fr.ConstructID], fr)
	}
	eventsByConstruct := make(map[int64][]EventRecord, len(records))
	for _, er := range eventRecs {
		eventsByConstruct[er.ConstructID] = append(eventsByConstruct[er.ConstructID], er)
	}

	entries := make([]catalog.Entry, len(records))
	for i, r := range records {
		features, err := featuresFromRecords(featuresByConstruct[r.ID])
		if err != nil {
			return nil, fmt.Errorf("construct %s: %w", r.Name, err)
		}
		events, err := eventsFromRecords(eventsByConstruct[r.ID])
		if err != nil {
			return nil, fmt.Errorf("construct %s: %w", r.Name, err)
		}
		entries[i] = catalog.ReconstructEntry(
			r.ID,
			r.RunID,
			r.Name,
			r.Experiment,
			r.Description,
			r.Length,
			r.FastaKey,
			features,
			events,
			r.CreatedAt,
		)
	}
	return entries, nil
}

package persistence

import (
	"encoding/json"
	"time"
)

// ConstructRecord represents a built construct in the database. Records are
// append-only; a rerun writes new rows under a fresh run id.
type ConstructRecord struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunID       string    `gorm:"column:run_id;index;size:36;not null"`
	Name        string    `gorm:"column:name;index;size:255;not null"`
	Experiment  string    `gorm:"column:experiment;index;size:255;not null"`
	Description string    `gorm:"column:description;type:text"`
	Length      int       `gorm:"column:length;not null"`
	FastaKey    string    `gorm:"column:fasta_key;size:1024"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

// TableName returns the table name.
func (ConstructRecord) TableName() string {
	return "constructs"
}

// FeatureRecord represents one annotated span of a construct. Ordinal
// preserves append order within the construct.
type FeatureRecord struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ConstructID int64           `gorm:"column:construct_id;index;not null"`
	Ordinal     int             `gorm:"column:ordinal;not null"`
	Label       string          `gorm:"column:label;index;size:255;not null"`
	StartPos    int             `gorm:"column:start_pos;not null"`
	EndPos      int             `gorm:"column:end_pos;not null"`
	Metadata    json.RawMessage `gorm:"column:metadata;type:jsonb"`
}

// TableName returns the table name.
func (FeatureRecord) TableName() string {
	return "construct_features"
}

// EventRecord represents one structural event recorded during assembly.
type EventRecord struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ConstructID int64           `gorm:"column:construct_id;index;not null"`
	Ordinal     int             `gorm:"column:ordinal;not null"`
	Name        string          `gorm:"column:name;index;size:255;not null"`
	Position    int             `gorm:"column:position;not null"`
	Metadata    json.RawMessage `gorm:"column:metadata;type:jsonb"`
}

// TableName returns the table name.
func (EventRecord) TableName() string {
	return "construct_events"
}

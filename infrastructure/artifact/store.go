// Package artifact stores batch outputs (FASTA documents and JSON
// manifests) behind a driver-selectable store: local filesystem for
// workstation runs, S3 for cluster runs, memory for tests.
package artifact

import (
	"context"
	"errors"
	"fmt"
)

// Driver identifies a concrete artifact storage backend.
type Driver string

// Supported drivers.
const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverMemory     Driver = "memory"
)

// Content types attached to stored artifacts.
const (
	ContentTypeFASTA = "text/plain; charset=utf-8"
	ContentTypeJSON  = "application/json"
)

// ErrNotFound is returned when no artifact exists at the requested key.
var ErrNotFound = errors.New("artifact not found")

// Info describes one stored artifact.
type Info struct {
	Key  string
	Size int64
}

// Store receives batch artifacts. Keys are slash-separated paths
// relative to the store root. Writes are last-write-wins so a rerun of
// the same batch replaces its earlier outputs.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// Config selects and parameterizes a driver.
type Config struct {
	Driver Driver
	Root   string // filesystem driver root
	S3     S3Config
}

// Open constructs the store described by cfg. An empty driver selects
// the filesystem store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.Root)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown artifact driver %q", cfg.Driver)
	}
}

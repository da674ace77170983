package stitch

import (
	"io"
	"log/slog"

	"github.com/synthome/stitch/infrastructure/artifact"
	"github.com/synthome/stitch/infrastructure/tracking"
	"github.com/synthome/stitch/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL      string
	dataDir    string
	partsPath  string
	fillerPath string
	workers    int
	logger     *slog.Logger
	artifact   config.ArtifactConfig
	artifacts  artifact.Store
	reporter   tracking.Reporter
	closers    []io.Closer
}

// newClientConfig creates a clientConfig with defaults from internal/config.
// This ensures all defaults come from the single source of truth.
func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir: config.DefaultDataDir(),
		workers: config.DefaultWorkerCount,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the catalog database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres configures PostgreSQL as the catalog database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL sets the catalog database URL directly.
// Supported schemes are sqlite:// and postgresql://.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithDataDir sets the data directory for the default catalog database
// and artifact root.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithPartsFile sets the default parts library file for this client.
func WithPartsFile(path string) Option {
	return func(c *clientConfig) {
		c.partsPath = path
	}
}

// WithFillerFile sets the default background sequence file for this client.
func WithFillerFile(path string) Option {
	return func(c *clientConfig) {
		c.fillerPath = path
	}
}

// WithWorkers sets the number of concurrent construct builds per batch.
// Defaults to 1 if not specified. Values <= 0 are ignored.
func WithWorkers(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithArtifactConfig selects and parameterizes the artifact store driver.
func WithArtifactConfig(cfg config.ArtifactConfig) Option {
	return func(c *clientConfig) {
		c.artifact = cfg
	}
}

// WithArtifactStore injects a pre-built artifact store, bypassing driver
// configuration. Useful for tests with the memory store.
func WithArtifactStore(s artifact.Store) Option {
	return func(c *clientConfig) {
		c.artifacts = s
	}
}

// WithReporter replaces the default logging reporter for batch progress.
func WithReporter(r tracking.Reporter) Option {
	return func(c *clientConfig) {
		c.reporter = r
	}
}

// WithCloser registers a resource to be closed when the Client shuts down.
func WithCloser(c io.Closer) Option {
	return func(cfg *clientConfig) {
		cfg.closers = append(cfg.closers, c)
	}
}

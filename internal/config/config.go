// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Default configuration values.
const (
	DefaultLogLevel       = "INFO"
	DefaultWorkerCount    = 1
	DefaultArtifactDriver = "fs"
	DefaultArtifactSubdir = "artifacts"
	DefaultDatabaseFile   = "stitch.db"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// ArtifactConfig configures where build artifacts (FASTA files and
// manifests) are written.
type ArtifactConfig struct {
	driver      string
	root        string
	s3Bucket    string
	s3Prefix    string
	s3Region    string
	s3Endpoint  string
	s3PathStyle bool
}

// NewArtifactConfig creates a new ArtifactConfig with defaults.
func NewArtifactConfig() ArtifactConfig {
	return ArtifactConfig{
		driver: DefaultArtifactDriver,
	}
}

// Driver returns the artifact store driver name.
func (a ArtifactConfig) Driver() string { return a.driver }

// Root returns the filesystem root for the fs driver. Empty means the
// default under the data directory.
func (a ArtifactConfig) Root() string { return a.root }

// S3Bucket returns the S3 bucket name.
func (a ArtifactConfig) S3Bucket() string { return a.s3Bucket }

// S3Prefix returns the key prefix applied to all S3 objects.
func (a ArtifactConfig) S3Prefix() string { return a.s3Prefix }

// S3Region returns the S3 region.
func (a ArtifactConfig) S3Region() string { return a.s3Region }

// S3Endpoint returns a custom S3 endpoint URL, if any.
func (a ArtifactConfig) S3Endpoint() string { return a.s3Endpoint }

// S3PathStyle returns whether path-style S3 addressing is forced.
func (a ArtifactConfig) S3PathStyle() bool { return a.s3PathStyle }

// IsConfigured returns true if the config selects a non-default target.
func (a ArtifactConfig) IsConfigured() bool {
	return a.root != "" || a.s3Bucket != ""
}

// ArtifactOption is a functional option for ArtifactConfig.
type ArtifactOption func(*ArtifactConfig)

// WithArtifactDriver sets the artifact store driver.
func WithArtifactDriver(driver string) ArtifactOption {
	return func(a *ArtifactConfig) { a.driver = driver }
}

// WithArtifactRoot sets the filesystem root for the fs driver.
func WithArtifactRoot(root string) ArtifactOption {
	return func(a *ArtifactConfig) { a.root = root }
}

// WithS3Bucket sets the S3 bucket.
func WithS3Bucket(bucket string) ArtifactOption {
	return func(a *ArtifactConfig) { a.s3Bucket = bucket }
}

// WithS3Prefix sets the S3 key prefix.
func WithS3Prefix(prefix string) ArtifactOption {
	return func(a *ArtifactConfig) { a.s3Prefix = prefix }
}

// WithS3Region sets the S3 region.
func WithS3Region(region string) ArtifactOption {
	return func(a *ArtifactConfig) { a.s3Region = region }
}

// WithS3Endpoint sets a custom S3 endpoint URL.
func WithS3Endpoint(endpoint string) ArtifactOption {
	return func(a *ArtifactConfig) { a.s3Endpoint = endpoint }
}

// WithS3PathStyle forces path-style S3 addressing.
func WithS3PathStyle(pathStyle bool) ArtifactOption {
	return func(a *ArtifactConfig) { a.s3PathStyle = pathStyle }
}

// NewArtifactConfigWithOptions creates an ArtifactConfig with functional options.
func NewArtifactConfigWithOptions(opts ...ArtifactOption) ArtifactConfig {
	a := NewArtifactConfig()
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	dataDir     string
	dbURL       string
	logLevel    string
	logFormat   LogFormat
	workerCount int
	partsPath   string
	fillerPath  string
	artifact    ArtifactConfig
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stitch"
	}
	return filepath.Join(home, ".stitch")
}

// DefaultArtifactRoot returns the default artifact root for a given data directory.
func DefaultArtifactRoot(dataDir string) string {
	return filepath.Join(dataDir, DefaultArtifactSubdir)
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// PrepareDataDir creates the data directory if it does not exist and returns it.
func PrepareDataDir(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		dataDir:     dataDir,
		dbURL:       "sqlite:///" + filepath.Join(dataDir, DefaultDatabaseFile),
		logLevel:    DefaultLogLevel,
		logFormat:   LogFormatPretty,
		workerCount: DefaultWorkerCount,
		artifact:    NewArtifactConfig(),
	}
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// WorkerCount returns the number of concurrent construct builders.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// PartsPath returns the path to the parts library YAML file.
func (c AppConfig) PartsPath() string { return c.partsPath }

// FillerPath returns the path to the filler sequence file.
func (c AppConfig) FillerPath() string { return c.fillerPath }

// Artifact returns the artifact store config.
func (c AppConfig) Artifact() ArtifactConfig { return c.artifact }

// ArtifactRoot returns the resolved filesystem artifact root, falling
// back to the default under the data directory.
func (c AppConfig) ArtifactRoot() string {
	if c.artifact.root != "" {
		return c.artifact.root
	}
	return DefaultArtifactRoot(c.dataDir)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Update default DB URL when data dir changes
		if c.dbURL == "" || strings.Contains(c.dbURL, DefaultDatabaseFile) {
			c.dbURL = "sqlite:///" + filepath.Join(dir, DefaultDatabaseFile)
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithWorkerCount sets the number of concurrent construct builders.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithPartsPath sets the parts library file path.
func WithPartsPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.partsPath = path }
}

// WithFillerPath sets the filler sequence file path.
func WithFillerPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.fillerPath = path }
}

// WithArtifactConfig sets the artifact store config.
func WithArtifactConfig(a ArtifactConfig) AppConfigOption {
	return func(c *AppConfig) { c.artifact = a }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
// This copies all fields from the receiver and then applies the options,
// making it safe to use when adding new fields to AppConfig.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Database credentials are masked.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.Int("worker_count", c.workerCount),
		slog.String("parts_path", orUnset(c.partsPath)),
		slog.String("filler_path", orUnset(c.fillerPath)),
		slog.String("artifact_driver", c.artifact.Driver()),
		slog.String("artifact_root", c.ArtifactRoot()),
		slog.String("artifact_s3_bucket", c.artifact.S3Bucket()),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if len(c.dbURL) >= 7 && c.dbURL[:7] == "sqlite:" {
		return c.dbURL
	}
	return "postgres://***@***"
}

func orUnset(path string) string {
	if path == "" {
		return "(not set)"
	}
	return path
}

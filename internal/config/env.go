// Package config provides application configuration.
package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix applied to all environment variables.
const EnvPrefix = "STITCH"

// EnvConfig holds all environment-based configuration.
// Field names map to environment variables with the STITCH_ prefix.
// Nested structs use underscore delimiter (e.g., STITCH_ARTIFACT_S3_BUCKET).
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: STITCH_DATA_DIR
	// Default: ~/.stitch
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the catalog database connection URL.
	// Env: STITCH_DB_URL
	// Default: sqlite:///{data_dir}/stitch.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: STITCH_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: STITCH_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// WorkerCount is the number of concurrent construct builders.
	// Env: STITCH_WORKER_COUNT (default: 1)
	WorkerCount int `envconfig:"WORKER_COUNT" default:"1"`

	// PartsPath is the path to the parts library YAML file.
	// Env: STITCH_PARTS_PATH
	PartsPath string `envconfig:"PARTS_PATH"`

	// FillerPath is the path to the filler sequence file.
	// Env: STITCH_FILLER_PATH
	FillerPath string `envconfig:"FILLER_PATH"`

	// Artifact configures where build artifacts are written.
	Artifact ArtifactEnv `envconfig:"ARTIFACT"`
}

// ArtifactEnv holds environment configuration for the artifact store.
type ArtifactEnv struct {
	// Driver selects the artifact store backend (fs, s3 or memory).
	// Env: STITCH_ARTIFACT_DRIVER (default: fs)
	Driver string `envconfig:"DRIVER" default:"fs"`

	// Root is the filesystem root for the fs driver.
	// Env: STITCH_ARTIFACT_ROOT
	// Default: {data_dir}/artifacts
	Root string `envconfig:"ROOT"`

	// S3Bucket is the S3 bucket name.
	// Env: STITCH_ARTIFACT_S3_BUCKET
	S3Bucket string `envconfig:"S3_BUCKET"`

	// S3Prefix is the key prefix applied to all S3 objects.
	// Env: STITCH_ARTIFACT_S3_PREFIX
	S3Prefix string `envconfig:"S3_PREFIX"`

	// S3Region is the S3 region.
	// Env: STITCH_ARTIFACT_S3_REGION
	S3Region string `envconfig:"S3_REGION"`

	// S3Endpoint is a custom S3 endpoint URL (e.g., for MinIO).
	// Env: STITCH_ARTIFACT_S3_ENDPOINT
	S3Endpoint string `envconfig:"S3_ENDPOINT"`

	// S3PathStyle forces path-style S3 addressing.
	// Env: STITCH_ARTIFACT_S3_PATH_STYLE (default: false)
	S3PathStyle bool `envconfig:"S3_PATH_STYLE" default:"false"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	return LoadFromEnvWithPrefix(EnvPrefix)
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "STITCH" requires STITCH_DATA_DIR instead of DATA_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	// Apply overrides from environment
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.WorkerCount > 0 {
		cfg = applyOption(cfg, WithWorkerCount(e.WorkerCount))
	}
	if e.PartsPath != "" {
		cfg = applyOption(cfg, WithPartsPath(e.PartsPath))
	}
	if e.FillerPath != "" {
		cfg = applyOption(cfg, WithFillerPath(e.FillerPath))
	}

	cfg = applyOption(cfg, WithArtifactConfig(e.Artifact.ToArtifactConfig()))

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// ToArtifactConfig converts ArtifactEnv to ArtifactConfig.
func (a ArtifactEnv) ToArtifactConfig() ArtifactConfig {
	opts := []ArtifactOption{
		WithS3PathStyle(a.S3PathStyle),
	}

	if a.Driver != "" {
		opts = append(opts, WithArtifactDriver(a.Driver))
	}
	if a.Root != "" {
		opts = append(opts, WithArtifactRoot(a.Root))
	}
	if a.S3Bucket != "" {
		opts = append(opts, WithS3Bucket(a.S3Bucket))
	}
	if a.S3Prefix != "" {
		opts = append(opts, WithS3Prefix(a.S3Prefix))
	}
	if a.S3Region != "" {
		opts = append(opts, WithS3Region(a.S3Region))
	}
	if a.S3Endpoint != "" {
		opts = append(opts, WithS3Endpoint(a.S3Endpoint))
	}

	return NewArtifactConfigWithOptions(opts...)
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}

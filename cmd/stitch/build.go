package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/synthome/stitch"
	"github.com/synthome/stitch/application/service"
	"github.com/synthome/stitch/infrastructure/parts"
	"github.com/synthome/stitch/internal/config"
	"github.com/synthome/stitch/internal/log"
)

func buildCmd() *cobra.Command {
	var (
		envFile     string
		experiment  string
		partsPath   string
		fillerPath  string
		recipesPath string
		dataDir     string
		dbURL       string
		workers     int
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble a batch of constructs",
		Long: `Assemble a batch of synthetic constructs, writing one FASTA artifact per
construct and one JSON manifest per batch.

The experiment selects a built-in recipe family (stacking, distance_decay,
cocktail, logic_gates, grammar, structural_variants) or "all" for every
family. Passing --recipes replaces the built-in batch with a custom recipe
document.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  STITCH_DATA_DIR              Data directory (default: ~/.stitch)
  STITCH_DB_URL                Catalog database URL (default: sqlite:///{data_dir}/stitch.db)
  STITCH_LOG_LEVEL             Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  STITCH_LOG_FORMAT            Log format: pretty, json (default: pretty)
  STITCH_WORKER_COUNT          Concurrent construct builders (default: 1)
  STITCH_PARTS_PATH            Parts library YAML file
  STITCH_FILLER_PATH           Filler sequence file

  STITCH_ARTIFACT_*            Artifact store configuration
    DRIVER                     Backend: fs, s3, memory (default: fs)
    ROOT                       Filesystem root (default: {data_dir}/artifacts)
    S3_BUCKET                  S3 bucket name
    S3_PREFIX                  Key prefix applied to all S3 objects
    S3_REGION                  S3 region
    S3_ENDPOINT                Custom S3 endpoint URL (e.g., for MinIO)
    S3_PATH_STYLE              Force path-style S3 addressing (default: false)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(buildOptions{
				envFile:    envFile,
				experiment: experiment,
				parts:      partsPath,
				filler:     fillerPath,
				recipes:    recipesPath,
				dataDir:    dataDir,
				dbURL:      dbURL,
				workers:    workers,
				out:        outDir,
			})
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&experiment, "experiment", "all", "Recipe family to build, or \"all\"")
	cmd.Flags().StringVar(&partsPath, "parts", "", "Path to the parts library YAML file")
	cmd.Flags().StringVar(&fillerPath, "filler", "", "Path to the filler sequence file")
	cmd.Flags().StringVar(&recipesPath, "recipes", "", "Path to a custom recipe YAML document")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.stitch)")
	cmd.Flags().StringVar(&dbURL, "db", "", "Catalog database URL")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent construct builders (default: 1)")
	cmd.Flags().StringVar(&outDir, "out", "", "Artifact output directory (default: {data_dir}/artifacts)")

	return cmd
}

type buildOptions struct {
	envFile    string
	experiment string
	parts      string
	filler     string
	recipes    string
	dataDir    string
	dbURL      string
	workers    int
	out        string
}

func runBuild(opts buildOptions) error {
	// Load configuration
	cfg, err := loadConfig(opts.envFile)
	if err != nil {
		return err
	}

	// Apply command line overrides (flags take precedence over env vars)
	cfg = applyBuildOverrides(cfg, opts)

	// Ensure directories exist
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// Setup logger
	logger := log.NewLogger(cfg)
	slogger := logger.Slog()

	if cfg.PartsPath() == "" {
		return fmt.Errorf("no parts library specified (use --parts or STITCH_PARTS_PATH)")
	}
	if cfg.FillerPath() == "" {
		return fmt.Errorf("no filler sequence specified (use --filler or STITCH_FILLER_PATH)")
	}

	// Build stitch client options
	clientOpts := []stitch.Option{
		stitch.WithDataDir(cfg.DataDir()),
		stitch.WithDatabaseURL(cfg.DBURL()),
		stitch.WithPartsFile(cfg.PartsPath()),
		stitch.WithFillerFile(cfg.FillerPath()),
		stitch.WithWorkers(cfg.WorkerCount()),
		stitch.WithLogger(slogger),
		stitch.WithArtifactConfig(cfg.Artifact()),
	}

	// Create stitch client and log settings
	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting stitch", attrs...)

	client, err := stitch.New(clientOpts...)
	if err != nil {
		return fmt.Errorf("create stitch client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close stitch client", slog.Any("error", err))
		}
	}()

	// Cancel the run on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var result service.BatchResult
	if opts.recipes != "" {
		recs, lerr := parts.LoadRecipes(opts.recipes)
		if lerr != nil {
			return fmt.Errorf("load recipe document: %w", lerr)
		}
		result, err = client.BuildRecipes(ctx, "custom", recs)
	} else {
		result, err = client.BuildBatch(ctx, opts.experiment)
	}
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	total := len(result.Entries) + len(result.Failures)
	fmt.Printf("Run %s: built %d of %d constructs in %s\n",
		result.RunID, len(result.Entries), total, result.Duration.Round(time.Millisecond))
	fmt.Printf("Manifest: %s\n", result.ManifestKey)
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s (%s): %v\n", f.Construct, f.Experiment, f.Err)
	}
	if n := len(result.Failures); n > 0 {
		return fmt.Errorf("%d of %d constructs failed", n, total)
	}

	return nil
}

// applyBuildOverrides applies command line flag overrides to the config.
func applyBuildOverrides(cfg config.AppConfig, opts buildOptions) config.AppConfig {
	var cfgOpts []config.AppConfigOption

	if opts.dataDir != "" {
		cfgOpts = append(cfgOpts, config.WithDataDir(opts.dataDir))
	}
	if opts.dbURL != "" {
		cfgOpts = append(cfgOpts, config.WithDBURL(opts.dbURL))
	}
	if opts.workers > 0 {
		cfgOpts = append(cfgOpts, config.WithWorkerCount(opts.workers))
	}
	if opts.parts != "" {
		cfgOpts = append(cfgOpts, config.WithPartsPath(opts.parts))
	}
	if opts.filler != "" {
		cfgOpts = append(cfgOpts, config.WithFillerPath(opts.filler))
	}
	if opts.out != "" {
		artifact := config.NewArtifactConfigWithOptions(
			config.WithArtifactDriver(cfg.Artifact().Driver()),
			config.WithArtifactRoot(opts.out),
			config.WithS3Bucket(cfg.Artifact().S3Bucket()),
			config.WithS3Prefix(cfg.Artifact().S3Prefix()),
			config.WithS3Region(cfg.Artifact().S3Region()),
			config.WithS3Endpoint(cfg.Artifact().S3Endpoint()),
			config.WithS3PathStyle(cfg.Artifact().S3PathStyle()),
		)
		cfgOpts = append(cfgOpts, config.WithArtifactConfig(artifact))
	}

	return cfg.Apply(cfgOpts...)
}

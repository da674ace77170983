// Package stitch provides a library for assembling synthetic DNA constructs.
//
// Stitch places regulatory parts (enhancers, promoters, motifs) onto a
// neutral background sequence according to declarative recipes, writes one
// FASTA document per construct plus a JSON manifest per batch, and records
// every assembled construct in a queryable catalog.
//
// Basic usage:
//
//	client, err := stitch.New(
//	    stitch.WithSQLite(".stitch/stitch.db"),
//	    stitch.WithPartsFile("parts.yaml"),
//	    stitch.WithFillerFile("filler.txt"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Assemble the enhancer stacking series
//	result, err := client.BuildBatch(ctx, "stacking")
//
//	// Query the catalog
//	entries, err := client.Catalog.ByRun(ctx, result.RunID)
//	for _, entry := range entries {
//	    fmt.Println(entry.Name(), entry.Length(), entry.FastaKey())
//	}
package stitch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/synthome/stitch/application/service"
	"github.com/synthome/stitch/domain/recipe"
	"github.com/synthome/stitch/infrastructure/artifact"
	"github.com/synthome/stitch/infrastructure/parts"
	"github.com/synthome/stitch/infrastructure/persistence"
	"github.com/synthome/stitch/infrastructure/tracking"
	"github.com/synthome/stitch/internal/config"
	"github.com/synthome/stitch/internal/database"
)

// Client is the main entry point for the stitch library.
//
// Access resources via struct fields:
//
//	client.Assembly.Run(ctx, params)
//	client.Catalog.ByRun(ctx, runID)
type Client struct {
	// Public resource fields (direct service access)
	Assembly *service.Assembly
	Catalog  *service.Catalog

	db        database.Database
	artifacts artifact.Store
	closers   []io.Closer

	logger     *slog.Logger
	dataDir    string
	partsPath  string
	fillerPath string
	closed     atomic.Bool
	mu         sync.Mutex
}

// New creates a new Client with the given options. Without a database
// option the catalog lives in SQLite under the data directory.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	// Set up logger
	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	// Set up data directory
	dataDir, err := config.PrepareDataDir(cfg.dataDir)
	if err != nil {
		return nil, err
	}

	dbURL := cfg.dbURL
	if dbURL == "" {
		dbURL = "sqlite:///" + filepath.Join(dataDir, config.DefaultDatabaseFile)
	}

	// Open database
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Run auto migration
	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	// Validate schema matches GORM models
	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	store := persistence.NewConstructStore(db)

	// Open the artifact store unless one was injected
	artifacts := cfg.artifacts
	if artifacts == nil {
		artifacts, err = artifact.Open(ctx, artifactConfigFor(cfg.artifact, dataDir))
		if err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("open artifact store: %w", err), errClose)
		}
	}

	// Wrap the default reporter in a cooldown to limit log output to at
	// most once per second per run during high-frequency updates.
	reporter := cfg.reporter
	if reporter == nil {
		cooldown := tracking.NewCooldown(tracking.NewLoggingReporter(logger), time.Second)
		cfg.closers = append(cfg.closers, cooldown)
		reporter = cooldown
	}

	client := &Client{
		db:         db,
		artifacts:  artifacts,
		closers:    cfg.closers,
		logger:     logger,
		dataDir:    dataDir,
		partsPath:  cfg.partsPath,
		fillerPath: cfg.fillerPath,
	}

	// Initialize service fields directly
	client.Assembly = service.NewAssembly(store, artifacts, logger).
		WithWorkers(cfg.workers).
		WithReporter(reporter)
	client.Catalog = service.NewCatalog(store, &client.closed, logger)

	return client, nil
}

// Close releases all resources.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Close registered resources (e.g. reporter cooldowns)
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			c.logger.Error("failed to close resource", slog.Any("error", err))
		}
	}

	// Close the database
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("stitch client closed")
	return nil
}

// BuildBatch assembles the canonical recipes of one experiment family over
// the client's configured parts library and background sequence. The
// family "all" runs every canonical family in build order.
func (c *Client) BuildBatch(ctx context.Context, family string) (service.BatchResult, error) {
	if c.closed.Load() {
		return service.BatchResult{}, ErrClientClosed
	}
	recipes, err := recipe.Batch(family)
	if err != nil {
		return service.BatchResult{}, err
	}
	return c.runBatch(ctx, family, recipes)
}

// BuildRecipes assembles an explicit recipe list under the given batch
// name, e.g. recipes loaded from a recipe file via parts.LoadRecipes.
func (c *Client) BuildRecipes(ctx context.Context, batch string, recipes []recipe.Recipe) (service.BatchResult, error) {
	if c.closed.Load() {
		return service.BatchResult{}, ErrClientClosed
	}
	return c.runBatch(ctx, batch, recipes)
}

func (c *Client) runBatch(ctx context.Context, batch string, recipes []recipe.Recipe) (service.BatchResult, error) {
	if c.partsPath == "" {
		return service.BatchResult{}, fmt.Errorf("stitch: no parts library configured (use WithPartsFile)")
	}
	if c.fillerPath == "" {
		return service.BatchResult{}, fmt.Errorf("stitch: no background sequence configured (use WithFillerFile)")
	}
	lib, err := parts.LoadLibrary(c.partsPath)
	if err != nil {
		return service.BatchResult{}, fmt.Errorf("load parts library: %w", err)
	}
	background, err := parts.LoadFiller(c.fillerPath)
	if err != nil {
		return service.BatchResult{}, fmt.Errorf("load background sequence: %w", err)
	}
	return c.Assembly.Run(ctx, service.BatchParams{
		Batch:   batch,
		Recipes: recipes,
		Library: lib,
		Filler:  background,
	})
}

// Artifacts returns the client's artifact store.
func (c *Client) Artifacts() artifact.Store {
	return c.artifacts
}

// DataDir returns the client's data directory.
func (c *Client) DataDir() string {
	return c.dataDir
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// artifactConfigFor maps the artifact configuration onto a driver config,
// defaulting the filesystem root to a directory under dataDir.
func artifactConfigFor(ac config.ArtifactConfig, dataDir string) artifact.Config {
	root := ac.Root()
	if root == "" {
		root = config.DefaultArtifactRoot(dataDir)
	}
	return artifact.Config{
		Driver: artifact.Driver(ac.Driver()),
		Root:   root,
		S3: artifact.S3Config{
			Region:    ac.S3Region(),
			Bucket:    ac.S3Bucket(),
			Prefix:    ac.S3Prefix(),
			Endpoint:  ac.S3Endpoint(),
			PathStyle: ac.S3PathStyle(),
		},
	}
}

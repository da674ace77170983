// Package service provides application layer services that orchestrate domain operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/synthome/stitch/domain/catalog"
	"github.com/synthome/stitch/domain/filler"
	"github.com/synthome/stitch/domain/recipe"
	"github.com/synthome/stitch/domain/sequence"
	"github.com/synthome/stitch/infrastructure/artifact"
	"github.com/synthome/stitch/infrastructure/emit"
	"github.com/synthome/stitch/infrastructure/tracking"
)

// BatchParams describes one assembly run.
type BatchParams struct {
	// Batch names the selection (a family identifier, "all" or "custom")
	// and keys the manifest artifact.
	Batch string

	// Recipes are built in order; each gets a fresh exclusive cycler.
	Recipes []recipe.Recipe

	// Library resolves module names referenced by the recipes.
	Library *sequence.Library

	// Filler is the base background sequence shared by the batch.
	Filler string

	// Params sets the construct geometry. The zero value selects
	// recipe.DefaultParams.
	Params recipe.Params
}

// BuildFailure records one construct that could not be assembled.
type BuildFailure struct {
	Construct  string
	Experiment string
	Err        error
}

// BatchResult summarizes one assembly run.
type BatchResult struct {
	RunID       string
	Entries     []catalog.Entry
	Failures    []BuildFailure
	ManifestKey string
	Duration    time.Duration
}

// Assembly runs recipe batches: it builds constructs concurrently, writes
// FASTA artifacts and the batch manifest, and records catalog entries.
type Assembly struct {
	store     catalog.Store
	artifacts artifact.Store
	reporter  tracking.Reporter
	logger    *slog.Logger
	workers   int
}

// NewAssembly creates an Assembly service.
func NewAssembly(store catalog.Store, artifacts artifact.Store, logger *slog.Logger) *Assembly {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembly{
		store:     store,
		artifacts: artifacts,
		logger:    logger,
		workers:   1,
	}
}

// WithWorkers sets the number of concurrent construct builds.
func (a *Assembly) WithWorkers(n int) *Assembly {
	if n > 0 {
		a.workers = n
	}
	return a
}

// WithReporter sets the progress reporter.
func (a *Assembly) WithReporter(r tracking.Reporter) *Assembly {
	a.reporter = r
	return a
}

// Run assembles every recipe in the batch. Individual construct failures
// are collected in the result and do not abort the run; artifact and
// catalog write failures do.
func (a *Assembly) Run(ctx context.Context, params BatchParams) (BatchResult, error) {
	if len(params.Recipes) == 0 {
		return BatchResult{}, ErrEmptyBatch
	}
	if params.Library == nil {
		return BatchResult{}, errors.New("stitch: assembly requires a parts library")
	}
	if params.Filler == "" {
		return BatchResult{}, fmt.Errorf("stitch: assembly background: %w", filler.ErrEmptyFiller)
	}

	p := params.Params
	if p.ConstructLength == 0 {
		p = recipe.DefaultParams()
	}

	runID := uuid.NewString()
	started := time.Now()
	logger := a.logger.With(slog.String("run_id", runID))
	logger.Info("assembly run started",
		slog.String("batch", params.Batch),
		slog.Int("constructs", len(params.Recipes)),
		slog.Int("workers", a.workers),
	)

	status := tracking.NewStatus(runID, len(params.Recipes))
	a.report(ctx, status)

	// Builds are pure and independent; outcomes land in recipe order.
	outcomes := make([]buildOutcome, len(params.Recipes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, rec := range params.Recipes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = buildConstruct(rec, params.Library, params.Filler, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.report(ctx, status.Fail(err.Error()))
		return BatchResult{}, fmt.Errorf("assembly run %s: %w", runID, err)
	}

	// Collector: serialize artifact, manifest and catalog writes.
	manifest := emit.NewManifest()
	entries := make([]catalog.Entry, 0, len(params.Recipes))
	var failures []BuildFailure

	for i, rec := range params.Recipes {
		out := outcomes[i]
		if out.err != nil {
			logger.Error("construct build failed",
				slog.String("construct", rec.ConstructName()),
				slog.String("experiment", rec.ExperimentName()),
				slog.String("error", out.err.Error()),
			)
			failures = append(failures, BuildFailure{
				Construct:  rec.ConstructName(),
				Experiment: rec.ExperimentName(),
				Err:        out.err,
			})
			status = status.RecordFailed(rec.ConstructName())
			a.report(ctx, status)
			continue
		}

		res := out.result
		fastaKey := path.Join(res.Experiment, res.FastaName)
		doc := emit.FASTA(res.FastaHeader, res.Construct.Sequence(), res.LineWidth)
		if err := a.artifacts.Put(ctx, fastaKey, artifact.ContentTypeFASTA, doc); err != nil {
			a.report(ctx, status.Fail(err.Error()))
			return BatchResult{}, fmt.Errorf("write fasta %s: %w", fastaKey, err)
		}

		manifest.Add(res, fastaKey)
		entries = append(entries, catalog.NewEntry(
			runID,
			res.Construct.Name(),
			res.Experiment,
			res.Description,
			res.Construct.Length(),
			fastaKey,
			res.Construct.Features(),
			res.Construct.Events(),
		))
		status = status.RecordBuilt(res.Construct.Name())
		a.report(ctx, status)
	}

	manifestKey := manifestKeyFor(params.Batch)
	encoded, err := manifest.Encode()
	if err != nil {
		a.report(ctx, status.Fail(err.Error()))
		return BatchResult{}, fmt.Errorf("encode manifest: %w", err)
	}
	if err := a.artifacts.Put(ctx, manifestKey, artifact.ContentTypeJSON, encoded); err != nil {
		a.report(ctx, status.Fail(err.Error()))
		return BatchResult{}, fmt.Errorf("write manifest %s: %w", manifestKey, err)
	}

	saved := entries
	if len(entries) > 0 {
		saved, err = a.store.SaveBatch(ctx, entries)
		if err != nil {
			a.report(ctx, status.Fail(err.Error()))
			return BatchResult{}, fmt.Errorf("record catalog entries: %w", err)
		}
	}

	a.report(ctx, status.Complete())

	result := BatchResult{
		RunID:       runID,
		Entries:     saved,
		Failures:    failures,
		ManifestKey: manifestKey,
		Duration:    time.Since(started),
	}
	logger.Info("assembly run complete",
		slog.Int("built", len(saved)),
		slog.Int("failed", len(failures)),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

type buildOutcome struct {
	result recipe.Result
	err    error
}

// buildConstruct assembles one recipe over its own exclusive cycler.
// A non-zero seed permutes the shared background first, so replicates
// diverge only in their filler spans.
func buildConstruct(rec recipe.Recipe, lib *sequence.Library, background string, p recipe.Params) buildOutcome {
	if seed := rec.FillerSeed(); seed != 0 {
		background = filler.Permute(background, seed)
	}
	cyc, err := filler.NewCycler(background)
	if err != nil {
		return buildOutcome{err: fmt.Errorf("construct %s: %w", rec.ConstructName(), err)}
	}
	res, err := rec.Build(lib, cyc, p)
	if err != nil {
		return buildOutcome{err: err}
	}
	return buildOutcome{result: res}
}

func manifestKeyFor(batch string) string {
	if batch == "" {
		batch = "constructs"
	}
	return batch + "_manifest.json"
}

func (a *Assembly) report(ctx context.Context, status tracking.Status) {
	if a.reporter == nil {
		return
	}
	if err := a.reporter.OnChange(ctx, status); err != nil {
		a.logger.Warn("progress report failed", slog.String("error", err.Error()))
	}
}

// Package iobuild orchestrates the extraction pipeline: stream
// articles from a record source, parse and normalize them on a worker
// pool, project each record into its two storage shapes, and persist
// the lot as one atomic build. This is an impure I/O package.
package iobuild

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/reinderien/mycota/pkg/config"
	"github.com/reinderien/mycota/pkg/infobox"
	"github.com/reinderien/mycota/pkg/mycota"
	"github.com/reinderien/mycota/pkg/normalize"
	"github.com/reinderien/mycota/pkg/parserpool"
	"github.com/reinderien/mycota/pkg/schema"
)

// outcome is one article's fate after the parse/normalize stage.
type outcome struct {
	rec     *schema.Record
	skipped bool
	pageID  int64
}

// builder implements the mycota.Builder interface.
type builder struct {
	cfg   *config.Config
	reg   *schema.Registry
	store mycota.Store
}

// New creates a Builder persisting into the given store.
func New(
	cfg *config.Config,
	reg *schema.Registry,
	store mycota.Store,
) mycota.Builder {
	return &builder{cfg: cfg, reg: reg, store: store}
}

// Build runs the whole pipeline. Per-article parse failures are
// skipped and counted; any other failure aborts the build, discarding
// the staging store and leaving the previously committed store
// untouched.
func (b *builder) Build(
	ctx context.Context,
	src mycota.Source,
) (*mycota.BuildStats, error) {
	startTime := time.Now()
	buildID := uuid.New().String()
	slog.Info("Starting build", "build_id", buildID)

	if err := b.store.Create(ctx); err != nil {
		return nil, err
	}

	stats, err := b.runPipeline(ctx, src)
	if err != nil {
		if derr := b.store.Discard(); derr != nil {
			slog.Error("Failed to discard staging store", "error", derr)
		}
		if errors.Is(err, context.Canceled) {
			return nil, CancelledError(err)
		}
		var gErr *gn.Error
		if errors.As(err, &gErr) {
			return nil, err
		}
		return nil, PipelineError(err)
	}

	if stats.Records == 0 {
		_ = b.store.Discard()
		return nil, NoRecordsError(stats.Fetched)
	}

	if err := b.store.Commit(ctx); err != nil {
		if derr := b.store.Discard(); derr != nil {
			slog.Error("Failed to discard staging store", "error", derr)
		}
		return nil, err
	}

	duration := time.Since(startTime)
	slog.Info("Build complete",
		"build_id", buildID,
		"records", stats.Records,
		"skipped", stats.Skipped,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info("Built <em>%s</em> records in %s",
		humanize.Comma(int64(stats.Records)),
		gnfmt.TimeString(duration.Seconds()),
	)

	return stats, nil
}

// runPipeline wires the three stages with an errgroup:
//
//	Stage 1: source streams pages -> chPages
//	Stage 2: workers parse, normalize and enrich -> chOut
//	Stage 3: collector projects and persists, gathers stats
func (b *builder) runPipeline(
	ctx context.Context,
	src mycota.Source,
) (*mycota.BuildStats, error) {
	chPages := make(chan schema.Page)
	chOut := make(chan outcome)

	pool := parserpool.NewPool(b.cfg.JobsNumber)
	defer pool.Close()

	g, gCtx := errgroup.WithContext(ctx)

	// Stage 1: stream pages from the source.
	g.Go(func() error {
		defer close(chPages)
		return src.Pages(gCtx, chPages)
	})

	// Stage 2: parse and normalize with workers.
	parser := infobox.NewParser(b.reg)
	var wg sync.WaitGroup
	for range b.cfg.JobsNumber {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return b.worker(gCtx, parser, pool, chPages, chOut)
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	// Stage 3: project and persist; persistence is the single
	// serialization point of the pipeline.
	stats := &mycota.BuildStats{Overflow: make(map[string]int)}
	g.Go(func() error {
		for out := range chOut {
			stats.Fetched++

			if out.skipped {
				stats.Skipped++
				stats.SkippedIDs = append(stats.SkippedIDs, out.pageID)
				continue
			}

			for attr, n := range out.rec.Overflow {
				stats.Overflow[attr] += n
			}

			row, doc := b.reg.Project(out.rec)
			if err := b.store.Insert(gCtx, row, doc); err != nil {
				return err
			}
			stats.Records++
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Skip order is nondeterministic across workers; report sorted.
	sort.Slice(stats.SkippedIDs, func(i, j int) bool {
		return stats.SkippedIDs[i] < stats.SkippedIDs[j]
	})

	return stats, nil
}

// worker parses pages into infoboxes, normalizes them, and enriches
// each record with the canonical name form and its stable UUID.
// Articles without a recognized infobox or with unparseable template
// markup are skipped, never fatal.
func (b *builder) worker(
	ctx context.Context,
	parser *infobox.Parser,
	pool parserpool.Pool,
	chIn <-chan schema.Page,
	chOut chan<- outcome,
) error {
	for page := range chIn {
		select {
		case <-ctx.Done():
			// Drain the channel on cancellation.
			for range chIn {
			}
			return ctx.Err()
		default:
		}

		box, err := parser.Parse(&page)
		if err != nil {
			slog.Debug("Skipping article",
				"pageid", page.PageID,
				"title", page.Title,
				"reason", err,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chOut <- outcome{skipped: true, pageID: page.PageID}:
			}
			continue
		}

		rec := normalize.Record(b.reg, box)
		if p := pool.Parse(rec.Name); p.Parsed {
			rec.Canonical = p.Canonical.Simple
		}
		rec.NameUUID = gnuuid.New(rec.Name).String()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- outcome{rec: rec, pageID: page.PageID}:
		}
	}
	return nil
}

// Package mycota defines the contracts between the build pipeline's
// stages. Implementations live in internal/io* packages; pure
// computation lives in pkg/.
package mycota

import (
	"context"

	"github.com/reinderien/mycota/pkg/schema"
)

// Source yields raw article pages for one build. Implementations are
// the MediaWiki API client and the local JSON dump reader.
type Source interface {
	// Pages streams every candidate article to ch, honoring ctx
	// cancellation. It does not close ch; the pipeline owns the
	// channel and closes it after Pages returns.
	Pages(ctx context.Context, ch chan<- schema.Page) error
}

// BuildStats summarizes one build for the end-of-run report.
type BuildStats struct {
	// Fetched is the number of pages yielded by the source.
	Fetched int

	// Records is the number of records present in both output
	// structures after commit.
	Records int

	// Skipped counts articles excluded from both structures: no
	// recognized infobox, or unparseable template syntax.
	Skipped int

	// SkippedIDs lists the page ids of skipped articles.
	SkippedIDs []int64

	// Overflow counts tokens beyond the slot boundary per attribute
	// across all records. Such tokens stay searchable in the
	// full-text structure but have no relational column.
	Overflow map[string]int
}

// Builder runs the whole extraction pipeline: fetch, parse, normalize,
// project, persist, and atomically commit both storage structures.
type Builder interface {
	// Build rebuilds the store from scratch from the given source.
	// A failure leaves the previously committed store untouched.
	Build(ctx context.Context, src Source) (*BuildStats, error)
}

// Store persists the dual representation and serves the diagnostic
// projections.
type Store interface {
	// Create opens the staging database and creates both structures'
	// schemas from scratch.
	Create(ctx context.Context) error

	// Insert adds one projected pair to the staging database.
	// Batching is internal; Flush completes any partial batch.
	Insert(ctx context.Context, row schema.Row, doc schema.Document) error

	// Flush writes any buffered rows to the staging database.
	Flush(ctx context.Context) error

	// Commit verifies both structures describe the identical record
	// set and atomically replaces the live store with the staging
	// one. After a failed Commit the live store is unchanged.
	Commit(ctx context.Context) error

	// Discard drops the staging database, keeping the live store.
	Discard() error
}

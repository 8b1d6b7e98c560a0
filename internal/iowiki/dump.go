package iowiki

import (
	"context"
	"log/slog"
	"os"

	"github.com/gnames/gnfmt"

	"github.com/reinderien/mycota/pkg/mycota"
	"github.com/reinderien/mycota/pkg/schema"
)

// dumpSource reads pages from a local JSON dump. Useful for offline
// and reproducible builds, and for tests.
type dumpSource struct {
	path string
}

// NewDump creates a record source backed by a JSON file holding an
// array of pages: [{"pageid":..., "title":..., "text":...}, ...].
func NewDump(path string) mycota.Source {
	return &dumpSource{path: path}
}

// Pages decodes the dump and streams its pages in file order.
func (d *dumpSource) Pages(
	ctx context.Context,
	ch chan<- schema.Page,
) error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return DumpReadError(d.path, err)
	}

	var pages []schema.Page
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &pages); err != nil {
		return DumpReadError(d.path, err)
	}

	slog.Info("Loaded page dump", "path", d.path, "count", len(pages))

	for _, page := range pages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- page:
		}
	}

	return nil
}

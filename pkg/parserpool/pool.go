// Package parserpool provides a pool of gnparser instances for
// concurrent parsing of taxonomic names. Fungal names follow the
// botanical nomenclatural code, so a single botanical pool suffices.
// This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool hands out gnparser instances for concurrent name parsing.
type Pool interface {
	// Parse parses a taxonomic name string. Safe for concurrent use;
	// blocks while all parsers are busy.
	Parse(name string) parsed.Parsed

	// Close shuts the pool down. The pool must not be used after
	// Close.
	Close()
}

type poolImpl struct {
	ch chan gnparser.GNparser
}

// NewPool creates a parser pool with jobsNum instances, defaulting to
// the number of CPUs when jobsNum is 0.
func NewPool(jobsNum int) Pool {
	size := jobsNum
	if size == 0 {
		size = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
	)
	return &poolImpl{ch: gnparser.NewPool(cfg, size)}
}

// Parse takes a parser from the pool, parses the name, and returns
// the parser afterwards.
func (p *poolImpl) Parse(name string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(name)
	p.ch <- parser
	return res
}

// Close closes and drains the parser channel.
func (p *poolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}

// Package normalize converts raw infobox parameter values into ordered
// lists of atomic value tokens, and assembles normalized records from
// parsed infoboxes.
//
// This is a pure package - no I/O.
package normalize

import (
	"sort"
	"strings"

	"github.com/reinderien/mycota/pkg/schema"
)

// listSeparator splits multi-valued parameters ("adnate, adnexed").
const listSeparator = ","

// Tokens splits a raw parameter value into ordered atomic tokens.
// Pieces are trimmed and lowercased; whitespace-only pieces are
// dropped. Literal tokens like "unknown" or "none" are preserved
// verbatim - absence is represented by an empty result, never by a
// sentinel string. Order is the source order: never sorted, never
// deduplicated. Tokens is idempotent on its own re-joined output.
func Tokens(raw string) []string {
	var res []string
	for piece := range strings.SplitSeq(raw, listSeparator) {
		piece = strings.ToLower(strings.TrimSpace(piece))
		if piece == "" {
			continue
		}
		res = append(res, piece)
	}
	return res
}

// CleanName strips the wiki-italic apostrophes that wrap taxonomic
// names in article markup ("''Amanita muscaria''").
func CleanName(name string) string {
	return strings.Trim(strings.TrimSpace(name), "'")
}

// Record assembles a normalized record from a parsed infobox. For each
// attribute the raw parameter values are taken in slot-ordinal order
// and split into tokens. The full ordered list is kept - the slot cap
// applies at projection time, to the relational shape only, so the
// full-text fields never lose values. Tokens beyond the slot count are
// counted in Overflow. Attributes with no tokens are absent from
// Values.
func Record(reg *schema.Registry, box *schema.RawInfobox) *schema.Record {
	rec := &schema.Record{
		PageID:   box.PageID,
		Title:    box.Title,
		Name:     CleanName(box.Name),
		Values:   make(map[string][]string),
		Overflow: make(map[string]int),
	}

	// Group raw values per attribute, keyed by ordinal.
	grouped := make(map[string]map[int]string)
	for key, raw := range box.Params {
		m := grouped[key.Attr]
		if m == nil {
			m = make(map[int]string)
			grouped[key.Attr] = m
		}
		m[key.Ordinal] = raw
	}

	for _, attr := range reg.Attributes() {
		m := grouped[attr.Key]
		if len(m) == 0 {
			continue
		}

		ordinals := make([]int, 0, len(m))
		for ord := range m {
			ordinals = append(ordinals, ord)
		}
		sort.Ints(ordinals)

		var tokens []string
		for _, ord := range ordinals {
			tokens = append(tokens, Tokens(m[ord])...)
		}
		if len(tokens) == 0 {
			continue
		}

		if len(tokens) > attr.Slots {
			rec.Overflow[attr.Key] = len(tokens) - attr.Slots
		}
		rec.Values[attr.Key] = tokens
	}

	return rec
}

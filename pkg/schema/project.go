package schema

import (
	"database/sql"
	"strings"
)

// Project derives both storage shapes from one normalized record.
// The two projections are keyed by the same page id and are always
// emitted together, so the relational table and the full-text index
// can never disagree about which records exist. Tokens beyond an
// attribute's slot count are dropped from the relational cells but
// kept in the document field, so truncation never affects full-text
// search.
func (r *Registry) Project(rec *Record) (Row, Document) {
	row := Row{
		PageID:    rec.PageID,
		Title:     rec.Title,
		Name:      rec.Name,
		Canonical: nullable(rec.Canonical),
		NameUUID:  nullable(rec.NameUUID),
		Cells:     make(map[string]sql.NullString),
	}
	doc := Document{
		PageID:    rec.PageID,
		Title:     rec.Title,
		Name:      rec.Name,
		Canonical: rec.Canonical,
		Fields:    make(map[string]string),
	}

	for _, attr := range r.attrs {
		tokens := rec.Values[attr.Key]
		for s := 1; s <= attr.Slots; s++ {
			var cell sql.NullString
			if s <= len(tokens) {
				cell = nullable(tokens[s-1])
			}
			row.Cells[SlotColumn(attr.Key, s)] = cell
		}
		// Collapsed column carries the first slot only.
		var first sql.NullString
		if len(tokens) > 0 {
			first = nullable(tokens[0])
		}
		row.Cells[attr.Key] = first

		doc.Fields[attr.Key] = strings.Join(tokens, " ")
	}

	return row, doc
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

package schema

import (
	"fmt"
	"strings"
)

const (
	// TableName is the relational table holding one row per record.
	TableName = "mycota"

	// FTSName is the FTS5 virtual table holding one document per
	// record.
	FTSName = "mycota_fts"
)

// SlotColumn names the positional column for one attribute slot.
func SlotColumn(attrKey string, ordinal int) string {
	return fmt.Sprintf("%s_%d", attrKey, ordinal)
}

// Columns returns the relational column names in their stable order:
// identity columns first, then per attribute the positional slot
// columns followed by the collapsed first-slot column.
func (r *Registry) Columns() []string {
	cols := []string{"page_id", "title", "name", "canonical", "name_uuid"}
	for _, attr := range r.attrs {
		for s := 1; s <= attr.Slots; s++ {
			cols = append(cols, SlotColumn(attr.Key, s))
		}
		cols = append(cols, attr.Key)
	}
	return cols
}

// FTSColumns returns the full-text field names in their stable order.
// page_id is stored unindexed for keying only; it is not searchable.
func (r *Registry) FTSColumns() []string {
	cols := []string{"title", "name", "canonical"}
	for _, attr := range r.attrs {
		cols = append(cols, attr.Key)
	}
	return cols
}

// TableDDL returns the CREATE TABLE statement for the relational
// representation.
func (r *Registry) TableDDL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", TableName)
	b.WriteString("  page_id INTEGER PRIMARY KEY,\n")
	b.WriteString("  title TEXT NOT NULL,\n")
	b.WriteString("  name TEXT NOT NULL,\n")
	b.WriteString("  canonical TEXT,\n")
	b.WriteString("  name_uuid TEXT")
	for _, attr := range r.attrs {
		for s := 1; s <= attr.Slots; s++ {
			fmt.Fprintf(&b, ",\n  %s TEXT", SlotColumn(attr.Key, s))
		}
		fmt.Fprintf(&b, ",\n  %s TEXT", attr.Key)
	}
	b.WriteString("\n)")
	return b.String()
}

// FTSDDL returns the CREATE VIRTUAL TABLE statement for the full-text
// representation. The default unicode61 tokenizer gives whole-token,
// case-insensitive matching.
func (r *Registry) FTSDDL() string {
	cols := append(r.FTSColumns(), "page_id UNINDEXED")
	return fmt.Sprintf(
		"CREATE VIRTUAL TABLE %s USING fts5(%s)",
		FTSName, strings.Join(cols, ", "),
	)
}

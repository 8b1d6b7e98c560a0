package schema

import "database/sql"

// Page is one raw article yielded by a record source.
type Page struct {
	// PageID is the stable external identifier, unique across runs.
	PageID int64 `json:"pageid"`

	// Title is the article's display title.
	Title string `json:"title"`

	// Text is the raw wikitext of the article's current revision.
	Text string `json:"text"`
}

// RawInfobox is the template invocation parsed out of one article.
// It is transient: discarded after normalization.
type RawInfobox struct {
	PageID int64
	Title  string

	// Name is the taxonomic name from the template; it may differ
	// from the article title.
	Name string

	// Params maps resolved attribute key and slot ordinal to the raw
	// parameter value. Unrecognized parameters are dropped at parse
	// time; alias resolution has already happened.
	Params map[ParamKey]string
}

// ParamKey addresses one raw parameter after alias resolution.
type ParamKey struct {
	Attr    string // canonical attribute key
	Ordinal int    // 1-based slot ordinal from the parameter name
}

// Record is one fully normalized article. Attribute values are
// lowercase atomic tokens in source order, uncapped; the relational
// projection truncates to the slot count, the full-text projection
// keeps every token. An absent attribute has no entry, distinct from
// literal tokens like "unknown".
type Record struct {
	PageID    int64
	Title     string
	Name      string
	Canonical string // canonical form of Name, empty when unparseable
	NameUUID  string // UUID v5 of Name, stable across runs

	// Values maps attribute key to its ordered slot tokens.
	Values map[string][]string

	// Overflow counts tokens per attribute beyond the slot count,
	// which the relational projection will not keep.
	Overflow map[string]int
}

// Tokens returns the ordered slot tokens for an attribute, nil when
// the attribute was not recorded.
func (rec *Record) Tokens(attrKey string) []string {
	return rec.Values[attrKey]
}

// Row is the relational projection of one Record: one value or null
// per (attribute, slot) column, plus the collapsed first-slot column
// per attribute.
type Row struct {
	PageID    int64
	Title     string
	Name      string
	Canonical sql.NullString
	NameUUID  sql.NullString

	// Cells maps a slot or collapsed column name to its value.
	// Absent slots are null.
	Cells map[string]sql.NullString
}

// Document is the full-text projection of one Record: one field per
// attribute holding its slot tokens joined by spaces, plus title, name
// and canonical fields. The union across fields is implicit in FTS5.
type Document struct {
	PageID    int64
	Title     string
	Name      string
	Canonical string

	// Fields maps attribute key to its space-joined slot tokens.
	// Absent attributes are empty strings, contributing no tokens.
	Fields map[string]string
}

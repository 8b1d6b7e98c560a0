// Package schema defines the morphology attributes extracted from the
// Mycomorphbox template and the two storage shapes derived from them:
// a wide relational table with positional slot columns and an FTS5
// document structure over the same records.
//
// This is a pure package - no I/O.
package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute is one morphology property carried by the infobox template.
// An organism may exhibit up to Slots values for the same property,
// reported in source order.
type Attribute struct {
	// Key is the canonical identifier, also the column stem in both
	// storage shapes (e.g. "cap_shape" -> cap_shape_1, cap_shape_2).
	Key string

	// Slots is the fixed number of positional value columns. Values
	// beyond Slots get no relational column and are counted as
	// overflow.
	Slots int

	// Params are the recognized raw template parameter stems for this
	// attribute, lowercased. The first entry is the current template
	// name; the rest are historical aliases.
	Params []string
}

// paramRef locates an attribute in the registry by index. Slot
// ordinals are not stored here; Resolve parses them off the raw
// parameter name (e.g. "whichgills2").
type paramRef struct {
	idx int
}

// Registry resolves raw template parameter names to attributes.
// The default registry covers the current Mycomorphbox schema;
// extra aliases can be merged from configuration.
type Registry struct {
	attrs   []Attribute
	byParam map[string]paramRef
}

// defaultAttributes lists the recognized attributes in their stable
// column order. Slot counts mirror the template: only gill attachment
// carries up to three values, hymenium type and the color swatch are
// single-valued.
func defaultAttributes() []Attribute {
	return []Attribute{
		{Key: "which_gills", Slots: 3, Params: []string{"whichgills", "gillattachment"}},
		{Key: "cap_shape", Slots: 2, Params: []string{"capshape"}},
		{Key: "hymenium_type", Slots: 1, Params: []string{"hymeniumtype", "hymenium"}},
		{Key: "stipe_character", Slots: 2, Params: []string{"stipecharacter", "stipecharacteristic"}},
		{Key: "ecological_type", Slots: 2, Params: []string{"ecologicaltype", "ecology"}},
		{Key: "spore_print_color", Slots: 2, Params: []string{"sporeprintcolor", "sporecolor"}},
		{Key: "how_edible", Slots: 2, Params: []string{"howedible", "edibility"}},
		{Key: "color", Slots: 1, Params: []string{"color", "colour"}},
	}
}

// NewRegistry returns a registry with the built-in attribute set.
func NewRegistry() *Registry {
	r := &Registry{attrs: defaultAttributes()}
	r.byParam = make(map[string]paramRef)
	for i, attr := range r.attrs {
		for _, p := range attr.Params {
			r.byParam[p] = paramRef{idx: i}
		}
	}
	return r
}

// Attributes returns the attributes in their stable column order.
// The returned slice must not be modified.
func (r *Registry) Attributes() []Attribute {
	return r.attrs
}

// Attribute looks up an attribute by its canonical key.
func (r *Registry) Attribute(key string) (Attribute, bool) {
	for _, attr := range r.attrs {
		if attr.Key == key {
			return attr, true
		}
	}
	return Attribute{}, false
}

// AddAlias registers an extra raw parameter stem for an existing
// attribute. Raw names are matched case-insensitively, so the alias is
// stored lowercased. Unknown attribute keys and aliases that collide
// with another attribute are rejected.
func (r *Registry) AddAlias(param, attrKey string) error {
	param = strings.ToLower(strings.TrimSpace(param))
	if param == "" {
		return fmt.Errorf("empty alias for attribute %q", attrKey)
	}

	idx := -1
	for i, attr := range r.attrs {
		if attr.Key == attrKey {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("unknown attribute %q for alias %q", attrKey, param)
	}

	if ref, ok := r.byParam[param]; ok && ref.idx != idx {
		return fmt.Errorf(
			"alias %q already maps to attribute %q",
			param, r.attrs[ref.idx].Key,
		)
	}

	r.byParam[param] = paramRef{idx: idx}
	r.attrs[idx].Params = append(r.attrs[idx].Params, param)
	return nil
}

// Resolve maps a raw template parameter name to its attribute and slot
// ordinal. Numbered variants address later slots: "whichGills2" is the
// second gill-attachment slot; a bare name means slot 1. Matching is
// case-insensitive. Resolve reports false for unrecognized parameters.
// Ordinals beyond the attribute's slot count still resolve - the
// normalizer counts them as overflow.
func (r *Registry) Resolve(param string) (Attribute, int, bool) {
	stem, ordinal := splitOrdinal(strings.ToLower(strings.TrimSpace(param)))
	ref, ok := r.byParam[stem]
	if !ok {
		return Attribute{}, 0, false
	}
	return r.attrs[ref.idx], ordinal, true
}

// splitOrdinal separates a trailing slot number from a parameter stem.
// A missing number means the first slot.
func splitOrdinal(param string) (string, int) {
	i := len(param)
	for i > 0 && param[i-1] >= '0' && param[i-1] <= '9' {
		i--
	}
	if i == len(param) || i == 0 {
		return param, 1
	}
	n, err := strconv.Atoi(param[i:])
	if err != nil || n < 1 {
		return param, 1
	}
	return param[:i], n
}

package infobox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reinderien/mycota/pkg/infobox"
	"github.com/reinderien/mycota/pkg/schema"
)

const articleText = `
'''Agaricus campestris''' is a widely eaten gilled mushroom.
{{Mycomorphbox
| name = ''Agaricus campestris''
| whichGills = free
| capShape = convex
| capShape2 = flat
| hymeniumType = gills
| stipeCharacter = ring
| ecologicalType = saprotrophic
| sporePrintColor = brown
| howEdible = choice
}}
It is found in fields after rain.
`

func newParser() *infobox.Parser {
	return infobox.NewParser(schema.NewRegistry())
}

func TestParse(t *testing.T) {
	page := &schema.Page{PageID: 42, Title: "Agaricus campestris", Text: articleText}

	box, err := newParser().Parse(page)
	require.NoError(t, err)

	assert.Equal(t, int64(42), box.PageID)
	assert.Equal(t, "Agaricus campestris", box.Name)

	tests := []struct {
		msg  string
		key  schema.ParamKey
		want string
	}{
		{"bare parameter", schema.ParamKey{Attr: "which_gills", Ordinal: 1}, "free"},
		{"first slot", schema.ParamKey{Attr: "cap_shape", Ordinal: 1}, "convex"},
		{"numbered slot", schema.ParamKey{Attr: "cap_shape", Ordinal: 2}, "flat"},
		{"hymenium", schema.ParamKey{Attr: "hymenium_type", Ordinal: 1}, "gills"},
		{"edibility", schema.ParamKey{Attr: "how_edible", Ordinal: 1}, "choice"},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, box.Params[v.key], v.msg)
	}
}

func TestParseNoTemplate(t *testing.T) {
	page := &schema.Page{
		PageID: 1,
		Title:  "Agaricus",
		Text:   "'''Agaricus''' is a genus of mushrooms. {{Taxobox|genus=Agaricus}}",
	}

	_, err := newParser().Parse(page)
	assert.ErrorIs(t, err, infobox.ErrNotFound)
}

func TestParseMalformed(t *testing.T) {
	page := &schema.Page{
		PageID: 2,
		Title:  "Broken",
		Text:   "{{Mycomorphbox | capShape = convex",
	}

	_, err := newParser().Parse(page)
	assert.ErrorIs(t, err, infobox.ErrMalformed)
}

func TestParseCaseVariants(t *testing.T) {
	tests := []struct {
		msg  string
		text string
	}{
		{"lowercase template", "{{mycomorphbox | capShape = convex}}"},
		{"uppercase params", "{{Mycomorphbox | CAPSHAPE = convex}}"},
		{"whitespace around name", "{{ Mycomorphbox \n| capShape = convex}}"},
	}

	for _, v := range tests {
		page := &schema.Page{PageID: 3, Title: "X", Text: v.text}
		box, err := newParser().Parse(page)
		require.NoError(t, err, v.msg)
		assert.Equal(t, "convex",
			box.Params[schema.ParamKey{Attr: "cap_shape", Ordinal: 1}], v.msg)
	}
}

func TestParseNameFallsBackToTitle(t *testing.T) {
	page := &schema.Page{
		PageID: 4,
		Title:  "Boletus edulis",
		Text:   "{{Mycomorphbox | howEdible = choice}}",
	}

	box, err := newParser().Parse(page)
	require.NoError(t, err)
	assert.Equal(t, "Boletus edulis", box.Name)
}

func TestParseIgnoresUnknownParams(t *testing.T) {
	page := &schema.Page{
		PageID: 5,
		Title:  "X",
		Text:   "{{Mycomorphbox | habitat = woodland | capShape = convex}}",
	}

	box, err := newParser().Parse(page)
	require.NoError(t, err)
	assert.Len(t, box.Params, 1)
}

func TestParseEmptyValueSkipped(t *testing.T) {
	page := &schema.Page{
		PageID: 6,
		Title:  "X",
		Text:   "{{Mycomorphbox | capShape = | howEdible = edible}}",
	}

	box, err := newParser().Parse(page)
	require.NoError(t, err)

	_, ok := box.Params[schema.ParamKey{Attr: "cap_shape", Ordinal: 1}]
	assert.False(t, ok, "empty value must not produce an entry")
	assert.Equal(t, "edible",
		box.Params[schema.ParamKey{Attr: "how_edible", Ordinal: 1}])
}

func TestParseNestedMarkup(t *testing.T) {
	text := `{{Mycomorphbox
| name = ''Amanita muscaria''
| whichGills = [[Lamella (mycology)|free]]
| sporePrintColor = white{{efn|Occasionally cream.}}
| howEdible = poisonous<ref name="toxins">Toxins review.</ref>
| capShape = convex <!-- flattens with age -->
}}`
	page := &schema.Page{PageID: 7, Title: "Amanita muscaria", Text: text}

	box, err := newParser().Parse(page)
	require.NoError(t, err)

	tests := []struct {
		msg  string
		key  schema.ParamKey
		want string
	}{
		{"piped link keeps label",
			schema.ParamKey{Attr: "which_gills", Ordinal: 1}, "free"},
		{"nested template dropped",
			schema.ParamKey{Attr: "spore_print_color", Ordinal: 1}, "white"},
		{"ref dropped",
			schema.ParamKey{Attr: "how_edible", Ordinal: 1}, "poisonous"},
		{"comment dropped",
			schema.ParamKey{Attr: "cap_shape", Ordinal: 1}, "convex"},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, box.Params[v.key], v.msg)
	}

	assert.Equal(t, "Amanita muscaria", box.Name,
		"italic apostrophes must not survive markup stripping")
}

func TestParseSecondTemplateInArticle(t *testing.T) {
	text := `{{Taxobox | genus = Amanita}}
Some prose.
{{Mycomorphbox | capShape = conical}}`
	page := &schema.Page{PageID: 8, Title: "X", Text: text}

	box, err := newParser().Parse(page)
	require.NoError(t, err)
	assert.Equal(t, "conical",
		box.Params[schema.ParamKey{Attr: "cap_shape", Ordinal: 1}])
}

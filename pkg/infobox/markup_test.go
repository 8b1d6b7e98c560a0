package infobox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reinderien/mycota/pkg/infobox"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		msg   string
		value string
		res   string
	}{
		{"plain value", " convex ", "convex"},
		{"link keeps target", "[[convex]]", "convex"},
		{"piped link keeps label", "[[Pileus (mycology)|convex]]", "convex"},
		{"bold removed", "'''choice'''", "choice"},
		{"italics removed", "''Amanita''", "Amanita"},
		{"comment removed", "convex<!-- or flat -->", "convex"},
		{"paired ref removed", "brown<ref>Arora 1986</ref>", "brown"},
		{"self-closing ref removed", `brown<ref name="a"/>`, "brown"},
		{"nested template removed", "white{{efn|sometimes cream}}", "white"},
		{"br becomes separator", "adnate<br>adnexed", "adnate, adnexed"},
		{"br with slash", "adnate<br />adnexed", "adnate, adnexed"},
		{"other tags removed", "<small>brown</small>", "brown"},
		{"newlines collapse", "olive\nbrown", "olive brown"},
		{"empty after stripping", "{{unknown}}", ""},
		{"two links", "[[adnate]] or [[adnexed]]", "adnate or adnexed"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, infobox.StripMarkup(v.value), v.msg)
	}
}

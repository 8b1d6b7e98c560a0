package infobox

import (
	"regexp"
	"strings"
)

var (
	reComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	reRefPair = regexp.MustCompile(`(?s)<ref[^>/]*>.*?</ref>`)
	reRefSolo = regexp.MustCompile(`<ref[^>]*/>`)
	reBreak   = regexp.MustCompile(`(?i)<br\s*/?>`)
	reTag     = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	reSpace   = regexp.MustCompile(`\s+`)
)

// StripMarkup reduces an infobox parameter value to plain text.
// Bracketed links keep their display text, nested templates and
// references are dropped, <br> acts as a list separator, remaining
// tags and formatting quotes are removed, and whitespace (including
// the newlines template authors love) collapses to single spaces.
func StripMarkup(value string) string {
	value = reComment.ReplaceAllString(value, "")
	value = reRefPair.ReplaceAllString(value, "")
	value = reRefSolo.ReplaceAllString(value, "")
	value = stripTemplates(value)
	value = stripLinks(value)
	value = reBreak.ReplaceAllString(value, ", ")
	value = reTag.ReplaceAllString(value, " ")
	value = strings.ReplaceAll(value, "'''", "")
	value = strings.ReplaceAll(value, "''", "")
	value = reSpace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// stripTemplates removes nested {{...}} invocations wholesale; their
// expansion is presentation, not data.
func stripTemplates(value string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(value); {
		switch {
		case strings.HasPrefix(value[i:], "{{"):
			depth++
			i += 2
		case strings.HasPrefix(value[i:], "}}") && depth > 0:
			depth--
			i += 2
		default:
			if depth == 0 {
				b.WriteByte(value[i])
			}
			i++
		}
	}
	return b.String()
}

// stripLinks rewrites [[target|label]] to label and [[target]] to
// target. Unclosed links lose their brackets but keep their text.
func stripLinks(value string) string {
	var b strings.Builder
	for {
		start := strings.Index(value, "[[")
		if start < 0 {
			b.WriteString(value)
			break
		}
		b.WriteString(value[:start])
		rest := value[start+2:]

		end := strings.Index(rest, "]]")
		if end < 0 {
			b.WriteString(rest)
			break
		}

		link := rest[:end]
		if pipe := strings.LastIndex(link, "|"); pipe >= 0 {
			link = link[pipe+1:]
		}
		b.WriteString(link)
		value = rest[end+2:]
	}
	return b.String()
}

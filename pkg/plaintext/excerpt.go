package plaintext

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

const (
	// DefaultExcerptLimit bounds how much of a chapter is placed into a prompt.
	DefaultExcerptLimit = 3000

	// TruncatedSuffix marks an excerpt that was cut at the limit.
	TruncatedSuffix = "...[content truncated]"
)

var stripPolicy = newStripPolicy()

func newStripPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// Excerpt returns the text of the HTML input with all markup removed and whitespace collapsed.
// Text longer than limit runes is cut and marked with TruncatedSuffix. A limit of zero or less
// selects DefaultExcerptLimit.
func Excerpt(input string, limit int) string {
	if limit <= 0 {
		limit = DefaultExcerptLimit
	}
	text := html.UnescapeString(stripPolicy.Sanitize(input))
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + TruncatedSuffix
}

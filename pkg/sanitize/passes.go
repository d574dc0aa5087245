package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// attrPass inspects a single attribute of a start tag, returning the attribute to emit and
// whether it is kept at all.
type attrPass func(f *filter, el element, a html.Attribute) (html.Attribute, bool)

// attrPasses run in this order for every attribute.
var attrPasses = []attrPass{
	neutralizeScheme,
	dropEventHandler,
	filterStyle,
}

// neutralizeScheme replaces URL values using a dangerous scheme with "#", keeping the attribute.
func neutralizeScheme(f *filter, _ element, a html.Attribute) (html.Attribute, bool) {
	if !urlAttrs[a.Key] || !hasDangerousScheme(a.Val) {
		return a, true
	}
	f.report.Schemes++
	a.Val = "#"
	return a, true
}

// dropEventHandler removes on* attributes.
func dropEventHandler(f *filter, _ element, a html.Attribute) (html.Attribute, bool) {
	if !eventHandlerName.MatchString(a.Key) {
		return a, true
	}
	f.report.Handlers++
	return a, false
}

// filterStyle removes style attributes, except on an iframe-wrapper where the layout-only
// declarations survive.
func filterStyle(f *filter, el element, a html.Attribute) (html.Attribute, bool) {
	if a.Key != "style" {
		return a, true
	}
	if el.wrapper {
		if style := sanitizeWrapperStyle(a.Val); style != "" {
			if style != a.Val {
				f.report.Styles++
			}
			a.Val = style
			return a, true
		}
	}
	f.report.Styles++
	return a, false
}

// hasDangerousScheme reports whether the URL in v starts with one of dangerousSchemes once it has
// been normalized the way browsers do: leading C0 controls and spaces trimmed, tabs and newlines
// removed anywhere.
func hasDangerousScheme(v string) bool {
	const maxScheme = len("javascript:")
	prefix := make([]byte, 0, maxScheme)
	leading := true
	for i := 0; i < len(v) && len(prefix) < maxScheme; i++ {
		c := v[i]
		if leading && c <= ' ' {
			continue
		}
		leading = false
		if c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		prefix = append(prefix, c)
	}
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(string(prefix), scheme) {
			return true
		}
	}
	return false
}

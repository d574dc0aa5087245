package sanitize

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Provider is a third party allowed to be embedded in chapter content through an iframe.
type Provider struct {
	Name            string
	Prefix          string // Required start of the iframe src, compared verbatim.
	Allow           string // Permissions policy granted to the frame.
	ReferrerPolicy  string
	Sandbox         string
	AllowFullscreen bool
}

// providers is the embed allowlist. Changing it widens what editors can put on a page and
// needs a security review; it is not configurable at runtime.
var providers = [...]Provider{
	{
		Name:            "YouTube",
		Prefix:          "https://www.youtube.com/embed/",
		Allow:           "autoplay; encrypted-media; picture-in-picture",
		ReferrerPolicy:  "strict-origin-when-cross-origin",
		Sandbox:         "allow-scripts allow-same-origin allow-presentation allow-popups",
		AllowFullscreen: true,
	},
	{
		Name:           "Spotify",
		Prefix:         "https://open.spotify.com/embed/",
		Allow:          "autoplay; clipboard-write; encrypted-media; fullscreen; picture-in-picture",
		ReferrerPolicy: "no-referrer",
		Sandbox:        "allow-scripts allow-same-origin allow-popups",
	},
}

// Providers returns a copy of the embed allowlist.
func Providers() []Provider {
	return append([]Provider(nil), providers[:]...)
}

// providerFor returns the provider whose prefix src starts with.
func providerFor(src string) (Provider, bool) {
	for _, p := range providers {
		if strings.HasPrefix(src, p.Prefix) {
			return p, true
		}
	}
	return Provider{}, false
}

// writeIframe emits the canonical iframe for src. Only src comes from the input, every other
// attribute is fixed per provider.
func (p Provider) writeIframe(b *bytes.Buffer, src string) {
	b.WriteString(`<iframe src="`)
	b.WriteString(html.EscapeString(src))
	b.WriteString(`" loading="lazy" allow="`)
	b.WriteString(p.Allow)
	b.WriteString(`" referrerpolicy="`)
	b.WriteString(p.ReferrerPolicy)
	b.WriteString(`" sandbox="`)
	b.WriteString(p.Sandbox)
	b.WriteString(`" frameborder="0"`)
	if p.AllowFullscreen {
		b.WriteString(` allowfullscreen`)
	}
	b.WriteString(`></iframe>`)
}

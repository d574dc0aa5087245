// Package sanitize neutralizes untrusted chapter HTML so it can be injected into a page as
// trusted markup.
//
// The filter is a single streaming pass over the golang.org/x/net/html tokenizer. Tags that
// need no change are copied through byte-for-byte, everything else is rebuilt from its
// decoded attributes. Attribute level passes run in a fixed order: dangerous URL schemes,
// inline event handlers, then style attributes. Script elements, non-whitelisted iframes and
// a small set of embedding tags are handled at the element level.
package sanitize

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	// whitespaceRun matches the runs collapsed by the final normalization pass. Only HTML
	// whitespace counts, NBSP and other Unicode spaces are content.
	whitespaceRun = regexp.MustCompile(`[\t\n\f\r ]{3,}`)

	// eventHandlerName matches inline event handler attribute names.
	eventHandlerName = regexp.MustCompile(`^on[a-z]+`)

	// validName matches tag and attribute names we are willing to re-emit.
	validName = regexp.MustCompile(`^[a-z_][-a-z0-9_:.]*$`)

	// dangerousSchemes may never begin a URL attribute value.
	dangerousSchemes = []string{"javascript:", "data:", "vbscript:"}

	// urlAttrs are the attributes whose values are interpreted as URLs.
	urlAttrs = map[string]bool{
		"action":     true,
		"background": true,
		"cite":       true,
		"data":       true,
		"formaction": true,
		"href":       true,
		"poster":     true,
		"src":        true,
		"xlink:href": true,
	}

	// strippedTags are dropped from the output while their content is kept.
	strippedTags = map[string]bool{
		"animate":          true,
		"animatemotion":    true,
		"animatetransform": true,
		"applet":           true,
		"base":             true,
		"embed":            true,
		"frame":            true,
		"frameset":         true,
		"link":             true,
		"meta":             true,
		"object":           true,
		"param":            true,
		"set":              true,
	}
)

// wrapperClass marks the responsive container allowed around an embed.
const wrapperClass = "iframe-wrapper"

// HTML sanitizes the provided html. It never fails: anything that cannot be shown to be safe is
// removed, so the worst case is an empty result.
func HTML(input string) string {
	output, _ := HTMLWithReport(input)
	return output
}

// OptionalHTML sanitizes the html pointed to by input, a nil input yields an empty string.
func OptionalHTML(input *string) string {
	if input == nil {
		return ""
	}
	return HTML(*input)
}

// HTMLWithReport sanitizes input like HTML and also reports what was removed or rewritten.
func HTMLWithReport(input string) (output string, report Report) {
	if input == "" {
		return "", report
	}
	defer func() {
		if r := recover(); r != nil {
			output, report = "", Report{Failed: true}
		}
	}()
	f := &filter{z: html.NewTokenizer(strings.NewReader(input))}
	if err := f.run(); err != nil {
		return "", Report{Failed: true}
	}
	return whitespaceRun.ReplaceAllString(f.doc.String(), " "), f.report
}

// element describes the start tag an attribute belongs to.
type element struct {
	tag     string
	wrapper bool
}

// container buffers an open iframe-wrapper until we know whether its embeds survived.
type container struct {
	buf      bytes.Buffer
	depth    int
	rejected bool
}

// filter holds the state of a single sanitizer run.
type filter struct {
	z      *html.Tokenizer
	doc    bytes.Buffer
	wrap   *container
	report Report
}

// out returns the buffer the current token should be written to.
func (f *filter) out() *bytes.Buffer {
	if f.wrap != nil {
		return &f.wrap.buf
	}
	return &f.doc
}

func (f *filter) run() error {
	for {
		var err error
		switch f.z.Next() {
		case html.ErrorToken:
			err = f.z.Err()
		case html.TextToken:
			f.text()
		case html.StartTagToken:
			err = f.startTag(false)
		case html.SelfClosingTagToken:
			err = f.startTag(true)
		case html.EndTagToken:
			f.endTag()
		case html.CommentToken:
			f.report.Comments++
		case html.DoctypeToken:
			// Never meaningful inside a chapter body.
		}
		if err == io.EOF {
			f.closeContainer()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// text copies a text token, re-encoding '<' so that removed markup can never splice a new tag
// together out of its neighbours.
func (f *filter) text() {
	raw := f.z.Raw()
	if bytes.IndexByte(raw, '<') < 0 {
		f.out().Write(raw)
		return
	}
	f.out().Write(bytes.ReplaceAll(raw, []byte("<"), []byte("&lt;")))
}

func (f *filter) startTag(selfClosing bool) error {
	// TagName and TagAttr rewrite the tokenizer buffer in place, Raw must be copied first.
	raw := append([]byte(nil), f.z.Raw()...)
	name, hasAttr := f.z.TagName()
	tag := string(name)
	switch {
	case tag == "script":
		f.report.Scripts++
		return f.skipElement(tag)
	case tag == "iframe":
		return f.iframe(hasAttr)
	case strippedTags[tag] || !validName.MatchString(tag):
		f.report.Stripped++
		return nil
	}

	attrs := readAttrs(f.z, hasAttr)
	el := element{tag: tag, wrapper: tag == "div" && hasClass(attrs, wrapperClass)}
	attrs, dirty := f.filterAttrs(el, attrs)
	if tag == "div" {
		if f.wrap != nil {
			f.wrap.depth++
		} else if el.wrapper {
			f.wrap = &container{depth: 1}
		}
	}
	if dirty {
		writeTag(f.out(), tag, attrs, selfClosing)
	} else {
		f.out().Write(raw)
	}
	return nil
}

func (f *filter) endTag() {
	raw := append([]byte(nil), f.z.Raw()...)
	name, hasAttr := f.z.TagName()
	tag := string(name)
	switch {
	case tag == "script" || tag == "iframe":
		// Stray end tag, the element itself never reaches the output.
		return
	case strippedTags[tag] || !validName.MatchString(tag):
		return
	}
	if hasAttr {
		f.out().WriteString("</" + tag + ">")
	} else {
		f.out().Write(raw)
	}
	if tag == "div" && f.wrap != nil {
		f.wrap.depth--
		if f.wrap.depth == 0 {
			f.closeContainer()
		}
	}
}

// iframe replaces an iframe element with the canonical embed for its provider, or drops it
// when its src is not on the provider allowlist.
func (f *filter) iframe(hasAttr bool) error {
	el := element{tag: "iframe"}
	src, found := "", false
	for _, a := range readAttrs(f.z, hasAttr) {
		if a.Key == "src" {
			a, _ = neutralizeScheme(f, el, a)
			src, found = a.Val, true
			break
		}
	}
	err := f.skipElement("iframe")
	p, ok := providerFor(src)
	if !found || !ok {
		f.report.EmbedsDropped++
		if f.wrap != nil {
			f.wrap.rejected = true
		}
		return err
	}
	f.report.EmbedsKept++
	p.writeIframe(f.out(), src)
	return err
}

// skipElement discards tokens up to and including the end tag of the named element.
func (f *filter) skipElement(tag string) error {
	for {
		switch f.z.Next() {
		case html.ErrorToken:
			return f.z.Err()
		case html.EndTagToken:
			if name, _ := f.z.TagName(); string(name) == tag {
				return nil
			}
		}
	}
}

// closeContainer flushes the open iframe-wrapper to the document, unless one of its embeds was
// rejected, in which case the wrapper and everything inside it is dropped.
func (f *filter) closeContainer() {
	c := f.wrap
	if c == nil {
		return
	}
	f.wrap = nil
	if c.rejected {
		f.report.ContainersDropped++
		return
	}
	f.doc.Write(c.buf.Bytes())
}

// filterAttrs runs the attribute passes over attrs. dirty reports whether the tag has to be
// rebuilt rather than copied through.
func (f *filter) filterAttrs(el element, attrs []html.Attribute) (kept []html.Attribute, dirty bool) {
	kept = attrs[:0]
next:
	for _, a := range attrs {
		if !validName.MatchString(a.Key) {
			f.report.Stripped++
			dirty = true
			continue
		}
		orig := a.Val
		for _, pass := range attrPasses {
			var keep bool
			if a, keep = pass(f, el, a); !keep {
				dirty = true
				continue next
			}
		}
		if a.Val != orig || strings.IndexByte(a.Val, '<') >= 0 {
			dirty = true
		}
		kept = append(kept, a)
	}
	return kept, dirty
}

func readAttrs(z *html.Tokenizer, more bool) []html.Attribute {
	var attrs []html.Attribute
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}
	return attrs
}

func hasClass(attrs []html.Attribute, class string) bool {
	for _, a := range attrs {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
		return false
	}
	return false
}

func writeTag(b *bytes.Buffer, tag string, attrs []html.Attribute, selfClosing bool) {
	b.WriteByte('<')
	b.WriteString(tag)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	if selfClosing {
		b.WriteByte('/')
	}
	b.WriteByte('>')
}

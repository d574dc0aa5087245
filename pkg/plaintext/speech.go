// Package plaintext derives plain text from chapter HTML, for narration and for prompt context.
package plaintext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	spaceRun       = regexp.MustCompile(`[ \t]+`)
	spaceAroundEOL = regexp.MustCompile(` ?\n ?`)
	newlineRun     = regexp.MustCompile(`\n{3,}`)
)

// silentTags have content that is never read aloud.
var silentTags = map[string]bool{
	"iframe":   true,
	"noscript": true,
	"script":   true,
	"style":    true,
	"template": true,
}

// Speech turns chapter HTML into text suitable for a text-to-speech engine. Headings become
// sentences of their own, paragraphs are separated by a blank line, list items start on a new
// line with a bullet and everything that is not text is dropped.
func Speech(input string) string {
	if input == "" {
		return ""
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(input))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return cleanSpeech(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case silentTags[tag]:
				if tt == html.StartTagToken {
					skipTo(z, tag)
				}
			case isHeading(tag):
				b.WriteString("\n\n")
			case tag == "br":
				b.WriteString("\n")
			case tag == "li":
				b.WriteString("\n• ")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case isHeading(tag):
				b.WriteString(".\n\n")
			case tag == "p":
				b.WriteString("\n\n")
			}
		}
	}
}

func cleanSpeech(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = spaceRun.ReplaceAllString(text, " ")
	text = spaceAroundEOL.ReplaceAllString(text, "\n")
	text = newlineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// skipTo discards tokens through the end tag of the named element.
func skipTo(z *html.Tokenizer, tag string) {
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == tag {
				return
			}
		}
	}
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && '1' <= tag[1] && tag[1] <= '6'
}

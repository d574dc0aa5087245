package plaintext

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize keeps narration requests under the 4096 character limit of common TTS APIs.
const DefaultChunkSize = 4000

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// Chunks splits text into pieces of at most size runes, preferring sentence boundaries, then word
// boundaries, and cutting inside a word only when it alone exceeds size. A size of zero or less
// selects DefaultChunkSize.
func Chunks(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	p := &packer{max: size}
	for _, sentence := range splitSentences(text) {
		if utf8.RuneCountInString(sentence) <= size {
			p.add(sentence)
			continue
		}
		for _, word := range strings.Fields(sentence) {
			if utf8.RuneCountInString(word) <= size {
				p.add(word)
				continue
			}
			for _, piece := range splitRunes(word, size) {
				p.add(piece)
			}
		}
	}
	p.flush()
	return p.chunks
}

// splitSentences cuts text after each sentence terminator followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

func splitRunes(s string, n int) []string {
	var pieces []string
	for s != "" {
		i, count := 0, 0
		for i < len(s) && count < n {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
			count++
		}
		pieces = append(pieces, s[:i])
		s = s[i:]
	}
	return pieces
}

// packer greedily joins pieces with single spaces into chunks no longer than max runes.
type packer struct {
	max    int
	chunks []string
	cur    strings.Builder
	n      int
}

func (p *packer) add(piece string) {
	l := utf8.RuneCountInString(piece)
	if p.n > 0 && p.n+1+l > p.max {
		p.flush()
	}
	if p.n > 0 {
		p.cur.WriteByte(' ')
		p.n++
	}
	p.cur.WriteString(piece)
	p.n += l
}

func (p *packer) flush() {
	if p.n == 0 {
		return
	}
	p.chunks = append(p.chunks, p.cur.String())
	p.cur.Reset()
	p.n = 0
}

// Package match finds whole-word, whitespace-tolerant occurrences of a name in
// page text.
//
// A name matches when its words appear in order, separated in the text by one
// or more whitespace characters, with a word boundary before the first word
// and after the last. Nothing is interpreted as a regular expression.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/itsmostafa/pdfnames/internal/normalize"
)

// Pattern is a name compiled for repeated searching.
type Pattern struct {
	words         []string
	caseSensitive bool

	// Boundaries are only checked on sides where the name itself ends in a
	// word rune; "(Bob)" is delimited by its own parentheses.
	boundedStart bool
	boundedEnd   bool
}

// Compile prepares name for searching under the given case policy.
func Compile(name string, caseSensitive bool) *Pattern {
	words := strings.Fields(normalize.Key(name, caseSensitive))
	p := &Pattern{words: words, caseSensitive: caseSensitive}
	if len(words) > 0 {
		first, _ := utf8.DecodeRuneInString(words[0])
		last, _ := utf8.DecodeLastRuneInString(words[len(words)-1])
		p.boundedStart = normalize.IsWordRune(first)
		p.boundedEnd = normalize.IsWordRune(last)
	}
	return p
}

// Prepare converts page text to the form In expects. Callers searching many
// patterns in one page prepare the text once.
func Prepare(text string, caseSensitive bool) string {
	return normalize.Key(text, caseSensitive)
}

// CaseSensitive reports the case policy the pattern was compiled with.
func (p *Pattern) CaseSensitive() bool {
	return p.caseSensitive
}

// In reports whether the pattern occurs in text, which must already have been
// passed through Prepare with the same case policy.
func (p *Pattern) In(text string) bool {
	if len(p.words) == 0 {
		return false
	}

	first := p.words[0]
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], first)
		if i < 0 {
			return false
		}
		start := from + i
		if p.matchAt(text, start) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return false
}

// matchAt checks for a full match whose first word starts at byte offset start.
func (p *Pattern) matchAt(text string, start int) bool {
	if p.boundedStart && !boundaryBefore(text, start) {
		return false
	}

	pos := start + len(p.words[0])
	for _, w := range p.words[1:] {
		next := skipSpace(text, pos)
		if next == pos {
			return false
		}
		if !strings.HasPrefix(text[next:], w) {
			return false
		}
		pos = next + len(w)
	}

	if p.boundedEnd && !boundaryAfter(text, pos) {
		return false
	}
	return true
}

// Matches reports whether name occurs in text under the case policy.
func Matches(text, name string, caseSensitive bool) bool {
	return Compile(name, caseSensitive).In(Prepare(text, caseSensitive))
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !normalize.IsWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !normalize.IsWordRune(r)
}

// skipSpace returns the offset of the first non-space rune at or after i.
func skipSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

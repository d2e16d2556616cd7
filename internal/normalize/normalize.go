// Package normalize holds the text normalisation shared by name loading,
// matching and sorting. Every comparison that treats two strings as "equal
// ignoring case" goes through Fold so that ordering and matching agree.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// quoteReplacer maps typographic apostrophes, and the mojibake left behind when
// a UTF-8 apostrophe is decoded as cp1252, to a plain ASCII apostrophe.
var quoteReplacer = strings.NewReplacer(
	"â€™", "'",
	"’", "'",
	"‘", "'",
)

// Fold returns the Unicode case-folded form of s.
func Fold(s string) string {
	// cases.Caser keeps internal state and is not safe for concurrent use,
	// so a fresh one is built per call.
	return cases.Fold().String(s)
}

// Key returns the identity of s under the given case policy.
func Key(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return Fold(s)
}

// Compare orders a and b under the given case policy. Strings that are equal
// once folded are ordered by their raw bytes so the result is total.
func Compare(a, b string, caseSensitive bool) int {
	if !caseSensitive {
		if c := strings.Compare(Fold(a), Fold(b)); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// Quotes replaces typographic apostrophes with '.
func Quotes(s string) string {
	return quoteReplacer.Replace(s)
}

// JoinHyphens removes a hyphen that ends a line together with the line break,
// rejoining a word that extraction split across two lines.
func JoinHyphens(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			j := i + 1
			if j < len(s) && s[j] == '\r' {
				j++
			}
			if j < len(s) && s[j] == '\n' {
				i = j
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// IsWordRune reports whether r can be part of a word. Word boundaries sit
// between a word rune and anything else.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

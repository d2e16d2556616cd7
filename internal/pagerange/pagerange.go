// Package pagerange parses page selections such as "1,11..79,400..450".
package pagerange

import (
	"fmt"
	"strconv"
	"strings"
)

// span is an inclusive range of physical page numbers.
type span struct {
	lo, hi int
}

// Selection is a set of physical pages. The zero value selects every page.
type Selection struct {
	spans []span
	raw   string
}

// All returns a Selection containing every page.
func All() Selection {
	return Selection{}
}

// Parse reads a comma-separated list of page numbers and inclusive ranges
// written "a..b". An empty string selects every page.
func Parse(s string) (Selection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return All(), nil
	}

	sel := Selection{raw: s}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Selection{}, fmt.Errorf("invalid page selection %q: empty item", s)
		}

		lo, hi, isRange := strings.Cut(part, "..")
		first, err := parsePage(lo)
		if err != nil {
			return Selection{}, fmt.Errorf("invalid page selection %q: %w", s, err)
		}
		last := first
		if isRange {
			last, err = parsePage(hi)
			if err != nil {
				return Selection{}, fmt.Errorf("invalid page selection %q: %w", s, err)
			}
		}
		if last < first {
			return Selection{}, fmt.Errorf("invalid page selection %q: range %s is reversed", s, part)
		}
		sel.spans = append(sel.spans, span{lo: first, hi: last})
	}
	return sel, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a page number", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("page %d is out of range, pages start at 1", n)
	}
	return n, nil
}

// IsAll reports whether the selection contains every page.
func (s Selection) IsAll() bool {
	return len(s.spans) == 0
}

// Contains reports whether physical page n is selected.
func (s Selection) Contains(n int) bool {
	if s.IsAll() {
		return true
	}
	for _, sp := range s.spans {
		if n >= sp.lo && n <= sp.hi {
			return true
		}
	}
	return false
}

// Pages lists the selected pages of a document with count pages, ascending.
func (s Selection) Pages(count int) []int {
	var out []int
	for n := 1; n <= count; n++ {
		if s.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

func (s Selection) String() string {
	if s.IsAll() {
		return "all"
	}
	return s.raw
}

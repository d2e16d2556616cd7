// Package names loads the list of names an index is built for.
package names

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/itsmostafa/pdfnames/internal/normalize"
)

// Options controls how raw lines become names.
type Options struct {
	// PreserveOrder keeps the input order; otherwise names are sorted
	// alphabetically under the case policy.
	PreserveOrder bool

	// CaseSensitive makes deduplication and sorting compare raw strings
	// instead of case-folded ones.
	CaseSensitive bool

	// NormalizeQuotes maps typographic apostrophes to '.
	NormalizeQuotes bool
}

// List is the canonical, deduplicated and ordered list of names.
type List struct {
	names      []string
	duplicates []string
}

// New builds a List from raw lines. Lines are trimmed, blank lines dropped and
// repeated names (by case-policy identity) removed, keeping the first.
func New(raw []string, opts Options) *List {
	l := &List{names: make([]string, 0, len(raw))}
	seen := make(map[string]struct{}, len(raw))
	dupSeen := make(map[string]struct{})

	for _, line := range raw {
		name := strings.TrimSpace(line)
		if opts.NormalizeQuotes {
			name = normalize.Quotes(name)
		}
		if name == "" {
			continue
		}

		key := normalize.Key(name, opts.CaseSensitive)
		if _, ok := seen[key]; ok {
			if _, ok := dupSeen[name]; !ok {
				dupSeen[name] = struct{}{}
				l.duplicates = append(l.duplicates, name)
			}
			continue
		}
		seen[key] = struct{}{}
		l.names = append(l.names, name)
	}

	if !opts.PreserveOrder {
		slices.SortStableFunc(l.names, func(a, b string) int {
			return normalize.Compare(a, b, opts.CaseSensitive)
		})
	}
	slices.Sort(l.duplicates)

	return l
}

// Parse reads one name per line from r.
func Parse(r io.Reader, opts Options) (*List, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading names: %w", err)
	}
	return New(lines, opts), nil
}

// Names returns the names in index order.
func (l *List) Names() []string {
	return slices.Clone(l.names)
}

// Duplicates returns the distinct spellings that were dropped as repeats,
// sorted.
func (l *List) Duplicates() []string {
	return slices.Clone(l.duplicates)
}

// Len returns the number of names.
func (l *List) Len() int {
	return len(l.names)
}

// Package format renders an index as text, one name per line.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/itsmostafa/pdfnames/internal/index"
)

// ErrInvariant is matched by errors reporting a malformed index.
var ErrInvariant = errors.New("index invariant violated")

// InvariantError reports an entry whose pages are not strictly ascending.
type InvariantError struct {
	Name  string
	Pages []int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("pages for %q are not strictly ascending: %v", e.Name, e.Pages)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

// Options are the separators and numbering used for output.
type Options struct {
	// Separator goes between a name and its pages.
	Separator string
	// PagesSeparator goes between two page tokens.
	PagesSeparator string
	// PagePrefix is written before every page number.
	PagePrefix string
	// PageOffset is added to every physical page number. It may be negative.
	PageOffset int
	// OmitUnfound drops names without pages.
	OmitUnfound bool
}

// DefaultOptions returns the stock separators.
func DefaultOptions() Options {
	return Options{
		Separator:      " : ",
		PagesSeparator: ", ",
	}
}

// Format renders ix with one line per name. Lines are joined by a single
// newline; there is no trailing newline.
func Format(ix *index.Index, opts Options) (string, error) {
	lines := make([]string, 0, ix.Len())
	for _, e := range ix.Entries() {
		if err := checkAscending(e); err != nil {
			return "", err
		}
		if opts.OmitUnfound && len(e.Pages) == 0 {
			continue
		}
		lines = append(lines, Line(e, opts))
	}
	return strings.Join(lines, "\n"), nil
}

// Line renders a single entry.
func Line(e index.Entry, opts Options) string {
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteString(opts.Separator)
	for i, p := range e.Pages {
		if i > 0 {
			b.WriteString(opts.PagesSeparator)
		}
		b.WriteString(opts.PagePrefix)
		b.WriteString(strconv.Itoa(p + opts.PageOffset))
	}
	return b.String()
}

func checkAscending(e index.Entry) error {
	for i := 1; i < len(e.Pages); i++ {
		if e.Pages[i] <= e.Pages[i-1] {
			return &InvariantError{Name: e.Name, Pages: e.Pages}
		}
	}
	return nil
}

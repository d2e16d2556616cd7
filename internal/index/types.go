// Package index builds the name to page-list mapping of a back-of-book index.
package index

import "slices"

// Page is one physical page of extracted text. Number is 1-based and is the
// page's position in the document, independent of any display offset.
type Page struct {
	Number int
	Text   string
}

// Entry is one name and the ascending, duplicate-free list of pages it occurs on.
type Entry struct {
	Name  string
	Pages []int
}

// Index maps every requested name to its pages, in a fixed display order.
type Index struct {
	entries []Entry
	byName  map[string]int
}

// New returns an Index holding entries as given. Page lists are not checked
// or repaired; Build is the usual way to get an Index.
func New(entries []Entry) *Index {
	names := make([]string, len(entries))
	pages := make([][]int, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		pages[i] = slices.Clone(e.Pages)
	}
	return newIndex(names, pages)
}

func newIndex(names []string, pages [][]int) *Index {
	ix := &Index{
		entries: make([]Entry, len(names)),
		byName:  make(map[string]int, len(names)),
	}
	for i, name := range names {
		ix.entries[i] = Entry{Name: name, Pages: pages[i]}
		ix.byName[name] = i
	}
	return ix
}

// Entries returns a copy of the entries in display order.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, len(ix.entries))
	for i, e := range ix.entries {
		out[i] = Entry{Name: e.Name, Pages: slices.Clone(e.Pages)}
	}
	return out
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Pages returns the pages recorded for name.
func (ix *Index) Pages(name string) ([]int, bool) {
	i, ok := ix.byName[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(ix.entries[i].Pages), true
}

// Occurrences returns the number of (name, page) pairs in the index.
func (ix *Index) Occurrences() int {
	n := 0
	for _, e := range ix.entries {
		n += len(e.Pages)
	}
	return n
}

// Unfound returns the names with no pages, in display order.
func (ix *Index) Unfound() []string {
	var out []string
	for _, e := range ix.entries {
		if len(e.Pages) == 0 {
			out = append(out, e.Name)
		}
	}
	return out
}

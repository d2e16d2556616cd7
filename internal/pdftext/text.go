package pdftext

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/itsmostafa/pdfnames/internal/index"
	"github.com/itsmostafa/pdfnames/internal/pagerange"
)

// SplitPages splits text on form feeds, the page separator pdftotext writes,
// into pages numbered from 1. A form feed terminating the last page does not
// start a new one.
func SplitPages(text string) []index.Page {
	parts := strings.Split(text, "\f")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	pages := make([]index.Page, len(parts))
	for i, p := range parts {
		pages[i] = index.Page{Number: i + 1, Text: p}
	}
	return pages
}

// ReadPages reads form-feed separated UTF-8 text and keeps the selected pages.
func ReadPages(r io.Reader, sel pagerange.Selection) ([]index.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading text: input is not valid UTF-8")
	}

	all := SplitPages(string(data))
	if sel.IsAll() {
		return all, nil
	}
	pages := make([]index.Page, 0, len(all))
	for _, p := range all {
		if sel.Contains(p.Number) {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

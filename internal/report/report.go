// Package report writes the human-readable run summary to stderr.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/itsmostafa/pdfnames/internal/index"
)

var (
	// titleStyle for bold red headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// dimStyle for muted labels
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for counts of things found
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for duplicates and unfound names
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// boxStyle for the summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)
)

// Reporter prints progress and the final summary. Styling is only applied
// when writing to a terminal.
type Reporter struct {
	w      io.Writer
	styled bool
}

// New returns a Reporter for w, styled if w is a terminal.
func New(w io.Writer) *Reporter {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{w: w, styled: styled}
}

// NewPlain returns a Reporter that never styles its output.
func NewPlain(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) render(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

// Names reports how many names were loaded and which were listed twice.
func (r *Reporter) Names(count int, duplicates []string) {
	fmt.Fprintf(r.w, "%s %s\n", r.render(dimStyle, "Names:"), r.render(successStyle, formatNumber(count)))
	if len(duplicates) > 0 {
		fmt.Fprintf(r.w, "%s %s\n",
			r.render(warnStyle, "Warning: some names are not unique:"),
			strings.Join(duplicates, ", "))
	}
}

// Pages reports how many pages were read from source.
func (r *Reporter) Pages(source string, count int) {
	fmt.Fprintf(r.w, "%s %s %s %s\n",
		r.render(dimStyle, "Parsed:"), formatNumber(count),
		r.render(dimStyle, "pages from"), source)
}

// Summary reports the occurrence total and the names that were not found.
func (r *Reporter) Summary(ix *index.Index) {
	found := ix.Len() - len(ix.Unfound())
	line1 := fmt.Sprintf("%s %s  %s %s/%s",
		r.render(dimStyle, "Occurrences:"), r.render(successStyle, formatNumber(ix.Occurrences())),
		r.render(dimStyle, "Found:"), formatNumber(found), formatNumber(ix.Len()))
	content := r.render(titleStyle, "Index Complete") + "\n" + line1

	if unfound := ix.Unfound(); len(unfound) > 0 {
		content += "\n" + r.render(warnStyle, "Not found:") + " " + strings.Join(unfound, ", ")
	}

	if r.styled {
		fmt.Fprintln(r.w, boxStyle.Render(content))
		return
	}
	fmt.Fprintln(r.w, content)
}

// formatNumber adds commas to large numbers for readability
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}

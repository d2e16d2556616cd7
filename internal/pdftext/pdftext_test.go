package pdftext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsmostafa/pdfnames/internal/pagerange"
)

// fakePoppler answers pdfinfo and pdftotext from an in-memory document.
type fakePoppler struct {
	pages    []string
	password string
	stderr   string // forced failure output

	mu    sync.Mutex
	calls [][]string
}

func (f *fakePoppler) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	fail := func(msg string) ([]byte, []byte, error) {
		return nil, []byte(msg + "\n"), errors.New("exit status 1")
	}
	if f.stderr != "" {
		return fail(f.stderr)
	}
	if f.password != "" && flagValue(args, "-upw") != f.password {
		return fail("Command Line Error: Incorrect password")
	}

	switch name {
	case "pdfinfo":
		return []byte(fmt.Sprintf("Producer: test\nPages:          %d\nEncrypted: no\n", len(f.pages))), nil, nil
	case "pdftotext":
		n, _ := strconv.Atoi(flagValue(args, "-f"))
		return []byte(f.pages[n-1] + "\f"), nil, nil
	}
	return fail("unknown tool " + name)
}

func flagValue(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func found(string) (string, error) { return "/usr/bin/tool", nil }

func tempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7"), 0o600))
	return path
}

func TestExtract(t *testing.T) {
	fake := &fakePoppler{pages: []string{"Alice met Bob.", "Bob and Carol talked.", ""}}
	e := NewExtractor(WithRunner(fake), WithLookPath(found), WithWorkers(2))

	pages, err := e.Extract(context.Background(), tempPDF(t))
	require.NoError(t, err)
	require.Len(t, pages, 3)
	for i, p := range pages {
		assert.Equal(t, i+1, p.Number)
		assert.Equal(t, fake.pages[i], p.Text, "form feed stripped")
	}
}

func TestExtract_PageSelection(t *testing.T) {
	fake := &fakePoppler{pages: []string{"one", "two", "three", "four"}}
	sel, err := pagerange.Parse("2..3")
	require.NoError(t, err)

	e := NewExtractor(WithRunner(fake), WithLookPath(found), WithPages(sel))
	pages, err := e.Extract(context.Background(), tempPDF(t))
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 2, pages[0].Number)
	assert.Equal(t, "three", pages[1].Text)

	// pdfinfo once, pdftotext per selected page
	assert.Len(t, fake.calls, 3)
}

func TestExtract_Password(t *testing.T) {
	fake := &fakePoppler{pages: []string{"secret Bob"}, password: "hunter2"}

	e := NewExtractor(WithRunner(fake), WithLookPath(found), WithPassword("hunter2"))
	pages, err := e.Extract(context.Background(), tempPDF(t))
	require.NoError(t, err)
	assert.Equal(t, "secret Bob", pages[0].Text)

	e = NewExtractor(WithRunner(fake), WithLookPath(found), WithPassword("wrong"))
	_, err = e.Extract(context.Background(), tempPDF(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecryption)
	assert.NotErrorIs(t, err, ErrNoPages)
	assert.Contains(t, err.Error(), "Incorrect password")
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		fake     *fakePoppler
		lookPath func(string) (string, error)
		want     error
	}{
		{
			name:     "missing file",
			path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.pdf") },
			fake:     &fakePoppler{},
			lookPath: found,
			want:     ErrNotFound,
		},
		{
			name:     "tools missing",
			path:     tempPDF,
			fake:     &fakePoppler{},
			lookPath: func(string) (string, error) { return "", errors.New("executable file not found in $PATH") },
			want:     ErrToolMissing,
		},
		{
			name:     "corrupt file",
			path:     tempPDF,
			fake:     &fakePoppler{stderr: "Syntax Warning: May not be a PDF file (continuing anyway)\nSyntax Error: Couldn't find trailer dictionary"},
			lookPath: found,
			want:     ErrCorrupt,
		},
		{
			name:     "copy protected",
			path:     tempPDF,
			fake:     &fakePoppler{stderr: "Permission Error: Copying of text from this document is not allowed."},
			lookPath: found,
			want:     ErrNotExtractable,
		},
		{
			name:     "empty document",
			path:     tempPDF,
			fake:     &fakePoppler{pages: nil},
			lookPath: found,
			want:     ErrNoPages,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(WithRunner(tt.fake), WithLookPath(tt.lookPath))
			pages, err := e.Extract(context.Background(), tt.path(t))
			assert.Nil(t, pages)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var extractErr *ExtractError
			assert.ErrorAs(t, err, &extractErr)
		})
	}
}

func TestExtractError_Message(t *testing.T) {
	err := &ExtractError{Path: "odyssey.pdf", Page: 4, Kind: ErrCorrupt, Stderr: "Syntax Error"}
	assert.Equal(t, "page 4 of odyssey.pdf: pdf file is damaged or not a pdf (Syntax Error)", err.Error())

	cause := errors.New("boom")
	err = &ExtractError{Path: "odyssey.pdf", Kind: ErrExtract, Err: cause}
	assert.Equal(t, "odyssey.pdf: pdf text extraction failed (boom)", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ErrDecryption, classify("Command Line Error: Incorrect password"))
	assert.Equal(t, ErrNotFound, classify("I/O Error: Couldn't open file 'x.pdf'"))
	assert.Equal(t, ErrCorrupt, classify("Syntax Error: Couldn't read xref table"))
	assert.Equal(t, ErrExtract, classify("something unexpected"))
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no form feed", "just one page", []string{"just one page"}},
		{"terminated pages", "one\ftwo\f", []string{"one", "two"}},
		{"unterminated last page", "one\ftwo", []string{"one", "two"}},
		{"empty middle page", "one\f\fthree\f", []string{"one", "", "three"}},
		{"empty input", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := SplitPages(tt.text)
			require.Len(t, pages, len(tt.want))
			for i, p := range pages {
				assert.Equal(t, i+1, p.Number)
				assert.Equal(t, tt.want[i], p.Text)
			}
		})
	}
}

func TestReadPages(t *testing.T) {
	sel, err := pagerange.Parse("1,3")
	require.NoError(t, err)

	pages, err := ReadPages(strings.NewReader("a\fb\fc\f"), sel)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 3, pages[1].Number)
	assert.Equal(t, "c", pages[1].Text)

	_, err = ReadPages(strings.NewReader("bad \xff byte"), pagerange.All())
	assert.Error(t, err)
}

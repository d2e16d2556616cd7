package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsmostafa/pdfnames/internal/index"
)

func samplePages() []index.Page {
	return []index.Page{
		{Number: 1, Text: "Alice met Bob."},
		{Number: 2, Text: "Bob and Carol talked."},
		{Number: 3, Text: ""},
	}
}

func scenarioOptions() Options {
	return Options{Separator: ": ", PagesSeparator: ", ", PagePrefix: "p"}
}

func TestFormat_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		build index.Options
		opts  func(Options) Options
		want  string
	}{
		{
			name:  "found and unfound",
			names: []string{"Bob", "Dave"},
			want:  "Bob: p1, p2\nDave: ",
		},
		{
			name:  "case-sensitive miss",
			names: []string{"bob"},
			build: index.Options{CaseSensitive: true},
			want:  "bob: ",
		},
		{
			name:  "positive offset",
			names: []string{"Carol"},
			opts:  func(o Options) Options { o.PageOffset = 5; return o },
			want:  "Carol: p7",
		},
		{
			name:  "negative offset emitted as-is",
			names: []string{"Bob"},
			opts:  func(o Options) Options { o.PageOffset = -2; return o },
			want:  "Bob: p-1, p0",
		},
		{
			name:  "omit unfound",
			names: []string{"Bob", "Dave", "Alice"},
			opts:  func(o Options) Options { o.OmitUnfound = true; return o },
			want:  "Bob: p1, p2\nAlice: p1",
		},
		{
			name:  "no names",
			names: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := scenarioOptions()
			if tt.opts != nil {
				opts = tt.opts(opts)
			}
			ix := index.Build(samplePages(), tt.names, tt.build)
			got, err := Format(ix, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_DefaultOptions(t *testing.T) {
	ix := index.New([]index.Entry{
		{Name: "Athena", Pages: []int{1, 4, 9}},
		{Name: "Zeus"},
	})
	got, err := Format(ix, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Athena : 1, 4, 9\nZeus : ", got)
}

func TestFormat_RejectsMalformedIndex(t *testing.T) {
	tests := []struct {
		name  string
		pages []int
	}{
		{"descending", []int{3, 1}},
		{"duplicate", []int{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := index.New([]index.Entry{{Name: "Bob", Pages: tt.pages}})
			_, err := Format(ix, DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvariant))

			var invErr *InvariantError
			require.ErrorAs(t, err, &invErr)
			assert.Equal(t, "Bob", invErr.Name)
			assert.Equal(t, tt.pages, invErr.Pages)
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	names := []string{"Alice", "Bob", "Carol"}
	first, err := Format(index.Build(samplePages(), names, index.Options{}), scenarioOptions())
	require.NoError(t, err)
	second, err := Format(index.Build(samplePages(), names, index.Options{}), scenarioOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLine(t *testing.T) {
	e := index.Entry{Name: "Penelope", Pages: []int{12}}
	assert.Equal(t, "Penelope -> pg 13", Line(e, Options{Separator: " -> ", PagePrefix: "pg ", PageOffset: 1}))
	assert.Equal(t, "Penelope", Line(index.Entry{Name: "Penelope"}, Options{}))
}

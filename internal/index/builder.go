package index

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/itsmostafa/pdfnames/internal/match"
	"github.com/itsmostafa/pdfnames/internal/normalize"
)

// Options controls how page text is matched against names.
type Options struct {
	// CaseSensitive disables case folding.
	CaseSensitive bool

	// NormalizeQuotes maps typographic apostrophes in page text to '.
	NormalizeQuotes bool

	// JoinHyphens rejoins words hyphenated across a line break.
	JoinHyphens bool

	// SpanPages records a name that only occurs across the break between two
	// consecutive pages on the first of them.
	SpanPages bool

	// Workers is the number of goroutines scanning pages. Values below 2
	// scan sequentially.
	Workers int
}

// Builder builds an Index from pages and names.
type Builder struct {
	opts   Options
	logger *zap.Logger
}

// NewBuilder returns a Builder. A nil logger disables progress logging.
func NewBuilder(opts Options, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{opts: opts, logger: logger}
}

// Build scans every page for every name. Names keep the order they are given
// in; a name without occurrences still gets an entry.
func (b *Builder) Build(ctx context.Context, pages []Page, names []string) (*Index, error) {
	s := newScanner(pages, names, b.opts)

	var acc [][]int
	if b.opts.Workers > 1 && len(s.pages) > 1 {
		var err error
		acc, err = b.scanConcurrent(ctx, s)
		if err != nil {
			return nil, err
		}
	} else {
		acc = make([][]int, len(names))
		for k := range s.pages {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			b.logger.Debug("scanning page", zap.Int("page", s.pages[k].Number))
			s.scanPage(k, func(n, page int) {
				acc[n] = append(acc[n], page)
			})
		}
	}

	for n := range acc {
		acc[n] = finalize(acc[n])
	}
	return newIndex(slices.Clone(names), acc), nil
}

// Build is the sequential, context-free form of Builder.Build.
func Build(pages []Page, names []string, opts Options) *Index {
	opts.Workers = 1
	ix, _ := NewBuilder(opts, nil).Build(context.Background(), pages, names)
	return ix
}

// scanConcurrent splits the pages into contiguous runs, one per worker. Each
// worker owns its accumulator; results are merged by concatenation and put in
// order by finalize.
func (b *Builder) scanConcurrent(ctx context.Context, s *scanner) ([][]int, error) {
	workers := min(b.opts.Workers, len(s.pages))
	chunk := (len(s.pages) + workers - 1) / workers

	parts := make([][][]int, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, len(s.pages))
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			local := make([][]int, len(s.patterns))
			for k := lo; k < hi; k++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				b.logger.Debug("scanning page", zap.Int("page", s.pages[k].Number), zap.Int("worker", w))
				s.scanPage(k, func(n, page int) {
					local[n] = append(local[n], page)
				})
			}
			parts[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning pages: %w", err)
	}

	acc := make([][]int, len(s.patterns))
	for _, local := range parts {
		for n, pages := range local {
			acc[n] = append(acc[n], pages...)
		}
	}
	return acc, nil
}

// finalize sorts and de-duplicates a page list.
func finalize(pages []int) []int {
	slices.Sort(pages)
	return slices.Compact(pages)
}

// scanner holds the prepared text of every page and the compiled names. It is
// read-only once built, so workers can share it.
type scanner struct {
	opts     Options
	pages    []Page
	texts    []string
	patterns []*match.Pattern
}

func newScanner(pages []Page, names []string, opts Options) *scanner {
	sorted := slices.Clone(pages)
	slices.SortStableFunc(sorted, func(a, b Page) int { return a.Number - b.Number })

	s := &scanner{
		opts:     opts,
		pages:    sorted,
		texts:    make([]string, len(sorted)),
		patterns: make([]*match.Pattern, len(names)),
	}
	for k, p := range sorted {
		s.texts[k] = s.prepare(p.Text)
	}
	for n, name := range names {
		s.patterns[n] = match.Compile(name, opts.CaseSensitive)
	}
	return s
}

func (s *scanner) prepare(text string) string {
	if s.opts.NormalizeQuotes {
		text = normalize.Quotes(text)
	}
	if s.opts.JoinHyphens {
		text = normalize.JoinHyphens(text)
	}
	return match.Prepare(text, s.opts.CaseSensitive)
}

// scanPage reports every name recorded on page k. With SpanPages a name found
// only across the join of page k and the next consecutive page is recorded on
// page k as well.
func (s *scanner) scanPage(k int, emit func(name, page int)) {
	number := s.pages[k].Number

	var joined string
	joinedReady := false
	for n, p := range s.patterns {
		if p.In(s.texts[k]) {
			emit(n, number)
			continue
		}
		if !s.spans(k) || p.In(s.texts[k+1]) {
			continue
		}
		if !joinedReady {
			joined = s.prepare(s.pages[k].Text + "\n" + s.pages[k+1].Text)
			joinedReady = true
		}
		if p.In(joined) {
			emit(n, number)
		}
	}
}

func (s *scanner) spans(k int) bool {
	return s.opts.SpanPages && k+1 < len(s.pages) && s.pages[k+1].Number == s.pages[k].Number+1
}

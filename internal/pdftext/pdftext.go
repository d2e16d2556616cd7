// Package pdftext extracts per-page text from PDF documents using poppler's
// pdfinfo and pdftotext.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/itsmostafa/pdfnames/internal/index"
	"github.com/itsmostafa/pdfnames/internal/pagerange"
)

// Runner runs an external command and returns its stdout and stderr.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Extractor reads page text from PDF files.
type Extractor struct {
	password string
	workers  int
	pages    pagerange.Selection
	runner   Runner
	lookPath func(string) (string, error)
	logger   *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPassword sets the password used to open encrypted documents.
func WithPassword(password string) Option {
	return func(e *Extractor) {
		e.password = password
	}
}

// WithWorkers sets how many pages are extracted at once.
func WithWorkers(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithPages restricts extraction to the selected physical pages.
func WithPages(sel pagerange.Selection) Option {
	return func(e *Extractor) {
		e.pages = sel
	}
}

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(e *Extractor) {
		e.runner = r
	}
}

// WithLookPath replaces the executable lookup.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(e *Extractor) {
		e.lookPath = fn
	}
}

// WithLogger sets the logger for per-page progress.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExtractor returns an Extractor that runs the poppler tools.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		workers:  1,
		runner:   execRunner{},
		lookPath: exec.LookPath,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the text of every selected page of the PDF at path, in
// physical page order. Failures are returned as *ExtractError.
func (e *Extractor) Extract(ctx context.Context, path string) ([]index.Page, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ExtractError{Path: path, Kind: ErrNotFound, Err: err}
		}
		return nil, &ExtractError{Path: path, Kind: ErrExtract, Err: err}
	}

	for _, tool := range []string{"pdfinfo", "pdftotext"} {
		if _, err := e.lookPath(tool); err != nil {
			return nil, &ExtractError{
				Path: path,
				Kind: ErrToolMissing,
				Err:  fmt.Errorf("%s not found: install poppler-utils (brew install poppler on macOS): %w", tool, err),
			}
		}
	}

	count, err := e.pageCount(ctx, path)
	if err != nil {
		return nil, err
	}

	numbers := e.pages.Pages(count)
	if len(numbers) == 0 {
		return nil, &ExtractError{Path: path, Kind: ErrNoPages}
	}

	pages := make([]index.Page, len(numbers))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, n := range numbers {
		g.Go(func() error {
			e.logger.Debug("parsing page", zap.Int("page", n), zap.Int("of", count))
			text, err := e.extractPage(ctx, path, n)
			if err != nil {
				return err
			}
			pages[i] = index.Page{Number: n, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pages, nil
}

// pageCount reads "Pages: N" from pdfinfo.
func (e *Extractor) pageCount(ctx context.Context, path string) (int, error) {
	args := append(e.passwordArgs(), path)
	stdout, stderr, err := e.runner.Run(ctx, "pdfinfo", args...)
	if err != nil {
		return 0, e.toolError(ctx, path, 0, stderr, err)
	}

	for _, line := range strings.Split(string(stdout), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		count, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if count == 0 {
			return 0, &ExtractError{Path: path, Kind: ErrNoPages}
		}
		return count, nil
	}

	return 0, &ExtractError{
		Path: path,
		Kind: ErrCorrupt,
		Err:  errors.New("could not determine page count from pdfinfo"),
	}
}

// extractPage runs pdftotext for a single page. The trailing form feed that
// pdftotext writes after each page is removed.
func (e *Extractor) extractPage(ctx context.Context, path string, page int) (string, error) {
	args := []string{"-f", strconv.Itoa(page), "-l", strconv.Itoa(page), "-enc", "UTF-8"}
	args = append(args, e.passwordArgs()...)
	args = append(args, path, "-")

	stdout, stderr, err := e.runner.Run(ctx, "pdftotext", args...)
	if err != nil {
		return "", e.toolError(ctx, path, page, stderr, err)
	}
	return strings.TrimSuffix(string(stdout), "\f"), nil
}

func (e *Extractor) passwordArgs() []string {
	if e.password == "" {
		return nil
	}
	return []string{"-upw", e.password}
}

func (e *Extractor) toolError(ctx context.Context, path string, page int, stderr []byte, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	msg := strings.TrimSpace(string(stderr))
	return &ExtractError{
		Path:   path,
		Page:   page,
		Kind:   classify(msg),
		Stderr: msg,
		Err:    err,
	}
}

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/itsmostafa/pdfnames/internal/config"
	"github.com/itsmostafa/pdfnames/internal/format"
	"github.com/itsmostafa/pdfnames/internal/index"
	"github.com/itsmostafa/pdfnames/internal/logging"
	"github.com/itsmostafa/pdfnames/internal/names"
	"github.com/itsmostafa/pdfnames/internal/report"
)

// indexFlags holds the flags shared by every command that builds an index.
type indexFlags struct {
	preserveOrder   bool
	caseSensitive   bool
	separator       string
	pagesSeparator  string
	pagePrefix      string
	pageOffset      int
	omitUnfound     bool
	spanPages       bool
	joinHyphens     bool
	normalizeQuotes bool
	pages           string
	workers         int
}

func addIndexFlags(cmd *cobra.Command, f *indexFlags) {
	def := config.Default()
	flags := cmd.Flags()
	flags.BoolVar(&f.preserveOrder, "preserve-order", def.PreserveOrder, "Keep names in the order of the names file instead of sorting them")
	flags.BoolVar(&f.caseSensitive, "case-sensitive", def.CaseSensitive, "Match names case-sensitively")
	flags.StringVar(&f.separator, "separator", def.Separator, "String separating a name from its pages")
	flags.StringVar(&f.pagesSeparator, "pages-separator", def.PagesSeparator, "String separating one page number from the next")
	flags.StringVar(&f.pagePrefix, "page-prefix", def.PagePrefix, "String written before each page number")
	flags.IntVar(&f.pageOffset, "page-offset", def.PageOffset, "Offset added to page numbers (0 shows the first page as 1)")
	flags.BoolVar(&f.omitUnfound, "omit-unfound", def.OmitUnfound, "Leave names without occurrences out of the index")
	flags.BoolVar(&f.spanPages, "span-pages", def.SpanPages, "Also find names broken across two consecutive pages")
	flags.BoolVar(&f.joinHyphens, "join-hyphens", def.JoinHyphens, "Rejoin words hyphenated at a line break")
	flags.BoolVar(&f.normalizeQuotes, "normalize-quotes", def.NormalizeQuotes, "Treat typographic apostrophes as '")
	flags.StringVar(&f.pages, "pages", def.Pages, "Pages to scan, e.g. 1,11..79,400..450 (default all)")
	flags.IntVarP(&f.workers, "workers", "j", def.Workers, "Number of pages processed in parallel")
}

// overlay copies the flags the user set onto cfg.
func (f *indexFlags) overlay(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("preserve-order") {
		cfg.PreserveOrder = f.preserveOrder
	}
	if changed("case-sensitive") {
		cfg.CaseSensitive = f.caseSensitive
	}
	if changed("separator") {
		cfg.Separator = f.separator
	}
	if changed("pages-separator") {
		cfg.PagesSeparator = f.pagesSeparator
	}
	if changed("page-prefix") {
		cfg.PagePrefix = f.pagePrefix
	}
	if changed("page-offset") {
		cfg.PageOffset = f.pageOffset
	}
	if changed("omit-unfound") {
		cfg.OmitUnfound = f.omitUnfound
	}
	if changed("span-pages") {
		cfg.SpanPages = f.spanPages
	}
	if changed("join-hyphens") {
		cfg.JoinHyphens = f.joinHyphens
	}
	if changed("normalize-quotes") {
		cfg.NormalizeQuotes = f.normalizeQuotes
	}
	if changed("pages") {
		cfg.Pages = f.pages
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
}

// loadConfig layers the command line over the config file and environment.
func loadConfig(cmd *cobra.Command, f *indexFlags) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	f.overlay(cmd, &cfg)
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// session is the per-run state shared by the pipeline steps.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	report *report.Reporter
}

func newSession(cmd *cobra.Command, cfg config.Config) (*session, error) {
	if quiet {
		return &session{cfg: cfg, logger: zap.NewNop(), report: report.NewPlain(io.Discard)}, nil
	}
	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, report: report.New(cmd.ErrOrStderr())}, nil
}

// readNames loads the names file, which must be UTF-8.
func (s *session) readNames(path string) (*names.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("names file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("names file %s is not valid UTF-8", path)
	}

	list, err := names.Parse(bytes.NewReader(data), s.cfg.NameOptions())
	if err != nil {
		return nil, err
	}
	s.logger.Info("loaded names", zap.Int("count", list.Len()), zap.Int("duplicates", len(list.Duplicates())))
	s.report.Names(list.Len(), list.Duplicates())
	return list, nil
}

// render builds and formats the index.
func (s *session) render(ctx context.Context, pages []index.Page, list *names.List) (string, *index.Index, error) {
	builder := index.NewBuilder(s.cfg.IndexOptions(), s.logger)
	ix, err := builder.Build(ctx, pages, list.Names())
	if err != nil {
		return "", nil, fmt.Errorf("building index: %w", err)
	}
	s.logger.Info("built index",
		zap.Int("names", ix.Len()),
		zap.Int("pages", len(pages)),
		zap.Int("occurrences", ix.Occurrences()))

	out, err := format.Format(ix, s.cfg.FormatOptions())
	if err != nil {
		return "", nil, err
	}
	return out, ix, nil
}

// finish renders the index, writes it and prints the summary.
func (s *session) finish(cmd *cobra.Command, pages []index.Page, list *names.List, outPath string) error {
	out, ix, err := s.render(cmd.Context(), pages, list)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), outPath, out); err != nil {
		return err
	}
	s.report.Summary(ix)
	return nil
}

// writeOutput writes the index to outPath, or to stdout when outPath is empty
// or "-". A non-empty index ends with a newline.
func writeOutput(stdout io.Writer, outPath, text string) error {
	if text != "" {
		text += "\n"
	}
	if outPath == "" || outPath == "-" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// outArg returns the optional output path argument.
func outArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

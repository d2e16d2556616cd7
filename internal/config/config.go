// Package config loads pdfnames settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/itsmostafa/pdfnames/internal/format"
	"github.com/itsmostafa/pdfnames/internal/index"
	"github.com/itsmostafa/pdfnames/internal/names"
	"github.com/itsmostafa/pdfnames/internal/pagerange"
)

// Config is the full set of settings for one indexing run.
type Config struct {
	PreserveOrder   bool   `koanf:"preserve_order"`
	CaseSensitive   bool   `koanf:"case_sensitive"`
	Separator       string `koanf:"separator"`
	PagesSeparator  string `koanf:"pages_separator"`
	PagePrefix      string `koanf:"page_prefix"`
	PageOffset      int    `koanf:"page_offset"`
	OmitUnfound     bool   `koanf:"omit_unfound"`
	SpanPages       bool   `koanf:"span_pages"`
	JoinHyphens     bool   `koanf:"join_hyphens"`
	NormalizeQuotes bool   `koanf:"normalize_quotes"`
	Pages           string `koanf:"pages"`
	Workers         int    `koanf:"workers"`
	Password        string `koanf:"password"`
	Log             Log    `koanf:"log"`
}

// Log configures diagnostic logging.
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	out := format.DefaultOptions()
	return Config{
		Separator:       out.Separator,
		PagesSeparator:  out.PagesSeparator,
		JoinHyphens:     true,
		NormalizeQuotes: true,
		Workers:         1,
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks values that the flag parser cannot.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := pagerange.Parse(c.Pages); err != nil {
		return err
	}
	return nil
}

// NameOptions returns the options for loading the names list.
func (c Config) NameOptions() names.Options {
	return names.Options{
		PreserveOrder:   c.PreserveOrder,
		CaseSensitive:   c.CaseSensitive,
		NormalizeQuotes: c.NormalizeQuotes,
	}
}

// IndexOptions returns the options for building the index.
func (c Config) IndexOptions() index.Options {
	return index.Options{
		CaseSensitive:   c.CaseSensitive,
		NormalizeQuotes: c.NormalizeQuotes,
		JoinHyphens:     c.JoinHyphens,
		SpanPages:       c.SpanPages,
		Workers:         c.Workers,
	}
}

// FormatOptions returns the options for rendering the index.
func (c Config) FormatOptions() format.Options {
	return format.Options{
		Separator:      c.Separator,
		PagesSeparator: c.PagesSeparator,
		PagePrefix:     c.PagePrefix,
		PageOffset:     c.PageOffset,
		OmitUnfound:    c.OmitUnfound,
	}
}

// PageSelection returns the parsed page selection. Validate has already
// rejected malformed selections.
func (c Config) PageSelection() pagerange.Selection {
	sel, err := pagerange.Parse(c.Pages)
	if err != nil {
		return pagerange.All()
	}
	return sel
}

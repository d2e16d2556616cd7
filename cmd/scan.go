package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/itsmostafa/pdfnames/internal/index"
	"github.com/itsmostafa/pdfnames/internal/pagerange"
	"github.com/itsmostafa/pdfnames/internal/pdftext"
)

var scanOpts indexFlags

var scanCmd = &cobra.Command{
	Use:   "scan <text_file> <names_file> [outfile]",
	Short: "Index the names found in already extracted text",
	Long: `Build the index from plain UTF-8 text in which pages are separated by form
feeds, as written by "pdftotext document.pdf". Use "-" to read the text from
stdin.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &scanOpts)
		if err != nil {
			return err
		}

		s, err := newSession(cmd, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = s.logger.Sync() }()

		list, err := s.readNames(args[1])
		if err != nil {
			return err
		}

		pages, err := readTextPages(cmd.InOrStdin(), args[0], cfg.PageSelection())
		if err != nil {
			return err
		}
		s.report.Pages(args[0], len(pages))

		return s.finish(cmd, pages, list, outArg(args, 2))
	},
}

func readTextPages(stdin io.Reader, path string, sel pagerange.Selection) ([]index.Page, error) {
	if path == "-" {
		return pdftext.ReadPages(stdin, sel)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("text file: %w", err)
	}
	defer f.Close()
	return pdftext.ReadPages(f, sel)
}

func init() {
	addIndexFlags(scanCmd, &scanOpts)

	rootCmd.AddCommand(scanCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/itsmostafa/pdfnames/internal/pdftext"
)

var indexOpts indexFlags
var password string

var indexCmd = &cobra.Command{
	Use:   "index <pdf_file> <names_file> [outfile]",
	Short: "Index the names found in a PDF document",
	Long: `Extract the text of every page of a PDF with pdftotext (poppler) and list,
for each name in names_file, the pages it occurs on. The index is written to
outfile, or to stdout when outfile is omitted or "-".`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &indexOpts)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("password") {
			cfg.Password = password
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

		extractor := pdftext.NewExtractor(
			pdftext.WithPassword(cfg.Password),
			pdftext.WithWorkers(cfg.Workers),
			pdftext.WithPages(cfg.PageSelection()),
			pdftext.WithLogger(s.logger),
		)
		pages, err := extractor.Extract(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		s.report.Pages(args[0], len(pages))

		return s.finish(cmd, pages, list, outArg(args, 2))
	},
}

func init() {
	addIndexFlags(indexCmd, &indexOpts)
	indexCmd.Flags().StringVar(&password, "password", "", "Password for an encrypted PDF")

	rootCmd.AddCommand(indexCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/itsmostafa/pdfnames/internal/version"
	"github.com/spf13/cobra"
)

var configPath string
var verbose bool
var quiet bool

var rootCmd = &cobra.Command{
	Use:   "pdfnames",
	Short: "Build a page index of names found in a PDF",
	Long: `pdfnames searches a document for a list of names and writes a back-of-book
style index: every name followed by the pages it occurs on.

Names are matched as whole words, multi-word names may be broken across lines,
and matching ignores case unless --case-sensitive is set.`,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("pdfnames %s\n", version.String()))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default ./.pdfnames.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every parsed page")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing but the index")
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

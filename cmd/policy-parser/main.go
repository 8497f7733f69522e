package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/insurelens/policy-parser/internal/common"
	"github.com/insurelens/policy-parser/internal/docload"
	"github.com/insurelens/policy-parser/internal/extract"
	"github.com/insurelens/policy-parser/internal/patterns"
	"github.com/insurelens/policy-parser/internal/pipeline"
)

var (
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "policy-parser",
	Short: "Extract policy fields from insurance documents",
	Long: `policy-parser reads insurance documents (PDF or plain text), extracts a
fixed set of policy fields using issuer-aware patterns with a similarity
fallback, and reports a calibrated confidence per field.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	cobra.OnInitialize(setupLogger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// newProcessor assembles the extraction pipeline from configuration.
// The archive repository is attached separately by commands that need it.
func newProcessor(cfg *common.Config, logger *slog.Logger) (*pipeline.Processor, error) {
	store, err := patterns.NewStore(logger)
	if err != nil {
		return nil, err
	}
	if cfg.Patterns.OverrideDir != "" {
		if err := store.LoadOverrideDir(cfg.Patterns.OverrideDir); err != nil {
			return nil, err
		}
	}
	loader := docload.NewLoader(docload.Config{
		Pdftotext:     cfg.Loader.Pdftotext,
		Pdftoppm:      cfg.Loader.Pdftoppm,
		Tesseract:     cfg.Loader.Tesseract,
		TesseractLang: cfg.Loader.TesseractLang,
		DPI:           cfg.Loader.DPI,
		MaxPages:      cfg.Loader.MaxPages,
		MinTextLen:    cfg.Loader.MinTextLen,
	}, logger)
	coord := extract.NewCoordinator(store, logger)
	return pipeline.NewProcessor(logger, loader, coord, nil), nil
}

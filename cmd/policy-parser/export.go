package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/insurelens/policy-parser/internal/common"
	"github.com/insurelens/policy-parser/internal/export"
	"github.com/insurelens/policy-parser/internal/repository"
)

var (
	exportIssuer string
	exportLimit  int
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived extraction runs to an XLSX workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportIssuer, "issuer", "", "restrict export to one issuer id")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum runs to export (0 = default)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "extractions.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	logger := slog.Default()
	cfg := common.LoadConfig()

	db, err := repository.Open(cmd.Context(), cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	runs := repository.NewRunRepository(db, logger)
	svc := export.NewService(runs, logger)
	data, err := svc.ExportRunsXLSX(cmd.Context(), exportIssuer, exportLimit)
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", exportOut, len(data))
	return nil
}

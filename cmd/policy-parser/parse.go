package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/insurelens/policy-parser/constants"
	"github.com/insurelens/policy-parser/internal/async"
	"github.com/insurelens/policy-parser/internal/common"
	"github.com/insurelens/policy-parser/internal/entity"
	"github.com/insurelens/policy-parser/internal/repository"
)

var (
	parseIssuer  string
	parseJSON    bool
	parseArchive bool
	parseWorkers int
)

var parseCmd = &cobra.Command{
	Use:   "parse <file-or-dir>",
	Short: "Extract fields from a document or a directory of documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseIssuer, "issuer", "", "issuer id for issuer-specific patterns (e.g. hdfc, lic)")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output as JSON")
	parseCmd.Flags().BoolVar(&parseArchive, "archive", false, "archive results to the configured store")
	parseCmd.Flags().IntVar(&parseWorkers, "workers", 4, "parallel workers for directory parsing")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	cfg := common.LoadConfig()

	processor, err := newProcessor(cfg, logger)
	if err != nil {
		return err
	}
	if parseArchive {
		db, err := repository.Open(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		processor.Runs = repository.NewRunRepository(db, logger)
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	if !info.IsDir() {
		report, _, err := processor.ProcessFile(cmd.Context(), args[0], parseIssuer)
		if err != nil {
			return err
		}
		return printReport(report)
	}

	// Directory mode: fan documents out to the worker pool.
	var jobs []async.Job
	entries, err := os.ReadDir(args[0])
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(e.Name()))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			continue
		}
		jobs = append(jobs, async.Job{Path: filepath.Join(args[0], e.Name()), IssuerID: parseIssuer})
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no parsable documents in %s", args[0])
	}

	pool := async.NewPool(processor, parseWorkers, logger)
	results := pool.Run(cmd.Context(), jobs)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("batch complete", "documents", len(results), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func printReport(report *entity.ExtractionReport) error {
	if parseJSON {
		out, err := report.SchemaJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	issuer := report.IssuerID
	if issuer == "" {
		issuer = "base"
	}
	fmt.Println("========================================")
	fmt.Printf("Extraction Results (%s)\n", issuer)
	fmt.Println("========================================")
	for _, o := range report.Outcomes {
		val := o.Value
		if !o.Found {
			val = "Not Found"
		}
		fmt.Printf("%-20s : %-20s (conf: %.2f, method: %s)\n", o.FieldKey, val, o.Confidence, o.Method)
	}
	fmt.Println("========================================")
	fmt.Printf("aggregate confidence: %.2f\n", report.Aggregate)
	return nil
}

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/insurelens/policy-parser/internal/common"
	"github.com/insurelens/policy-parser/internal/export"
	"github.com/insurelens/policy-parser/internal/repository"
	"github.com/insurelens/policy-parser/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := slog.Default()
	cfg := common.LoadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	processor, err := newProcessor(cfg, logger)
	if err != nil {
		return err
	}

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	runs := repository.NewRunRepository(db, logger)
	processor.Runs = runs
	exporter := export.NewService(runs, logger)

	srv := server.New(cfg.Server, processor, runs, exporter, logger)
	return srv.Start(ctx)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/fintrack/settlement-engine/internal/batch"
	"github.com/fintrack/settlement-engine/internal/config"
	"github.com/fintrack/settlement-engine/internal/ledger"
	"github.com/fintrack/settlement-engine/pkg/logger"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	// Load application configurations.
	cfg := config.MustLoad()

	// Create root logger tagged with the application version.
	logger := logger.New(cfg).With(ctx, "version", Version)
	defer func() {
		_ = logger.Sync()
	}()

	proc, err := ledger.NewProcessor(logger)
	if err != nil {
		return fmt.Errorf("failed to init processor: %w", err)
	}

	runner, err := batch.NewRunner(proc, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to init batch runner: %w", err)
	}

	// The report goes to stdout; diagnostics go to stderr.
	summary, err := runner.Run(ctx, cfg.InputFile, os.Stdout)
	if err != nil {
		return err
	}

	logger.Infof("run %s finished: %d read, %d applied, %d skipped, %d failed",
		summary.RunID, summary.Read, summary.Applied, summary.Skipped, len(summary.Failures))

	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clustertune/reportd"
	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/internal/log"
)

func backfillCmd() *cobra.Command {
	var (
		envFile     string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "backfill [reports|findings]",
		Short: "Generate embeddings for entities that lack one",
		Long: `Generate embeddings for stored reports or findings that have no
embedding yet. Each embedding commits independently, so an interrupted run
keeps its progress and a re-run attempts only what is still missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackfill(envFile, args[0], concurrency)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Concurrent embedding calls (default: BACKFILL_CONCURRENCY)")

	return cmd
}

func runBackfill(envFile, kindArg string, concurrency int) error {
	var kind search.EntityKind
	switch kindArg {
	case "reports", "report":
		kind = search.KindReport
	case "findings", "finding":
		kind = search.KindFinding
	default:
		return fmt.Errorf("unknown entity kind %q: use reports or findings", kindArg)
	}

	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.NewLogger(cfg)
	slogger := logger.Slog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []reportd.Option{
		reportd.WithConfig(cfg),
		reportd.WithLogger(logger),
	}
	if concurrency > 0 {
		opts = append(opts, reportd.WithBackfillConcurrency(concurrency))
	}

	client, err := reportd.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("create reportd client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close reportd client", slog.Any("error", err))
		}
	}()

	if client.Backfill == nil {
		return reportd.ErrNoEmbedder
	}

	stats, err := client.Backfill.Backfill(ctx, kind)
	fmt.Printf("attempted: %d\nsucceeded: %d\nfailed:    %d\n",
		stats.Attempted, stats.Succeeded, stats.Failed)
	if err != nil {
		return fmt.Errorf("backfill aborted: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/clustertune/reportd"
	"github.com/clustertune/reportd/internal/log"
	"github.com/clustertune/reportd/internal/mcp"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This allows AI assistants to look up tuning reports and run similarity
searches. Configuration is loaded from environment variables and .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// Stdout carries the MCP protocol, so the logger writes to stderr.
	logger := log.NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
	slogger := logger.Slog()

	slogger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
	)

	ctx := context.Background()
	client, err := reportd.New(ctx,
		reportd.WithConfig(cfg),
		reportd.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create reportd client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close reportd client", slog.Any("error", err))
		}
	}()

	mcpServer := mcp.NewServer(client.Search, client.Reports, client.EnforceAccess(), version, slogger)

	return mcpServer.ServeStdio()
}

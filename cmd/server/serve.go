package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/nutrimcp/backend/config"
	httpDelivery "github.com/nutrimcp/backend/internal/delivery/http"
	"github.com/nutrimcp/backend/internal/delivery/mcp"
	"github.com/nutrimcp/backend/internal/domain"
	"github.com/nutrimcp/backend/internal/i18n"
	"github.com/nutrimcp/backend/internal/infrastructure/blv"
	"github.com/nutrimcp/backend/internal/infrastructure/preferences"
	"github.com/nutrimcp/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the MCP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "transport",
				Usage: "MCP transport: stdio or http (overrides server.transport)",
			},
		},
		Action: runServe,
	}
}

func newVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the server version and the upstream database release",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", mcp.ServerName, version)

			client := blv.NewClient(apiConfig(cfg), zerolog.Nop())
			dbVersion, err := client.DatabaseVersion(ctx)
			if err != nil {
				return fmt.Errorf("failed to query database version: %w", err)
			}
			fmt.Printf("database %s (%d)\n", dbVersion.Text, dbVersion.ID)
			return nil
		},
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if transport := cmd.String("transport"); transport != "" {
		cfg.Server.Transport = transport
	}

	// stdout carries the stdio transport, so logs always go to stderr
	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("transport", cfg.Server.Transport).
		Str("preferences", cfg.Preferences.Type).
		Msg("starting " + mcp.ServerName)

	client := blv.NewClient(apiConfig(cfg), logger)
	logDatabaseVersion(ctx, client, logger)

	store, closeStore, err := newPreferenceStore(cfg.Preferences)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn().Err(err).Msg("failed to close preference store")
		}
	}()

	catalog := i18n.NewCatalog()
	resolver := usecase.NewNutrientResolver(client, logger)
	aggregator := usecase.NewRecipeAggregator(client, resolver, catalog, usecase.RecipeAggregatorConfig{
		MaxConcurrency: cfg.Aggregator.MaxConcurrency,
	}, logger)
	matcher := usecase.NewMatchingService(usecase.MatchConfig{
		EnableFuzzyMatching: cfg.Search.FuzzyMatching,
		FuzzyEditDistance:   cfg.Search.FuzzyEditDistance,
	})
	foods := usecase.NewFoodService(client, resolver, aggregator, matcher, catalog, logger)
	languages := usecase.NewLanguageService(store, logger)

	server := mcp.NewServer(foods, languages, catalog, version, logger)

	switch cfg.Server.Transport {
	case "stdio":
		logger.Info().Msg("serving MCP over stdio")
		return server.Run(ctx, &mcpsdk.StdioTransport{})
	case "http":
		handler := httpDelivery.NewHandler(foods, languages, version, logger)
		router := httpDelivery.SetupRouter(cfg, handler, server.HTTPHandler(), logger)
		return serveHTTP(ctx, cfg.Server.Port, router, logger)
	default:
		return fmt.Errorf("unknown transport %q", cfg.Server.Transport)
	}
}

func serveHTTP(ctx context.Context, port string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func apiConfig(cfg *config.Config) blv.Config {
	return blv.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		MaxRetries:        cfg.API.MaxRetries,
	}
}

func newLogger(cfg config.LogConfig, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func newPreferenceStore(cfg config.PreferencesConfig) (domain.PreferenceStore, func() error, error) {
	if cfg.Type == "sqlite" {
		store, err := preferences.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open preference store: %w", err)
		}
		return store, store.Close, nil
	}
	return preferences.NewMemoryStore(), func() error { return nil }, nil
}

// logDatabaseVersion is informational only; an unreachable upstream does not stop startup.
func logDatabaseVersion(ctx context.Context, client *blv.Client, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	v, err := client.DatabaseVersion(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("could not read database version")
		return
	}
	logger.Info().Int("id", v.ID).Str("release", v.Text).Msg("nutrition database")
}

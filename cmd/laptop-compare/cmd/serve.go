package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-compare/internal/api"
	"github.com/donaldgifford/laptop-compare/internal/config"
	"github.com/donaldgifford/laptop-compare/internal/engine"
	"github.com/donaldgifford/laptop-compare/internal/notify"
	"github.com/donaldgifford/laptop-compare/internal/telemetry"
	"github.com/donaldgifford/laptop-compare/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and refresh scheduler",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !changedOrEnv("log-level") && cfgFile == "" {
		cfg.Logging.Level = "info"
	}
	log := newLogger(cfg)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, Version)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	src, closeSrc, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSrc()

	opts := engineOptions(cfg, log)
	opts = append(opts,
		engine.WithNotifier(newNotifier(cfg.Notifications.Discord, log)),
		engine.WithStaleDealNotifications(cfg.Notifications.Discord.StaleDeals),
	)
	eng := engine.New(src, opts...)

	// A failed first load still serves probes; readyz reports loading
	// until a scheduled refresh succeeds.
	if _, err := eng.Refresh(ctx); err != nil {
		log.Error("initial catalog load failed", "error", err)
	}

	sched, err := engine.NewScheduler(eng, cfg.Schedule.RefreshInterval, logger.Component(log, "scheduler"))
	if err != nil {
		return err
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	e := api.NewRouter(eng, api.Options{
		Version:   Version,
		RateLimit: cfg.RateLimit,
		Logger:    logger.Component(log, "http"),
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "source", cfg.Data.Source, "version", Version)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func newNotifier(cfg config.DiscordConfig, log *slog.Logger) notify.Notifier {
	if !cfg.Enabled {
		return notify.NewNoOpNotifier(logger.Component(log, "notify"))
	}
	return notify.NewDiscordNotifier(cfg.WebhookURL, notify.WithOnlyOnErrors(cfg.OnlyOnErrors))
}

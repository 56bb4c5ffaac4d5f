package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dinoverse/internal/app"
	"dinoverse/internal/config"
	cronrunner "dinoverse/internal/cron"
	"dinoverse/internal/logger"

	_ "dinoverse/docs"
)

type rootOptions struct {
	configPath string
	envOnly    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{
		configPath: os.Getenv("DV_CONFIG"),
		envOnly:    envBool(os.Getenv("DV_ENV_ONLY")),
	}
	if opts.configPath == "" {
		opts.configPath = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:           "dinoverse",
		Short:         "Dinoverse site and Life-OS server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "path to the YAML config (DV_CONFIG)")
	cmd.PersistentFlags().BoolVar(&opts.envOnly, "env-only", opts.envOnly, "read configuration from the environment only (DV_ENV_ONLY)")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newSeedCmd(opts),
	)
	return cmd
}

func envBool(raw string) bool {
	return strings.EqualFold(raw, "true") || raw == "1"
}

// bootstrap loads config, builds the logger and opens the app.
func bootstrap(opts *rootOptions) (*app.App, error) {
	cfg, err := config.Load(opts.configPath, opts.envOnly)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	a, err := app.New(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open app: %w", err)
	}
	return a, nil
}

func shutdown(a *app.App) {
	if err := a.Close(); err != nil {
		a.Logger.Warn("close failed", zap.Error(err))
	}
	_ = a.Logger.Sync()
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer shutdown(a)
			if err := a.Migrate(); err != nil {
				return err
			}
			a.Logger.Info("migration complete")
			return nil
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Store default site content for sections that have none",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer shutdown(a)
			if err := a.Migrate(); err != nil {
				return err
			}
			n, err := a.Seed(cmd.Context())
			if err != nil {
				return err
			}
			a.Logger.Info("seed complete", zap.Int("sections", n))
			return nil
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer shutdown(a)
			return serve(a)
		},
	}
}

func serve(a *app.App) error {
	cfg := a.Config
	log := a.Logger

	if err := a.Migrate(); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if !a.Gate.Configured() {
		log.Warn("admin credentials are not configured; admin login is disabled")
	}

	if cfg.App.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := a.Router()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := cronrunner.New(log, ctx, cron.WithLocation(cfg.App.Location()))
	if cfg.Digest.Enabled {
		if _, err := runner.Add("digest", cfg.Digest.Schedule, a.Digest.Job); err != nil {
			return fmt.Errorf("schedule digest: %w", err)
		}
	}
	runner.Start()
	defer runner.Stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

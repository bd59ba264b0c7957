package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/ah-its-andy/reformed/internal/api"
	"github.com/ah-its-andy/reformed/internal/config"
	"github.com/ah-its-andy/reformed/internal/converter"
	"github.com/ah-its-andy/reformed/internal/db"
	"github.com/ah-its-andy/reformed/internal/formats"
	"github.com/ah-its-andy/reformed/internal/inflight"
	"github.com/ah-its-andy/reformed/internal/logging"
	"github.com/ah-its-andy/reformed/internal/worker"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(load func() (*config.Config, error), configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger, level, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, *configPath, logger, level)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config, configPath string, logger *zap.Logger, level zap.AtomicLevel) error {
	logger.Info("starting reformed",
		zap.String("addr", cfg.HTTPAddr()),
		zap.Int("workers", cfg.Server.Workers),
		zap.String("max_buffer_size", humanize.IBytes(uint64(cfg.Server.MaxBufferSize))),
		zap.String("converter", cfg.Converter.Pandoc),
		zap.Duration("timeout", cfg.ConversionTimeout()),
		zap.Bool("history", cfg.HistoryEnabled()),
	)
	checkConverter(cfg.Converter.Pandoc, logger)

	opts := api.Options{
		Logger:        logger,
		Formats:       formats.Default,
		Executor:      converter.NewExecutor(cfg.Converter.Pandoc, cfg.ConversionTimeout(), cfg.Converter.MaxDiagnosticBytes, logger),
		Pool:          worker.NewPool(cfg.Server.Workers),
		Tracker:       inflight.NewTracker(),
		MaxBufferSize: cfg.Server.MaxBufferSize,
		WorkspaceRoot: cfg.Converter.WorkspaceRoot,
		CORSOrigins:   cfg.Server.CORSOrigins,
	}
	if cfg.HistoryEnabled() {
		store, err := db.Open(cfg.History.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.History = store
		logger.Info("conversion history enabled", zap.String("db_path", cfg.History.DBPath))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := api.NewServer(opts)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, logger, func(next *config.Config) {
				if err := logging.SetLevel(level, next.Logging.Level); err != nil {
					logger.Warn("ignoring log level", zap.Error(err))
				}
				opts.Executor.SetTimeout(next.ConversionTimeout())
			})
			if err != nil {
				logger.Warn("config watch stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("drain_timeout", cfg.ShutdownTimeout()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", zap.Error(err))
	}
	if err := opts.Pool.Drain(shutdownCtx); err != nil {
		logger.Warn("conversions still running at exit", zap.Int("in_use", opts.Pool.InUse()))
	}
	logger.Info("shutdown complete")
	return nil
}

func checkConverter(binary string, logger *zap.Logger) {
	path, err := exec.LookPath(binary)
	if err != nil {
		logger.Warn("converter not found, conversions will fail", zap.String("binary", binary), zap.Error(err))
		return
	}
	logger.Info("converter found", zap.String("binary", binary), zap.String("path", path))
}

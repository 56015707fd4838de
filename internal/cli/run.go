package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/youmna-rabie/eventease/internal/backup"
	"github.com/youmna-rabie/eventease/internal/config"
	"github.com/youmna-rabie/eventease/internal/event"
	"github.com/youmna-rabie/eventease/internal/persist"
	"github.com/youmna-rabie/eventease/internal/server"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the HTTP server and the backup scheduler",
	RunE:  runService,
}

func runService(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Logging)

	// Corrupt data aborts start-up here rather than being reseeded.
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	var mgr *backup.Manager
	if cfg.Backup.Interval > 0 {
		if mgr, err = newBackupManager(cfg, logger); err != nil {
			return err
		}
	}

	srv := server.NewServer(store, logger)

	addr := net.JoinHostPort(cfg.Server.Host, fmt.Sprintf("%d", cfg.Server.Port))
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "addr", addr, "data_file", cfg.Store.Path, "events", store.Count())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gracefully")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if mgr != nil {
		g.Go(func() error {
			return mgr.Run(gctx, cfg.Backup.Interval)
		})
	}

	err = g.Wait()

	if ferr := store.Flush(); ferr != nil {
		logger.Error("failed to save events during shutdown", "error", ferr)
	} else {
		logger.Info("all events saved")
	}

	logger.Info("server stopped")
	return err
}

// openStore builds the event store from cfg and loads the data file.
func openStore(cfg *config.Config, logger *slog.Logger) (*event.MemoryStore, error) {
	store, err := event.NewMemoryStore(
		persist.NewJSONFile(cfg.Store.Path),
		event.WithLogger(logger),
		event.WithCapacityPolicy(event.CapacityPolicy(cfg.Store.CapacityPolicy)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}
	return store, nil
}

func newBackupManager(cfg *config.Config, logger *slog.Logger) (*backup.Manager, error) {
	mgr, err := backup.NewManager(cfg.Store.Path, cfg.Backup.Dir, cfg.Backup.Retention, backup.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating backup manager: %w", err)
	}
	return mgr, nil
}

// newLogger writes to stderr so command output on stdout stays clean.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

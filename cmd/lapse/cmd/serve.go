package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/lapse/internal/server"
	"github.com/MeKo-Tech/lapse/stopwatch"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the stopwatch API",
	Long: `Start an HTTP server exposing a stopwatch registry.

The server provides the following endpoints:
  POST /stopwatches                  - Create a stopwatch
  GET  /stopwatches                  - List all stopwatches
  GET  /stopwatches/{id}             - Inspect one stopwatch
  POST /stopwatches/{id}/{operation} - start, lap, stop, or reset
  GET  /ws                           - WebSocket snapshot stream
  GET  /healthz                      - Health check endpoint
  GET  /metrics                      - Prometheus metrics

Examples:
  lapse serve
  lapse serve --port 8080
  lapse serve --host 0.0.0.0 --seed race,practice`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "host to bind to (default from config)")
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config)")
	serveCmd.Flags().String("cors-origin", "", "allowed CORS origin (default from config)")
	serveCmd.Flags().Int("shutdown-timeout", 0, "graceful shutdown timeout in seconds (default from config)")
	serveCmd.Flags().Int("snapshot-interval", 0, "WebSocket snapshot interval in milliseconds (default from config)")
	serveCmd.Flags().String("seed", "", "comma-separated stopwatch ids to create at startup")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	host := cfg.Server.Host
	if cmd.Flags().Changed("host") {
		host, _ = cmd.Flags().GetString("host")
	}
	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	corsOrigin := cfg.Server.CORSOrigin
	if cmd.Flags().Changed("cors-origin") {
		corsOrigin, _ = cmd.Flags().GetString("cors-origin")
	}
	shutdownTimeout := cfg.Server.ShutdownTimeoutSec
	if cmd.Flags().Changed("shutdown-timeout") {
		shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
	}
	snapshotInterval := cfg.Server.SnapshotIntervalMS
	if cmd.Flags().Changed("snapshot-interval") {
		snapshotInterval, _ = cmd.Flags().GetInt("snapshot-interval")
	}
	seed, _ := cmd.Flags().GetString("seed")

	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
	}

	registry := stopwatch.NewRegistry()
	if seed != "" {
		for _, id := range strings.Split(seed, ",") {
			if _, err := registry.Create(strings.TrimSpace(id)); err != nil {
				return fmt.Errorf("failed to seed stopwatch: %w", err)
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.NewServer(registry, server.Config{
		Host:             host,
		Port:             port,
		CORSOrigin:       corsOrigin,
		SnapshotInterval: time.Duration(snapshotInterval) * time.Millisecond,
	})

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Starting stopwatch server", "host", host, "port", port, "seeded", registry.Len())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(shutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/formflow-dev/formflow/internal/config"
	"github.com/formflow-dev/formflow/pkg/upload"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		uploadDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the upload staging server",
		Long: `Start an HTTP server that stages file uploads for form fields.

POST /upload accepts a multipart "file" field and returns a temp_id.
A form submission handler claims the temp_id to move the file into
permanent storage; unclaimed files are swept after their TTL.

Endpoints:
  POST /upload    stage a file, returns {"temp_id": "..."}
  GET  /healthz   liveness check
  GET  /metrics   Prometheus metrics

Examples:
  formflow serve
  formflow serve --addr=:9000 --upload-dir=/var/tmp/uploads`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, uploadDir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&uploadDir, "upload-dir", "", "Directory for staged files (default from config)")

	return cmd
}

func runServe(addr, uploadDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Serve.Addr = addr
	}
	if uploadDir != "" {
		cfg.Serve.UploadDir = uploadDir
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	store, err := upload.NewDiskStore(cfg.Serve.UploadDir, cfg.Serve.MaxSize)
	if err != nil {
		return fmt.Errorf("upload dir: %w", err)
	}
	store = store.WithTTL(cfg.Serve.TTL)

	uploadCfg := upload.DefaultConfig()
	uploadCfg.MaxFileSize = cfg.Serve.MaxSize
	uploadCfg.TempExpiry = cfg.Serve.TTL

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Method(http.MethodPost, "/upload", upload.HandlerWithConfig(store, uploadCfg))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.Serve.Addr,
		Handler: r,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sweep expired temp files until shutdown.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := store.Cleanup(cfg.Serve.TTL); err != nil {
					logger.Warn("upload cleanup failed", "error", err)
				}
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	}()

	printBanner()
	success("Listening on %s", cfg.Serve.Addr)
	info("Staging uploads in %s (TTL %s)", cfg.Serve.UploadDir, cfg.Serve.TTL)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

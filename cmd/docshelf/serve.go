package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/docshelf/config"
	docshelfhttp "github.com/sagarc03/docshelf/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the docshelf web application.

The bucket is created if it does not exist yet. A failure to reach the
storage at startup is logged and the server starts anyway.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8000, "HTTP server port (env: DOCSHELF_SERVER_PORT or PORT)")
	serveCmd.Flags().String("scratch-dir", "", "directory for staging downloads (default: data, env: DOCSHELF_SERVER_SCRATCH_DIR)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, closeStore, err := openDocumentStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if ok, ensureErr := store.EnsureBucket(ctx); !ok {
		slog.Error("bucket unavailable, continuing", "bucket", store.Bucket(), "err", ensureErr)
	}

	auth, err := newAuthenticator(cfg)
	if err != nil {
		return err
	}
	if cfg.Auth.TokenSecret == config.DefaultTokenSecret {
		slog.Warn("using the built-in token secret; set auth.token_secret outside development")
	}

	if err := os.MkdirAll(cfg.Server.ScratchDir, 0o750); err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}

	handlerConfig := docshelfhttp.HandlerConfig{
		ScratchDir:      cfg.Server.ScratchDir,
		MaxUploadSize:   cfg.Server.MaxUploadSize,
		CookieSecure:    cfg.Server.CookieSecure,
		CORS:            cfg.CORS,
		DownloadTimeout: cfg.Server.DownloadTimeout,
	}

	handler := docshelfhttp.NewHandler(&handlerConfig, store, auth)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "driver", cfg.Storage.Driver, "bucket", store.Bucket())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"barrierfree/internal/catalog"
	"barrierfree/internal/config"
	"barrierfree/internal/handlers"
	"barrierfree/internal/middleware"
	"barrierfree/internal/render"
	"barrierfree/internal/router"
)

// Contact form submissions allowed per client IP and window.
const (
	contactLimit  = 5
	contactWindow = 10 * time.Minute
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  "Starts the public website and JSON API and shuts down gracefully on SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr()
			}
			return serve(cfg, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overriding APP_HOST and APP_PORT")
	return cmd
}

func serve(cfg *config.Config, addr string) error {
	setupLogger(os.Stdout, cfg.IsDev())

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", addr,
		"catalog_source", cfg.CatalogSource,
	)

	src, closeCatalog, err := openCatalog(context.Background(), cfg, cfg.IsDev())
	if err != nil {
		return err
	}
	defer closeCatalog()

	pageCache, closeCache, err := openPageCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	storageClient, err := openStorage(cfg)
	if err != nil {
		return err
	}
	if storageClient != nil {
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"private_bucket", storageClient.PrivateBucket(),
		)
	} else {
		slog.Warn("s3 storage not configured, downloads use google drive links")
	}

	renderer, err := render.New(cfg.IsDev(), render.Site{
		Email: cfg.ContactEmail,
		Phone: cfg.ContactPhone,
	})
	if err != nil {
		return err
	}

	svc := catalog.NewService(src)
	public := handlers.NewPublic(svc, renderer, pageCache, downloadResolver(storageClient))
	api := handlers.NewAPI(svc)

	limiter := middleware.NewRateLimiter(contactLimit, contactWindow)
	limiter.TrustProxy = cfg.TrustProxy
	defer limiter.Stop()

	r := router.New(public, api, limiter, router.Options{
		SecureCookies: !cfg.IsDev(),
		MediaDir:      cfg.MediaDir,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/httpserver"
	"storefront/internal/session"
	"storefront/internal/tokenstore"
)

func main() {
	logger := log.New(os.Stdout, "[web] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	config.LoadDotenv(logger)
	cfg := config.FromEnv()

	store := tokenstore.NewFile(cfg.TokenPath)
	sessions := session.New(store, logger)
	backend := api.New(cfg.APIBaseURL, cfg.RequestTimeout, sessions, logger)
	sessions.SetBackend(backend)

	carts := cart.New(sessions, backend)
	products := catalog.New(backend)
	sessions.OnLogout(carts.Clear)
	sessions.OnLogout(products.Invalidate)

	// Resolve the stored session before any protected surface is exposed.
	if err := sessions.Restore(context.Background()); err != nil {
		logger.Printf("restore session: %v", err)
	}
	if user, ok := sessions.Current(); ok {
		logger.Printf("restored session for %s", user.Username)
		if err := products.Reload(context.Background()); err != nil {
			logger.Printf("initial catalog load: %v", err)
		}
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Session: sessions,
		Cart:    carts,
		Catalog: products,
		Backend: backend,
		Pinger:  backend,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting storefront gateway on %s (backend %s)", cfg.HTTPAddr, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

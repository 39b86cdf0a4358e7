package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"bookshop/internal/config"
	"bookshop/internal/db"
	"bookshop/internal/httpserver"
	"bookshop/internal/metrics"
	"bookshop/internal/migrate"
	bookrepo "bookshop/internal/repository/book"
	userrepo "bookshop/internal/repository/user"
	"bookshop/internal/seed"
	cartsvc "bookshop/internal/service/cart"
	catalogsvc "bookshop/internal/service/catalog"
	checkoutsvc "bookshop/internal/service/checkout"
	usersvc "bookshop/internal/service/user"
	"bookshop/internal/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	if err := migrate.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	bookRepo := bookrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)

	if err := seed.Apply(ctx, bookRepo, userRepo, logger); err != nil {
		logger.Fatalf("seed: %v", err)
	}

	sessions := session.NewStore(cfg.SessionTTL)
	registry := prometheus.NewRegistry()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:       sessions,
		CatalogSvc:     catalogsvc.New(bookRepo),
		UserSvc:        usersvc.New(userRepo),
		CartSvc:        cartsvc.New(sessions, bookRepo),
		CheckoutSvc:    checkoutsvc.New(bookRepo),
		Metrics:        metrics.NewCollector(registry),
		MetricsHandler: metrics.Handler(registry),
		SessionTTL:     cfg.SessionTTL,
		CookieSecure:   cfg.CookieSecure,
		CORSOrigin:     cfg.CORSAllowedOrigin,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bosko-storefront/internal/api"
	"bosko-storefront/internal/config"
	"bosko-storefront/internal/db"
	"bosko-storefront/internal/diagnostics"
	"bosko-storefront/internal/guard"
	"bosko-storefront/internal/httpserver"
	"bosko-storefront/internal/migrate"
	"bosko-storefront/internal/repository/storage"
	anonymoussvc "bosko-storefront/internal/service/anonymous"
	cartsvc "bosko-storefront/internal/service/cart"
	categorysvc "bosko-storefront/internal/service/category"
	productsvc "bosko-storefront/internal/service/product"
	"bosko-storefront/internal/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	repo, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open storage: %v", err)
	}
	defer closeStorage()

	table, err := guard.LoadTable(cfg.RoutesFile)
	if err != nil {
		logger.Fatalf("load route table: %v", err)
	}

	var sink diagnostics.Sink = diagnostics.NewLogSink(logger)
	if len(cfg.DiagnosticsBrokers) > 0 {
		kafkaSink := diagnostics.NewKafkaSink(cfg.DiagnosticsTopic, logger, cfg.DiagnosticsBrokers...)
		defer kafkaSink.Close()
		sink = kafkaSink
	}

	backend := api.NewBackend(api.Options{
		BaseURL:   cfg.BackendBaseURL,
		AssetBase: cfg.BackendAssetURL,
		Timeout:   cfg.APITimeout,
		Sink:      sink,
		Logger:    logger,
	})
	catalog := backend.Client(nil)
	productService := productsvc.New(catalog, backend.ImageURL)
	categoryService := categorysvc.New(catalog, backend.ImageURL)
	cartService := cartsvc.New(productService, backend.ImageURL)
	devices := session.NewRegistry(repo, logger, time.Now)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Storage:      repo,
		Devices:      devices,
		Backend:      backend,
		Guard:        guard.New(table),
		AnonymousSvc: anonymoussvc.New(),
		ProductSvc:   productService,
		CategorySvc:  categoryService,
		CartSvc:      cartService,
		CORSOrigins:  cfg.CORSOrigins,
		SecureCookie: cfg.DeviceCookieSecure,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (storage=%s backend=%s)", cfg.HTTPAddr, cfg.StorageDriver, cfg.BackendBaseURL)
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

// openStorage connects the configured device storage and applies its schema.
func openStorage(ctx context.Context, cfg config.Config, logger *log.Logger) (storage.Repository, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Printf("using in-memory storage; device state is lost on restart")
		return storage.NewMemory(), func() {}, nil
	case config.StoragePostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to db: %w", err)
		}
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		return storage.NewPostgres(pool, logger), pool.Close, nil
	case config.StorageRedis:
		client, err := db.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedis(client), func() { client.Close() }, nil
	case config.StorageSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := migrate.ApplySQLite(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		return storage.NewSQLite(sqlDB), func() { sqlDB.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

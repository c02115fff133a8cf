package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/httpserver"
	"storefront/internal/notify"
	cartrepo "storefront/internal/repository/cart"
	productrepo "storefront/internal/repository/product"
	cartsvc "storefront/internal/service/cart"
	productsvc "storefront/internal/service/product"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	config.LoadEnvFile(logger)
	cfg := config.FromEnv()

	ctx := context.Background()
	slots, closeSlots, err := cartrepo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open cart store: %v", err)
	}
	defer closeSlots()

	var catalogRepo productrepo.Repository = productrepo.NewHTTP(cfg.CatalogBaseURL, &http.Client{Timeout: cfg.CatalogTimeout}, logger)
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			logger.Printf("catalog cache disabled: %v", err)
		} else {
			defer client.Close()
			catalogRepo = productrepo.NewCached(catalogRepo, client, cfg.CatalogCacheTTL, logger)
		}
	}
	productService := productsvc.New(catalogRepo)

	feed := notify.NewFeed(cfg.NoticeFeedSize)
	notifiers := notify.Multi{feed, notify.NewLog(logger)}
	if cfg.AMQPURL != "" {
		publisher, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			logger.Printf("notice publishing disabled: %v", err)
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, publisher)
		}
	}

	store := cartsvc.New(slots, productService, notifiers, logger, cartsvc.Options{
		Slot:           cfg.CartSlot,
		PersistTimeout: cfg.PersistTimeout,
	})
	store.Init(ctx)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Store:       store,
		Catalog:     productService,
		Notices:     feed,
		Ready:       slots,
		CORSOrigins: cfg.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (cart store %s, slot %s)", cfg.HTTPAddr, cfg.CartStore, cfg.CartSlot)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

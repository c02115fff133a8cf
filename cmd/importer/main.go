package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/importer"
	cartrepo "storefront/internal/repository/cart"
	productrepo "storefront/internal/repository/product"
	cartsvc "storefront/internal/service/cart"
	productsvc "storefront/internal/service/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a CSV file with id,quantity rows")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	config.LoadEnvFile(logger)
	cfg := config.FromEnv()
	ctx := context.Background()

	slots, closeSlots, err := cartrepo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open cart store: %v", err)
	}
	defer closeSlots()

	catalog := productsvc.New(productrepo.NewHTTP(cfg.CatalogBaseURL, &http.Client{Timeout: cfg.CatalogTimeout}, logger))
	store := cartsvc.New(slots, nil, nil, logger, cartsvc.Options{Slot: cfg.CartSlot, PersistTimeout: cfg.PersistTimeout})
	store.Hydrate(ctx)

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	start := time.Now()
	res, err := importer.NewCSVImporter(f, catalog, store).Run(ctx)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}
	for _, id := range res.Skipped {
		logger.Printf("skipped unknown product %d", id)
	}

	fmt.Printf("Imported %d rows into slot %s (%d added, %d merged) in %s\n",
		res.Rows, cfg.CartSlot, res.Added, res.Merged, time.Since(start).Truncate(time.Millisecond))
}

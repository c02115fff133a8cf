package main

import (
	"context"
	"log"
	"os"

	"storefront/internal/config"
	cartrepo "storefront/internal/repository/cart"
	"storefront/internal/seed"
	cartsvc "storefront/internal/service/cart"
)

func main() {
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	config.LoadEnvFile(logger)
	cfg := config.FromEnv()

	ctx := context.Background()
	slots, closeSlots, err := cartrepo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open cart store: %v", err)
	}
	defer closeSlots()

	store := cartsvc.New(slots, nil, nil, logger, cartsvc.Options{Slot: cfg.CartSlot, PersistTimeout: cfg.PersistTimeout})
	seeded, err := seed.Apply(ctx, store)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}
	if !seeded {
		logger.Printf("slot %s already holds a cart, nothing seeded", cfg.CartSlot)
		return
	}

	logger.Println("seed applied")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rl1809/inventory-tracker/internal/adapter/storage"
	"github.com/rl1809/inventory-tracker/internal/config"
	"github.com/rl1809/inventory-tracker/internal/core/service"
	"github.com/rl1809/inventory-tracker/internal/logger"
)

// Increments are read-modify-write without coordination, so concurrent
// writers on one item can overwrite each other. This measures how many
// updates are lost against the configured backend.
func main() {
	totalRequests := flag.Int("n", 50, "concurrent increments")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("failed to load config", zap.Error(err))
	}
	log, err := logger.New(cfg.Logger, cfg.IsDevelopment())
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("failed to build logger", zap.Error(err))
	}
	defer log.Sync()

	ctx := context.Background()

	store, closeStore, err := storage.Open(ctx, cfg, zap.NewNop())
	if err != nil {
		log.Fatal("failed to open document store", zap.Error(err))
	}
	defer closeStore()

	// Fresh collection so earlier runs do not skew the count
	collection := "stress-" + uuid.NewString()
	inventoryService := service.NewInventoryService(store, collection, cfg.Store.Timeout, zap.NewNop())
	itemName := "stress-item"

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32

	// Spawn concurrent requests
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, err := inventoryService.Increment(ctx, itemName); err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	items, err := inventoryService.List(ctx)
	if err != nil {
		log.Fatal("failed to read final state", zap.Error(err))
	}
	final := 0
	for _, it := range items {
		if it.Name == itemName {
			final = it.Quantity
		}
	}

	// Results
	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Backend:          %s\n", cfg.Store.Backend)
	fmt.Printf("Total Requests:   %d\n", *totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Final Quantity:   %d\n", final)
	fmt.Printf("Lost Updates:     %d\n", int(success)-final)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if final == int(success) {
		fmt.Println("PASS: every successful increment is reflected")
	} else {
		fmt.Printf("LOST UPDATES: expected %d, got %d\n", success, final)
	}

	// Clean up the stress collection
	for _, it := range items {
		if err := store.DeleteDocument(ctx, collection, it.Name); err != nil {
			log.Warn("cleanup failed", zap.String("item", it.Name), zap.Error(err))
		}
	}
}

package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/rl1809/inventory-tracker/internal/adapter/storage"
	"github.com/rl1809/inventory-tracker/internal/core/domain"
	"github.com/rl1809/inventory-tracker/internal/core/service"
	"github.com/rl1809/inventory-tracker/internal/port"
)

type downStore struct {
	port.DocumentStore
}

func (downStore) GetDocument(ctx context.Context, collection, key string) (port.Document, bool, error) {
	return port.Document{}, false, errors.New("dial tcp: connection refused")
}

func (downStore) ListDocuments(ctx context.Context, collection string) ([]port.Document, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func newMemoryService() *service.InventoryService {
	return service.NewInventoryService(storage.NewMemoryStore(), "", 0, nil)
}

func newDownService() *service.InventoryService {
	return service.NewInventoryService(downStore{}, "", 0, nil)
}

// newFullService holds each named item at the largest allowed quantity.
func newFullService(t *testing.T, names ...string) *service.InventoryService {
	t.Helper()

	store := storage.NewMemoryStore()
	for _, name := range names {
		fields := map[string]any{domain.QuantityField: domain.MaxQuantity}
		if err := store.SetDocument(context.Background(), service.DefaultCollection, name, fields); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	return service.NewInventoryService(store, "", 0, nil)
}

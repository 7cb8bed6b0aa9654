package storage

import (
	"context"
	"testing"
)

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	fields := map[string]any{"quantity": 1}
	store.SetDocument(ctx, "inventory", "apple", fields)
	fields["quantity"] = 7

	doc, _, _ := store.GetDocument(ctx, "inventory", "apple")
	doc.Fields["quantity"] = 9

	again, _, _ := store.GetDocument(ctx, "inventory", "apple")
	if again.Fields["quantity"] != 1 {
		t.Errorf("expected stored quantity 1, got %v", again.Fields["quantity"])
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := store.GetDocument(ctx, "inventory", "apple"); err == nil {
		t.Error("expected error on cancelled context")
	}
	if err := store.SetDocument(ctx, "inventory", "apple", map[string]any{"quantity": 1}); err == nil {
		t.Error("expected error on cancelled context")
	}
	if _, err := store.ListDocuments(ctx, "inventory"); err == nil {
		t.Error("expected error on cancelled context")
	}
}

package storage

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/rl1809/inventory-tracker/internal/core/domain"
	"github.com/rl1809/inventory-tracker/internal/core/service"
	"github.com/rl1809/inventory-tracker/internal/port"
)

// testCollection gives each run its own collection so shared backends
// do not see each other's documents.
func testCollection() string {
	return "test-" + uuid.NewString()
}

func quantityOf(t *testing.T, doc port.Document) int {
	t.Helper()
	q, err := domain.ParseQuantity(doc.Fields["quantity"])
	if err != nil {
		t.Fatalf("document %q: %v", doc.Key, err)
	}
	return q
}

func keysOf(docs []port.Document) []string {
	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		keys = append(keys, d.Key)
	}
	sort.Strings(keys)
	return keys
}

// runStoreContract checks the behavior every DocumentStore backend must share.
func runStoreContract(t *testing.T, store port.DocumentStore) {
	ctx := context.Background()

	t.Run("get absent", func(t *testing.T) {
		col := testCollection()
		_, ok, err := store.GetDocument(ctx, col, "ghost")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected absent document")
		}
	})

	t.Run("set then get", func(t *testing.T) {
		col := testCollection()
		if err := store.SetDocument(ctx, col, "apple", map[string]any{"quantity": 3}); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		doc, ok, err := store.GetDocument(ctx, col, "apple")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !ok {
			t.Fatal("expected document to exist")
		}
		if doc.Key != "apple" {
			t.Errorf("expected key apple, got %q", doc.Key)
		}
		if q := quantityOf(t, doc); q != 3 {
			t.Errorf("expected quantity 3, got %d", q)
		}
	})

	t.Run("set overwrites all fields", func(t *testing.T) {
		col := testCollection()
		store.SetDocument(ctx, col, "apple", map[string]any{"quantity": 1, "note": "red"})
		if err := store.SetDocument(ctx, col, "apple", map[string]any{"quantity": 2}); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		doc, _, err := store.GetDocument(ctx, col, "apple")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if _, ok := doc.Fields["note"]; ok {
			t.Errorf("expected note to be dropped, got fields %v", doc.Fields)
		}
		if q := quantityOf(t, doc); q != 2 {
			t.Errorf("expected quantity 2, got %d", q)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		col := testCollection()
		store.SetDocument(ctx, col, "apple", map[string]any{"quantity": 1})

		if err := store.DeleteDocument(ctx, col, "apple"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, ok, _ := store.GetDocument(ctx, col, "apple"); ok {
			t.Error("expected document to be gone")
		}
		if err := store.DeleteDocument(ctx, col, "apple"); err != nil {
			t.Errorf("expected second delete to succeed, got %v", err)
		}
	})

	t.Run("list is scoped to the collection", func(t *testing.T) {
		col, other := testCollection(), testCollection()
		store.SetDocument(ctx, col, "apple", map[string]any{"quantity": 1})
		store.SetDocument(ctx, col, "pear", map[string]any{"quantity": 4})
		store.SetDocument(ctx, other, "kiwi", map[string]any{"quantity": 2})

		docs, err := store.ListDocuments(ctx, col)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if diff := cmp.Diff([]string{"apple", "pear"}, keysOf(docs)); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}

		empty, err := store.ListDocuments(ctx, testCollection())
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(empty) != 0 {
			t.Errorf("expected empty collection, got %v", keysOf(empty))
		}
	})

	t.Run("keys are case sensitive", func(t *testing.T) {
		col := testCollection()
		store.SetDocument(ctx, col, "Apple", map[string]any{"quantity": 1})
		store.SetDocument(ctx, col, "apple", map[string]any{"quantity": 5})

		docs, err := store.ListDocuments(ctx, col)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if diff := cmp.Diff([]string{"Apple", "apple"}, keysOf(docs)); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("inventory lifecycle", func(t *testing.T) {
		svc := service.NewInventoryService(store, testCollection(), 0, nil)

		steps := []struct {
			op   func(context.Context, string) ([]domain.Item, error)
			want []domain.Item
		}{
			{svc.Increment, []domain.Item{{Name: "apple", Quantity: 1}}},
			{svc.Increment, []domain.Item{{Name: "apple", Quantity: 2}}},
			{svc.Decrement, []domain.Item{{Name: "apple", Quantity: 1}}},
			{svc.Decrement, []domain.Item{}},
			{svc.Decrement, []domain.Item{}},
		}
		for i, step := range steps {
			got, err := step.op(ctx, "apple")
			if err != nil {
				t.Fatalf("step %d: unexpected error: %v", i, err)
			}
			if diff := cmp.Diff(step.want, got); diff != "" {
				t.Errorf("step %d mismatch (-want +got):\n%s", i, diff)
			}
		}
	})
}

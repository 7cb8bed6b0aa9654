package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/inventory-tracker/internal/core/domain"
	"github.com/rl1809/inventory-tracker/internal/port"
)

const (
	DefaultCollection = "inventory"
	DefaultTimeout    = 5 * time.Second
)

type InventoryService struct {
	store      port.DocumentStore
	collection string
	timeout    time.Duration
	logger     *zap.Logger
}

func NewInventoryService(store port.DocumentStore, collection string, timeout time.Duration, logger *zap.Logger) *InventoryService {
	if collection == "" {
		collection = DefaultCollection
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &InventoryService{
		store:      store,
		collection: collection,
		timeout:    timeout,
		logger:     logger,
	}
}

func (s *InventoryService) Collection() string {
	return s.collection
}

// List returns a snapshot of the whole collection in store order.
func (s *InventoryService) List(ctx context.Context) ([]domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.list(ctx)
}

// Search lists the collection and keeps the items matching query.
func (s *InventoryService) Search(ctx context.Context, query string) ([]domain.Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Filter(items, query), nil
}

// Increment adds one to the item, creating it with quantity 1 when absent,
// and returns the refreshed collection.
func (s *InventoryService) Increment(ctx context.Context, name string) ([]domain.Item, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, ok, err := s.store.GetDocument(ctx, s.collection, name)
	if err != nil {
		return nil, storeErr("get item", err)
	}

	next := 1
	if ok {
		q, err := domain.ParseQuantity(doc.Fields[domain.QuantityField])
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", name, err)
		}
		if q >= domain.MaxQuantity {
			return nil, fmt.Errorf("item %q: %w", name, domain.ErrQuantityLimit)
		}
		next = q + 1
	}

	if err := s.store.SetDocument(ctx, s.collection, name, quantityFields(next)); err != nil {
		return nil, storeErr("set item", err)
	}
	s.logger.Debug("item incremented", zap.String("name", name), zap.Int("quantity", next))

	return s.list(ctx)
}

// Decrement removes one from the item. The document is deleted instead of
// reaching zero; an absent item is left alone. Returns the refreshed
// collection either way.
func (s *InventoryService) Decrement(ctx context.Context, name string) ([]domain.Item, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, ok, err := s.store.GetDocument(ctx, s.collection, name)
	if err != nil {
		return nil, storeErr("get item", err)
	}

	if ok {
		q, err := domain.ParseQuantity(doc.Fields[domain.QuantityField])
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", name, err)
		}

		if q == 1 {
			if err := s.store.DeleteDocument(ctx, s.collection, name); err != nil {
				return nil, storeErr("delete item", err)
			}
			s.logger.Debug("item removed", zap.String("name", name))
		} else {
			if err := s.store.SetDocument(ctx, s.collection, name, quantityFields(q-1)); err != nil {
				return nil, storeErr("set item", err)
			}
			s.logger.Debug("item decremented", zap.String("name", name), zap.Int("quantity", q-1))
		}
	}

	return s.list(ctx)
}

func (s *InventoryService) list(ctx context.Context) ([]domain.Item, error) {
	docs, err := s.store.ListDocuments(ctx, s.collection)
	if err != nil {
		return nil, storeErr("list items", err)
	}

	// A corrupt document is left out of the snapshot; mutating it still fails.
	items := make([]domain.Item, 0, len(docs))
	for _, doc := range docs {
		q, err := domain.ParseQuantity(doc.Fields[domain.QuantityField])
		if err != nil {
			s.logger.Warn("skipping corrupt item",
				zap.String("collection", s.collection),
				zap.String("name", doc.Key),
				zap.Error(err),
			)
			continue
		}
		items = append(items, domain.Item{Name: doc.Key, Quantity: q})
	}
	return items, nil
}

func quantityFields(q int) map[string]any {
	return map[string]any{domain.QuantityField: q}
}

func storeErr(op string, err error) error {
	if errors.Is(err, port.ErrInvalidKey) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidName, err)
	}
	return fmt.Errorf("%s: %w: %w", op, port.ErrStoreUnavailable, err)
}

package storage

import (
	"context"
	"sync"

	"github.com/rl1809/inventory-tracker/internal/port"
)

// MemoryStore keeps documents in process memory. Used for local runs and
// tests; nothing survives a restart.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

var _ port.DocumentStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

func (m *MemoryStore) GetDocument(ctx context.Context, collection, key string) (port.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return port.Document{}, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, ok := m.collections[collection][key]
	if !ok {
		return port.Document{}, false, nil
	}
	return port.Document{Key: key, Fields: cloneFields(fields)}, true, nil
}

func (m *MemoryStore) SetDocument(ctx context.Context, collection, key string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	docs, ok := m.collections[collection]
	if !ok {
		docs = make(map[string]map[string]any)
		m.collections[collection] = docs
	}
	docs[key] = cloneFields(fields)
	return nil
}

func (m *MemoryStore) DeleteDocument(ctx context.Context, collection, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], key)
	return nil
}

func (m *MemoryStore) ListDocuments(ctx context.Context, collection string) ([]port.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]port.Document, 0, len(m.collections[collection]))
	for key, fields := range m.collections[collection] {
		docs = append(docs, port.Document{Key: key, Fields: cloneFields(fields)})
	}
	return docs, nil
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

package port

import (
	"context"
	"errors"
)

// ErrStoreUnavailable wraps every failure of a store round trip.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrInvalidKey is returned, without contacting the store, for keys the
// backend cannot address.
var ErrInvalidKey = errors.New("key not addressable by store")

type Document struct {
	Key    string
	Fields map[string]any
}

type DocumentStore interface {
	// GetDocument returns the document at key; the bool is false when absent
	GetDocument(ctx context.Context, collection, key string) (Document, bool, error)

	// SetDocument replaces the document with exactly the given fields
	SetDocument(ctx context.Context, collection, key string, fields map[string]any) error

	// DeleteDocument removes the document, succeeding when it is already absent
	DeleteDocument(ctx context.Context, collection, key string) error

	// ListDocuments returns every document of the collection in store order
	ListDocuments(ctx context.Context, collection string) ([]Document, error)
}

package storage

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/inventory-tracker/internal/port"
)

// FirestoreStore maps collections and keys one to one onto Firestore
// collections and document IDs. Integers read back as int64.
type FirestoreStore struct {
	Client *firestore.Client
}

var _ port.DocumentStore = (*FirestoreStore)(nil)

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{Client: client}
}

// Firestore document ID limits.
const maxDocIDBytes = 1500

func validDocID(key string) error {
	switch {
	case key == "", key == ".", key == "..":
	case strings.Contains(key, "/"):
	case len(key) > maxDocIDBytes:
	case !utf8.ValidString(key):
	case len(key) > 4 && strings.HasPrefix(key, "__") && strings.HasSuffix(key, "__"):
	default:
		return nil
	}
	return fmt.Errorf("%w: firestore document id %q", port.ErrInvalidKey, key)
}

func (f *FirestoreStore) doc(collection, key string) (*firestore.DocumentRef, error) {
	if err := validDocID(key); err != nil {
		return nil, err
	}
	ref := f.Client.Collection(collection).Doc(key)
	if ref == nil {
		return nil, fmt.Errorf("invalid document path %q/%q", collection, key)
	}
	return ref, nil
}

func (f *FirestoreStore) GetDocument(ctx context.Context, collection, key string) (port.Document, bool, error) {
	ref, err := f.doc(collection, key)
	if err != nil {
		return port.Document{}, false, err
	}

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return port.Document{}, false, nil
	}
	if err != nil {
		return port.Document{}, false, fmt.Errorf("get document: %w", err)
	}
	if !snap.Exists() {
		return port.Document{}, false, nil
	}

	return port.Document{Key: snap.Ref.ID, Fields: snap.Data()}, true, nil
}

func (f *FirestoreStore) SetDocument(ctx context.Context, collection, key string, fields map[string]any) error {
	ref, err := f.doc(collection, key)
	if err != nil {
		return err
	}

	if _, err := ref.Set(ctx, fields); err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

func (f *FirestoreStore) DeleteDocument(ctx context.Context, collection, key string) error {
	ref, err := f.doc(collection, key)
	if err != nil {
		return err
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (f *FirestoreStore) ListDocuments(ctx context.Context, collection string) ([]port.Document, error) {
	col := f.Client.Collection(collection)
	if col == nil {
		return nil, fmt.Errorf("invalid collection %q", collection)
	}

	snaps, err := col.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]port.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, port.Document{Key: snap.Ref.ID, Fields: snap.Data()})
	}
	return docs, nil
}

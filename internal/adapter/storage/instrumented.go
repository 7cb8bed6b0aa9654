package storage

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rl1809/inventory-tracker/internal/port"
)

var storeCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "inventory",
	Subsystem: "store",
	Name:      "call_duration_seconds",
	Help:      "Duration of document store calls grouped by backend, operation and status.",
	Buckets:   prometheus.DefBuckets,
}, []string{"backend", "op", "status"})

// Collectors returns the metrics owned by this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{storeCallDuration}
}

// InstrumentedStore times every call of the wrapped store and logs failures.
type InstrumentedStore struct {
	next    port.DocumentStore
	backend string
	logger  *zap.Logger
}

var _ port.DocumentStore = (*InstrumentedStore)(nil)

func NewInstrumentedStore(next port.DocumentStore, backend string, logger *zap.Logger) *InstrumentedStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedStore{next: next, backend: backend, logger: logger}
}

func (s *InstrumentedStore) observe(op, collection, key string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		s.logger.Warn("store call failed",
			zap.String("backend", s.backend),
			zap.String("op", op),
			zap.String("collection", collection),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	storeCallDuration.WithLabelValues(s.backend, op, status).Observe(time.Since(start).Seconds())
}

func (s *InstrumentedStore) GetDocument(ctx context.Context, collection, key string) (port.Document, bool, error) {
	start := time.Now()
	doc, ok, err := s.next.GetDocument(ctx, collection, key)
	s.observe("get", collection, key, start, err)
	return doc, ok, err
}

func (s *InstrumentedStore) SetDocument(ctx context.Context, collection, key string, fields map[string]any) error {
	start := time.Now()
	err := s.next.SetDocument(ctx, collection, key, fields)
	s.observe("set", collection, key, start, err)
	return err
}

func (s *InstrumentedStore) DeleteDocument(ctx context.Context, collection, key string) error {
	start := time.Now()
	err := s.next.DeleteDocument(ctx, collection, key)
	s.observe("delete", collection, key, start, err)
	return err
}

func (s *InstrumentedStore) ListDocuments(ctx context.Context, collection string) ([]port.Document, error) {
	start := time.Now()
	docs, err := s.next.ListDocuments(ctx, collection)
	s.observe("list", collection, "", start, err)
	return docs, err
}

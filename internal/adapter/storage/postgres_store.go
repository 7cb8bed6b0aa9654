package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rl1809/inventory-tracker/internal/port"
)

type documentRecord struct {
	Collection string `gorm:"primaryKey;size:191"`
	Key        string `gorm:"primaryKey;column:doc_key"`
	Fields     string `gorm:"type:jsonb;not null"`
	UpdatedAt  time.Time
}

func (documentRecord) TableName() string { return "documents" }

type PostgresStore struct {
	db *gorm.DB
}

var _ port.DocumentStore = (*PostgresStore)(nil)

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if err := p.db.WithContext(ctx).AutoMigrate(&documentRecord{}); err != nil {
		return fmt.Errorf("migrate documents table: %w", err)
	}
	return nil
}

func (p *PostgresStore) GetDocument(ctx context.Context, collection, key string) (port.Document, bool, error) {
	var rec documentRecord
	err := p.db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", collection, key).
		Take(&rec).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return port.Document{}, false, nil
	}
	if err != nil {
		return port.Document{}, false, fmt.Errorf("query document: %w", err)
	}

	fields, err := decodeFields([]byte(rec.Fields))
	if err != nil {
		return port.Document{}, false, err
	}
	return port.Document{Key: rec.Key, Fields: fields}, true, nil
}

func (p *PostgresStore) SetDocument(ctx context.Context, collection, key string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	rec := documentRecord{Collection: collection, Key: key, Fields: string(raw)}
	err = p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"fields", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

func (p *PostgresStore) DeleteDocument(ctx context.Context, collection, key string) error {
	err := p.db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", collection, key).
		Delete(&documentRecord{}).Error
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (p *PostgresStore) ListDocuments(ctx context.Context, collection string) ([]port.Document, error) {
	var recs []documentRecord
	err := p.db.WithContext(ctx).
		Where("collection = ?", collection).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	docs := make([]port.Document, 0, len(recs))
	for _, rec := range recs {
		fields, err := decodeFields([]byte(rec.Fields))
		if err != nil {
			return nil, err
		}
		docs = append(docs, port.Document{Key: rec.Key, Fields: fields})
	}
	return docs, nil
}

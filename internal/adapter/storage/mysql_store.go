package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rl1809/inventory-tracker/internal/port"
)

// doc_key is binary so that keys compare byte for byte: "Apple", "apple"
// and "apple " are three documents.
const mysqlSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection VARCHAR(191) NOT NULL,
	doc_key    VARBINARY(512) NOT NULL,
	fields     JSON NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	PRIMARY KEY (collection, doc_key)
) DEFAULT CHARSET = utf8mb4`

type documentRow struct {
	Key    string `db:"doc_key"`
	Fields []byte `db:"fields"`
}

type MySQLStore struct {
	db *sqlx.DB
}

var _ port.DocumentStore = (*MySQLStore)(nil)

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: sqlx.NewDb(db, "mysql")}
}

func (m *MySQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, mysqlSchema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (m *MySQLStore) GetDocument(ctx context.Context, collection, key string) (port.Document, bool, error) {
	var row documentRow
	err := m.db.GetContext(ctx, &row, `
		SELECT doc_key, fields FROM documents
		WHERE collection = ? AND doc_key = ?`, collection, key)

	if errors.Is(err, sql.ErrNoRows) {
		return port.Document{}, false, nil
	}
	if err != nil {
		return port.Document{}, false, fmt.Errorf("query document: %w", err)
	}

	fields, err := decodeFields(row.Fields)
	if err != nil {
		return port.Document{}, false, err
	}
	return port.Document{Key: row.Key, Fields: fields}, true, nil
}

func (m *MySQLStore) SetDocument(ctx context.Context, collection, key string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO documents (collection, doc_key, fields)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE fields = VALUES(fields)`,
		collection, key, raw,
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

func (m *MySQLStore) DeleteDocument(ctx context.Context, collection, key string) error {
	_, err := m.db.ExecContext(ctx, `
		DELETE FROM documents WHERE collection = ? AND doc_key = ?`, collection, key)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (m *MySQLStore) ListDocuments(ctx context.Context, collection string) ([]port.Document, error) {
	var rows []documentRow
	err := m.db.SelectContext(ctx, &rows, `
		SELECT doc_key, fields FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	docs := make([]port.Document, 0, len(rows))
	for _, row := range rows {
		fields, err := decodeFields(row.Fields)
		if err != nil {
			return nil, err
		}
		docs = append(docs, port.Document{Key: row.Key, Fields: fields})
	}
	return docs, nil
}

// decodeFields keeps numbers as json.Number so integers survive unchanged.
func decodeFields(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

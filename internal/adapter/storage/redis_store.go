package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/inventory-tracker/internal/port"
)

const (
	docKeyPrefix   = "doc:"
	indexKeyPrefix = "index:"
)

// Replaces the hash wholesale and keeps the collection index in step.
var setDocumentScript = redis.NewScript(`
local key = KEYS[1]
local index = KEYS[2]

redis.call('DEL', key)
if #ARGV > 1 then
	redis.call('HSET', key, unpack(ARGV, 2))
	redis.call('SADD', index, ARGV[1])
else
	redis.call('SREM', index, ARGV[1])
end

return 1
`)

// RedisStore keeps each document as a hash under doc:<collection>:<key>
// and tracks the members of a collection in the set index:<collection>.
// Field values come back as strings.
type RedisStore struct {
	client *redis.Client
}

var _ port.DocumentStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var collectionEscaper = strings.NewReplacer(`\`, `\\`, ":", `\:`)

// docKey escapes the collection so that its first unescaped ":" is always
// the separator, whatever the collection or key contain.
func docKey(collection, key string) string {
	return docKeyPrefix + collectionEscaper.Replace(collection) + ":" + key
}

func indexKey(collection string) string {
	return indexKeyPrefix + collectionEscaper.Replace(collection)
}

func (r *RedisStore) GetDocument(ctx context.Context, collection, key string) (port.Document, bool, error) {
	values, err := r.client.HGetAll(ctx, docKey(collection, key)).Result()
	if err != nil {
		return port.Document{}, false, fmt.Errorf("hgetall: %w", err)
	}
	if len(values) == 0 {
		return port.Document{}, false, nil
	}

	return port.Document{Key: key, Fields: stringFields(values)}, true, nil
}

func (r *RedisStore) SetDocument(ctx context.Context, collection, key string, fields map[string]any) error {
	args := make([]any, 0, 1+2*len(fields))
	args = append(args, key)
	for name, value := range fields {
		args = append(args, name, value)
	}

	keys := []string{docKey(collection, key), indexKey(collection)}
	if err := setDocumentScript.Run(ctx, r.client, keys, args...).Err(); err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

func (r *RedisStore) DeleteDocument(ctx context.Context, collection, key string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, docKey(collection, key))
		pipe.SRem(ctx, indexKey(collection), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (r *RedisStore) ListDocuments(ctx context.Context, collection string) ([]port.Document, error) {
	keys, err := r.client.SMembers(ctx, indexKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("smembers: %w", err)
	}
	if len(keys) == 0 {
		return []port.Document{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.HGetAll(ctx, docKey(collection, key))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hgetall pipeline: %w", err)
	}

	docs := make([]port.Document, 0, len(keys))
	for i, cmd := range cmds {
		values := cmd.Val()
		// index entry outlived its hash
		if len(values) == 0 {
			continue
		}
		docs = append(docs, port.Document{Key: keys[i], Fields: stringFields(values)})
	}
	return docs, nil
}

func stringFields(values map[string]string) map[string]any {
	fields := make(map[string]any, len(values))
	for k, v := range values {
		fields[k] = v
	}
	return fields
}


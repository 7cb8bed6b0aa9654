package storage

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/firestore"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rl1809/inventory-tracker/internal/config"
	"github.com/rl1809/inventory-tracker/internal/port"
)

// Open connects to the configured backend, prepares its schema where it has
// one and returns the store wrapped with instrumentation. The returned close
// function releases the underlying connection.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.DocumentStore, func() error, error) {
	store, closeFn, err := open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("document store ready",
		zap.String("backend", cfg.Store.Backend),
		zap.String("collection", cfg.Store.Collection),
	)
	return NewInstrumentedStore(store, cfg.Store.Backend, logger), closeFn, nil
}

func open(ctx context.Context, cfg *config.Config) (port.DocumentStore, func() error, error) {
	switch cfg.Store.Backend {
	case "memory":
		return NewMemoryStore(), func() error { return nil }, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewRedisStore(rdb), rdb.Close, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("connect mysql: %w", err)
		}
		store := NewMySQLStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	case "postgres":
		gdb, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("postgres handle: %w", err)
		}
		store := NewPostgresStore(gdb)
		if err := store.EnsureSchema(ctx); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return store, sqlDB.Close, nil

	case "firestore":
		// credentials and FIRESTORE_EMULATOR_HOST are picked up from the environment
		client, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("connect firestore: %w", err)
		}
		return NewFirestoreStore(client), client.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
	Store     StoreConfig     `yaml:"store"`
	Redis     RedisConfig     `yaml:"redis"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Firestore FirestoreConfig `yaml:"firestore"`
}

type ServerConfig struct {
	AppEnv   string `yaml:"app_env"`
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`
}

type LoggerConfig struct {
	Level             string `yaml:"level"`
	Encoding          string `yaml:"encoding"`
	DisableCaller     bool   `yaml:"disable_caller"`
	DisableStacktrace bool   `yaml:"disable_stacktrace"`
}

type StoreConfig struct {
	// memory, redis, mysql, postgres or firestore
	Backend    string        `yaml:"backend"`
	Collection string        `yaml:"collection"`
	Timeout    time.Duration `yaml:"timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type MySQLConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type FirestoreConfig struct {
	ProjectID string `yaml:"project_id"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   "dev",
			HTTPAddr: ":8080",
			GRPCAddr: ":50051",
		},
		Logger: LoggerConfig{
			Level:             "info",
			Encoding:          "console",
			DisableStacktrace: true,
		},
		Store: StoreConfig{
			Backend:    "memory",
			Collection: "inventory",
			Timeout:    5 * time.Second,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 10,
		},
		MySQL: MySQLConfig{
			DSN:             "root:root@tcp(localhost:3306)/inventory?parseTime=true",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Postgres: PostgresConfig{
			DSN: "host=localhost user=postgres password=postgres dbname=inventory port=5432 sslmode=disable",
		},
	}
}

// Load starts from Default, applies the YAML file named by INVENTORY_CONFIG
// if set, then lets environment variables override individual values.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("INVENTORY_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.AppEnv = getEnv("APP_ENV", c.Server.AppEnv)
	c.Server.HTTPAddr = getEnv("HTTP_ADDR", c.Server.HTTPAddr)
	c.Server.GRPCAddr = getEnv("GRPC_ADDR", c.Server.GRPCAddr)

	c.Logger.Level = getEnv("LOGGER_LEVEL", c.Logger.Level)
	c.Logger.Encoding = getEnv("LOGGER_ENCODING", c.Logger.Encoding)
	c.Logger.DisableCaller = getEnvBool("LOGGER_DISABLE_CALLER", c.Logger.DisableCaller)
	c.Logger.DisableStacktrace = getEnvBool("LOGGER_DISABLE_STACKTRACE", c.Logger.DisableStacktrace)

	c.Store.Backend = strings.ToLower(getEnv("STORE_BACKEND", c.Store.Backend))
	c.Store.Collection = getEnv("STORE_COLLECTION", c.Store.Collection)
	c.Store.Timeout = getEnvDuration("STORE_TIMEOUT", c.Store.Timeout)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Redis.PoolSize = getEnvInt("REDIS_POOL_SIZE", c.Redis.PoolSize)

	c.MySQL.DSN = getEnv("MYSQL_DSN", c.MySQL.DSN)
	c.MySQL.MaxOpenConns = getEnvInt("MYSQL_MAX_OPEN_CONNS", c.MySQL.MaxOpenConns)
	c.MySQL.MaxIdleConns = getEnvInt("MYSQL_MAX_IDLE_CONNS", c.MySQL.MaxIdleConns)
	c.MySQL.ConnMaxLifetime = getEnvDuration("MYSQL_CONN_MAX_LIFETIME", c.MySQL.ConnMaxLifetime)

	c.Postgres.DSN = getEnv("POSTGRES_DSN", c.Postgres.DSN)

	c.Firestore.ProjectID = getEnv("FIRESTORE_PROJECT_ID", c.Firestore.ProjectID)
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "redis", "mysql", "postgres":
	case "firestore":
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Store.Collection == "" {
		return fmt.Errorf("store collection is required")
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store timeout must be positive, got %s", c.Store.Timeout)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

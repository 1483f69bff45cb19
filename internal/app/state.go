package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/repo/postgres"
	"github.com/Gunvolt24/storefront/internal/storage/memory"
	"github.com/Gunvolt24/storefront/internal/storage/redis"
	"github.com/Gunvolt24/storefront/internal/storage/sqlite"
)

// Бэкенды хранилища состояния.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// NewKVStore — бэкенд хранилища состояния по конфигурации и функция его закрытия.
func NewKVStore(ctx context.Context, conf *config.Config, log ports.Logger) (ports.KVStore, func(), error) {
	cfg := &conf.State
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch backend {
	case BackendMemory:
		return memory.NewKVStore(), func() {}, nil

	case "", BackendSQLite:
		kv, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Infof(ctx, "state backend sqlite path=%s", cfg.SQLitePath)
		return kv, func() {
			if err := kv.Close(); err != nil {
				log.Warnf(ctx, "close sqlite: %v", err)
			}
		}, nil

	case BackendPostgres:
		if err := postgres.Migrate(cfg.PostgresDSN, cfg.MigrationsDir); err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN, cfg.MaxConns)
		if err != nil {
			return nil, nil, err
		}
		log.Infof(ctx, "state backend postgres profile=%s", cfg.Profile)
		return postgres.NewStateRepository(pool, cfg.Profile), pool.Close, nil

	case BackendRedis:
		client, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisDB, conf.Tracing.Enabled)
		if err != nil {
			return nil, nil, err
		}
		log.Infof(ctx, "state backend redis addr=%s db=%d", cfg.RedisAddr, cfg.RedisDB)
		return redis.NewKVStore(client, cfg.RedisPrefix), func() {
			if err := client.Close(); err != nil {
				log.Warnf(ctx, "close redis: %v", err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown state backend %q (want sqlite|memory|postgres|redis)", cfg.Backend)
	}
}

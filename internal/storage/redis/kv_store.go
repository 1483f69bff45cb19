package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisotel "github.com/redis/go-redis/extra/redisotel/v9"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Gunvolt24/storefront/internal/ports"
)

// Проверка, что KVStore удовлетворяет интерфейсу KVStore.
var _ ports.KVStore = (*KVStore)(nil)

// KVStore — состояние профиля в Redis: строковые ключи под общим префиксом.
type KVStore struct {
	rdb    goredis.UniversalClient
	prefix string
}

// NewClient — клиент Redis с проверкой соединения (fail-fast);
// tracing включает спаны команд через глобальный TracerProvider.
func NewClient(ctx context.Context, addr string, db int, tracing bool) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, DB: db})
	if tracing {
		if err := redisotel.InstrumentTracing(rdb); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis tracing: %w", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// NewKVStore — конструктор; prefix отделяет профили друг от друга (например, "storefront:").
func NewKVStore(rdb goredis.UniversalClient, prefix string) *KVStore {
	return &KVStore{rdb: rdb, prefix: prefix}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

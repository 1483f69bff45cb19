package ports

import "context"

// KVStore — долговременное key/value-хранилище состояния (аналог localStorage).
// Get возвращает (nil, false, nil), если ключа нет.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

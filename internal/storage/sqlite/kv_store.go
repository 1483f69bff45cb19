// Package sqlite — файловое key/value-хранилище состояния на SQLite (чистый Go, без cgo).
// Ближайший аналог localStorage браузера: один файл на профиль.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/ports"

	_ "modernc.org/sqlite" // database/sql driver name = "sqlite"
)

// Проверка, что KVStore удовлетворяет интерфейсу KVStore.
var _ ports.KVStore = (*KVStore)(nil)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// KVStore — реализация KVStore поверх таблицы kv.
type KVStore struct {
	db *sql.DB
}

// Open — открывает (или создаёт) файл базы и гарантирует схему.
// path ":memory:" даёт базу в памяти процесса.
func Open(ctx context.Context, path string) (*KVStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// одна вкладка — один писатель
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &KVStore{db: db}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %q: %w", key, err)
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close — закрывает базу.
func (s *KVStore) Close() error { return s.db.Close() }

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что StateRepository удовлетворяет интерфейсу KVStore.
var _ ports.KVStore = (*StateRepository)(nil)

// StateRepository — key/value-состояние профиля в таблице storefront_state (pgxpool).
// Один профиль — одна строка profile; ключи внутри профиля — cart/user.
type StateRepository struct {
	pool    *pgxpool.Pool
	profile string
}

// NewStateRepository — конструктор StateRepository.
func NewStateRepository(pool *pgxpool.Pool, profile string) *StateRepository {
	if profile == "" {
		profile = "default"
	}
	return &StateRepository{pool: pool, profile: profile}
}

// Get — значение по ключу; (nil, false, nil), если записи нет.
func (r *StateRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := r.pool.QueryRow(ctx, `
		SELECT value FROM storefront_state
		WHERE profile = $1 AND key = $2
	`, r.profile, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select state %q: %w", key, err)
	}
	return v, true, nil
}

// Set — upsert значения (last-write-wins).
func (r *StateRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO storefront_state (profile, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (profile, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, r.profile, key, value); err != nil {
		return fmt.Errorf("upsert state %q: %w", key, err)
	}
	return nil
}

// Delete — удалить ключ; отсутствие записи не ошибка.
func (r *StateRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `
		DELETE FROM storefront_state WHERE profile = $1 AND key = $2
	`, r.profile, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

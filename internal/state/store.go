// Package state — типизированное хранилище корзины и пользователя поверх KVStore.
// Чтение никогда не валит вызывающего: любые проблемы превращаются в значение по умолчанию.
package state

import (
	"context"
	"encoding/json"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// Ключи по умолчанию.
const (
	DefaultCartKey = "wase_cart"
	DefaultUserKey = "wase_user"
)

// Проверка, что Store удовлетворяет интерфейсу StateStore.
var _ ports.StateStore = (*Store)(nil)

// Store — хранилище состояния страницы.
type Store struct {
	kv      ports.KVStore
	log     ports.Logger
	cartKey string
	userKey string
}

// NewStore — конструктор; пустые ключи заменяются значениями по умолчанию.
func NewStore(kv ports.KVStore, log ports.Logger, cartKey, userKey string) *Store {
	if cartKey == "" {
		cartKey = DefaultCartKey
	}
	if userKey == "" {
		userKey = DefaultUserKey
	}
	return &Store{kv: kv, log: log, cartKey: cartKey, userKey: userKey}
}

// LoadCart — прочитать корзину; отсутствие/ошибка/битый JSON → пустая корзина.
func (s *Store) LoadCart(ctx context.Context) domain.Cart {
	var cart domain.Cart
	if !load(ctx, s, s.cartKey, &cart) {
		return domain.Cart{}
	}
	cart.Normalize()
	return cart
}

// SaveCart — синхронно записать корзину.
func (s *Store) SaveCart(ctx context.Context, cart domain.Cart) error {
	return save(ctx, s, s.cartKey, cart)
}

// LoadUser — прочитать пользователя; отсутствие/ошибка/битый JSON/null → nil.
func (s *Store) LoadUser(ctx context.Context) *domain.User {
	var user *domain.User
	if !load(ctx, s, s.userKey, &user) {
		return nil
	}
	return user
}

// SaveUser — записать пользователя; nil равносилен ClearUser.
func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return s.ClearUser(ctx)
	}
	return save(ctx, s, s.userKey, user)
}

// ClearUser — удалить пользователя из хранилища (logout).
func (s *Store) ClearUser(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.userKey); err != nil {
		metrics.StateOps.WithLabelValues("delete", "error").Inc()
		s.log.Errorf(ctx, "state delete failed key=%s err=%v", s.userKey, err)
		return err
	}
	metrics.StateOps.WithLabelValues("delete", "ok").Inc()
	return nil
}

// load — общий путь чтения; true, только если значение есть и разобралось.
func load[T any](ctx context.Context, s *Store, key string, dst *T) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	switch {
	case err != nil:
		metrics.StateOps.WithLabelValues("load", "error").Inc()
		s.log.Warnf(ctx, "state read failed key=%s err=%v (using default)", key, err)
		return false
	case !ok:
		metrics.StateOps.WithLabelValues("load", "miss").Inc()
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.StateOps.WithLabelValues("load", "corrupt").Inc()
		s.log.Warnf(ctx, "state corrupt key=%s err=%v (using default)", key, err)
		return false
	}
	metrics.StateOps.WithLabelValues("load", "ok").Inc()
	return true
}

func save(ctx context.Context, s *Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		metrics.StateOps.WithLabelValues("save", "error").Inc()
		s.log.Errorf(ctx, "state write failed key=%s err=%v", key, err)
		return err
	}
	metrics.StateOps.WithLabelValues("save", "ok").Inc()
	return nil
}

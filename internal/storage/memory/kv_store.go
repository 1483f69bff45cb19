package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// Проверка, что KVStore удовлетворяет интерфейсу KVStore.
var _ ports.KVStore = (*KVStore)(nil)

// KVStore — потокобезопасное in-memory хранилище; значения копируются на входе и выходе.
type KVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKVStore — конструктор KVStore.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(v), true, nil
}

func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = cloneBytes(value)
	metrics.StateKeys.WithLabelValues("memory").Set(float64(len(s.data)))
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	metrics.StateKeys.WithLabelValues("memory").Set(float64(len(s.data)))
	return nil
}

// Len — число ключей (для тестов и отладки).
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// cloneBytes — копия значения, чтобы внешние изменения не отражались на данных внутри.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

package memory

import (
	"context"
	"sync"

	"github.com/vytor/wortflash/internal/repository"
)

// KeyValueRepository keeps values in a map. Used in tests and when the
// sqlite file cannot be opened.
type KeyValueRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var _ repository.KeyValueRepository = (*KeyValueRepository)(nil)

// NewKeyValueRepository returns an empty in-memory store.
func NewKeyValueRepository() *KeyValueRepository {
	return &KeyValueRepository{values: map[string][]byte{}}
}

func (r *KeyValueRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (r *KeyValueRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = append([]byte(nil), value...)
	return nil
}

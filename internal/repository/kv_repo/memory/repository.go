package memory

import (
	"context"
	"sync"

	"mini_casino/internal/repository"
)

type repo struct {
	mtx    sync.RWMutex
	values map[string]string
}

// NewKVRepository Хранилище в памяти, живет столько же, сколько процесс
func NewKVRepository() repository.KVRepository {
	return &repo{values: make(map[string]string)}
}

func (r *repo) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (r *repo) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.values[key] = value
	return nil
}

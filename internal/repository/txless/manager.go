// Package txless provides a trm.Manager for storages without transactions
// (memory, sqlite single connection, redis single key).
package txless

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type manager struct{}

// NewManager Менеджер, который просто вызывает fn
func NewManager() trm.Manager {
	return manager{}
}

func (manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (manager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

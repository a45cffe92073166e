package repository

import (
	"context"

	"mini_casino/internal/model"
)

// KVRepository Клиентское key-value хранилище.
// Get возвращает ErrNotFound, если ключа нет
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// StatsRepository Статистика розыгрышей в памяти процесса
type StatsRepository interface {
	UpdateState(game model.Game, bet, payout int)
	GameStats(game model.Game) model.GameStats
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"mini_casino/internal/config"
	"mini_casino/internal/metrics"
	"mini_casino/internal/model"
	"mini_casino/internal/repository"
	"mini_casino/internal/service"
)

type serv struct {
	mtx   sync.Mutex
	coins int

	key       string
	starting  int
	repo      repository.KVRepository
	txManager trm.Manager
	log       *zap.Logger
}

// NewLedgerService Баланс игрока в памяти с копией в хранилище
func NewLedgerService(
	cfg config.LedgerConfig,
	repo repository.KVRepository,
	txManager trm.Manager,
	log *zap.Logger,
) service.LedgerService {
	return &serv{
		coins:     cfg.StartingCoins(),
		key:       cfg.Key(),
		starting:  cfg.StartingCoins(),
		repo:      repo,
		txManager: txManager,
		log:       log.Named("ledger"),
	}
}

// Load Читает баланс из хранилища.
// Нет значения или оно не число - стартовый баланс
func (s *serv) Load(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	raw, err := s.repo.Get(ctx, s.key)
	switch {
	case err == nil:
		coins, perr := strconv.Atoi(raw)
		if perr != nil {
			s.log.Warn("stored balance is not a number, using default",
				zap.String("value", raw), zap.Int("coins", s.starting))
			s.coins = s.starting
		} else {
			s.coins = coins
		}
	case errors.Is(err, repository.ErrNotFound):
		s.coins = s.starting
	default:
		return fmt.Errorf("load balance: %w", err)
	}

	metrics.SetCoins(s.coins)
	s.log.Info("balance loaded", zap.Int("coins", s.coins))
	return nil
}

func (s *serv) Coins() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.coins
}

// UpdateCoins Прибавляет delta и сохраняет.
// Знак результата не проверяется, это делает Charge
func (s *serv) UpdateCoins(ctx context.Context, delta int) (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.update(ctx, delta)
}

// Charge Списывает cost, если хватает монет
func (s *serv) Charge(ctx context.Context, cost int) (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.coins < cost {
		return s.coins, model.ErrInsufficientCoins
	}
	return s.update(ctx, -cost)
}

func (s *serv) update(ctx context.Context, delta int) (int, error) {
	next := s.coins + delta

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.repo.Set(txCtx, s.key, strconv.Itoa(next))
	})
	if err != nil {
		return s.coins, fmt.Errorf("save balance: %w", err)
	}

	s.coins = next
	metrics.SetCoins(next)
	s.log.Debug("balance updated", zap.Int("delta", delta), zap.Int("coins", next))
	return next, nil
}

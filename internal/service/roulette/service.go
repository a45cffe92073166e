package roulette

import (
	"sync/atomic"

	"go.uber.org/zap"

	"mini_casino/internal/config"
	"mini_casino/internal/repository"
	"mini_casino/internal/scheduler"
	"mini_casino/internal/service"
	"mini_casino/pkg/random"
)

type serv struct {
	cfg     config.RouletteConfig
	ledger  service.LedgerService
	display service.DisplayService
	stats   repository.StatsRepository
	sched   *scheduler.Scheduler
	rng     random.Source
	log     *zap.Logger

	// Флаг незавершенного розыгрыша. Вторая ставка до раскрытия отклоняется
	busy atomic.Bool
}

type Deps struct {
	Cfg       config.RouletteConfig
	Ledger    service.LedgerService
	Display   service.DisplayService
	Stats     repository.StatsRepository
	Scheduler *scheduler.Scheduler
	Rand      random.Source
	Log       *zap.Logger
}

// NewRouletteService Рулетка: ставка, пауза, розыгрыш
func NewRouletteService(deps Deps) service.RouletteService {
	return &serv{
		cfg:     deps.Cfg,
		ledger:  deps.Ledger,
		display: deps.Display,
		stats:   deps.Stats,
		sched:   deps.Scheduler,
		rng:     deps.Rand,
		log:     deps.Log.Named("roulette"),
	}
}

func (s *serv) InProgress() bool {
	return s.busy.Load()
}

package slots

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
	cfg     config.SlotsConfig
	ledger  service.LedgerService
	display service.DisplayService
	scene   service.SceneService
	stats   repository.StatsRepository
	sched   *scheduler.Scheduler
	rng     random.Source
	log     *zap.Logger

	busy atomic.Bool
}

type Deps struct {
	Cfg       config.SlotsConfig
	Ledger    service.LedgerService
	Display   service.DisplayService
	Scene     service.SceneService
	Stats     repository.StatsRepository
	Scheduler *scheduler.Scheduler
	Rand      random.Source
	Log       *zap.Logger
}

// NewSlotsService Слоты из трех вращающихся кубов
func NewSlotsService(deps Deps) service.SlotsService {
	return &serv{
		cfg:     deps.Cfg,
		ledger:  deps.Ledger,
		display: deps.Display,
		scene:   deps.Scene,
		stats:   deps.Stats,
		sched:   deps.Scheduler,
		rng:     deps.Rand,
		log:     deps.Log.Named("slots"),
	}
}

func (s *serv) InProgress() bool {
	return s.busy.Load()
}

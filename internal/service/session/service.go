package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"mini_casino/internal/model"
	"mini_casino/internal/scheduler"
	"mini_casino/internal/service"
	"mini_casino/internal/service/scene"
)

// Session Одна игровая сессия: баланс, две игры, сцена и задачи.
// Все отложенные задачи принадлежат сессии и отменяются в Close
type serv struct {
	ledger   service.LedgerService
	roulette service.RouletteService
	slots    service.SlotsService
	display  service.DisplayService
	scene    service.SceneService
	sched    *scheduler.Scheduler
	fps      int
	log      *zap.Logger

	closeOnce sync.Once
}

type Deps struct {
	Ledger    service.LedgerService
	Roulette  service.RouletteService
	Slots     service.SlotsService
	Display   service.DisplayService
	Scene     service.SceneService
	Scheduler *scheduler.Scheduler
	FPS       int
	Log       *zap.Logger
}

func NewSessionService(deps Deps) service.SessionService {
	return &serv{
		ledger:   deps.Ledger,
		roulette: deps.Roulette,
		slots:    deps.Slots,
		display:  deps.Display,
		scene:    deps.Scene,
		sched:    deps.Scheduler,
		fps:      deps.FPS,
		log:      deps.Log.Named("session"),
	}
}

// Start Загружает баланс и запускает цикл отрисовки
func (s *serv) Start(ctx context.Context) error {
	if err := s.ledger.Load(ctx); err != nil {
		return err
	}
	if _, err := scene.Start(s.scene, s.sched, s.fps, s.log); err != nil {
		return err
	}
	s.log.Info("session started", zap.Int("coins", s.ledger.Coins()), zap.Int("fps", s.fps))
	return nil
}

func (s *serv) PlayRoulette(ctx context.Context) (*model.PlayTicket, error) {
	ticket, err := s.roulette.Play(ctx)
	if err != nil {
		return nil, fmt.Errorf("roulette: %w", err)
	}
	return ticket, nil
}

func (s *serv) PlaySlots(ctx context.Context) (*model.PlayTicket, error) {
	ticket, err := s.slots.Play(ctx)
	if err != nil {
		return nil, fmt.Errorf("slots: %w", err)
	}
	return ticket, nil
}

func (s *serv) State() model.DisplayState {
	st := s.display.State()
	st.Coins = s.ledger.Coins()
	st.RouletteInProgress = s.roulette.InProgress()
	st.SlotsInProgress = s.slots.InProgress()
	return st
}

// Close Отменяет незавершенные розыгрыши и останавливает отрисовку.
// Списанные ставки не возвращаются
func (s *serv) Close() {
	s.closeOnce.Do(func() {
		s.sched.Close()
		s.log.Info("session closed", zap.Int("coins", s.ledger.Coins()))
	})
}

// Package scheduler runs the session's deferred and repeating tasks on an ants
// pool. Every task can be cancelled on its own; Close cancels all of them.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("scheduler closed")

type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	pool   *ants.Pool
	wg     sync.WaitGroup
	log    *zap.Logger

	mu     sync.Mutex
	closed bool
}

// Task Запланированная задача
type Task struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel Отменяет задачу. Повторный вызов безопасен
func (t *Task) Cancel() {
	t.cancel()
}

// Done Закрывается, когда задача отработала или была отменена
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// New Пул ограничивает число одновременно живущих задач
func New(size int, log *zap.Logger) (*Scheduler, error) {
	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		pool:   pool,
		log:    log,
	}, nil
}

// After Однократный вызов run через d.
// Если задачу отменили раньше, вызывается abort (может быть nil)
func (s *Scheduler) After(d time.Duration, run func(ctx context.Context), abort func()) (*Task, error) {
	return s.submit(func(t *Task) {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-t.ctx.Done():
			if abort != nil {
				abort()
			}
		case <-timer.C:
			run(t.ctx)
		}
	})
}

// Every Вызывает tick каждые d, пока tick возвращает true.
// abort вызывается, если задачу отменили до самостоятельной остановки
func (s *Scheduler) Every(d time.Duration, tick func(ctx context.Context) bool, abort func()) (*Task, error) {
	if d <= 0 {
		return nil, fmt.Errorf("non-positive interval %s", d)
	}
	return s.submit(func(t *Task) {
		ticker := time.NewTicker(d)
		defer ticker.Stop()

		for {
			select {
			case <-t.ctx.Done():
				if abort != nil {
					abort()
				}
				return
			case <-ticker.C:
				if !tick(t.ctx) {
					return
				}
			}
		}
	})
}

func (s *Scheduler) submit(body func(t *Task)) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	ctx, cancel := context.WithCancel(s.ctx)
	t := &Task{ctx: ctx, cancel: cancel, done: make(chan struct{})}

	s.wg.Add(1)
	err := s.pool.Submit(func() {
		defer s.wg.Done()
		defer close(t.done)
		defer cancel()
		body(t)
	})
	if err != nil {
		s.wg.Done()
		cancel()
		return nil, fmt.Errorf("submit task: %w", err)
	}
	return t, nil
}

// Close Отменяет все задачи и дожидается их завершения
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	s.pool.Release()
	s.log.Debug("scheduler closed")
}

package roulette

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mini_casino/internal/metrics"
	"mini_casino/internal/model"
	"mini_casino/internal/scheduler"
)

const (
	MessageSpinning = "Spinning..."
	MessageNoCoins  = "Not enough coins to play Backshot Roulette!"
	MessageLost     = "You lost!"
)

func WinMessage(payout int) string {
	return fmt.Sprintf("You won %d coins!", payout)
}

// Resolve Выигрыш, если draw < winProbability
func Resolve(draw, winProbability float64) model.Outcome {
	if draw < winProbability {
		return model.OutcomeWin
	}
	return model.OutcomeLose
}

// Play Списывает ставку сразу, исход объявляется после паузы
func (s *serv) Play(ctx context.Context) (*model.PlayTicket, error) {
	if !s.busy.CompareAndSwap(false, true) {
		metrics.Refused(model.GameRoulette, metrics.ReasonInProgress)
		return nil, model.ErrPlayInProgress
	}
	release := func() { s.busy.Store(false) }

	cost := s.cfg.Cost()
	balance, err := s.ledger.Charge(ctx, cost)
	if err != nil {
		release()
		if errors.Is(err, model.ErrInsufficientCoins) {
			s.display.Alert(MessageNoCoins)
			metrics.Refused(model.GameRoulette, metrics.ReasonInsufficient)
			return nil, err
		}
		return nil, fmt.Errorf("charge roulette: %w", err)
	}
	metrics.Staked(model.GameRoulette, cost)

	s.display.PlayCue(model.SoundRouletteSpin)
	s.display.ShowMessage(MessageSpinning)

	id := uuid.NewString()
	results := make(chan model.PlayResult, 1)

	_, err = s.sched.After(s.cfg.RevealDelay(), func(taskCtx context.Context) {
		res := s.reveal(taskCtx, id)
		release()
		results <- res
		close(results)
	}, func() {
		s.log.Info("reveal cancelled, stake kept", zap.String("play_id", id))
		release()
		close(results)
	})
	if err != nil {
		// раскрыть нечего, возвращаем ставку
		if _, rerr := s.ledger.UpdateCoins(ctx, cost); rerr != nil {
			s.log.Error("refund failed", zap.Error(rerr))
		}
		release()
		if errors.Is(err, scheduler.ErrClosed) {
			return nil, model.ErrSessionClosed
		}
		return nil, fmt.Errorf("schedule reveal: %w", err)
	}

	s.log.Debug("roulette accepted", zap.String("play_id", id), zap.Int("balance", balance))
	return &model.PlayTicket{
		ID:      id,
		Game:    model.GameRoulette,
		Cost:    cost,
		Balance: balance,
		Result:  results,
	}, nil
}

func (s *serv) reveal(ctx context.Context, id string) model.PlayResult {
	draw := s.rng.Float64()
	outcome := Resolve(draw, s.cfg.WinProbability())

	payout := 0
	message := MessageLost
	sound := model.SoundLose
	if outcome == model.OutcomeWin {
		payout = s.cfg.Payout()
		message = WinMessage(payout)
		sound = model.SoundWin
	}

	balance := s.ledger.Coins()
	if payout > 0 {
		// исход объявлен, закрытие сессии выплату не отменяет
		b, err := s.ledger.UpdateCoins(context.WithoutCancel(ctx), payout)
		if err != nil {
			s.log.Error("credit payout failed", zap.String("play_id", id), zap.Error(err))
		} else {
			balance = b
		}
	}

	s.display.ShowMessage(message)
	s.display.PlayCue(sound)
	s.stats.UpdateState(model.GameRoulette, s.cfg.Cost(), payout)
	metrics.Resolved(model.GameRoulette, outcome, payout)

	s.log.Info("roulette resolved",
		zap.String("play_id", id),
		zap.Float64("draw", draw),
		zap.String("outcome", string(outcome)),
		zap.Int("balance", balance))

	return model.PlayResult{
		ID:      id,
		Game:    model.GameRoulette,
		Outcome: outcome,
		Payout:  payout,
		Balance: balance,
		Message: message,
		Sound:   sound,
		Draw:    draw,
	}
}

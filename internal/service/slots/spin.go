package slots

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
	MessageNoCoins  = "Not enough coins to play Quandale Slots!"
	MessageNoMatch  = "Slots: Better luck next time!"
)

func JackpotMessage(payout int) string {
	return fmt.Sprintf("Slots: You hit the jackpot! %d coins!", payout)
}

// Play Списывает ставку, выбирает углы и крутит кубы.
// Исход объявляется только в конце анимации
func (s *serv) Play(ctx context.Context) (*model.PlayTicket, error) {
	if !s.busy.CompareAndSwap(false, true) {
		metrics.Refused(model.GameSlots, metrics.ReasonInProgress)
		return nil, model.ErrPlayInProgress
	}
	release := func() { s.busy.Store(false) }

	cost := s.cfg.Cost()
	balance, err := s.ledger.Charge(ctx, cost)
	if err != nil {
		release()
		if errors.Is(err, model.ErrInsufficientCoins) {
			s.display.Alert(MessageNoCoins)
			metrics.Refused(model.GameSlots, metrics.ReasonInsufficient)
			return nil, err
		}
		return nil, fmt.Errorf("charge slots: %w", err)
	}
	metrics.Staked(model.GameSlots, cost)

	targets := Draw(s.rng, s.cfg.Symbols())
	starts := make([]float64, len(targets))
	for i := range starts {
		starts[i] = s.scene.Rotation(i)
	}

	s.display.PlayCue(model.SoundSlotsSpin)
	s.display.ShowMessage(MessageSpinning)

	id := uuid.NewString()
	results := make(chan model.PlayResult, 1)

	window, interval := s.cfg.AnimationWindow(), s.cfg.FrameInterval()
	frame := 0

	_, err = s.sched.Every(interval, func(taskCtx context.Context) bool {
		frame++
		p := Progress(frame, window, interval)
		for i, target := range targets {
			s.scene.SetRotation(i, ReelAngle(starts[i], float64(target), p))
		}
		if p < 1 {
			return true
		}

		res := s.resolve(taskCtx, id, targets)
		release()
		results <- res
		close(results)
		return false
	}, func() {
		s.log.Info("spin cancelled, stake kept", zap.String("play_id", id), zap.Int("frame", frame))
		release()
		close(results)
	})
	if err != nil {
		if _, rerr := s.ledger.UpdateCoins(ctx, cost); rerr != nil {
			s.log.Error("refund failed", zap.Error(rerr))
		}
		release()
		if errors.Is(err, scheduler.ErrClosed) {
			return nil, model.ErrSessionClosed
		}
		return nil, fmt.Errorf("schedule spin: %w", err)
	}

	s.log.Debug("slots accepted",
		zap.String("play_id", id),
		zap.Int("balance", balance),
		zap.Int("frames", FrameCount(window, interval)))

	return &model.PlayTicket{
		ID:      id,
		Game:    model.GameSlots,
		Cost:    cost,
		Balance: balance,
		Result:  results,
	}, nil
}

func (s *serv) resolve(ctx context.Context, id string, reels []model.Angle) model.PlayResult {
	outcome := model.OutcomeLose
	payout := 0
	message := MessageNoMatch
	sound := model.SoundLose
	if IsJackpot(reels) {
		outcome = model.OutcomeWin
		payout = s.cfg.Payout()
		message = JackpotMessage(payout)
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
	s.stats.UpdateState(model.GameSlots, s.cfg.Cost(), payout)
	metrics.Resolved(model.GameSlots, outcome, payout)

	s.log.Info("slots resolved",
		zap.String("play_id", id),
		zap.Any("reels", reels),
		zap.String("outcome", string(outcome)),
		zap.Int("balance", balance))

	return model.PlayResult{
		ID:      id,
		Game:    model.GameSlots,
		Outcome: outcome,
		Payout:  payout,
		Balance: balance,
		Message: message,
		Sound:   sound,
		Reels:   reels,
	}
}

package roulette

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mini_casino/internal/config/env"
	"mini_casino/internal/model"
	"mini_casino/internal/repository"
	"mini_casino/internal/repository/kv_repo/memory"
	"mini_casino/internal/repository/stats_repo"
	"mini_casino/internal/repository/txless"
	"mini_casino/internal/scheduler"
	"mini_casino/internal/service"
	"mini_casino/internal/service/display"
	"mini_casino/internal/service/ledger"
	"mini_casino/pkg/random"
)

type rouletteCfg struct {
	delay time.Duration
}

func (rouletteCfg) Cost() int                    { return 10 }
func (rouletteCfg) Payout() int                  { return 20 }
func (rouletteCfg) WinProbability() float64      { return 0.17 }
func (c rouletteCfg) RevealDelay() time.Duration { return c.delay }

type countingRepo struct {
	repository.KVRepository
	writes int

	// Запись holdValue ждет release (или отмены ctx)
	holdValue string
	held      chan struct{}
	release   chan struct{}
}

func (r *countingRepo) Set(ctx context.Context, key, value string) error {
	r.writes++
	if r.held != nil && value == r.holdValue {
		close(r.held)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.release:
		}
	}
	return r.KVRepository.Set(ctx, key, value)
}

type fixture struct {
	roulette service.RouletteService
	ledger   service.LedgerService
	display  service.DisplayService
	stats    *stats_repo.StateRepo
	repo     *countingRepo
	sched    *scheduler.Scheduler
}

func newFixture(t *testing.T, start int, delay time.Duration, rng random.Source) *fixture {
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	repo := &countingRepo{KVRepository: memory.NewKVRepository()}
	require.NoError(t, repo.KVRepository.Set(ctx, "coins", strconv.Itoa(start)))

	l := ledger.NewLedgerService(env.DefaultGameConfig().Ledger(), repo, txless.NewManager(), log)
	require.NoError(t, l.Load(ctx))

	sched, err := scheduler.New(4, log)
	require.NoError(t, err)
	t.Cleanup(sched.Close)

	d := display.NewDisplayService(log)
	st := stats_repo.NewStatsRepository(0)

	return &fixture{
		roulette: NewRouletteService(Deps{
			Cfg:       rouletteCfg{delay: delay},
			Ledger:    l,
			Display:   d,
			Stats:     st,
			Scheduler: sched,
			Rand:      rng,
			Log:       log,
		}),
		ledger:  l,
		display: d,
		stats:   st,
		repo:    repo,
		sched:   sched,
	}
}

func waitResult(t *testing.T, ticket *model.PlayTicket) (model.PlayResult, bool) {
	select {
	case res, ok := <-ticket.Result:
		return res, ok
	case <-time.After(2 * time.Second):
		t.Fatal("no result")
		return model.PlayResult{}, false
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		draw float64
		want model.Outcome
	}{
		{draw: 0, want: model.OutcomeWin},
		{draw: 0.10, want: model.OutcomeWin},
		{draw: 0.1699, want: model.OutcomeWin},
		{draw: 0.17, want: model.OutcomeLose},
		{draw: 0.50, want: model.OutcomeLose},
		{draw: 0.999, want: model.OutcomeLose},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Resolve(test.draw, 0.17), "draw=%v", test.draw)
	}
}

func TestPlayScenarios(t *testing.T) {
	tests := []struct {
		msg         string
		draw        float64
		wantBalance int
		wantMessage string
		wantOutcome model.Outcome
		wantSound   model.Sound
	}{
		{msg: "win", draw: 0.10, wantBalance: 210, wantMessage: "You won 20 coins!", wantOutcome: model.OutcomeWin, wantSound: model.SoundWin},
		{msg: "lose", draw: 0.50, wantBalance: 190, wantMessage: "You lost!", wantOutcome: model.OutcomeLose, wantSound: model.SoundLose},
	}

	for _, test := range tests {
		f := newFixture(t, 200, 100*time.Millisecond, random.NewSequence([]float64{test.draw}, nil))

		ticket, err := f.roulette.Play(context.Background())
		require.NoError(t, err, test.msg)

		// ставка списана сразу, до исхода
		assert.Equal(t, 190, ticket.Balance, test.msg)
		assert.Equal(t, 190, f.ledger.Coins(), test.msg)
		assert.Equal(t, MessageSpinning, f.display.State().Message, test.msg)
		assert.Equal(t, model.SoundRouletteSpin, f.display.State().LastCue, test.msg)
		assert.True(t, f.roulette.InProgress(), test.msg)

		res, ok := waitResult(t, ticket)
		require.True(t, ok, test.msg)
		assert.Equal(t, ticket.ID, res.ID, test.msg)
		assert.Equal(t, test.wantOutcome, res.Outcome, test.msg)
		assert.Equal(t, test.wantBalance, res.Balance, test.msg)
		assert.Equal(t, test.wantMessage, res.Message, test.msg)
		assert.Equal(t, test.wantBalance, f.ledger.Coins(), test.msg)
		assert.Equal(t, test.wantMessage, f.display.State().Message, test.msg)
		assert.Equal(t, test.wantSound, f.display.State().LastCue, test.msg)
		assert.False(t, f.roulette.InProgress(), test.msg)

		stored, err := f.repo.Get(context.Background(), "coins")
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(test.wantBalance), stored, test.msg)

		st := f.stats.GameStats(model.GameRoulette)
		assert.Equal(t, 1, st.TotalPlays, test.msg)
		assert.Equal(t, 10, st.TotalBet, test.msg)
	}
}

func TestPlayInsufficientCoins(t *testing.T) {
	for _, start := range []int{0, 1, 9} {
		f := newFixture(t, start, 0, random.NewSequence([]float64{0.1}, nil))

		ticket, err := f.roulette.Play(context.Background())
		assert.ErrorIs(t, err, model.ErrInsufficientCoins, "start=%d", start)
		assert.Nil(t, ticket)
		assert.Equal(t, start, f.ledger.Coins())
		assert.Zero(t, f.repo.writes, "start=%d", start)
		assert.Equal(t, MessageNoCoins, f.display.State().LastAlert)
		assert.False(t, f.roulette.InProgress())
	}
}

func TestPlayRejectsOverlap(t *testing.T) {
	f := newFixture(t, 200, 50*time.Millisecond, random.NewSequence([]float64{0.9}, nil))

	first, err := f.roulette.Play(context.Background())
	require.NoError(t, err)

	_, err = f.roulette.Play(context.Background())
	assert.ErrorIs(t, err, model.ErrPlayInProgress)
	assert.Equal(t, 190, f.ledger.Coins())

	_, ok := waitResult(t, first)
	require.True(t, ok)

	second, err := f.roulette.Play(context.Background())
	require.NoError(t, err)
	_, ok = waitResult(t, second)
	require.True(t, ok)
	assert.Equal(t, 180, f.ledger.Coins())
}

func TestCloseCancelsReveal(t *testing.T) {
	f := newFixture(t, 200, time.Hour, random.NewSequence([]float64{0.1}, nil))

	ticket, err := f.roulette.Play(context.Background())
	require.NoError(t, err)

	f.sched.Close()
	_, ok := waitResult(t, ticket)
	assert.False(t, ok)
	assert.Equal(t, 190, f.ledger.Coins())
	assert.False(t, f.roulette.InProgress())

	_, err = f.roulette.Play(context.Background())
	assert.ErrorIs(t, err, model.ErrSessionClosed)
	// ставка за неразыгранную игру возвращена
	assert.Equal(t, 190, f.ledger.Coins())
}

func TestCloseDuringPayoutKeepsWin(t *testing.T) {
	f := newFixture(t, 200, 10*time.Millisecond, random.NewSequence([]float64{0.10}, nil))
	f.repo.holdValue = "210"
	f.repo.held = make(chan struct{})
	f.repo.release = make(chan struct{})

	ticket, err := f.roulette.Play(context.Background())
	require.NoError(t, err)

	select {
	case <-f.repo.held:
	case <-time.After(2 * time.Second):
		t.Fatal("payout was not written")
	}

	closed := make(chan struct{})
	go func() {
		f.sched.Close()
		close(closed)
	}()
	// Close уже отменил задачи, выплата все еще пишется
	time.Sleep(50 * time.Millisecond)
	close(f.repo.release)

	res, ok := waitResult(t, ticket)
	require.True(t, ok)
	<-closed

	assert.Equal(t, model.OutcomeWin, res.Outcome)
	assert.Equal(t, 210, res.Balance)
	assert.Equal(t, 210, f.ledger.Coins())

	stored, err := f.repo.Get(context.Background(), "coins")
	require.NoError(t, err)
	assert.Equal(t, "210", stored)
}

func TestWinRate(t *testing.T) {
	rng := random.NewSeeded(42)

	const trials = 200000
	wins := 0
	for i := 0; i < trials; i++ {
		if Resolve(rng.Float64(), 0.17) == model.OutcomeWin {
			wins++
		}
	}
	assert.InDelta(t, 0.17, float64(wins)/trials, 0.005)
}

package slots

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
	"mini_casino/internal/service/scene"
	"mini_casino/pkg/random"
)

var symbols = []int{0, 90, 180, 270}

type slotsCfg struct {
	window, interval time.Duration
}

func (slotsCfg) Cost() int                          { return 5 }
func (slotsCfg) Payout() int                        { return 50 }
func (slotsCfg) Symbols() []int                     { return symbols }
func (c slotsCfg) AnimationWindow() time.Duration { return c.window }
func (c slotsCfg) FrameInterval() time.Duration   { return c.interval }

type fixture struct {
	slots   service.SlotsService
	ledger  service.LedgerService
	display service.DisplayService
	scene   service.SceneService
	sched   *scheduler.Scheduler
}

// holdingRepo Запись holdValue ждет release (или отмены ctx)
type holdingRepo struct {
	repository.KVRepository
	holdValue string
	held      chan struct{}
	release   chan struct{}
}

func (r *holdingRepo) Set(ctx context.Context, key, value string) error {
	if value == r.holdValue {
		close(r.held)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.release:
		}
	}
	return r.KVRepository.Set(ctx, key, value)
}

func newFixture(t *testing.T, start int, cfg slotsCfg, rng *random.Sequence) *fixture {
	return newFixtureWithRepo(t, memory.NewKVRepository(), start, cfg, rng)
}

func newFixtureWithRepo(t *testing.T, repo repository.KVRepository, start int, cfg slotsCfg, rng *random.Sequence) *fixture {
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	require.NoError(t, repo.Set(ctx, "coins", strconv.Itoa(start)))
	l := ledger.NewLedgerService(env.DefaultGameConfig().Ledger(), repo, txless.NewManager(), log)
	require.NoError(t, l.Load(ctx))

	sched, err := scheduler.New(4, log)
	require.NoError(t, err)
	t.Cleanup(sched.Close)

	d := display.NewDisplayService(log)
	sc := scene.NewSceneService(env.DefaultGameConfig().Scene())

	return &fixture{
		slots: NewSlotsService(Deps{
			Cfg:       cfg,
			Ledger:    l,
			Display:   d,
			Scene:     sc,
			Stats:     stats_repo.NewStatsRepository(0),
			Scheduler: sched,
			Rand:      rng,
			Log:       log,
		}),
		ledger:  l,
		display: d,
		scene:   sc,
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

// индексы символов для Sequence
func indexes(angles ...int) []int {
	out := make([]int, len(angles))
	for i, a := range angles {
		out[i] = a / 90
	}
	return out
}

func TestPlayScenarios(t *testing.T) {
	tests := []struct {
		msg         string
		draws       []int
		wantBalance int
		wantMessage string
		wantOutcome model.Outcome
	}{
		{msg: "jackpot", draws: []int{90, 90, 90}, wantBalance: 245, wantMessage: "Slots: You hit the jackpot! 50 coins!", wantOutcome: model.OutcomeWin},
		{msg: "no match", draws: []int{0, 90, 180}, wantBalance: 195, wantMessage: "Slots: Better luck next time!", wantOutcome: model.OutcomeLose},
		{msg: "two of three", draws: []int{270, 270, 0}, wantBalance: 195, wantMessage: "Slots: Better luck next time!", wantOutcome: model.OutcomeLose},
	}

	for _, test := range tests {
		cfg := slotsCfg{window: 100 * time.Millisecond, interval: 4 * time.Millisecond}
		f := newFixture(t, 200, cfg, random.NewSequence(nil, indexes(test.draws...)))

		ticket, err := f.slots.Play(context.Background())
		require.NoError(t, err, test.msg)
		assert.Equal(t, 195, ticket.Balance, test.msg)
		assert.Equal(t, 195, f.ledger.Coins(), test.msg)
		assert.Equal(t, MessageSpinning, f.display.State().Message, test.msg)
		assert.Equal(t, model.SoundSlotsSpin, f.display.State().LastCue, test.msg)

		res, ok := waitResult(t, ticket)
		require.True(t, ok, test.msg)
		assert.Equal(t, test.wantOutcome, res.Outcome, test.msg)
		assert.Equal(t, test.wantBalance, res.Balance, test.msg)
		assert.Equal(t, test.wantBalance, f.ledger.Coins(), test.msg)
		assert.Equal(t, test.wantMessage, f.display.State().Message, test.msg)

		// кубы остановились ровно на выпавших углах
		for i, a := range test.draws {
			assert.Equal(t, model.Angle(a), res.Reels[i], test.msg)
			assert.InDelta(t, float64(a), f.scene.Rotation(i), 1e-9, test.msg)
		}
	}
}

func TestPlayInsufficientCoins(t *testing.T) {
	cfg := slotsCfg{window: 10 * time.Millisecond, interval: time.Millisecond}
	f := newFixture(t, 4, cfg, random.NewSequence(nil, []int{1}))

	ticket, err := f.slots.Play(context.Background())
	assert.ErrorIs(t, err, model.ErrInsufficientCoins)
	assert.Nil(t, ticket)
	assert.Equal(t, 4, f.ledger.Coins())
	assert.Equal(t, "Not enough coins to play Quandale Slots!", f.display.State().LastAlert)
	assert.False(t, f.slots.InProgress())
}

func TestPlayRejectsOverlap(t *testing.T) {
	cfg := slotsCfg{window: 200 * time.Millisecond, interval: 10 * time.Millisecond}
	f := newFixture(t, 200, cfg, random.NewSequence(nil, []int{0, 1, 2}))

	first, err := f.slots.Play(context.Background())
	require.NoError(t, err)

	_, err = f.slots.Play(context.Background())
	assert.ErrorIs(t, err, model.ErrPlayInProgress)

	_, ok := waitResult(t, first)
	require.True(t, ok)
	assert.False(t, f.slots.InProgress())
	assert.Equal(t, 195, f.ledger.Coins())
}

func TestCloseStopsAnimation(t *testing.T) {
	cfg := slotsCfg{window: time.Hour, interval: time.Millisecond}
	f := newFixture(t, 200, cfg, random.NewSequence(nil, []int{1}))

	ticket, err := f.slots.Play(context.Background())
	require.NoError(t, err)

	f.sched.Close()
	_, ok := waitResult(t, ticket)
	assert.False(t, ok)
	assert.Equal(t, 195, f.ledger.Coins())
	assert.False(t, f.slots.InProgress())
}

func TestCloseDuringPayoutKeepsJackpot(t *testing.T) {
	repo := &holdingRepo{
		KVRepository: memory.NewKVRepository(),
		holdValue:    "245",
		held:         make(chan struct{}),
		release:      make(chan struct{}),
	}
	cfg := slotsCfg{window: 20 * time.Millisecond, interval: 2 * time.Millisecond}
	f := newFixtureWithRepo(t, repo, 200, cfg, random.NewSequence(nil, indexes(180, 180, 180)))

	ticket, err := f.slots.Play(context.Background())
	require.NoError(t, err)

	select {
	case <-repo.held:
	case <-time.After(2 * time.Second):
		t.Fatal("payout was not written")
	}

	closed := make(chan struct{})
	go func() {
		f.sched.Close()
		close(closed)
	}()
	time.Sleep(50 * time.Millisecond)
	close(repo.release)

	res, ok := waitResult(t, ticket)
	require.True(t, ok)
	<-closed

	assert.Equal(t, model.OutcomeWin, res.Outcome)
	assert.Equal(t, 245, res.Balance)
	assert.Equal(t, 245, f.ledger.Coins())
}

func TestIsJackpot(t *testing.T) {
	tests := []struct {
		angles []model.Angle
		want   bool
	}{
		{angles: []model.Angle{90, 90, 90}, want: true},
		{angles: []model.Angle{0, 0, 0}, want: true},
		{angles: []model.Angle{0, 90, 180}, want: false},
		{angles: []model.Angle{270, 270, 0}, want: false},
		{angles: nil, want: false},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, IsJackpot(test.angles), "%v", test.angles)
	}
}

func TestJackpotFrequency(t *testing.T) {
	rng := random.NewSeeded(7)

	const trials = 320000
	jackpots := 0
	for i := 0; i < trials; i++ {
		if IsJackpot(Draw(rng, symbols)) {
			jackpots++
		}
	}
	assert.InDelta(t, 1.0/16, float64(jackpots)/trials, 0.003)
}

func TestDrawUsesSymbolSet(t *testing.T) {
	rng := random.NewSeeded(1)
	seen := make(map[model.Angle]int)
	for i := 0; i < 4000; i++ {
		for _, a := range Draw(rng, symbols) {
			seen[a]++
		}
	}
	assert.Len(t, seen, 4)
	for _, s := range symbols {
		assert.InDelta(t, 3000, seen[model.Angle(s)], 300, "angle %d", s)
	}
}

func TestFrameCount(t *testing.T) {
	assert.Equal(t, 32, FrameCount(500*time.Millisecond, 16*time.Millisecond))
	assert.Equal(t, 10, FrameCount(100*time.Millisecond, 10*time.Millisecond))
	assert.Equal(t, 1, FrameCount(0, 16*time.Millisecond))
}

func TestProgress(t *testing.T) {
	window, interval := 500*time.Millisecond, 16*time.Millisecond
	assert.InDelta(t, 0.032, Progress(1, window, interval), 1e-9)
	assert.InDelta(t, 0.992, Progress(31, window, interval), 1e-9)
	assert.Equal(t, 1.0, Progress(32, window, interval))
	assert.Equal(t, 1.0, Progress(40, window, interval))
}

func TestReelAngle(t *testing.T) {
	tests := []struct {
		msg           string
		start, target float64
	}{
		{msg: "same angle", start: 90, target: 90},
		{msg: "forward", start: 0, target: 180},
		{msg: "wrap", start: 270, target: 0},
	}

	window, interval := 500*time.Millisecond, 16*time.Millisecond
	frames := FrameCount(window, interval)
	for _, test := range tests {
		prev := test.start
		for k := 1; k <= frames; k++ {
			a := ReelAngle(test.start, test.target, Progress(k, window, interval))
			if k < frames {
				// монотонно вперед, не меньше полного оборота к концу
				assert.Greater(t, a, prev, test.msg)
				prev = a
			} else {
				assert.Equal(t, test.target, a, test.msg)
			}
		}
		// к предпоследнему кадру пройден почти полный оборот
		assert.Greater(t, prev-test.start, 350.0, test.msg)
	}
}

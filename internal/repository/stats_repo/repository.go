package stats_repo

import (
	"sync"

	"mini_casino/internal/model"
	repoModel "mini_casino/internal/repository/stats_repo/model"
)

const defaultWindowSize = 500

// StateRepo Статистика по играм.
// Без автоподстройки: преимущество казино фиксировано конфигом
type StateRepo struct {
	mtx        sync.RWMutex
	windowSize int
	states     map[model.Game]*repoModel.GameState
}

// NewStatsRepository windowSize <= 0 - окно по умолчанию (500)
func NewStatsRepository(windowSize int) *StateRepo {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &StateRepo{
		windowSize: windowSize,
		states:     make(map[model.Game]*repoModel.GameState),
	}
}

// UpdateState Обновление статистики после розыгрыша
func (r *StateRepo) UpdateState(game model.Game, bet, payout int) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	st, ok := r.states[game]
	if !ok {
		st = &repoModel.GameState{
			PlayWindow: make([]repoModel.PlayResult, 0, r.windowSize),
			WindowSize: r.windowSize,
		}
		r.states[game] = st
	}

	st.TotalPlays++
	st.TotalBet += bet
	st.TotalPayout += payout
	st.CurrentRTP = rtp(st.TotalBet, st.TotalPayout)

	st.PlayWindow = append(st.PlayWindow, repoModel.PlayResult{Bet: bet, Payout: payout})
	if len(st.PlayWindow) > st.WindowSize {
		st.PlayWindow = st.PlayWindow[1:]
	}

	var windowBet, windowPayout int
	for _, p := range st.PlayWindow {
		windowBet += p.Bet
		windowPayout += p.Payout
	}
	st.WindowRTP = rtp(windowBet, windowPayout)
}

// GameStats Копия статистики по игре
func (r *StateRepo) GameStats(game model.Game) model.GameStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st, ok := r.states[game]
	if !ok {
		return model.GameStats{Game: game, WindowSize: r.windowSize}
	}
	return model.GameStats{
		Game:        game,
		TotalPlays:  st.TotalPlays,
		TotalBet:    st.TotalBet,
		TotalPayout: st.TotalPayout,
		CurrentRTP:  st.CurrentRTP,
		WindowRTP:   st.WindowRTP,
		WindowSize:  st.WindowSize,
	}
}

func rtp(bet, payout int) float64 {
	if bet <= 0 {
		return 0
	}
	return float64(payout) / float64(bet) * 100
}

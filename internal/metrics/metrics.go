package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mini_casino/internal/model"
)

const (
	labelGame    = "game"
	labelOutcome = "outcome"
	labelReason  = "reason"
)

// Имена метрик: casino_<name>

var (
	plays   = promauto.NewCounterVec(prometheus.CounterOpts{Name: "casino_plays_total", Help: "Завершенные розыгрыши"}, []string{labelGame, labelOutcome})
	refused = promauto.NewCounterVec(prometheus.CounterOpts{Name: "casino_refused_total", Help: "Отклоненные ставки"}, []string{labelGame, labelReason})
	payout  = promauto.NewCounterVec(prometheus.CounterOpts{Name: "casino_payout_total", Help: "Сумма выплат"}, []string{labelGame})
	staked  = promauto.NewCounterVec(prometheus.CounterOpts{Name: "casino_staked_total", Help: "Сумма ставок"}, []string{labelGame})
	coins   = promauto.NewGauge(prometheus.GaugeOpts{Name: "casino_coins", Help: "Текущий баланс"})
)

// Refusal reasons
const (
	ReasonInsufficient = "insufficient"
	ReasonInProgress   = "in_progress"
)

func Staked(game model.Game, amount int) {
	staked.WithLabelValues(string(game)).Add(float64(amount))
}

func Resolved(game model.Game, outcome model.Outcome, amount int) {
	plays.WithLabelValues(string(game), string(outcome)).Inc()
	if amount > 0 {
		payout.WithLabelValues(string(game)).Add(float64(amount))
	}
}

func Refused(game model.Game, reason string) {
	refused.WithLabelValues(string(game), reason).Inc()
}

func SetCoins(v int) {
	coins.Set(float64(v))
}

package game

type PlayRequest struct {
	Wait *bool `json:"wait,omitempty"` // Ждать исхода (по умолчанию true)
}

type PlayResponse struct {
	ID      string      `json:"id"`
	Game    string      `json:"game"`
	Cost    int         `json:"cost"`
	Balance int         `json:"balance"`          // Баланс после списания ставки
	Result  *PlayResult `json:"result,omitempty"` // Нет, если не ждали
}

type PlayResult struct {
	Outcome string   `json:"outcome"` // win | lose
	Payout  int      `json:"payout"`
	Balance int      `json:"balance"` // Баланс после выплаты
	Message string   `json:"message"`
	Sound   string   `json:"sound"`
	Draw    *float64 `json:"draw,omitempty"`  // Рулетка
	Reels   []int    `json:"reels,omitempty"` // Слоты, углы в градусах
}

type StateResponse struct {
	Coins              int        `json:"coins"`
	Message            string     `json:"message"`
	LastAlert          string     `json:"last_alert,omitempty"`
	LastCue            string     `json:"last_cue,omitempty"`
	Cues               []CueEvent `json:"cues"`
	RouletteInProgress bool       `json:"roulette_in_progress"`
	SlotsInProgress    bool       `json:"slots_in_progress"`
}

type CueEvent struct {
	Sound string `json:"sound"`
	At    string `json:"at"` // RFC3339Nano
}

type StatsResponse struct {
	Games []GameStats `json:"games"`
}

type GameStats struct {
	Game        string  `json:"game"`
	TotalPlays  int     `json:"total_plays"`
	TotalBet    int     `json:"total_bet"`
	TotalPayout int     `json:"total_payout"`
	CurrentRTP  float64 `json:"current_rtp"`
	WindowRTP   float64 `json:"window_rtp"`
	WindowSize  int     `json:"window_size"`
}

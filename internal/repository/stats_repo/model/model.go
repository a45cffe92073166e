package model

// Состояние одной игры
type GameState struct {
	TotalPlays  int // Сколько всего розыгрышей
	TotalBet    int // Сумма всех ставок
	TotalPayout int // Сумма всех выплат

	CurrentRTP float64 // TotalPayout/TotalBet*100

	PlayWindow []PlayResult // Окно последних розыгрышей
	WindowRTP  float64      // RTP в окне
	WindowSize int
}

// Результат розыгрыша для окна
type PlayResult struct {
	Bet    int
	Payout int
}

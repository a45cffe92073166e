package model

// Game Идентификатор игры
type Game string

const (
	GameRoulette Game = "roulette"
	GameSlots    Game = "slots"
)

// Outcome Исход розыгрыша
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
)

// Angle Угол поворота барабана (куба) в градусах
type Angle int

// PlayTicket Квитанция принятой ставки.
// Выдается сразу после списания стоимости, результат приходит в канал Result
type PlayTicket struct {
	ID      string
	Game    Game
	Cost    int
	Balance int // Баланс после списания

	// Result буферизован на одно значение.
	// Закрывается без значения, если сессия закрыта до раскрытия результата
	Result <-chan PlayResult
}

// PlayResult Итог розыгрыша
type PlayResult struct {
	ID      string
	Game    Game
	Outcome Outcome
	Payout  int
	Balance int
	Message string
	Sound   Sound

	Draw  float64 // Рулетка: значение случайной величины в [0,1)
	Reels []Angle // Слоты: выпавшие углы барабанов
}

// GameStats Статистика по игре
type GameStats struct {
	Game        Game
	TotalPlays  int
	TotalBet    int
	TotalPayout int
	CurrentRTP  float64
	WindowRTP   float64
	WindowSize  int
}

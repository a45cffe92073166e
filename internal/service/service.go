package service

import (
	"context"

	"mini_casino/internal/model"
)

type LedgerService interface {
	Load(ctx context.Context) error
	Coins() int
	UpdateCoins(ctx context.Context, delta int) (int, error)
	Charge(ctx context.Context, cost int) (int, error)
}

type RouletteService interface {
	Play(ctx context.Context) (*model.PlayTicket, error)
	InProgress() bool
}

type SlotsService interface {
	Play(ctx context.Context) (*model.PlayTicket, error)
	InProgress() bool
}

// DisplayService Текстовое поле, алерты и звуки
type DisplayService interface {
	ShowMessage(text string)
	Alert(text string)
	PlayCue(sound model.Sound)
	State() model.DisplayState
}

// SceneService Три куба и цикл отрисовки
type SceneService interface {
	Rotation(i int) float64
	SetRotation(i int, deg float64)
	RenderFrame()
	Snapshot() model.SceneSnapshot
}

type SessionService interface {
	Start(ctx context.Context) error
	PlayRoulette(ctx context.Context) (*model.PlayTicket, error)
	PlaySlots(ctx context.Context) (*model.PlayTicket, error)
	State() model.DisplayState
	Close()
}

package model

import "time"

// Sound Звуковой сигнал
type Sound string

const (
	SoundNone         Sound = ""
	SoundRouletteSpin Sound = "roulette-spin"
	SoundSlotsSpin    Sound = "slots-spin"
	SoundWin          Sound = "win"
	SoundLose         Sound = "lose"
)

// CueEvent Факт проигрывания звука
type CueEvent struct {
	Sound Sound
	At    time.Time
}

// DisplayState То, что видит (и слышит) игрок
type DisplayState struct {
	Coins     int
	Message   string
	LastAlert string
	LastCue   Sound
	Cues      []CueEvent // Последние сигналы, новые первыми

	RouletteInProgress bool
	SlotsInProgress    bool
}

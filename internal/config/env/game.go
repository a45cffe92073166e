package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mini_casino/internal/config"
)

const gameConfigEnvName = "GAME_CONFIG"

// GameConfigPath Путь к YAML с игровыми таблицами
func GameConfigPath() string {
	if path := os.Getenv(gameConfigEnvName); len(path) != 0 {
		return path
	}
	return "config.yaml"
}

type gameYAML struct {
	LedgerTable   ledgerYAML   `yaml:"ledger"`
	RouletteTable rouletteYAML `yaml:"roulette"`
	SlotsTable    slotsYAML    `yaml:"slots"`
	SceneTable    sceneYAML    `yaml:"scene"`
}

type ledgerYAML struct {
	KeyName  string `yaml:"key"`
	Starting int    `yaml:"starting_coins"`
}

type rouletteYAML struct {
	CostValue   int           `yaml:"cost"`
	PayoutValue int           `yaml:"payout"`
	WinProb     float64       `yaml:"win_probability"`
	Delay       time.Duration `yaml:"reveal_delay"`
}

type slotsYAML struct {
	CostValue   int           `yaml:"cost"`
	PayoutValue int           `yaml:"payout"`
	SymbolSet   []int         `yaml:"symbols"`
	Window      time.Duration `yaml:"animation_window"`
	Interval    time.Duration `yaml:"frame_interval"`
}

type sceneYAML struct {
	FramesPerSecond int       `yaml:"fps"`
	CubeOffsets     []float64 `yaml:"offsets"`
	Texture         int       `yaml:"texture_size"`
	Ambient         float64   `yaml:"ambient_light"`
}

// DefaultGameConfig Значения по умолчанию (совпадают с config.yaml)
func DefaultGameConfig() config.GameConfig {
	return defaultGameYAML()
}

func defaultGameYAML() *gameYAML {
	return &gameYAML{
		LedgerTable: ledgerYAML{
			KeyName:  "coins",
			Starting: 200,
		},
		RouletteTable: rouletteYAML{
			CostValue:   10,
			PayoutValue: 20,
			// 0.17 не равно 1/6, оставлено как есть до подтверждения
			WinProb: 0.17,
			Delay:   2 * time.Second,
		},
		SlotsTable: slotsYAML{
			CostValue:   5,
			PayoutValue: 50,
			SymbolSet:   []int{0, 90, 180, 270},
			Window:      500 * time.Millisecond,
			Interval:    16 * time.Millisecond,
		},
		SceneTable: sceneYAML{
			FramesPerSecond: 60,
			CubeOffsets:     []float64{-4, 0, 4},
			Texture:         256,
			Ambient:         1,
		},
	}
}

// NewGameConfigFromYAML Читает игровые таблицы из файла.
// Отсутствующий файл - не ошибка, используются значения по умолчанию
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	cfg := defaultGameYAML()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// берем значения по умолчанию
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *gameYAML) validate() error {
	if len(g.LedgerTable.KeyName) == 0 {
		return errors.New("ledger key is empty")
	}
	if g.LedgerTable.Starting < 0 {
		return errors.New("starting coins must not be negative")
	}
	if g.RouletteTable.CostValue <= 0 || g.RouletteTable.PayoutValue < 0 {
		return errors.New("roulette cost must be positive and payout not negative")
	}
	if g.RouletteTable.WinProb < 0 || g.RouletteTable.WinProb > 1 {
		return fmt.Errorf("roulette win probability %v out of [0,1]", g.RouletteTable.WinProb)
	}
	if g.RouletteTable.Delay < 0 {
		return errors.New("roulette reveal delay must not be negative")
	}
	if g.SlotsTable.CostValue <= 0 || g.SlotsTable.PayoutValue < 0 {
		return errors.New("slots cost must be positive and payout not negative")
	}
	if len(g.SlotsTable.SymbolSet) == 0 {
		return errors.New("slots symbol set is empty")
	}
	if g.SlotsTable.Window <= 0 || g.SlotsTable.Interval <= 0 {
		return errors.New("slots animation window and frame interval must be positive")
	}
	if g.SceneTable.FramesPerSecond <= 0 {
		return errors.New("scene fps must be positive")
	}
	if len(g.SceneTable.CubeOffsets) != 3 {
		return fmt.Errorf("scene needs 3 cube offsets, got %d", len(g.SceneTable.CubeOffsets))
	}
	if g.SceneTable.Texture < 8 {
		return errors.New("texture size is too small")
	}
	return nil
}

func (g *gameYAML) Ledger() config.LedgerConfig     { return &g.LedgerTable }
func (g *gameYAML) Roulette() config.RouletteConfig { return &g.RouletteTable }
func (g *gameYAML) Slots() config.SlotsConfig       { return &g.SlotsTable }
func (g *gameYAML) Scene() config.SceneConfig       { return &g.SceneTable }

func (l *ledgerYAML) Key() string        { return l.KeyName }
func (l *ledgerYAML) StartingCoins() int { return l.Starting }

func (r *rouletteYAML) Cost() int                  { return r.CostValue }
func (r *rouletteYAML) Payout() int                { return r.PayoutValue }
func (r *rouletteYAML) WinProbability() float64    { return r.WinProb }
func (r *rouletteYAML) RevealDelay() time.Duration { return r.Delay }

func (s *slotsYAML) Cost() int                      { return s.CostValue }
func (s *slotsYAML) Payout() int                    { return s.PayoutValue }
func (s *slotsYAML) Symbols() []int                 { return s.SymbolSet }
func (s *slotsYAML) AnimationWindow() time.Duration { return s.Window }
func (s *slotsYAML) FrameInterval() time.Duration   { return s.Interval }

func (s *sceneYAML) FPS() int              { return s.FramesPerSecond }
func (s *sceneYAML) Offsets() []float64    { return s.CubeOffsets }
func (s *sceneYAML) TextureSize() int      { return s.Texture }
func (s *sceneYAML) AmbientLight() float64 { return s.Ambient }

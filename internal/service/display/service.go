package display

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"mini_casino/internal/model"
	"mini_casino/internal/service"
)

// cueLogSize Сколько последних сигналов держим
const cueLogSize = 32

type serv struct {
	mtx       sync.RWMutex
	message   string
	lastAlert string
	cues      []model.CueEvent // новые в конце
	now       func() time.Time
	log       *zap.Logger
}

func NewDisplayService(log *zap.Logger) service.DisplayService {
	return &serv{
		cues: make([]model.CueEvent, 0, cueLogSize),
		now:  time.Now,
		log:  log.Named("display"),
	}
}

func (s *serv) ShowMessage(text string) {
	s.mtx.Lock()
	s.message = text
	s.mtx.Unlock()

	s.log.Info("message", zap.String("text", text))
}

// Alert В браузере это блокирующий alert(); здесь только запоминаем
func (s *serv) Alert(text string) {
	s.mtx.Lock()
	s.lastAlert = text
	s.mtx.Unlock()

	s.log.Warn("alert", zap.String("text", text))
}

func (s *serv) PlayCue(sound model.Sound) {
	s.mtx.Lock()
	if len(s.cues) == cueLogSize {
		copy(s.cues, s.cues[1:])
		s.cues = s.cues[:cueLogSize-1]
	}
	s.cues = append(s.cues, model.CueEvent{Sound: sound, At: s.now()})
	s.mtx.Unlock()

	s.log.Debug("cue", zap.String("sound", string(sound)))
}

// State Монеты и флаги игр заполняет сессия
func (s *serv) State() model.DisplayState {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	cues := make([]model.CueEvent, len(s.cues))
	for i, c := range s.cues {
		cues[len(s.cues)-1-i] = c
	}

	st := model.DisplayState{
		Message:   s.message,
		LastAlert: s.lastAlert,
		Cues:      cues,
	}
	if len(cues) > 0 {
		st.LastCue = cues[0].Sound
	}
	return st
}

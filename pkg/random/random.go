// Package random provides the injectable random sources used by the games.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source Источник случайности для резолверов
type Source interface {
	// Float64 равномерно в [0,1)
	Float64() float64
	// IntN равномерно в [0,n)
	IntN(n int) int
}

type seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeeded Воспроизводимый источник (PCG). Безопасен для конкурентного использования
func NewSeeded(seed uint64) Source {
	return &seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewDefault Источник с зерном из времени запуска, если seed == 0
func NewDefault(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewSeeded(seed)
}

func (s *seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

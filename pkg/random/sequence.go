package random

import "sync"

// Sequence Проигрывает заранее заданные значения по кругу.
// Нужен, чтобы форсировать исход розыгрыша
type Sequence struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
	fi, ii int
}

func NewSequence(floats []float64, ints []int) *Sequence {
	return &Sequence{floats: floats, ints: ints}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

// IntN Значение приводится к [0,n)
func (s *Sequence) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return ((v % n) + n) % n
}

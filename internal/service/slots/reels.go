package slots

import (
	"math"
	"time"

	"mini_casino/internal/model"
	"mini_casino/pkg/random"
)

// Барабанов (кубов)
const reels = 3

// Draw Независимо и равновероятно выбирает угол для каждого барабана
func Draw(rng random.Source, symbols []int) []model.Angle {
	out := make([]model.Angle, reels)
	for i := range out {
		out[i] = model.Angle(symbols[rng.IntN(len(symbols))])
	}
	return out
}

// IsJackpot Все углы совпали
func IsJackpot(angles []model.Angle) bool {
	if len(angles) == 0 {
		return false
	}
	for _, a := range angles[1:] {
		if a != angles[0] {
			return false
		}
	}
	return true
}

// FrameCount Число кадров анимации: ceil(window/interval), минимум один
func FrameCount(window, interval time.Duration) int {
	if interval <= 0 {
		return 1
	}
	n := int((window + interval - 1) / interval)
	if n < 1 {
		n = 1
	}
	return n
}

// Progress Доля анимации на кадре frame (с 1), не больше 1
func Progress(frame int, window, interval time.Duration) float64 {
	if window <= 0 {
		return 1
	}
	p := float64(time.Duration(frame)*interval) / float64(window)
	return math.Min(p, 1)
}

// ReelAngle Угол барабана при прогрессе p.
// Полный оборот плюс доворот до цели; при p = 1 ровно target
func ReelAngle(start, target, p float64) float64 {
	if p >= 1 {
		return target
	}
	delta := math.Mod(target-start, 360)
	if delta < 0 {
		delta += 360
	}
	return start + (360+delta)*p
}

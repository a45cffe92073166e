package scene

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"mini_casino/internal/config"
	"mini_casino/internal/model"
	"mini_casino/internal/scheduler"
	"mini_casino/internal/service"
	"mini_casino/internal/texture"
)

// Кубов на сцене столько же, сколько барабанов
const cubeCount = 3

type serv struct {
	mtx     sync.RWMutex
	cubes   [cubeCount]model.Cube
	ambient float64
	frame   uint64
}

// NewSceneService Три куба на фиксированных смещениях, с каркасом
func NewSceneService(cfg config.SceneConfig) service.SceneService {
	s := &serv{
		ambient: cfg.AmbientLight(),
	}
	offsets := cfg.Offsets()
	for i := range s.cubes {
		s.cubes[i] = model.Cube{
			Index:     i,
			OffsetX:   offsets[i],
			Wireframe: true,
			Faces:     texture.FaceLabels,
		}
	}
	return s
}

func (s *serv) Rotation(i int) float64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if i < 0 || i >= cubeCount {
		return 0
	}
	return s.cubes[i].RotationX
}

// SetRotation Угол приводится к [0,360)
func (s *serv) SetRotation(i int, deg float64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if i < 0 || i >= cubeCount {
		return
	}
	s.cubes[i].RotationX = normalize(deg)
}

func (s *serv) RenderFrame() {
	s.mtx.Lock()
	s.frame++
	s.mtx.Unlock()
}

func (s *serv) Snapshot() model.SceneSnapshot {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	cubes := make([]model.Cube, cubeCount)
	copy(cubes, s.cubes[:])
	return model.SceneSnapshot{
		Frame:        s.frame,
		AmbientLight: s.ambient,
		Cubes:        cubes,
	}
}

// Start Запускает цикл отрисовки. Останавливается только вместе с планировщиком
func Start(sc service.SceneService, sched *scheduler.Scheduler, fps int, log *zap.Logger) (*scheduler.Task, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("invalid fps %d", fps)
	}
	interval := time.Second / time.Duration(fps)

	task, err := sched.Every(interval, func(ctx context.Context) bool {
		sc.RenderFrame()
		return true
	}, func() {
		log.Debug("render loop stopped", zap.Uint64("frame", sc.Snapshot().Frame))
	})
	if err != nil {
		return nil, fmt.Errorf("start render loop: %w", err)
	}
	return task, nil
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

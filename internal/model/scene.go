package model

// CubeFaces Количество граней куба
const CubeFaces = 6

// Cube Состояние одного куба на сцене
type Cube struct {
	Index     int
	OffsetX   float64
	RotationX float64 // градусы, вращение вокруг оси x
	Wireframe bool
	Faces     [CubeFaces]string // Подписи граней, "" - пустая грань
}

// SceneSnapshot Копия состояния сцены на момент кадра
type SceneSnapshot struct {
	Frame        uint64
	AmbientLight float64
	Cubes        []Cube
}

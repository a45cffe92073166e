package scene

type SceneResponse struct {
	Frame        uint64  `json:"frame"`
	AmbientLight float64 `json:"ambient_light"`
	Cubes        []Cube  `json:"cubes"`
}

type Cube struct {
	Index     int      `json:"index"`
	OffsetX   float64  `json:"offset_x"`
	RotationX float64  `json:"rotation_x"` // градусы
	Wireframe bool     `json:"wireframe"`
	Faces     []string `json:"faces"` // URL текстур граней
}

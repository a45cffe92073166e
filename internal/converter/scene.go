package converter

import (
	dto "mini_casino/internal/api/dto/scene"
	"mini_casino/internal/model"
)

// BlankLabel Имя текстуры пустой грани в URL
const BlankLabel = "blank"

// TextureURL Путь к текстуре грани
func TextureURL(label string) string {
	if label == "" {
		label = BlankLabel
	}
	return "/textures/" + label + ".png"
}

func ToSceneResponse(snap model.SceneSnapshot) dto.SceneResponse {
	cubes := make([]dto.Cube, len(snap.Cubes))
	for i, c := range snap.Cubes {
		faces := make([]string, len(c.Faces))
		for j, label := range c.Faces {
			faces[j] = TextureURL(label)
		}
		cubes[i] = dto.Cube{
			Index:     c.Index,
			OffsetX:   c.OffsetX,
			RotationX: c.RotationX,
			Wireframe: c.Wireframe,
			Faces:     faces,
		}
	}

	return dto.SceneResponse{
		Frame:        snap.Frame,
		AmbientLight: snap.AmbientLight,
		Cubes:        cubes,
	}
}

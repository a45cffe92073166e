// Package texture renders the square face tiles of the slot cubes: a black
// background with the face label centered in large white glyphs.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FaceLabels Порядок граней куба: +x, -x, +y, -y, +z, -z.
// Куб вращается вокруг x, поэтому торцы ±x пустые, а грани по кругу пронумерованы
var FaceLabels = [6]string{"", "", "1", "2", "3", "4"}

// glyphScale Высота шрифта относительно стороны плитки (120px на 256px)
const glyphScale = 120.0 / 256.0

var (
	fontOnce sync.Once
	boldFont *opentype.Font
	fontErr  error
)

func parsedFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, fontErr
}

// Generate Плитка size x size. Пустая подпись - просто черный квадрат
func Generate(label string, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid texture size %d", size)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	if label == "" {
		return img, nil
	}

	f, err := parsedFont()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size) * glyphScale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	// центрируем по реальным границам глифов, а не по метрикам шрифта
	bounds, advance := d.BoundString(label)
	side := fixed.I(size)
	height := bounds.Max.Y - bounds.Min.Y
	d.Dot = fixed.Point26_6{
		X: (side - advance) / 2,
		Y: (side-height)/2 - bounds.Min.Y,
	}
	d.DrawString(label)

	return img, nil
}

func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Cache PNG плиток по подписи, рендерим один раз
type Cache struct {
	size int
	mu   sync.Mutex
	pngs map[string][]byte
}

func NewCache(size int) *Cache {
	return &Cache{size: size, pngs: make(map[string][]byte)}
}

// IsFaceLabel Подпись встречается на гранях кубов
func IsFaceLabel(label string) bool {
	for _, l := range FaceLabels {
		if l == label {
			return true
		}
	}
	return false
}

func (c *Cache) PNG(label string) ([]byte, error) {
	if !IsFaceLabel(label) {
		return nil, fmt.Errorf("unknown face label %q", label)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.pngs[label]; ok {
		return b, nil
	}

	img, err := Generate(label, c.size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	c.pngs[label] = buf.Bytes()
	return c.pngs[label], nil
}

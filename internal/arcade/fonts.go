package arcade

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// fontCache hands out one face per character size over a shared source.
type fontCache struct {
	source *text.GoTextFaceSource
	faces  map[int]*text.GoTextFace
}

func newFontCache() (*fontCache, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load go regular font: %w", err)
	}
	return &fontCache{source: source, faces: make(map[int]*text.GoTextFace)}, nil
}

func (c *fontCache) face(size int) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{
		Source:    c.source,
		Size:      float64(size),
		Direction: text.DirectionLeftToRight,
	}
	c.faces[size] = f
	return f
}

// measure matches physics.Measurer.
func (c *fontCache) measure(s string, charSize int) (float64, float64) {
	f := c.face(charSize)
	return text.Measure(s, f, f.Size)
}

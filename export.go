package targa

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/bodgit/targa/tga"
	"github.com/ericpauley/go-quantize/quantize"
)

const maxColors = 256

// Quantize reduces m to a palette of at most colors colors using median cut.
func Quantize(m image.Image, colors int) (*image.Paletted, error) {
	if colors < 2 || colors > maxColors {
		return nil, fmt.Errorf("colors must be between 2 and %d", maxColors)
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm, nil
}

// Export writes m to w as a PNG. If colors is greater than zero the image is
// first reduced to that many colors.
func Export(w io.Writer, m *tga.Image, colors int) error {
	var img image.Image = m.RGBA()
	if colors > 0 {
		pm, err := Quantize(img, colors)
		if err != nil {
			return err
		}
		img = pm
	}
	return png.Encode(w, img)
}

// Export writes the named texture to w as a PNG, see Export.
func (l *Library) Export(name string, w io.Writer, colors int) error {
	m, err := l.db.FindTextureByName(name)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("no texture named %q", name)
	}
	return Export(w, m, colors)
}

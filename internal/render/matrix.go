//go:build ebiten

package render

import (
	"image/color"

	"microlife/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// LEDPainter draws the grid as a lit LED matrix.
type LEDPainter struct {
	cell, gap int
	img       *ebiten.Image
	buf       []byte

	On, Off, Board color.Color
}

// NewLEDPainter allocates a painter with cell-pixel LEDs separated by gap
// pixels.
func NewLEDPainter(cell, gap int) *LEDPainter {
	if cell <= 0 {
		cell = 1
	}
	if gap < 0 {
		gap = 0
	}
	side := MatrixSize(cell, gap)
	return &LEDPainter{
		cell:  cell,
		gap:   gap,
		img:   ebiten.NewImage(side, side),
		buf:   make([]byte, 4*side*side),
		On:    color.RGBA{R: 255, G: 40, B: 30, A: 255},
		Off:   color.RGBA{R: 40, G: 12, B: 10, A: 255},
		Board: color.RGBA{R: 8, G: 8, B: 10, A: 255},
	}
}

// Draw uploads g into the painter image and draws it at the origin of dst.
func (p *LEDPainter) Draw(dst *ebiten.Image, g core.Grid) {
	fillMatrixRGBA(p.buf, g, p.cell, p.gap, p.On, p.Off, p.Board)
	p.img.WritePixels(p.buf)
	dst.DrawImage(p.img, &ebiten.DrawImageOptions{})
}

// Size returns the edge length of the painted image in pixels.
func (p *LEDPainter) Size() int { return MatrixSize(p.cell, p.gap) }

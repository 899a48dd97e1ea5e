package render

import (
	"image/color"

	"microlife/pkg/core"
)

// MatrixSize returns the edge length in pixels of a matrix image whose LEDs
// are cell pixels wide and separated by gap pixels, with a gap-wide border.
func MatrixSize(cell, gap int) int {
	return core.Size*cell + (core.Size+1)*gap
}

// fillMatrixRGBA paints g into buf as a square RGBA image of MatrixSize(cell,
// gap) pixels. Lit LEDs use on, dark LEDs use off and the board between them
// uses bg.
func fillMatrixRGBA(buf []byte, g core.Grid, cell, gap int, on, off, bg color.Color) {
	side := MatrixSize(cell, gap)
	if len(buf) < side*side*4 {
		return
	}
	fill(buf[:side*side*4], bg)

	for r := 0; r < core.Size; r++ {
		for c := 0; c < core.Size; c++ {
			col := off
			if g.Alive(r, c) {
				col = on
			}
			x0 := gap + c*(cell+gap)
			y0 := gap + r*(cell+gap)
			for y := y0; y < y0+cell; y++ {
				row := buf[(y*side+x0)*4 : (y*side+x0+cell)*4]
				fill(row, col)
			}
		}
	}
}

// fill sets every RGBA pixel in buf to col.
func fill(buf []byte, col color.Color) {
	r, g, b, a := col.RGBA()
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = uint8(r >> 8)
		buf[base+1] = uint8(g >> 8)
		buf[base+2] = uint8(b >> 8)
		buf[base+3] = uint8(a >> 8)
	}
}

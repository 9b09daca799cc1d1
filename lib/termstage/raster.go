// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package termstage

// grid is a braille raster: one 8-bit dot mask plus one color per
// terminal cell. Micro coordinates address the 2×4 dot matrix inside
// each cell, so a w×h cell grid spans 2w×4h micro pixels.
type grid struct {
	width  int
	height int
	masks  [][]uint8
	colors [][]string
	texts  [][]rune
}

func newGrid(width, height int) *grid {
	masks := make([][]uint8, height)
	colors := make([][]string, height)
	texts := make([][]rune, height)
	for row := range masks {
		masks[row] = make([]uint8, width)
		colors[row] = make([]string, width)
		texts[row] = make([]rune, width)
	}
	return &grid{width: width, height: height, masks: masks, colors: colors, texts: texts}
}

// brailleBit maps a micro position inside one cell (column 0-1, row
// 0-3) to its bit in the braille pattern block.
func brailleBit(rx, ry int) uint8 {
	if rx == 0 {
		switch ry {
		case 0:
			return 0x01
		case 1:
			return 0x02
		case 2:
			return 0x04
		default:
			return 0x40
		}
	}
	switch ry {
	case 0:
		return 0x08
	case 1:
		return 0x10
	case 2:
		return 0x20
	default:
		return 0x80
	}
}

// setPixel lights the micro pixel at (mx, my). Later draws win the
// cell's color; the dot mask accumulates.
func (g *grid) setPixel(mx, my int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cx >= g.width || cy >= g.height {
		return
	}
	g.masks[cy][cx] |= brailleBit(rx, ry)
	g.colors[cy][cx] = color
}

// drawLine draws a Bresenham segment on the microgrid. When dashed,
// pixels are emitted in an on/off pattern of dashLength micro steps.
func (g *grid) drawLine(x0, y0, x1, y1 int, color string, dashed bool) {
	const dashLength = 3

	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	step := 0
	for {
		if !dashed || (step/dashLength)%2 == 0 {
			g.setPixel(x0, y0, color)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		step++
		doubled := 2 * err
		if doubled >= dy {
			err += dy
			x0 += sx
		}
		if doubled <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawBlob lights a pixel and its four micro neighbors, giving atoms
// a visible footprint instead of a single dot.
func (g *grid) drawBlob(mx, my int, color string) {
	g.setPixel(mx, my, color)
	g.setPixel(mx+1, my, color)
	g.setPixel(mx-1, my, color)
	g.setPixel(mx, my+1, color)
	g.setPixel(mx, my-1, color)
}

// drawText writes a label into the cell layer starting at cell (cx,
// cy). Text always wins over braille dots in the final composite.
func (g *grid) drawText(cx, cy int, text string, color string) {
	if cy < 0 || cy >= g.height {
		return
	}
	for _, r := range text {
		if cx < 0 {
			cx++
			continue
		}
		if cx >= g.width {
			return
		}
		g.texts[cy][cx] = r
		g.colors[cy][cx] = color
		cx++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

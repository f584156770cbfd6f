package levels

import "github.com/vovakirdan/tui-platformer/internal/core"

// Grid is a rectangular tile map. Short rows are padded with empty tiles.
type Grid struct {
	w, h  int
	tiles []rune
}

// NewGrid builds a grid from text rows.
func NewGrid(rows []string) *Grid {
	w := 0
	runes := make([][]rune, len(rows))
	for i, row := range rows {
		runes[i] = []rune(row)
		w = max(w, len(runes[i]))
	}

	g := &Grid{w: w, h: len(rows), tiles: make([]rune, w*len(rows))}
	for y, row := range runes {
		for x := 0; x < w; x++ {
			r := TileEmpty
			if x < len(row) {
				r = row[x]
			}
			g.tiles[y*w+x] = r
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// At returns the tile at a column and row, or TileEmpty out of range.
func (g *Grid) At(x, y int) rune {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return TileEmpty
	}
	return g.tiles[y*g.w+x]
}

// Merge covers every tile equal to r with as few boxes as possible,
// growing each box greedily across the row first and then down. A box
// spanning n rows is (n-1)*tile + thickness tall, so thin platform tiles
// keep their thickness at the bottom row.
func (g *Grid) Merge(r rune, tile, thickness float64) []core.Box {
	var boxes []core.Box
	processed := make([]bool, len(g.tiles))

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			idx := y*g.w + x
			if processed[idx] || g.tiles[idx] != r {
				continue
			}

			w := 1
			for x+w < g.w {
				idx2 := y*g.w + x + w
				if processed[idx2] || g.tiles[idx2] != r {
					break
				}
				w++
			}

			h := 1
		grow:
			for y+h < g.h {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*g.w + xi
					if processed[idx2] || g.tiles[idx2] != r {
						break grow
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*g.w+xx] = true
				}
			}

			boxes = append(boxes, core.Box{
				X: float64(x) * tile,
				Y: float64(y) * tile,
				W: float64(w) * tile,
				H: float64(h-1)*tile + thickness,
			})
		}
	}
	return boxes
}

// Package render draws platformer sessions into a core.Screen. It maps world
// units to terminal cells, draws sprites with a procedural fallback and
// provides the HUD pieces shared by both games.
package render

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Projector maps world coordinates to screen cells. The visible world is
// the viewport starting at CameraX; rows above Top are reserved for the HUD.
type Projector struct {
	CameraX float64
	Top     int
	cellW   float64
	cellH   float64
}

// NewProjector fits a viewport of world units into cols x rows cells,
// keeping the first hudRows rows free.
func NewProjector(viewport core.Vec2, cols, rows, hudRows int) Projector {
	cols = core.Max(cols, 1)
	playRows := core.Max(rows-hudRows, 1)
	return Projector{
		Top:   hudRows,
		cellW: viewport.X / float64(cols),
		cellH: viewport.Y / float64(playRows),
	}
}

// CellSize returns the world size of one cell.
func (p Projector) CellSize() core.Vec2 {
	return core.V(p.cellW, p.cellH)
}

// Point returns the cell containing world point v.
func (p Projector) Point(v core.Vec2) (x, y int) {
	x = int(math.Floor((v.X - p.CameraX) / p.cellW))
	y = int(math.Floor(v.Y/p.cellH)) + p.Top
	return x, y
}

// Rect returns the cells covered by b. Anything with a positive size
// covers at least one cell.
func (p Projector) Rect(b core.Box) core.Rect {
	x0, y0 := p.Point(core.V(b.X, b.Y))
	x1 := int(math.Ceil((b.Right() - p.CameraX) / p.cellW))
	y1 := int(math.Ceil(b.Bottom()/p.cellH)) + p.Top
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// Visible reports whether r overlaps the play area of dst.
func (p Projector) Visible(r core.Rect, dst *core.Screen) bool {
	area := core.NewRect(0, p.Top, dst.Width(), dst.Height()-p.Top)
	return r.Intersects(area)
}

package platformer

// Contact describes which sides of a body were blocked during resolution.
type Contact struct {
	Grounded  bool // pushed up onto a surface
	Ceiling   bool // pushed down out of a surface above
	WallLeft  bool // pushed right, the obstacle is on the left
	WallRight bool // pushed left, the obstacle is on the right
}

// Wall reports whether the body hit something horizontally.
func (c Contact) Wall() bool {
	return c.WallLeft || c.WallRight
}

// Resolver separates a body from static geometry, mutating its position
// and velocity.
type Resolver func(b *Body, platforms []Platform) Contact

// ResolveMTV pushes the body out of every overlapping platform along the
// axis of least penetration. Ties go to the vertical axis so bodies settle
// on floors rather than sliding off them. The push direction is chosen by
// comparing centers and the velocity on that axis is zeroed.
//
// Platforms are handled one at a time in slice order, not as a combined
// translation. When platforms overlap each other the outcome can depend on
// their order; levels merge adjacent tiles at load time to keep seams out of
// the geometry.
//
// Bodies and platforms must have positive sizes. Degenerate boxes never
// intersect anything and are skipped.
func ResolveMTV(b *Body, platforms []Platform) Contact {
	var c Contact
	for i := range platforms {
		r := platforms[i].Box
		box := b.Box()
		if !box.Intersects(r) {
			continue
		}

		ox, oy := box.Overlap(r)
		if oy <= ox {
			if box.CenterY() < r.CenterY() {
				b.Pos.Y = r.Y - b.Size.Y
				c.Grounded = true
			} else {
				b.Pos.Y = r.Bottom()
				c.Ceiling = true
			}
			b.Vel.Y = 0
			continue
		}

		if box.CenterX() < r.CenterX() {
			b.Pos.X = r.X - b.Size.X
			c.WallRight = true
		} else {
			b.Pos.X = r.Right()
			c.WallLeft = true
		}
		b.Vel.X = 0
	}
	return c
}

// ResolveVertical only ever moves the body up or down. Horizontal motion is
// left to the caller's level-bound clamp, so a body that walks into the side
// of a block is lifted onto it (or dropped under it) instead of being
// stopped. It is cheaper than ResolveMTV and fits runner levels with no
// walls; with walls it visibly clips.
func ResolveVertical(b *Body, platforms []Platform) Contact {
	var c Contact
	for i := range platforms {
		r := platforms[i].Box
		box := b.Box()
		if !box.Intersects(r) {
			continue
		}
		if box.CenterY() < r.CenterY() {
			b.Pos.Y = r.Y - b.Size.Y
			c.Grounded = true
		} else {
			b.Pos.Y = r.Bottom()
			c.Ceiling = true
		}
		b.Vel.Y = 0
	}
	return c
}

package main

const (
	startLenience = -1.0
	maxLenience   = 4.1
)

// FindObjectAt returns the object under a world position. It first asks for a
// hit slightly inside a primitive, then widens the tolerance one unit at a
// time so that thin lines stay clickable.
func (c *Canvas) FindObjectAt(x, y float64) ObjectID {
	return hitTest(c.Primitives(), x, y)
}

func hitTest(primitives []DrawPrimitive, x, y float64) ObjectID {
	for l := startLenience; l < maxLenience; l += 1.0 {
		for _, p := range primitives {
			if x >= p.X-l && x < p.X+p.Width+2*l && y >= p.Y-l && y < p.Y+p.Height+2*l {
				return p.Parent
			}
		}
	}
	return NoObject
}

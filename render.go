package main

import (
	"iter"
	"math"
)

// AllPrimitives renders every top-level object in order.
func (c *Canvas) AllPrimitives() iter.Seq[DrawPrimitive] {
	return func(yield func(DrawPrimitive) bool) {
		for _, id := range c.children {
			obj := c.objects[id]
			if !c.renderObject(obj, obj.Position, yield) {
				return
			}
		}
	}
}

// Render yields the primitives of id and its subtree, with origin being the
// absolute position of id. Children come before their owner.
func (c *Canvas) Render(id ObjectID, origin Coordinate) iter.Seq[DrawPrimitive] {
	return func(yield func(DrawPrimitive) bool) {
		if obj := c.Object(id); obj != nil {
			c.renderObject(obj, origin, yield)
		}
	}
}

func (c *Canvas) renderObject(obj *DrawObject, abs Coordinate, yield func(DrawPrimitive) bool) bool {
	for _, id := range obj.Children {
		child := c.objects[id]
		if !c.renderObject(child, abs.Add(child.Position), yield) {
			return false
		}
	}

	switch obj.Kind {
	case KindAxis:
		return c.renderAxis(obj, abs, yield)
	case KindLabel:
		return renderLabel(obj, abs, yield)
	case KindPoint:
		return renderPoint(obj, abs, yield)
	case KindSupplyDemandLine:
		return c.renderLine(obj, abs, yield)
	}
	return true
}

func renderPoint(obj *DrawObject, abs Coordinate, yield func(DrawPrimitive) bool) bool {
	return yield(DrawPrimitive{
		X:      abs.X - markerSize/2,
		Y:      abs.Y - markerSize/2,
		Width:  markerSize,
		Height: markerSize,
		Parent: obj.ID,
		Shape:  ShapeMarker,
	})
}

func renderLabel(obj *DrawObject, abs Coordinate, yield func(DrawPrimitive) bool) bool {
	w, h := measureLabel(obj.Text)
	return yield(DrawPrimitive{
		X:      abs.X,
		Y:      abs.Y,
		Width:  w,
		Height: h,
		Parent: obj.ID,
		Shape:  ShapeText,
		Text:   obj.Text,
	})
}

// renderAxis draws an axis whose position is the top of the y-axis. The
// economic origin is axisHeight below it.
func (c *Canvas) renderAxis(obj *DrawObject, abs Coordinate, yield func(DrawPrimitive) bool) bool {
	if c.showingParentGuides {
		for _, id := range obj.Children {
			if !c.renderGuides(c.objects[id], abs, yield) {
				return false
			}
		}
	}

	originY := abs.Y + axisHeight

	for i := 1; float64(i)*tickSpacing <= axisWidth; i++ {
		x := abs.X + float64(i)*tickSpacing
		if !yield(DrawPrimitive{
			X: x, Y: originY + axisStroke, Width: 1, Height: tickLength,
			Parent: obj.ID, Shape: ShapeRect,
		}) {
			return false
		}
	}
	for i := 1; float64(i)*tickSpacing <= axisHeight; i++ {
		y := originY - float64(i)*tickSpacing
		if !yield(DrawPrimitive{
			X: abs.X - tickLength, Y: y, Width: tickLength, Height: 1,
			Parent: obj.ID, Shape: ShapeRect,
		}) {
			return false
		}
	}

	// x-axis
	if !yield(DrawPrimitive{
		X: abs.X, Y: originY, Width: axisWidth, Height: axisStroke,
		Parent: obj.ID, Shape: ShapeRect,
	}) {
		return false
	}
	// y-axis
	return yield(DrawPrimitive{
		X: abs.X, Y: abs.Y, Width: axisStroke, Height: axisHeight + axisStroke,
		Parent: obj.ID, Shape: ShapeRect,
	})
}

// renderGuides draws dashed lines from a bound child across to the y-axis and
// down to the x-axis. The dashes belong to the child.
func (c *Canvas) renderGuides(child *DrawObject, axisAbs Coordinate, yield func(DrawPrimitive) bool) bool {
	pos := axisAbs.Add(child.Position)
	originY := axisAbs.Y + axisHeight

	if !dashes(child.ID, pos.X, pos.Y, axisAbs.X, pos.Y, yield) {
		return false
	}
	return dashes(child.ID, pos.X, pos.Y, pos.X, originY, yield)
}

// dashes emits a horizontal or vertical dashed guide from (x1, y1) to (x2, y2).
func dashes(owner ObjectID, x1, y1, x2, y2 float64, yield func(DrawPrimitive) bool) bool {
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return true
	}
	ux, uy := (x2-x1)/length, (y2-y1)/length

	for d := 0.0; d < length; d += 2 * guideDash {
		end := math.Min(d+guideDash, length)
		sx, sy := x1+ux*d, y1+uy*d
		ex, ey := x1+ux*end, y1+uy*end
		p := segmentBox(owner, sx, sy, ex, ey, 1)
		p.Shape = ShapeGuide
		if !yield(p) {
			return false
		}
	}
	return true
}

// renderLine draws a supply or demand line through its anchor. A bound line is
// clipped to the quadrant of its parent axis, a free line to an axis-sized box
// centred on the anchor.
func (c *Canvas) renderLine(obj *DrawObject, abs Coordinate, yield func(DrawPrimitive) bool) bool {
	var minX, minY, maxX, maxY float64
	if parent := c.Object(obj.Parent); parent != nil && parent.Kind == KindAxis {
		axisAbs := abs.Sub(obj.Position)
		minX, minY = axisAbs.X, axisAbs.Y
		maxX, maxY = axisAbs.X+axisWidth, axisAbs.Y+axisHeight
	} else {
		minX, minY = abs.X-axisWidth/2, abs.Y-axisHeight/2
		maxX, maxY = abs.X+axisWidth/2, abs.Y+axisHeight/2
	}

	// Screen y grows downwards, so a positive gradient has a negative slope.
	slope := -obj.Gradient
	t0, t1, ok := clipLine(abs, slope, minX, minY, maxX, maxY)
	if !ok {
		return true
	}

	length := (t1 - t0) * math.Sqrt(1+slope*slope)
	n := max(1, int(math.Ceil(length/segmentLength)))
	step := (t1 - t0) / float64(n)
	for i := 0; i < n; i++ {
		a, b := t0+float64(i)*step, t0+float64(i+1)*step
		p := segmentBox(obj.ID, abs.X+a, abs.Y+slope*a, abs.X+b, abs.Y+slope*b, lineThickness)
		if !yield(p) {
			return false
		}
	}
	return true
}

// clipLine intersects the line (anchor.X+t, anchor.Y+slope*t) with a box and
// returns the parameter range inside it.
func clipLine(anchor Coordinate, slope, minX, minY, maxX, maxY float64) (float64, float64, bool) {
	t0, t1 := minX-anchor.X, maxX-anchor.X

	switch {
	case slope == 0:
		if anchor.Y < minY || anchor.Y > maxY {
			return 0, 0, false
		}
	default:
		a, b := (minY-anchor.Y)/slope, (maxY-anchor.Y)/slope
		if a > b {
			a, b = b, a
		}
		t0, t1 = math.Max(t0, a), math.Min(t1, b)
	}

	if t0 >= t1 {
		return 0, 0, false
	}
	return t0, t1, true
}

// segmentBox wraps a segment in a box padded by half its thickness.
func segmentBox(owner ObjectID, x1, y1, x2, y2, thickness float64) DrawPrimitive {
	pad := thickness / 2
	left, top := math.Min(x1, x2)-pad, math.Min(y1, y2)-pad
	return DrawPrimitive{
		X:      left,
		Y:      top,
		Width:  math.Abs(x2-x1) + thickness,
		Height: math.Abs(y2-y1) + thickness,
		Parent: owner,
		Shape:  ShapeLine,
		X1:     x1, Y1: y1, X2: x2, Y2: y2,
	}
}

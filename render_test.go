package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAxisCanvas(t *testing.T) (*Canvas, ObjectID) {
	t.Helper()
	c := NewCanvas()
	axis := c.NewAxis(Coordinate{X: 150, Y: 90})
	require.NoError(t, c.AddObject(axis))
	return c, axis
}

func TestRenderAxis(t *testing.T) {
	c, axis := newAxisCanvas(t)
	primitives := c.Primitives()

	// 8 ticks along x, 6 along y, then both axis lines.
	require.Len(t, primitives, 16)
	for _, p := range primitives {
		assert.Equal(t, axis, p.Parent)
		assert.Equal(t, ShapeRect, p.Shape)
	}

	assert.Equal(t, DrawPrimitive{X: 200, Y: 392, Width: 1, Height: 4, Parent: axis}, primitives[0])
	assert.Equal(t, DrawPrimitive{X: 146, Y: 340, Width: 4, Height: 1, Parent: axis}, primitives[8])
	assert.Equal(t, DrawPrimitive{X: 150, Y: 390, Width: 400, Height: 2, Parent: axis}, primitives[14])
	assert.Equal(t, DrawPrimitive{X: 150, Y: 90, Width: 2, Height: 302, Parent: axis}, primitives[15])
}

func TestRenderChildrenFirst(t *testing.T) {
	c, axis := newAxisCanvas(t)
	point := c.NewPoint(Coordinate{X: 100, Y: 100})
	label := c.NewLabel(Coordinate{X: 3, Y: 4}, "P")
	require.NoError(t, c.AddChild(axis, point))
	require.NoError(t, c.AddChild(point, label))

	primitives := c.Primitives()
	require.Len(t, primitives, 18)

	assert.Equal(t, label, primitives[0].Parent)
	assert.Equal(t, ShapeText, primitives[0].Shape)
	assert.Equal(t, "P", primitives[0].Text)
	assert.Equal(t, 253.0, primitives[0].X)
	assert.Equal(t, 194.0, primitives[0].Y)
	assert.Positive(t, primitives[0].Width)
	assert.Positive(t, primitives[0].Height)

	assert.Equal(t, DrawPrimitive{X: 246.5, Y: 186.5, Width: 7, Height: 7, Parent: point, Shape: ShapeMarker}, primitives[1])
	assert.Equal(t, axis, primitives[2].Parent)
}

func TestRenderSubtreeAtOrigin(t *testing.T) {
	c, axis := newAxisCanvas(t)
	point := c.NewPoint(Coordinate{X: 10, Y: 10})
	require.NoError(t, c.AddChild(axis, point))

	var got []DrawPrimitive
	for p := range c.Render(axis, Coordinate{X: 0, Y: 0}) {
		got = append(got, p)
	}
	require.Len(t, got, 17)
	assert.Equal(t, 6.5, got[0].X)
	assert.Equal(t, 6.5, got[0].Y)

	count := 0
	for range c.Render(axis, Coordinate{}) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)

	for range c.Render(99, Coordinate{}) {
		t.Fatal("unknown object rendered")
	}
}

func TestRenderParentGuides(t *testing.T) {
	c, axis := newAxisCanvas(t)
	point := c.NewPoint(Coordinate{X: 100, Y: 100})
	require.NoError(t, c.AddChild(axis, point))

	assert.Len(t, c.Primitives(), 17)

	c.SetShowingParentGuides(true)
	primitives := c.Primitives()

	guides := 0
	for _, p := range primitives {
		if p.Shape == ShapeGuide {
			guides++
			assert.Equal(t, point, p.Parent)
			assert.GreaterOrEqual(t, p.X, 149.5)
			assert.LessOrEqual(t, p.Bottom(), 390.5)
		}
	}
	// 100 units across to the y-axis and 200 down to the x-axis, in dashes
	// of 6 with gaps of 6.
	assert.Equal(t, 9+17, guides)
	assert.Len(t, primitives, 17+guides)
	assert.Equal(t, ShapeMarker, primitives[0].Shape)
	assert.Equal(t, ShapeGuide, primitives[1].Shape)
}

func TestRenderBoundLinesStayInQuadrant(t *testing.T) {
	tests := []struct {
		name       string
		pos        Coordinate
		gradient   float64
		start, end Coordinate
		segments   int
	}{
		{"supply", Coordinate{X: 0, Y: 300}, 1, Coordinate{X: 150, Y: 390}, Coordinate{X: 450, Y: 90}, 54},
		{"demand", Coordinate{X: 252, Y: 252}, -1, Coordinate{X: 150, Y: 90}, Coordinate{X: 450, Y: 390}, 54},
		{"flat", Coordinate{X: 100, Y: 150}, 0, Coordinate{X: 150, Y: 240}, Coordinate{X: 550, Y: 240}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, axis := newAxisCanvas(t)
			line := c.NewSupplyDemandLine(tt.pos, tt.gradient)
			require.NoError(t, c.AddChild(axis, line))

			var segments []DrawPrimitive
			for p := range c.Render(line, c.Object(line).Position.Add(c.Object(axis).Position)) {
				segments = append(segments, p)
			}
			require.Len(t, segments, tt.segments)

			for _, p := range segments {
				assert.Equal(t, ShapeLine, p.Shape)
				assert.Equal(t, line, p.Parent)
				assert.GreaterOrEqual(t, p.X, 149.0)
				assert.LessOrEqual(t, p.Right(), 551.0)
				assert.GreaterOrEqual(t, p.Y, 89.0)
				assert.LessOrEqual(t, p.Bottom(), 391.0)
			}

			first, last := segments[0], segments[len(segments)-1]
			assert.InDelta(t, tt.start.X, first.X1, 1e-9)
			assert.InDelta(t, tt.start.Y, first.Y1, 1e-9)
			assert.InDelta(t, tt.end.X, last.X2, 1e-9)
			assert.InDelta(t, tt.end.Y, last.Y2, 1e-9)
		})
	}
}

func TestRenderFreeLine(t *testing.T) {
	c := NewCanvas()
	line := c.NewSupplyDemandLine(Coordinate{X: 1000, Y: 1000}, 0.5)
	require.NoError(t, c.AddObject(line))

	primitives := c.Primitives()
	require.NotEmpty(t, primitives)
	for _, p := range primitives {
		assert.GreaterOrEqual(t, p.X, 799.0)
		assert.LessOrEqual(t, p.Right(), 1201.0)
		assert.GreaterOrEqual(t, p.Y, 849.0)
		assert.LessOrEqual(t, p.Bottom(), 1151.0)
	}
}

func TestRenderLineOutsideQuadrant(t *testing.T) {
	c, axis := newAxisCanvas(t)
	line := c.NewSupplyDemandLine(Coordinate{X: 0, Y: 500}, 0)
	require.NoError(t, c.AddChild(axis, line))

	assert.Len(t, c.Primitives(), 16)
}

func TestClipLine(t *testing.T) {
	t0, t1, ok := clipLine(Coordinate{X: 0, Y: 0}, 1, -10, -5, 10, 5)
	require.True(t, ok)
	assert.Equal(t, -5.0, t0)
	assert.Equal(t, 5.0, t1)

	_, _, ok = clipLine(Coordinate{X: 0, Y: 20}, 0, -10, -5, 10, 5)
	assert.False(t, ok)
}

func TestRefreshTracksUsedExtent(t *testing.T) {
	sizer := &recordingSizer{}
	c, _ := newAxisCanvas(t)
	c.SetScrollbarSizer(sizer)

	c.Refresh()
	assert.Equal(t, 1000.0, c.UsedWidth())
	assert.Equal(t, 0, sizer.calls)

	far := c.NewPoint(Coordinate{X: 2000, Y: 100})
	require.NoError(t, c.AddObject(far))
	c.Refresh()
	assert.Equal(t, 2003.5+650, c.UsedWidth())
	assert.Equal(t, 1000.0, c.UsedHeight())
	assert.Equal(t, 1, sizer.calls)
	assert.Equal(t, c.UsedWidth(), sizer.lastWidth)
}

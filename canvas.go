package main

import (
	"slices"
)

type Canvas struct {
	objects  []*DrawObject // index is the ObjectID; slot 0 is the canvas itself
	children []ObjectID

	zoomPan             ZoomPanSettings
	showingParentGuides bool

	width  float64
	height float64

	// Raw extent reached by any primitive. See UsedWidth.
	usedWidth  float64
	usedHeight float64

	scrollbars ScrollbarSizer
}

func NewCanvas() *Canvas {
	return &Canvas{
		objects:    []*DrawObject{nil},
		zoomPan:    ZoomPanSettings{Zoom: 1.0},
		width:      pageWidth,
		height:     pageHeight,
		usedWidth:  minUsedExtent,
		usedHeight: minUsedExtent,
	}
}

// SetScrollbarSizer registers the collaborator told about extent changes.
func (c *Canvas) SetScrollbarSizer(s ScrollbarSizer) {
	c.scrollbars = s
}

func (c *Canvas) Width() float64  { return c.width }
func (c *Canvas) Height() float64 { return c.height }

func (c *Canvas) ZoomPan() ZoomPanSettings {
	return c.zoomPan
}

func (c *Canvas) Zoom() float64 {
	return c.zoomPan.Zoom
}

// UsedWidth is the scrollable width. Small drawings still get a full page of
// room, larger ones get padding past the furthest primitive.
func (c *Canvas) UsedWidth() float64 {
	return usedExtent(c.usedWidth)
}

func (c *Canvas) UsedHeight() float64 {
	return usedExtent(c.usedHeight)
}

func usedExtent(raw float64) float64 {
	if raw < usedExtentFloor {
		return minUsedExtent
	}
	return raw + usedExtentPad
}

func (c *Canvas) clampPanToExtent() {
	c.zoomPan.X = clampPan(c.zoomPan.X, c.usedWidth, c.zoomPan.Zoom)
	c.zoomPan.Y = clampPan(c.zoomPan.Y, c.usedHeight, c.zoomPan.Zoom)
}

func (c *Canvas) SetPan(x, y float64) {
	c.zoomPan.X = x
	c.zoomPan.Y = y
	c.clampPanToExtent()
}

func (c *Canvas) SetZoom(zoom float64) {
	c.zoomPan.Zoom = clampZoom(zoom)
	c.clampPanToExtent()
}

func (c *Canvas) ZoomIn() {
	c.zoomPan.Zoom = nextZoomIn(c.zoomPan.Zoom)
	c.clampPanToExtent()
}

func (c *Canvas) ZoomOut() {
	c.zoomPan.Zoom = nextZoomOut(c.zoomPan.Zoom)
	c.clampPanToExtent()
}

// ScrollY pans vertically by a device-space amount.
func (c *Canvas) ScrollY(dy float64) {
	c.zoomPan.Y += dy
	c.clampPanToExtent()
}

func (c *Canvas) ScrollX(dx float64) {
	c.zoomPan.X += dx
	c.clampPanToExtent()
}

func (c *Canvas) ShowingParentGuides() bool {
	return c.showingParentGuides
}

func (c *Canvas) SetShowingParentGuides(show bool) {
	c.showingParentGuides = show
}

// ToWorld maps a device position through the current zoom and pan.
func (c *Canvas) ToWorld(deviceX, deviceY float64) Coordinate {
	return ToWorld(deviceX, deviceY, c.zoomPan)
}

func (c *Canvas) ToDevice(worldX, worldY float64) (float64, float64) {
	return ToDevice(worldX, worldY, c.zoomPan)
}

// Refresh runs a render pass over every attached object, recomputes the used
// extent and tells the scrollbar collaborator when it changed.
func (c *Canvas) Refresh() {
	oldWidth, oldHeight := c.UsedWidth(), c.UsedHeight()

	c.usedWidth = minUsedExtent
	c.usedHeight = minUsedExtent
	for p := range c.AllPrimitives() {
		if p.Right() > c.usedWidth {
			c.usedWidth = p.Right()
		}
		if p.Bottom() > c.usedHeight {
			c.usedHeight = p.Bottom()
		}
	}

	if c.UsedWidth() != oldWidth || c.UsedHeight() != oldHeight {
		if c.scrollbars != nil {
			c.scrollbars.UpdateScrollbarSizes(c.UsedWidth(), c.UsedHeight())
		}
	}
}

// Primitives collects a full render pass in graph order.
func (c *Canvas) Primitives() []DrawPrimitive {
	return slices.Collect(c.AllPrimitives())
}

// GetObjectAtPosition hit-tests a device position.
func (c *Canvas) GetObjectAtPosition(deviceX, deviceY float64) ObjectID {
	w := c.ToWorld(deviceX, deviceY)
	return c.FindObjectAt(w.X, w.Y)
}

// ScrollbarVisible is the thumb size for a viewport of the given device size,
// on a 0..scrollbarRange track.
func (c *Canvas) ScrollbarVisible(viewWidth, viewHeight float64) (float64, float64) {
	zoom := c.zoomPan.Zoom
	h := (viewWidth / zoom) / (c.UsedWidth() * zoom) * scrollbarRange / zoom
	v := (viewHeight / zoom) / (c.UsedHeight() * zoom) * scrollbarRange / zoom
	return h, v
}

// PanFromScrollbar moves the view to a pair of scrollbar values.
func (c *Canvas) PanFromScrollbar(horizontal, vertical float64) {
	x := horizontal / scrollbarRange * c.UsedWidth() * c.zoomPan.Zoom
	y := vertical / scrollbarRange * c.UsedHeight() * c.zoomPan.Zoom
	c.SetPan(x, y)
}

// ScrollbarFromPan is the inverse of PanFromScrollbar.
func (c *Canvas) ScrollbarFromPan() (float64, float64) {
	zoom := c.zoomPan.Zoom
	h := c.zoomPan.X * scrollbarRange / c.UsedWidth() / zoom
	v := c.zoomPan.Y * scrollbarRange / c.UsedHeight() / zoom
	return h, v
}

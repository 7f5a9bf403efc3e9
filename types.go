package main

// Coordinate is a point in parent-relative units.
type Coordinate struct {
	X, Y float64
}

func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coordinate) Sub(o Coordinate) Coordinate {
	return Coordinate{X: c.X - o.X, Y: c.Y - o.Y}
}

// ObjectID addresses a DrawObject in the canvas arena.
type ObjectID int

type ObjectKind int

type DrawObject struct {
	ID       ObjectID
	Kind     ObjectKind
	Position Coordinate
	Parent   ObjectID
	Children []ObjectID
	CanDrag  bool

	Text     string  // KindLabel
	Gradient float64 // KindSupplyDemandLine
}

type Shape int

// DrawPrimitive is an absolute-space box produced by a render pass. Parent is
// the object that produced it.
type DrawPrimitive struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Parent ObjectID
	Shape  Shape

	// Segment endpoints for ShapeLine and ShapeGuide.
	X1, Y1, X2, Y2 float64
	// Text for ShapeText; Y is the top of the text box.
	Text string
}

func (p DrawPrimitive) Right() float64 {
	return p.X + p.Width
}

func (p DrawPrimitive) Bottom() float64 {
	return p.Y + p.Height
}

type ZoomPanSettings struct {
	Zoom float64
	X    float64
	Y    float64
}

// BuildContext is the ambient state an ActionFactory captures when a gesture
// happens, before the action executes.
type BuildContext struct {
	Mouse       Coordinate // world space
	Selection   ObjectID
	PrimaryAxis ObjectID
	AxisOrigin  Coordinate // position of the primary axis at build time
	Rand1       int
	Rand2       int
}

// PropertiesEditor is the side panel that shows the selected object.
type PropertiesEditor interface {
	Regenerate()
	Attach(id ObjectID)
	Detach()
}

// ScrollbarSizer is told whenever the used extent of the canvas changes.
type ScrollbarSizer interface {
	UpdateScrollbarSizes(usedWidth, usedHeight float64)
}

// Notifier shows a modal message to the user.
type Notifier interface {
	Notify(title, message string)
}

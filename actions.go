package main

import (
	"fmt"
	"math"
)

type Outcome int

const (
	Applied Outcome = iota
	NoOp
)

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "no-op"
}

// Action is a reversible edit of a document. Execute runs once; afterwards the
// action alternates between Undo and Redo.
type Action interface {
	Name() string
	Execute(d *Document) (Outcome, error)
	Undo(d *Document) error
	Redo(d *Document) error
}

// ActionFactory builds an action from the state captured when the user asked
// for it.
type ActionFactory interface {
	Build(ctx BuildContext) Action
}

type ActionFactoryFunc func(ctx BuildContext) Action

func (f ActionFactoryFunc) Build(ctx BuildContext) Action {
	return f(ctx)
}

const (
	freeLabelText  = "New free label"
	boundLabelText = "New bound label"
)

func randomPosition(ctx BuildContext) Coordinate {
	return Coordinate{X: 250.0 + float64(ctx.Rand1), Y: 100.0 + float64(ctx.Rand2)}
}

func mousePosition(ctx BuildContext) Coordinate {
	return Coordinate{X: math.Trunc(ctx.Mouse.X), Y: math.Trunc(ctx.Mouse.Y)}
}

func boundMousePosition(ctx BuildContext) Coordinate {
	return Coordinate{
		X: math.Trunc(ctx.Mouse.X - ctx.AxisOrigin.X),
		Y: math.Trunc(ctx.Mouse.Y - ctx.AxisOrigin.Y),
	}
}

var (
	InsertAxis = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &insertAction{
			name: "Insert Axis",
			pos:  randomPosition(ctx),
			create: func(c *Canvas, pos Coordinate) ObjectID {
				return c.NewAxis(pos)
			},
		}
	})

	InsertFreeLabelAtRandomPosition = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &insertAction{
			name:   "Insert Free Label",
			pos:    randomPosition(ctx),
			create: newLabelFunc(freeLabelText),
		}
	})

	InsertBoundLabelAtRandomPosition = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &insertAction{
			name:    "Insert Label",
			pos:     randomPosition(ctx),
			bound:   true,
			primary: ctx.PrimaryAxis,
			create:  newLabelFunc(boundLabelText),
		}
	})

	// The supply line starts at the economic origin of the axis. Both lines
	// cross inside the default quadrant.
	InsertSupplyLine = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &insertAction{
			name:    "Insert Supply Line",
			pos:     Coordinate{X: 0, Y: axisHeight},
			bound:   true,
			primary: ctx.PrimaryAxis,
			create:  newLineFunc(1.0),
		}
	})

	InsertDemandLine = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &insertAction{
			name:    "Insert Demand Line",
			pos:     Coordinate{X: 252, Y: 252},
			bound:   true,
			primary: ctx.PrimaryAxis,
			create:  newLineFunc(-1.0),
		}
	})

	InsertFreeLabelAtMouse = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &insertAction{
			name:   "Insert Free Label",
			pos:    mousePosition(ctx),
			create: newLabelFunc(freeLabelText),
		}
	})

	InsertBoundLabelAtMouse = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &insertAction{
			name:    "Insert Label",
			pos:     boundMousePosition(ctx),
			bound:   true,
			primary: ctx.PrimaryAxis,
			create:  newLabelFunc(boundLabelText),
		}
	})

	InsertFreePointAtMouse = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &insertAction{
			name: "Insert Free Point",
			pos:  mousePosition(ctx),
			create: func(c *Canvas, pos Coordinate) ObjectID {
				return c.NewPoint(pos)
			},
		}
	})

	InsertBoundPointAtMouse = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &insertAction{
			name:    "Insert Point",
			pos:     boundMousePosition(ctx),
			bound:   true,
			primary: ctx.PrimaryAxis,
			create: func(c *Canvas, pos Coordinate) ObjectID {
				return c.NewPoint(pos)
			},
		}
	})

	DeleteSelectedObject = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &deleteAction{id: ctx.Selection, owner: NoObject, index: -1}
	})

	SetPrimaryAxis = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &primaryAxisAction{selected: ctx.Selection, previous: ctx.PrimaryAxis}
	})

	ShowParentGuides = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &guidesAction{show: true}
	})

	HideParentGuides = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &guidesAction{show: false}
	})

	BindToPrimaryAxis = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &reparentAction{name: "Bind to Axis", id: ctx.Selection, target: ctx.PrimaryAxis}
	})

	FreeFromParent = ActionFactoryFunc(func(ctx BuildContext) Action {
		return &reparentAction{name: "Free from Axis", id: ctx.Selection, target: CanvasID}
	})
)

// MoveObject records a finished drag. The object is already at to when the
// action first executes.
func MoveObject(id ObjectID, from, to Coordinate) ActionFactory {
	return ActionFactoryFunc(func(ctx BuildContext) Action {
		return &moveAction{id: id, from: from, to: to}
	})
}

// SetLabelText changes the text of the selected label.
func SetLabelText(text string) ActionFactory {
	return ActionFactoryFunc(func(ctx BuildContext) Action {
		return &labelTextAction{id: ctx.Selection, text: text}
	})
}

// SetGradient changes the gradient of the selected supply or demand line.
func SetGradient(gradient float64) ActionFactory {
	return ActionFactoryFunc(func(ctx BuildContext) Action {
		return &gradientAction{id: ctx.Selection, gradient: gradient}
	})
}

func newLabelFunc(text string) func(*Canvas, Coordinate) ObjectID {
	return func(c *Canvas, pos Coordinate) ObjectID {
		return c.NewLabel(pos, text)
	}
}

func newLineFunc(gradient float64) func(*Canvas, Coordinate) ObjectID {
	return func(c *Canvas, pos Coordinate) ObjectID {
		return c.NewSupplyDemandLine(pos, gradient)
	}
}

// insertAction creates one object on Execute and then only attaches or
// detaches that same object.
type insertAction struct {
	name    string
	pos     Coordinate
	bound   bool
	primary ObjectID
	create  func(c *Canvas, pos Coordinate) ObjectID

	owner ObjectID
	id    ObjectID
}

func (a *insertAction) Name() string { return a.name }

func (a *insertAction) Execute(d *Document) (Outcome, error) {
	a.owner = CanvasID
	if a.bound {
		if !d.isTopLevelAxis(a.primary) {
			return NoOp, errNoPrimaryAxis
		}
		a.owner = a.primary
	}

	a.id = a.create(d.canvas, a.pos)
	if err := d.canvas.AddChild(a.owner, a.id); err != nil {
		return NoOp, err
	}
	return Applied, nil
}

func (a *insertAction) Undo(d *Document) error {
	return d.canvas.DeleteObjectChild(a.owner, a.id)
}

func (a *insertAction) Redo(d *Document) error {
	return d.canvas.AddChild(a.owner, a.id)
}

type deleteAction struct {
	id    ObjectID
	owner ObjectID
	index int
}

func (a *deleteAction) Name() string { return "Delete" }

func (a *deleteAction) Execute(d *Document) (Outcome, error) {
	if a.id == NoObject || !d.canvas.IsAttached(a.id) {
		return NoOp, errNoObjectSelected
	}
	owner, index, err := d.canvas.Delete(a.id)
	if err != nil {
		return NoOp, err
	}
	a.owner, a.index = owner, index
	return Applied, nil
}

func (a *deleteAction) Undo(d *Document) error {
	return d.canvas.insertChild(a.owner, a.id, a.index)
}

func (a *deleteAction) Redo(d *Document) error {
	return d.canvas.DeleteObjectChild(a.owner, a.id)
}

type primaryAxisAction struct {
	selected ObjectID
	previous ObjectID
}

func (a *primaryAxisAction) Name() string { return "Set Primary Axis" }

func (a *primaryAxisAction) Execute(d *Document) (Outcome, error) {
	if !d.isTopLevelAxis(a.selected) {
		return NoOp, errNoAxisSelected
	}
	if a.selected == a.previous {
		return NoOp, nil
	}
	d.primaryAxis = a.selected
	return Applied, nil
}

func (a *primaryAxisAction) Undo(d *Document) error {
	d.primaryAxis = a.previous
	return nil
}

func (a *primaryAxisAction) Redo(d *Document) error {
	d.primaryAxis = a.selected
	return nil
}

type guidesAction struct {
	show bool
}

func (a *guidesAction) Name() string {
	if a.show {
		return "Show Parent Guides"
	}
	return "Hide Parent Guides"
}

func (a *guidesAction) Execute(d *Document) (Outcome, error) {
	if d.canvas.ShowingParentGuides() == a.show {
		return NoOp, nil
	}
	d.canvas.SetShowingParentGuides(a.show)
	return Applied, nil
}

func (a *guidesAction) Undo(d *Document) error {
	d.canvas.SetShowingParentGuides(!a.show)
	return nil
}

func (a *guidesAction) Redo(d *Document) error {
	d.canvas.SetShowingParentGuides(a.show)
	return nil
}

type moveAction struct {
	id       ObjectID
	from, to Coordinate
}

func (a *moveAction) Name() string { return "Move" }

func (a *moveAction) Execute(d *Document) (Outcome, error) {
	if d.canvas.Object(a.id) == nil {
		return NoOp, fmt.Errorf("move %d: %w", a.id, ErrUnknownObject)
	}
	if a.from == a.to {
		return NoOp, nil
	}
	d.canvas.SetPosition(a.id, a.to)
	return Applied, nil
}

func (a *moveAction) Undo(d *Document) error {
	d.canvas.SetPosition(a.id, a.from)
	return nil
}

func (a *moveAction) Redo(d *Document) error {
	d.canvas.SetPosition(a.id, a.to)
	return nil
}

type labelTextAction struct {
	id       ObjectID
	text     string
	previous string
}

func (a *labelTextAction) Name() string { return "Edit Label" }

func (a *labelTextAction) Execute(d *Document) (Outcome, error) {
	obj := d.canvas.Object(a.id)
	if obj == nil || obj.Kind != KindLabel || !d.canvas.IsAttached(a.id) {
		return NoOp, errNoLabelSelected
	}
	if obj.Text == a.text {
		return NoOp, nil
	}
	a.previous = obj.Text
	d.canvas.SetLabelText(a.id, a.text)
	return Applied, nil
}

func (a *labelTextAction) Undo(d *Document) error {
	d.canvas.SetLabelText(a.id, a.previous)
	return nil
}

func (a *labelTextAction) Redo(d *Document) error {
	d.canvas.SetLabelText(a.id, a.text)
	return nil
}

type gradientAction struct {
	id       ObjectID
	gradient float64
	previous float64
}

func (a *gradientAction) Name() string { return "Edit Gradient" }

func (a *gradientAction) Execute(d *Document) (Outcome, error) {
	obj := d.canvas.Object(a.id)
	if obj == nil || obj.Kind != KindSupplyDemandLine || !d.canvas.IsAttached(a.id) {
		return NoOp, errNoLineSelected
	}
	if math.IsNaN(a.gradient) || math.IsInf(a.gradient, 0) {
		return NoOp, &ValidationError{Title: "Invalid gradient", Message: "The gradient must be a finite number."}
	}
	if obj.Gradient == a.gradient {
		return NoOp, nil
	}
	a.previous = obj.Gradient
	d.canvas.SetGradient(a.id, a.gradient)
	return Applied, nil
}

func (a *gradientAction) Undo(d *Document) error {
	d.canvas.SetGradient(a.id, a.previous)
	return nil
}

func (a *gradientAction) Redo(d *Document) error {
	d.canvas.SetGradient(a.id, a.gradient)
	return nil
}

// reparentAction moves an object to a new owner without moving it on screen:
// its relative position is rewritten against the new owner.
type reparentAction struct {
	name   string
	id     ObjectID
	target ObjectID

	fromOwner ObjectID
	fromIndex int
	fromPos   Coordinate
	toPos     Coordinate
}

func (a *reparentAction) Name() string { return a.name }

func (a *reparentAction) Execute(d *Document) (Outcome, error) {
	obj := d.canvas.Object(a.id)
	if obj == nil || !d.canvas.IsAttached(a.id) {
		return NoOp, errNoObjectSelected
	}

	targetOrigin := Coordinate{}
	if a.target == CanvasID {
		if obj.Parent == CanvasID {
			return NoOp, errAlreadyFree
		}
	} else {
		if !d.isTopLevelAxis(a.target) {
			return NoOp, errNoPrimaryAxis
		}
		if obj.Kind == KindAxis {
			return NoOp, errCannotBind
		}
		if obj.Parent == a.target {
			return NoOp, nil
		}
		targetOrigin, _ = d.canvas.AbsolutePosition(a.target)
	}

	abs, _ := d.canvas.AbsolutePosition(a.id)
	a.fromPos = obj.Position
	a.toPos = abs.Sub(targetOrigin)

	owner, index, err := d.canvas.Delete(a.id)
	if err != nil {
		return NoOp, err
	}
	a.fromOwner, a.fromIndex = owner, index
	obj.Position = a.toPos
	if err := d.canvas.AddChild(a.target, a.id); err != nil {
		obj.Position = a.fromPos
		if rerr := d.canvas.insertChild(owner, a.id, index); rerr != nil {
			return NoOp, fmt.Errorf("%w (restore failed: %v)", err, rerr)
		}
		return NoOp, err
	}
	return Applied, nil
}

func (a *reparentAction) Undo(d *Document) error {
	if err := d.canvas.DeleteObjectChild(a.target, a.id); err != nil {
		return err
	}
	d.canvas.SetPosition(a.id, a.fromPos)
	return d.canvas.insertChild(a.fromOwner, a.id, a.fromIndex)
}

func (a *reparentAction) Redo(d *Document) error {
	if err := d.canvas.DeleteObjectChild(a.fromOwner, a.id); err != nil {
		return err
	}
	d.canvas.SetPosition(a.id, a.toPos)
	return d.canvas.AddChild(a.target, a.id)
}

package main

import (
	"fmt"
	"slices"
)

func (k ObjectKind) String() string {
	switch k {
	case KindAxis:
		return "axis"
	case KindLabel:
		return "label"
	case KindPoint:
		return "point"
	case KindSupplyDemandLine:
		return "supply/demand line"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Name is what the status bar calls the object.
func (o *DrawObject) Name() string {
	if o.Kind == KindSupplyDemandLine {
		if o.Gradient < 0 {
			return "demand line"
		}
		return "supply line"
	}
	return o.Kind.String()
}

// The arena never frees objects. Detached objects stay addressable so that
// actions can put back the exact same object on undo or redo.
func (c *Canvas) newObject(kind ObjectKind, pos Coordinate) *DrawObject {
	obj := &DrawObject{
		ID:       ObjectID(len(c.objects)),
		Kind:     kind,
		Position: pos,
		Parent:   NoObject,
		CanDrag:  true,
	}
	c.objects = append(c.objects, obj)
	return obj
}

func (c *Canvas) NewAxis(pos Coordinate) ObjectID {
	return c.newObject(KindAxis, pos).ID
}

func (c *Canvas) NewLabel(pos Coordinate, text string) ObjectID {
	obj := c.newObject(KindLabel, pos)
	obj.Text = text
	return obj.ID
}

func (c *Canvas) NewPoint(pos Coordinate) ObjectID {
	return c.newObject(KindPoint, pos).ID
}

func (c *Canvas) NewSupplyDemandLine(pos Coordinate, gradient float64) ObjectID {
	obj := c.newObject(KindSupplyDemandLine, pos)
	obj.Gradient = gradient
	obj.CanDrag = false
	return obj.ID
}

// Object returns the object for id, or nil when id is not in the arena.
func (c *Canvas) Object(id ObjectID) *DrawObject {
	if id <= CanvasID || int(id) >= len(c.objects) {
		return nil
	}
	return c.objects[id]
}

func (c *Canvas) childList(owner ObjectID) (*[]ObjectID, error) {
	if owner == CanvasID {
		return &c.children, nil
	}
	obj := c.Object(owner)
	if obj == nil {
		return nil, fmt.Errorf("owner %d: %w", owner, ErrUnknownObject)
	}
	return &obj.Children, nil
}

// AddObject appends obj to the top-level list.
func (c *Canvas) AddObject(id ObjectID) error {
	return c.insertChild(CanvasID, id, -1)
}

// AddChild appends id to parent's child list.
func (c *Canvas) AddChild(parent, id ObjectID) error {
	return c.insertChild(parent, id, -1)
}

// insertChild puts id into owner's child list at index, or at the end when
// index is out of range.
func (c *Canvas) insertChild(owner, id ObjectID, index int) error {
	obj := c.Object(id)
	if obj == nil {
		return fmt.Errorf("object %d: %w", id, ErrUnknownObject)
	}
	if obj.Parent != NoObject {
		return fmt.Errorf("object %d owned by %d: %w", id, obj.Parent, ErrAlreadyParented)
	}
	list, err := c.childList(owner)
	if err != nil {
		return err
	}
	for anc := owner; anc != CanvasID && anc != NoObject; anc = c.objects[anc].Parent {
		if anc == id {
			return fmt.Errorf("object %d under %d: %w", id, owner, ErrCycle)
		}
	}

	if index < 0 || index > len(*list) {
		*list = append(*list, id)
	} else {
		*list = slices.Insert(*list, index, id)
	}
	obj.Parent = owner
	return nil
}

// removeChild detaches id from owner and returns the index it had.
func (c *Canvas) removeChild(owner, id ObjectID) (int, error) {
	obj := c.Object(id)
	if obj == nil {
		return -1, fmt.Errorf("object %d: %w", id, ErrUnknownObject)
	}
	if obj.Parent != owner {
		return -1, fmt.Errorf("object %d not under %d: %w", id, owner, ErrNotChild)
	}
	list, err := c.childList(owner)
	if err != nil {
		return -1, err
	}
	index := slices.Index(*list, id)
	if index < 0 {
		return -1, fmt.Errorf("object %d missing from %d: %w", id, owner, ErrNotChild)
	}
	*list = slices.Delete(*list, index, index+1)
	obj.Parent = NoObject
	return index, nil
}

// DeleteChild removes a top-level object.
func (c *Canvas) DeleteChild(id ObjectID) error {
	_, err := c.removeChild(CanvasID, id)
	return err
}

// DeleteObjectChild removes id from parent's children.
func (c *Canvas) DeleteObjectChild(parent, id ObjectID) error {
	_, err := c.removeChild(parent, id)
	return err
}

// Delete detaches id from whichever owner holds it. The subtree below id is
// left intact so it can be reattached later. It returns the previous owner and
// the index id had in the owner's list.
func (c *Canvas) Delete(id ObjectID) (ObjectID, int, error) {
	obj := c.Object(id)
	if obj == nil {
		return NoObject, -1, fmt.Errorf("object %d: %w", id, ErrUnknownObject)
	}
	owner := obj.Parent
	if owner == NoObject {
		return NoObject, -1, fmt.Errorf("object %d is detached: %w", id, ErrNotChild)
	}
	index, err := c.removeChild(owner, id)
	if err != nil {
		return NoObject, -1, err
	}
	return owner, index, nil
}

// IsAttached reports whether id is reachable from the canvas.
func (c *Canvas) IsAttached(id ObjectID) bool {
	obj := c.Object(id)
	for obj != nil {
		if obj.Parent == CanvasID {
			return true
		}
		obj = c.Object(obj.Parent)
	}
	return false
}

// Children returns a copy of the top-level list.
func (c *Canvas) Children() []ObjectID {
	return slices.Clone(c.children)
}

func (c *Canvas) ChildrenOf(id ObjectID) []ObjectID {
	if id == CanvasID {
		return c.Children()
	}
	if obj := c.Object(id); obj != nil {
		return slices.Clone(obj.Children)
	}
	return nil
}

// AbsolutePosition composes the positions of id and all of its owners.
func (c *Canvas) AbsolutePosition(id ObjectID) (Coordinate, bool) {
	obj := c.Object(id)
	if obj == nil {
		return Coordinate{}, false
	}
	pos := obj.Position
	for p := c.Object(obj.Parent); p != nil; p = c.Object(p.Parent) {
		pos = pos.Add(p.Position)
	}
	return pos, true
}

// SetPosition moves id to pos in its parent's space.
func (c *Canvas) SetPosition(id ObjectID, pos Coordinate) {
	if obj := c.Object(id); obj != nil {
		obj.Position = pos
	}
}

// MoveObject shifts id by a world-space delta.
func (c *Canvas) MoveObject(id ObjectID, dx, dy float64) {
	if obj := c.Object(id); obj != nil {
		obj.Position = Coordinate{X: obj.Position.X + dx, Y: obj.Position.Y + dy}
	}
}

func (c *Canvas) SetLabelText(id ObjectID, text string) {
	if obj := c.Object(id); obj != nil && obj.Kind == KindLabel {
		obj.Text = text
	}
}

func (c *Canvas) SetGradient(id ObjectID, gradient float64) {
	if obj := c.Object(id); obj != nil && obj.Kind == KindSupplyDemandLine {
		obj.Gradient = gradient
	}
}

package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func boolDigit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Serialise writes the canvas and everything attached to it:
//
//	{guides,width,height,zoom,panX,panY,n,len:child...}
//
// Each child is length prefixed so that text payloads never need quoting.
func (c *Canvas) Serialise() string {
	var b strings.Builder
	fmt.Fprintf(&b, "{%d,%f,%f,%f,%f,%f,%d,",
		boolDigit(c.showingParentGuides), c.width, c.height,
		c.zoomPan.Zoom, c.zoomPan.X, c.zoomPan.Y, len(c.children))
	for _, id := range c.children {
		child := c.serialiseObject(c.objects[id])
		fmt.Fprintf(&b, "%d:%s", len(child), child)
	}
	b.WriteString("}")
	return b.String()
}

// serialiseObject writes {kind,x,y,canDrag,payload n,len:child...}.
func (c *Canvas) serialiseObject(obj *DrawObject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{%d,%f,%f,%d,", int(obj.Kind), obj.Position.X, obj.Position.Y, boolDigit(obj.CanDrag))

	switch obj.Kind {
	case KindLabel:
		fmt.Fprintf(&b, "%d:%s,", len(obj.Text), obj.Text)
	case KindSupplyDemandLine:
		fmt.Fprintf(&b, "%f,", obj.Gradient)
	}

	fmt.Fprintf(&b, "%d,", len(obj.Children))
	for _, id := range obj.Children {
		child := c.serialiseObject(c.objects[id])
		fmt.Fprintf(&b, "%d:%s", len(child), child)
	}
	b.WriteString("}")
	return b.String()
}

// Deserialise builds a new canvas from Serialise output. Nothing is shared
// with any existing canvas, so a failed parse has no side effects.
func Deserialise(data string) (*Canvas, error) {
	c := NewCanvas()
	r := &serialReader{data: data}

	if err := r.expect('{'); err != nil {
		return nil, err
	}
	guides, err := r.readBool()
	if err != nil {
		return nil, err
	}
	width, err := r.readFloat()
	if err != nil {
		return nil, err
	}
	height, err := r.readFloat()
	if err != nil {
		return nil, err
	}
	zoom, err := r.readFloat()
	if err != nil {
		return nil, err
	}
	panX, err := r.readFloat()
	if err != nil {
		return nil, err
	}
	panY, err := r.readFloat()
	if err != nil {
		return nil, err
	}

	c.showingParentGuides = guides
	c.width, c.height = width, height
	c.zoomPan = ZoomPanSettings{Zoom: clampZoom(zoom), X: panX, Y: panY}

	if err := r.readChildren(c, CanvasID); err != nil {
		return nil, err
	}
	if err := r.expect('}'); err != nil {
		return nil, err
	}
	if !r.done() {
		return nil, r.fail("trailing data")
	}
	return c, nil
}

type serialReader struct {
	data string
	pos  int
	base int // offset of data within the whole input
}

func (r *serialReader) done() bool {
	return r.pos >= len(r.data)
}

func (r *serialReader) fail(reason string) error {
	return &ParseError{Offset: r.base + r.pos, Reason: reason}
}

func (r *serialReader) expect(ch byte) error {
	if r.done() || r.data[r.pos] != ch {
		return r.fail(fmt.Sprintf("expected %q", ch))
	}
	r.pos++
	return nil
}

// field returns the text up to the next occurrence of end and skips past it.
func (r *serialReader) field(end byte) (string, error) {
	i := strings.IndexByte(r.data[r.pos:], end)
	if i < 0 {
		return "", r.fail(fmt.Sprintf("missing %q", end))
	}
	s := r.data[r.pos : r.pos+i]
	r.pos += i + 1
	return s, nil
}

func (r *serialReader) readInt(end byte) (int, error) {
	start := r.pos
	s, err := r.field(end)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		r.pos = start
		return 0, r.fail(fmt.Sprintf("invalid count %q", s))
	}
	return n, nil
}

func (r *serialReader) readFloat() (float64, error) {
	start := r.pos
	s, err := r.field(',')
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.pos = start
		return 0, r.fail(fmt.Sprintf("invalid number %q", s))
	}
	return f, nil
}

func (r *serialReader) readBool() (bool, error) {
	start := r.pos
	s, err := r.field(',')
	if err != nil {
		return false, err
	}
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	r.pos = start
	return false, r.fail(fmt.Sprintf("invalid flag %q", s))
}

// block reads len:<len bytes> and returns a reader over the bytes.
func (r *serialReader) block() (*serialReader, error) {
	n, err := r.readInt(':')
	if err != nil {
		return nil, err
	}
	if n > len(r.data)-r.pos {
		return nil, r.fail(fmt.Sprintf("length %d overruns input", n))
	}
	sub := &serialReader{data: r.data[r.pos : r.pos+n], base: r.base + r.pos}
	r.pos += n
	return sub, nil
}

// readChildren reads n,len:child... and attaches each child to owner.
func (r *serialReader) readChildren(c *Canvas, owner ObjectID) error {
	n, err := r.readInt(',')
	if err != nil {
		return err
	}
	for range n {
		sub, err := r.block()
		if err != nil {
			return err
		}
		id, err := sub.readObject(c)
		if err != nil {
			return err
		}
		if err := c.insertChild(owner, id, -1); err != nil {
			return sub.fail(err.Error())
		}
	}
	return nil
}

func (r *serialReader) readObject(c *Canvas) (ObjectID, error) {
	if err := r.expect('{'); err != nil {
		return NoObject, err
	}
	kindStart := r.pos
	kind, err := r.readInt(',')
	if err != nil {
		return NoObject, err
	}
	x, err := r.readFloat()
	if err != nil {
		return NoObject, err
	}
	y, err := r.readFloat()
	if err != nil {
		return NoObject, err
	}
	canDrag, err := r.readBool()
	if err != nil {
		return NoObject, err
	}

	var obj *DrawObject
	pos := Coordinate{X: x, Y: y}
	switch ObjectKind(kind) {
	case KindAxis:
		obj = c.newObject(KindAxis, pos)
	case KindPoint:
		obj = c.newObject(KindPoint, pos)
	case KindLabel:
		text, err := r.block()
		if err != nil {
			return NoObject, err
		}
		if err := r.expect(','); err != nil {
			return NoObject, err
		}
		obj = c.newObject(KindLabel, pos)
		obj.Text = text.data
	case KindSupplyDemandLine:
		gradient, err := r.readFloat()
		if err != nil {
			return NoObject, err
		}
		obj = c.newObject(KindSupplyDemandLine, pos)
		obj.Gradient = gradient
	default:
		r.pos = kindStart
		return NoObject, r.fail(fmt.Sprintf("unknown object kind %d", kind))
	}
	obj.CanDrag = canDrag

	if err := r.readChildren(c, obj.ID); err != nil {
		return NoObject, err
	}
	if err := r.expect('}'); err != nil {
		return NoObject, err
	}
	if !r.done() {
		return NoObject, r.fail("trailing data in object")
	}
	return obj.ID, nil
}

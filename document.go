package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Document is one open diagram together with its history, selection, file
// and the collaborators that display it.
type Document struct {
	id      uuid.UUID
	canvas  *Canvas
	actions *ActionManager

	primaryAxis ObjectID
	selection   ObjectID
	status      string

	filename       string
	filepath       string
	unsavedChanges bool

	rng *rand.Rand

	// Gesture state between MousePress and MouseRelease.
	mouseDown      Coordinate // device
	panDragMode    bool
	panOnMouseDown Coordinate
	dragging       ObjectID
	dragLast       Coordinate // world
	dragStart      Coordinate // object position at press

	properties PropertiesEditor
	scrollbars ScrollbarSizer
	notifier   Notifier
	log        zerolog.Logger
}

type DocumentOptions struct {
	Properties PropertiesEditor
	Scrollbars ScrollbarSizer
	Notifier   Notifier
	Logger     *zerolog.Logger
	Rand       *rand.Rand

	ShowParentGuides bool
}

type nopCollaborator struct{}

func (nopCollaborator) Regenerate() {}
func (nopCollaborator) Attach(ObjectID) {}
func (nopCollaborator) Detach() {}
func (nopCollaborator) UpdateScrollbarSizes(_, _ float64) {}
func (nopCollaborator) Notify(_, _ string) {}

// NewDocument starts an untitled diagram holding a single primary axis.
func NewDocument(opts DocumentOptions) *Document {
	d := &Document{
		id:             uuid.New(),
		actions:        NewActionManager(),
		selection:      NoObject,
		dragging:       NoObject,
		status:         "Ready",
		unsavedChanges: true,
		rng:            opts.Rand,
		properties:     opts.Properties,
		scrollbars:     opts.Scrollbars,
		notifier:       opts.Notifier,
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if d.properties == nil {
		d.properties = nopCollaborator{}
	}
	if d.scrollbars == nil {
		d.scrollbars = nopCollaborator{}
	}
	if d.notifier == nil {
		d.notifier = nopCollaborator{}
	}
	if opts.Logger != nil {
		d.log = opts.Logger.With().Str("document", d.id.String()).Logger()
	} else {
		d.log = zerolog.Nop()
	}

	c := NewCanvas()
	c.SetShowingParentGuides(opts.ShowParentGuides)
	c.SetZoom(1.0)
	c.SetPan(0, 0)
	d.primaryAxis = c.NewAxis(Coordinate{X: 150, Y: 90})
	c.AddObject(d.primaryAxis)
	d.setCanvas(c)
	return d
}

func (d *Document) setCanvas(c *Canvas) {
	c.SetScrollbarSizer(d.scrollbars)
	d.canvas = c
	c.Refresh()
	c.clampPanToExtent()
	d.scrollbars.UpdateScrollbarSizes(c.UsedWidth(), c.UsedHeight())
}

func (d *Document) ID() uuid.UUID { return d.id }
func (d *Document) Canvas() *Canvas { return d.canvas }
func (d *Document) Actions() *ActionManager { return d.actions }
func (d *Document) PrimaryAxis() ObjectID { return d.primaryAxis }
func (d *Document) Selection() ObjectID { return d.selection }
func (d *Document) Status() string { return d.status }
func (d *Document) FileName() string { return d.filename }
func (d *Document) FilePath() string { return d.filepath }
func (d *Document) UnsavedChanges() bool { return d.unsavedChanges }
func (d *Document) Logger() *zerolog.Logger { return &d.log }
func (d *Document) SetStatus(status string) { d.status = status }
func (d *Document) Notify(title, msg string) { d.notifier.Notify(title, msg) }
func (d *Document) SelectedObject() *DrawObject { return d.canvas.Object(d.selection) }

// Title is the window title: an asterisk marks unsaved changes.
func (d *Document) Title() string {
	mark := ' '
	if d.unsavedChanges {
		mark = '*'
	}
	name := d.filename
	if name == "" {
		name = untitledName
	}
	return fmt.Sprintf("Econogram - %c%s", mark, name)
}

func (d *Document) isTopLevelAxis(id ObjectID) bool {
	obj := d.canvas.Object(id)
	return obj != nil && obj.Kind == KindAxis && obj.Parent == CanvasID
}

// Select attaches the properties editor to id, or detaches it for NoObject.
func (d *Document) Select(id ObjectID) {
	if id != NoObject && !d.canvas.IsAttached(id) {
		id = NoObject
	}
	d.selection = id
	if id == NoObject {
		d.properties.Detach()
		return
	}
	d.properties.Attach(id)
}

// Context snapshots everything an ActionFactory may need.
func (d *Document) Context() BuildContext {
	ctx := BuildContext{
		Mouse:       d.canvas.ToWorld(d.mouseDown.X, d.mouseDown.Y),
		Selection:   d.selection,
		PrimaryAxis: d.primaryAxis,
		Rand1:       d.rng.IntN(350),
		Rand2:       d.rng.IntN(250),
	}
	if axis := d.canvas.Object(d.primaryAxis); axis != nil {
		ctx.AxisOrigin = axis.Position
	}
	return ctx
}

// SetMouse records a device position as if the user had pressed there,
// without hit-testing. Used by hosts that place objects from the keyboard.
func (d *Document) SetMouse(deviceX, deviceY float64) {
	d.mouseDown = Coordinate{X: deviceX, Y: deviceY}
}

// Perform builds an action from the current context and runs it.
func (d *Document) Perform(f ActionFactory) (Outcome, error) {
	return d.perform(f.Build(d.Context()))
}

func (d *Document) perform(a Action) (Outcome, error) {
	outcome, err := d.actions.Add(d, a)
	if err != nil {
		d.log.Warn().Err(err).Str("action", a.Name()).Msg("action refused")
		d.report(err)
		return outcome, err
	}
	if outcome == Applied {
		d.log.Info().Str("action", a.Name()).Msg("action")
		d.changed()
	}
	return outcome, nil
}

func (d *Document) Undo() error {
	a, err := d.actions.Undo(d)
	if err != nil {
		if !errors.Is(err, ErrNothingToUndo) {
			d.log.Error().Err(err).Msg("undo failed")
			d.report(err)
		}
		return err
	}
	d.log.Info().Str("action", a.Name()).Msg("undo")
	d.changed()
	return nil
}

func (d *Document) Redo() error {
	a, err := d.actions.Redo(d)
	if err != nil {
		if !errors.Is(err, ErrNothingToRedo) {
			d.log.Error().Err(err).Msg("redo failed")
			d.report(err)
		}
		return err
	}
	d.log.Info().Str("action", a.Name()).Msg("redo")
	d.changed()
	return nil
}

func (d *Document) report(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		d.notifier.Notify(verr.Title, verr.Message)
		return
	}
	d.notifier.Notify("Error", err.Error())
}

// changed runs after every edit that reached the document.
func (d *Document) changed() {
	d.unsavedChanges = true
	if d.selection != NoObject && !d.canvas.IsAttached(d.selection) {
		d.Select(NoObject)
	}
	d.canvas.Refresh()
	d.properties.Regenerate()
}

// MousePress selects whatever is under the pointer and starts a drag. Empty
// canvas starts a pan.
func (d *Document) MousePress(deviceX, deviceY float64) ObjectID {
	d.mouseDown = Coordinate{X: deviceX, Y: deviceY}
	world := d.canvas.ToWorld(deviceX, deviceY)
	hit := d.canvas.FindObjectAt(world.X, world.Y)

	if hit == NoObject {
		d.panDragMode = true
		zp := d.canvas.ZoomPan()
		d.panOnMouseDown = Coordinate{X: zp.X, Y: zp.Y}
		d.dragging = NoObject
		d.status = "Ready"
		d.Select(NoObject)
		return NoObject
	}

	obj := d.canvas.Object(hit)
	d.panDragMode = false
	d.dragging = hit
	d.dragLast = world
	d.dragStart = obj.Position
	d.status = fmt.Sprintf("You clicked on a %s", obj.Name())
	d.Select(hit)
	return hit
}

func (d *Document) MouseDrag(deviceX, deviceY float64) {
	if d.panDragMode {
		d.canvas.SetPan(
			d.panOnMouseDown.X-deviceX+d.mouseDown.X,
			d.panOnMouseDown.Y-deviceY+d.mouseDown.Y,
		)
		return
	}

	obj := d.canvas.Object(d.dragging)
	if obj == nil || !obj.CanDrag {
		return
	}
	world := d.canvas.ToWorld(deviceX, deviceY)
	delta := world.Sub(d.dragLast)
	d.canvas.MoveObject(obj.ID, delta.X, delta.Y)
	d.dragLast = world
	d.canvas.Refresh()
	d.properties.Regenerate()
}

// MouseRelease ends a gesture. A drag that moved an object is recorded so it
// can be undone.
func (d *Document) MouseRelease() {
	defer func() {
		d.panDragMode = false
		d.dragging = NoObject
	}()
	if d.panDragMode {
		return
	}
	obj := d.canvas.Object(d.dragging)
	if obj == nil || obj.Position == d.dragStart {
		return
	}
	d.perform(&moveAction{id: obj.ID, from: d.dragStart, to: obj.Position})
}

// MouseWheel zooms with ctrl held and scrolls vertically otherwise.
func (d *Document) MouseWheel(notches int, ctrl bool) {
	if ctrl {
		switch {
		case notches > 0:
			d.ZoomOut()
		case notches < 0:
			d.ZoomIn()
		}
		return
	}
	d.canvas.ScrollY(float64(notches) * wheelScroll)
}

func (d *Document) ZoomIn() {
	d.canvas.ZoomIn()
	d.scrollbars.UpdateScrollbarSizes(d.canvas.UsedWidth(), d.canvas.UsedHeight())
}

func (d *Document) ZoomOut() {
	d.canvas.ZoomOut()
	d.scrollbars.UpdateScrollbarSizes(d.canvas.UsedWidth(), d.canvas.UsedHeight())
}

func (d *Document) SetZoom(zoom float64) {
	d.canvas.SetZoom(zoom)
	d.scrollbars.UpdateScrollbarSizes(d.canvas.UsedWidth(), d.canvas.UsedHeight())
}

// ToggleParentGuides performs whichever of the show/hide actions applies.
func (d *Document) ToggleParentGuides() (Outcome, error) {
	if d.canvas.ShowingParentGuides() {
		return d.Perform(HideParentGuides)
	}
	return d.Perform(ShowParentGuides)
}

// Save writes the document to its current path.
func (d *Document) Save() error {
	if d.filepath == "" {
		return ErrNoPath
	}

	serial := Compress(d.canvas.Serialise())
	if err := os.WriteFile(d.filepath, []byte(serial), 0644); err != nil {
		d.log.Error().Err(err).Str("path", d.filepath).Msg("save failed")
		d.notifier.Notify("Could not save", "An error occurred while saving, and thus the file could not be saved.")
		return fmt.Errorf("save %s: %w", d.filepath, err)
	}

	d.log.Info().Str("path", d.filepath).Int("bytes", len(serial)).Msg("save")
	d.unsavedChanges = false
	return nil
}

// SaveAs saves under a new path, adding the .edi extension when missing.
func (d *Document) SaveAs(path string) error {
	if !strings.HasSuffix(strings.ToLower(path), saveExtension) {
		path += saveExtension
	}

	oldPath, oldName := d.filepath, d.filename
	d.filepath, d.filename = path, filepath.Base(path)
	if err := d.Save(); err != nil {
		d.filepath, d.filename = oldPath, oldName
		return err
	}
	return nil
}

// Open replaces the document with the diagram stored at path.
func (d *Document) Open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		d.notifier.Notify("Could not open", "The file could not be read.")
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := d.LoadSerial(string(data)); err != nil {
		return err
	}

	d.filepath, d.filename = path, filepath.Base(path)
	d.unsavedChanges = false
	return nil
}

// LoadSerial replaces the document with a compressed diagram. On error the
// current diagram and its history are left alone.
func (d *Document) LoadSerial(compressed string) error {
	raw, err := Decompress(compressed)
	if err != nil {
		return d.loadFailed(err)
	}
	c, err := Deserialise(raw)
	if err != nil {
		return d.loadFailed(err)
	}

	d.actions.Clear()
	d.Select(NoObject)
	d.dragging = NoObject
	d.panDragMode = false
	d.primaryAxis = NoObject
	for _, id := range c.Children() {
		if c.Object(id).Kind == KindAxis {
			d.primaryAxis = id
			break
		}
	}
	d.setCanvas(c)
	d.unsavedChanges = true
	d.properties.Regenerate()

	d.log.Info().Int("objects", len(c.objects)-1).Msg("load")
	return nil
}

func (d *Document) loadFailed(err error) error {
	d.log.Warn().Err(err).Msg("load failed")
	d.notifier.Notify("Could not open", "The diagram is damaged and could not be loaded.")
	return err
}

// Serial is the compressed form written to .edi files and the clipboard.
func (d *Document) Serial() string {
	return Compress(d.canvas.Serialise())
}

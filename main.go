package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

func main() {
	config := loadConfig()

	logs, err := newLogger(config.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "econogram: cannot open log file: %v\n", err)
		logs, _ = newLogger("")
	}
	defer logs.Close()

	m := initialModel(config, &logs.Logger)
	if len(os.Args) > 1 {
		m.openFile(os.Args[1])
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// Each terminal cell stands for a block of device pixels.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
	panelWidth = 32
)

type textTarget int

const (
	editLabelText textTarget = iota
	editGradient
)

type model struct {
	width    int
	height   int
	cursorX  int
	cursorY  int
	zPanMode bool
	mode     Mode
	help     bool

	doc    *Document
	config *Config

	panel      *propertiesPanel
	messages   *messageBar
	scrollbars *scrollbarState

	fileOp            FileOperation
	filename          string
	fileList          []string
	selectedFileIndex int
	confirmAction     ConfirmAction
	pendingPath       string

	textTarget textTarget
	editText   string

	mouseHeld bool
}

func initialModel(config *Config, logger *zerolog.Logger) model {
	panel := &propertiesPanel{attached: NoObject}
	messages := &messageBar{}
	scrollbars := &scrollbarState{}

	doc := NewDocument(DocumentOptions{
		Properties:       panel,
		Scrollbars:       scrollbars,
		Notifier:         messages,
		Logger:           logger,
		ShowParentGuides: config.ShowParentGuides,
	})

	return model{
		doc:               doc,
		config:            config,
		panel:             panel,
		messages:          messages,
		scrollbars:        scrollbars,
		mode:              ModeNormal,
		selectedFileIndex: -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "esc", "q", "?":
				m.help = false
			}
			return m, nil
		}

		switch m.mode {
		case ModeFileInput:
			return m.handleFileInput(msg)
		case ModeTextInput:
			return m.handleTextInput(msg)
		case ModeConfirm:
			return m.handleConfirm(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.messages.clear()
	key := msg.String()

	switch key {
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		return m.handleNavigation(key, m.getMoveSpeed(key))
	case "z":
		m.zPanMode = !m.zPanMode
		return m, nil
	case "?":
		m.help = true
		return m, nil
	case "q", "ctrl+c":
		if m.doc.UnsavedChanges() && m.config.Confirmations && key == "q" {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case "enter", " ":
		m.clickAtCursor()
	case "a":
		m.perform(InsertAxis)
	case "s":
		m.perform(InsertSupplyLine)
	case "d":
		m.perform(InsertDemandLine)
	case "t":
		m.placeAtCursor(InsertBoundLabelAtMouse)
	case "T":
		m.placeAtCursor(InsertFreeLabelAtMouse)
	case "p":
		m.placeAtCursor(InsertBoundPointAtMouse)
	case "P":
		m.placeAtCursor(InsertFreePointAtMouse)
	case "r":
		m.perform(InsertBoundLabelAtRandomPosition)
	case "R":
		m.perform(InsertFreeLabelAtRandomPosition)
	case "x", "delete", "backspace":
		m.perform(DeleteSelectedObject)
	case "A":
		m.perform(SetPrimaryAxis)
	case "b":
		m.perform(BindToPrimaryAxis)
	case "f":
		m.perform(FreeFromParent)
	case "g":
		m.doc.ToggleParentGuides()
	case "e":
		m.startEdit()
	case "u", "ctrl+z":
		m.undo()
	case "U", "ctrl+r", "ctrl+y":
		m.redo()
	case "+", "=":
		m.doc.ZoomIn()
	case "-":
		m.doc.ZoomOut()
	case "0":
		m.doc.SetZoom(1.0)

	case "ctrl+s":
		if m.doc.FilePath() == "" {
			m.startFileInput(FileOpSave)
			break
		}
		if err := m.doc.Save(); err == nil {
			m.messages.success(fmt.Sprintf("Saved to %s", m.doc.FilePath()))
		}
	case "S":
		m.startFileInput(FileOpSave)
	case "o":
		m.startFileInput(FileOpOpen)
	case "E":
		m.startFileInput(FileOpExportPNG)
	case "c":
		m.copyToClipboard()
	case "v":
		m.pasteFromClipboard()
	}
	return m, nil
}

func (m *model) perform(f ActionFactory) {
	if outcome, err := m.doc.Perform(f); err == nil && outcome == Applied {
		m.messages.success(m.doc.Actions().UndoName())
	}
}

func (m *model) undo() {
	name := m.doc.Actions().UndoName()
	if err := m.doc.Undo(); err != nil {
		m.messages.Notify("Undo", err.Error())
		return
	}
	m.messages.success("Undid " + name)
}

func (m *model) redo() {
	name := m.doc.Actions().RedoName()
	if err := m.doc.Redo(); err != nil {
		m.messages.Notify("Redo", err.Error())
		return
	}
	m.messages.success("Redid " + name)
}

// placeAtCursor runs an at-mouse factory at the keyboard cursor.
func (m *model) placeAtCursor(f ActionFactory) {
	x, y := cellToDevice(m.cursorX, m.cursorY)
	m.doc.SetMouse(x, y)
	m.perform(f)
}

func (m *model) clickAtCursor() {
	x, y := cellToDevice(m.cursorX, m.cursorY)
	m.doc.MousePress(x, y)
	m.doc.MouseRelease()
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal || m.help {
		return m, nil
	}
	cols, rows := m.canvasSize()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.doc.MouseWheel(-1, msg.Ctrl)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.doc.MouseWheel(1, msg.Ctrl)
		return m, nil
	}

	// The last canvas column is the vertical scrollbar.
	if msg.X == cols && msg.Y < rows && msg.Action == tea.MouseActionPress {
		h, _ := m.doc.Canvas().ScrollbarFromPan()
		m.doc.Canvas().PanFromScrollbar(h, float64(msg.Y)/float64(max(rows-1, 1))*scrollbarRange)
		return m, nil
	}

	x, y := cellToDevice(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.X >= cols || msg.Y >= rows {
			return m, nil
		}
		m.messages.clear()
		m.cursorX, m.cursorY = msg.X, msg.Y
		m.doc.MousePress(x, y)
		m.mouseHeld = true
	case tea.MouseActionMotion:
		if m.mouseHeld {
			m.doc.MouseDrag(x, y)
		}
	case tea.MouseActionRelease:
		if m.mouseHeld {
			m.doc.MouseRelease()
			m.mouseHeld = false
		}
	}
	return m, nil
}

func (m *model) startEdit() {
	obj := m.doc.SelectedObject()
	if obj == nil {
		m.messages.Notify(errNoObjectSelected.Title, errNoObjectSelected.Message)
		return
	}
	switch obj.Kind {
	case KindLabel:
		m.textTarget = editLabelText
		m.editText = obj.Text
	case KindSupplyDemandLine:
		m.textTarget = editGradient
		m.editText = strconv.FormatFloat(obj.Gradient, 'f', -1, 64)
	default:
		m.messages.Notify("Nothing to edit", fmt.Sprintf("A %s has no editable properties.", obj.Name()))
		return
	}
	m.mode = ModeTextInput
}

func (m model) handleTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.editText = ""
		return m, nil
	case tea.KeyEnter:
		m.mode = ModeNormal
		text := m.editText
		m.editText = ""
		if m.textTarget == editLabelText {
			m.perform(SetLabelText(text))
			return m, nil
		}
		gradient, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			m.messages.Notify("Invalid gradient", fmt.Sprintf("%q is not a number.", text))
			return m, nil
		}
		m.perform(SetGradient(gradient))
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.editText); len(r) > 0 {
			m.editText = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.editText += " "
		return m, nil
	case tea.KeyRunes:
		m.editText += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = strings.TrimSuffix(m.doc.FileName(), saveExtension)
	if op == FileOpOpen {
		m.scanDiagramFiles()
	}
}

func (m model) handleFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		return m, nil
	case msg.Type == tea.KeyEnter:
		name := strings.TrimSpace(m.filename)
		if name == "" {
			return m, nil
		}
		m.mode = ModeNormal
		m.filename = ""
		m.runFileOperation(name)
		return m, nil
	case msg.String() == "up" && m.fileOp == FileOpOpen:
		if m.selectedFileIndex > 0 {
			m.selectedFileIndex--
			m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], saveExtension)
		}
		return m, nil
	case msg.String() == "down" && m.fileOp == FileOpOpen:
		if m.selectedFileIndex < len(m.fileList)-1 {
			m.selectedFileIndex++
			m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], saveExtension)
		}
		return m, nil
	case msg.Type == tea.KeyBackspace:
		if len(m.filename) > 0 {
			m.filename = m.filename[:len(m.filename)-1]
		}
		return m, nil
	case msg.Type == tea.KeyRunes:
		m.filename += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m *model) runFileOperation(name string) {
	switch m.fileOp {
	case FileOpSave:
		path := m.config.GetSavePath(name)
		if !strings.HasSuffix(strings.ToLower(path), saveExtension) {
			path += saveExtension
		}
		if _, err := os.Stat(path); err == nil && path != m.doc.FilePath() && m.config.Confirmations {
			m.pendingPath = path
			m.confirmAction = ConfirmOverwriteFile
			m.mode = ModeConfirm
			return
		}
		m.saveAs(path)
	case FileOpOpen:
		m.openFile(m.config.GetSavePath(name))
	case FileOpExportPNG:
		path, err := m.doc.ExportPNG(m.config.GetSavePath(name), m.config.Quality())
		if err == nil {
			m.messages.success(fmt.Sprintf("Exported to %s", path))
		}
	}
}

func (m *model) saveAs(path string) {
	if err := m.doc.SaveAs(path); err == nil {
		m.messages.success(fmt.Sprintf("Saved to %s", m.doc.FilePath()))
	}
}

func (m *model) openFile(path string) {
	if filepath.Ext(path) == "" {
		path += saveExtension
	}
	if err := m.doc.Open(path); err == nil {
		m.messages.success(fmt.Sprintf("Opened %s", m.doc.FileName()))
	}
}

func (m model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmOverwriteFile:
			m.saveAs(m.pendingPath)
			m.pendingPath = ""
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
	}
	return m, nil
}

package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle   = lipgloss.NewStyle().Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(panelWidth - 2)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// propertiesPanel shows the selected object next to the canvas.
type propertiesPanel struct {
	attached    ObjectID
	generations int
}

func (p *propertiesPanel) Regenerate() { p.generations++ }
func (p *propertiesPanel) Attach(id ObjectID) { p.attached = id }
func (p *propertiesPanel) Detach() { p.attached = NoObject }

// messageBar holds the last notification until the next key press.
type messageBar struct {
	title   string
	message string
	ok      bool
}

func (b *messageBar) Notify(title, message string) {
	b.title = title
	b.message = strings.ReplaceAll(message, "\n", " ")
	b.ok = false
}

func (b *messageBar) success(message string) {
	b.title = ""
	b.message = message
	b.ok = true
}

func (b *messageBar) clear() {
	*b = messageBar{}
}

type scrollbarState struct {
	usedWidth  float64
	usedHeight float64
}

func (s *scrollbarState) UpdateScrollbarSizes(usedWidth, usedHeight float64) {
	s.usedWidth = usedWidth
	s.usedHeight = usedHeight
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	cols, rows := m.canvasSize()
	var body []string
	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		body = m.fileListView(cols+1, rows)
	} else {
		body = m.canvasView(cols, rows)
	}

	screen := strings.Join(body, "\n")
	if m.panel.attached != NoObject {
		screen = lipgloss.JoinHorizontal(lipgloss.Top, screen, m.panelView(rows))
	}

	return screen + "\n" + m.statusLine() + "\n" + m.messageLine()
}

type cell struct {
	r        rune
	selected bool
}

// canvasView rasterises one render pass onto the terminal grid, plus the
// vertical scrollbar in the last column.
func (m model) canvasView(cols, rows int) []string {
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
		for j := range grid[i] {
			grid[i][j].r = ' '
		}
	}

	canvas := m.doc.Canvas()
	selection := m.doc.Selection()
	set := func(col, row int, r rune, owner ObjectID) {
		if row < 0 || row >= rows || col < 0 || col >= cols {
			return
		}
		grid[row][col] = cell{r: r, selected: selection != NoObject && owner == selection}
	}

	for p := range canvas.AllPrimitives() {
		x0, y0 := canvas.ToDevice(p.X, p.Y)
		x1, y1 := canvas.ToDevice(p.Right(), p.Bottom())

		switch p.Shape {
		case ShapeRect:
			r := '─'
			if y1-y0 > x1-x0 {
				r = '│'
			}
			c0, r0 := deviceToCell(x0, y0)
			c1, r1 := deviceToCell(math.Max(x0, x1-1), math.Max(y0, y1-1))
			for row := r0; row <= r1; row++ {
				for col := c0; col <= c1; col++ {
					set(col, row, r, p.Parent)
				}
			}
		case ShapeLine, ShapeGuide:
			sx, sy := canvas.ToDevice(p.X1, p.Y1)
			ex, ey := canvas.ToDevice(p.X2, p.Y2)
			r := '·'
			if p.Shape == ShapeLine {
				r = lineRune(ex-sx, ey-sy)
			}
			steps := int(math.Ceil(math.Hypot(ex-sx, ey-sy)/(cellWidth/2))) + 1
			for i := 0; i <= steps; i++ {
				t := float64(i) / float64(steps)
				col, row := deviceToCell(sx+(ex-sx)*t, sy+(ey-sy)*t)
				set(col, row, r, p.Parent)
			}
		case ShapeMarker:
			col, row := deviceToCell((x0+x1)/2, (y0+y1)/2)
			set(col, row, '●', p.Parent)
		case ShapeText:
			col, row := deviceToCell(x0, y0)
			for i, line := range strings.Split(p.Text, "\n") {
				for j, r := range []rune(line) {
					set(col+j, row+i, r, p.Parent)
				}
			}
		}
	}

	if m.mode == ModeNormal {
		if m.cursorY < rows && m.cursorX < cols {
			grid[m.cursorY][m.cursorX].r = '█'
		}
	}

	bar := m.scrollbarColumn(rows)
	lines := make([]string, rows)
	for i, row := range grid {
		var b strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].selected == row[start].selected {
				continue
			}
			run := make([]rune, 0, j-start)
			for _, c := range row[start:j] {
				run = append(run, c.r)
			}
			if row[start].selected {
				b.WriteString(selectedStyle.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			start = j
		}
		b.WriteRune(bar[i])
		lines[i] = b.String()
	}
	return lines
}

func lineRune(dx, dy float64) rune {
	switch {
	case math.Abs(dy) < math.Abs(dx)*0.5:
		return '─'
	case math.Abs(dx) < math.Abs(dy)*0.5:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func (m model) scrollbarColumn(rows int) []rune {
	canvas := m.doc.Canvas()
	_, visible := canvas.ScrollbarVisible(float64(m.width)*cellWidth, float64(rows)*cellHeight)
	_, value := canvas.ScrollbarFromPan()

	thumb := max(1, int(math.Round(math.Min(visible, scrollbarRange)/scrollbarRange*float64(rows))))
	top := int(value / scrollbarRange * float64(rows))
	top = max(0, min(top, rows-thumb))

	bar := make([]rune, rows)
	for i := range bar {
		bar[i] = '░'
		if i >= top && i < top+thumb {
			bar[i] = '▓'
		}
	}
	return bar
}

func (m model) fileListView(width, rows int) []string {
	lines := []string{"Select a saved diagram:", strings.Repeat("─", width)}
	if len(m.fileList) == 0 {
		lines = append(lines, fmt.Sprintf("(No %s files found)", saveExtension))
	}
	maxFiles := max(rows-3, 1)
	startIdx := 0
	if m.selectedFileIndex >= maxFiles {
		startIdx = m.selectedFileIndex - maxFiles + 1
	}
	for i := startIdx; i < len(m.fileList) && i < startIdx+maxFiles; i++ {
		prefix := "  "
		if i == m.selectedFileIndex {
			prefix = "> "
		}
		lines = append(lines, prefix+m.fileList[i])
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return lines[:rows]
}

func (m model) panelView(rows int) string {
	canvas := m.doc.Canvas()
	obj := canvas.Object(m.panel.attached)
	if obj == nil {
		return ""
	}
	abs, _ := canvas.AbsolutePosition(obj.ID)

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(strings.ToUpper(obj.Name()[:1])+obj.Name()[1:]) + "\n\n")
	fmt.Fprintf(&b, "ID        %d\n", obj.ID)
	fmt.Fprintf(&b, "Position  %.0f, %.0f\n", obj.Position.X, obj.Position.Y)
	fmt.Fprintf(&b, "Absolute  %.0f, %.0f\n", abs.X, abs.Y)
	switch obj.Parent {
	case CanvasID:
		b.WriteString("Parent    canvas\n")
	default:
		fmt.Fprintf(&b, "Parent    %s %d\n", canvas.Object(obj.Parent).Name(), obj.Parent)
	}
	fmt.Fprintf(&b, "Children  %d\n", len(obj.Children))
	fmt.Fprintf(&b, "Draggable %t\n", obj.CanDrag)

	switch obj.Kind {
	case KindLabel:
		fmt.Fprintf(&b, "Text      %q\n", obj.Text)
	case KindSupplyDemandLine:
		fmt.Fprintf(&b, "Gradient  %g\n", obj.Gradient)
	case KindAxis:
		if obj.ID == m.doc.PrimaryAxis() {
			b.WriteString("Primary axis\n")
		}
	}
	if m.mode == ModeTextInput {
		fmt.Fprintf(&b, "\n> %s█\n", m.editText)
	} else if obj.Kind == KindLabel || obj.Kind == KindSupplyDemandLine {
		b.WriteString("\n" + hintStyle.Render("e to edit") + "\n")
	}

	return panelStyle.Height(max(rows-2, 1)).Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) statusLine() string {
	canvas := m.doc.Canvas()
	zp := canvas.ZoomPan()

	mode := m.modeString()
	right := fmt.Sprintf(" %s | zoom %d%% | pan %.0f,%.0f | page %.0fx%.0f ", mode,
		int(math.Round(zp.Zoom*100)), zp.X, zp.Y, m.scrollbars.usedWidth, m.scrollbars.usedHeight)
	left := fmt.Sprintf(" %s | %s", m.doc.Title(), m.doc.Status())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m model) messageLine() string {
	switch m.mode {
	case ModeFileInput:
		prompt := map[FileOperation]string{
			FileOpSave:      "Save as",
			FileOpOpen:      "Open",
			FileOpExportPNG: "Export PNG",
		}[m.fileOp]
		return fmt.Sprintf("%s: %s█", prompt, m.filename)
	case ModeConfirm:
		if m.confirmAction == ConfirmOverwriteFile {
			return errorStyle.Render(fmt.Sprintf("%s exists. Overwrite? (y/n)", m.pendingPath))
		}
		return errorStyle.Render("Unsaved changes. Quit anyway? (y/n)")
	}

	switch {
	case m.messages.message == "":
		return hintStyle.Render("? help  a axis  s/d supply/demand  t label  p point  x delete  u/U undo/redo  q quit")
	case m.messages.ok:
		return successStyle.Render(m.messages.message)
	case m.messages.title != "":
		return errorStyle.Render(m.messages.title + ": " + m.messages.message)
	}
	return errorStyle.Render(m.messages.message)
}

func (m model) modeString() string {
	switch m.mode {
	case ModeTextInput:
		return "EDIT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	}
	if m.zPanMode {
		return "PAN"
	}
	return "NORMAL"
}

func (m model) helpView() string {
	helpLines := []string{
		"Econogram Help",
		"==============",
		"",
		"Navigation:",
		"  h/j/k/l, arrows   Move cursor (Shift moves faster)",
		"  z                 Toggle pan mode (movement keys scroll the view)",
		"  enter/space       Click at cursor: select the object underneath",
		"  mouse             Click to select, drag to move or pan, wheel to scroll",
		"  ctrl+wheel        Zoom",
		"  + / - / 0         Zoom in / out / reset",
		"",
		"Insert:",
		"  a                 Axis",
		"  s / d             Supply / demand line on the primary axis",
		"  t / T             Label at cursor (bound / free)",
		"  r / R             Label at a random position (bound / free)",
		"  p / P             Point at cursor (bound / free)",
		"",
		"Edit:",
		"  x, delete         Delete selected object",
		"  e                 Edit label text or line gradient",
		"  A                 Make the selected axis the primary axis",
		"  b / f             Bind selection to the primary axis / free it",
		"  g                 Show or hide parent guides",
		"  u / U             Undo / redo",
		"",
		"File:",
		"  ctrl+s / S        Save / save as",
		"  o                 Open",
		"  E                 Export PNG",
		"  c / v             Copy diagram to / load from the clipboard",
		"  q                 Quit",
		"",
		"Press ? or esc to close",
	}
	if m.height > 0 && len(helpLines) > m.height {
		helpLines = helpLines[:m.height]
	}
	return strings.Join(helpLines, "\n")
}

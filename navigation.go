package main

import tea "github.com/charmbracelet/bubbletea"

// keyDirection maps a movement key to a unit step in cells.
func keyDirection(key string) (int, int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func (m model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	dx, dy := keyDirection(key)
	dx, dy = dx*speed, dy*speed

	if m.zPanMode {
		canvas := m.doc.Canvas()
		canvas.ScrollX(float64(dx) * cellWidth)
		canvas.ScrollY(float64(dy) * cellHeight)
		return m, nil
	}

	m.cursorX += dx
	m.cursorY += dy
	m.ensureCursorInBounds()
	return m, nil
}

// getMoveSpeed is 4 cells for shifted keys.
func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	}
	return 1
}

func (m *model) ensureCursorInBounds() {
	cols, rows := m.canvasSize()
	m.cursorX = max(0, min(m.cursorX, cols-1))
	m.cursorY = max(0, min(m.cursorY, rows-1))
}

// canvasSize is the number of cells available for the diagram. The last
// column is the scrollbar and the bottom two rows are the status lines.
func (m *model) canvasSize() (int, int) {
	cols := m.width - 1
	if m.panel.attached != NoObject {
		cols -= panelWidth
	}
	rows := m.height - 2
	return max(cols, 1), max(rows, 1)
}

package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	m := initialModel(defaultConfig(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(model)
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestModelInsertAndUndo(t *testing.T) {
	m := newTestModel(t)
	require.Len(t, m.doc.Canvas().Children(), 1)

	m = press(t, m, "a")
	assert.Len(t, m.doc.Canvas().Children(), 2)
	assert.True(t, m.messages.ok)
	assert.Equal(t, "Insert Axis", m.messages.message)

	m = press(t, m, "s", "d")
	assert.Len(t, m.doc.Canvas().ChildrenOf(m.doc.PrimaryAxis()), 2)

	m = press(t, m, "u", "u", "u")
	assert.Len(t, m.doc.Canvas().Children(), 1)
	assert.Equal(t, "Undid Insert Axis", m.messages.message)

	m = press(t, m, "u")
	assert.False(t, m.messages.ok)
	assert.Equal(t, "Undo", m.messages.title)

	m = press(t, m, "U")
	assert.Len(t, m.doc.Canvas().Children(), 2)
}

func TestModelMouseSelects(t *testing.T) {
	m := newTestModel(t)

	// Cell (18, 11) covers the y-axis of the primary axis.
	next, _ := m.Update(tea.MouseMsg{X: 18, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(model)
	assert.Equal(t, m.doc.PrimaryAxis(), m.doc.Selection())
	assert.Equal(t, m.doc.PrimaryAxis(), m.panel.attached)

	next, _ = m.Update(tea.MouseMsg{X: 18, Y: 11, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = next.(model)
	assert.False(t, m.mouseHeld)

	view := m.View()
	assert.Contains(t, view, "Axis")
	assert.Contains(t, view, "Primary axis")

	next, _ = m.Update(tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	m = next.(model)
	assert.Equal(t, wheelScroll, m.doc.Canvas().ZoomPan().Y)
}

func TestModelCursorAndPanMode(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "l", "l", "j", "L")
	assert.Equal(t, 6, m.cursorX)
	assert.Equal(t, 1, m.cursorY)

	m = press(t, m, "h", "h", "h", "h", "h", "h", "h", "h", "k", "k")
	assert.Equal(t, 0, m.cursorX)
	assert.Equal(t, 0, m.cursorY)

	m = press(t, m, "z", "j")
	assert.Equal(t, "PAN", m.modeString())
	assert.Equal(t, cellHeight, m.doc.Canvas().ZoomPan().Y)
	assert.Equal(t, 0, m.cursorY)
}

func TestModelQuitConfirmsUnsavedChanges(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(model)
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, m.mode)
	assert.Contains(t, m.View(), "Unsaved changes")

	m = press(t, m, "n")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModelHelp(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "?")
	assert.True(t, m.help)
	assert.Contains(t, m.View(), "Econogram Help")

	m = press(t, m, "esc")
	assert.False(t, m.help)
	assert.Contains(t, m.View(), "Econogram - *Untitled Diagram")
}

func TestCellMapping(t *testing.T) {
	x, y := cellToDevice(2, 3)
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 56.0, y)

	col, row := deviceToCell(x, y)
	assert.Equal(t, 2, col)
	assert.Equal(t, 3, row)

	col, row = deviceToCell(-1, -16)
	assert.Equal(t, -1, col)
	assert.Equal(t, -1, row)
}

func TestCleanClipboardText(t *testing.T) {
	assert.Equal(t, "{0,}", cleanClipboardText("\ufeff  {0,}\n"))
	assert.Equal(t, "", cleanClipboardText(" \t\n"))
}

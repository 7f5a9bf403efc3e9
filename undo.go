package main

import "fmt"

// ActionManager keeps the undo and redo history of one document.
type ActionManager struct {
	undoStack []Action
	redoStack []Action
}

func NewActionManager() *ActionManager {
	return &ActionManager{}
}

// Add executes a and records it when it changed the document. Any new edit
// discards the redo history.
func (m *ActionManager) Add(d *Document, a Action) (Outcome, error) {
	outcome, err := a.Execute(d)
	if err != nil {
		return NoOp, err
	}
	if outcome != Applied {
		return outcome, nil
	}

	m.redoStack = m.redoStack[:0]
	m.undoStack = append(m.undoStack, a)
	return Applied, nil
}

func (m *ActionManager) Undo(d *Document) (Action, error) {
	if len(m.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	if err := action.Undo(d); err != nil {
		return action, fmt.Errorf("undo %s: %w", action.Name(), err)
	}
	m.undoStack = m.undoStack[:lastIndex]

	m.redoStack = append(m.redoStack, action)
	return action, nil
}

func (m *ActionManager) Redo(d *Document) (Action, error) {
	if len(m.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	if err := action.Redo(d); err != nil {
		return action, fmt.Errorf("redo %s: %w", action.Name(), err)
	}
	m.redoStack = m.redoStack[:lastIndex]

	m.undoStack = append(m.undoStack, action)
	return action, nil
}

func (m *ActionManager) CanUndo() bool { return len(m.undoStack) > 0 }
func (m *ActionManager) CanRedo() bool { return len(m.redoStack) > 0 }

// UndoName names the action Undo would revert, or "" when there is none.
func (m *ActionManager) UndoName() string {
	if len(m.undoStack) == 0 {
		return ""
	}
	return m.undoStack[len(m.undoStack)-1].Name()
}

func (m *ActionManager) RedoName() string {
	if len(m.redoStack) == 0 {
		return ""
	}
	return m.redoStack[len(m.redoStack)-1].Name()
}

func (m *ActionManager) Clear() {
	m.undoStack = nil
	m.redoStack = nil
}

package main

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownObject   = errors.New("unknown object")
	ErrAlreadyParented = errors.New("object already has a parent")
	ErrNotChild        = errors.New("object is not owned by this parent")
	ErrCycle           = errors.New("object cannot be added below itself")

	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	ErrNoPath       = errors.New("document has no file path")
	ErrMalformed    = errors.New("malformed diagram")
	ErrEmptyDiagram = errors.New("nothing to export")
)

// ValidationError is returned by an action that refused to run. The action
// reports NoOp alongside it and is never recorded in history.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

var (
	errNoAxisSelected = &ValidationError{
		Title:   "No axis selected",
		Message: "Please select an axis first.",
	}
	errNoPrimaryAxis = &ValidationError{
		Title:   "No primary axis",
		Message: "There is no primary axis. Select an axis\nand then go to Edit > Set Primary Axis",
	}
	errNoObjectSelected = &ValidationError{
		Title:   "Nothing selected",
		Message: "Please select an object first.",
	}
	errNoLabelSelected = &ValidationError{
		Title:   "No label selected",
		Message: "Please select a label first.",
	}
	errNoLineSelected = &ValidationError{
		Title:   "No line selected",
		Message: "Please select a supply or demand line first.",
	}
	errCannotBind = &ValidationError{
		Title:   "Cannot bind object",
		Message: "Axes cannot be bound to another axis.",
	}
	errAlreadyFree = &ValidationError{
		Title:   "Already free",
		Message: "The selected object is not bound to an axis.",
	}
)

// ParseError describes where a diagram failed to decode.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed diagram at offset %d: %s", e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

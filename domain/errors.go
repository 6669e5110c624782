package domain

import "errors"

// ErrBotNotFound indicates the referenced bot is not registered.
var ErrBotNotFound = errors.New("bot is not registered")

// ErrCommandBlocked indicates the command policy rejected a command.
var ErrCommandBlocked = errors.New("command blocked by policy")

// ValidationError indicates a required field is missing or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

package action

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnknownAction     = errors.New("unknown action")
	ErrNoSelection       = errors.New("no record selected")
)

// ValidationError refuses an action whose parameters are incomplete.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field != "" && e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return ErrValidation }

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// TransitionError names the refused (action, state) pair.
type TransitionError struct {
	Entity string
	Action Name
	From   string
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("%s cannot %s from %q", e.Entity, e.Action, e.From)
}

func (e TransitionError) Unwrap() error { return ErrInvalidTransition }

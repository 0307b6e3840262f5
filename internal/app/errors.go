package app

import (
	"errors"
	"fmt"
)

// ErrAlreadyRunning indicates Run was called on an application that is
// already running.
var ErrAlreadyRunning = errors.New("application already running")

// InitError reports a component that failed to initialize.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

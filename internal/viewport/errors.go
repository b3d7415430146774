package viewport

import (
	"errors"
	"fmt"
)

// ErrNoCamera means the scene has no camera to drive
var ErrNoCamera = errors.New("no camera in scene")

// ConfigurationError is a fatal start-up problem; the component is unusable
type ConfigurationError struct {
	Component string
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: configuration error: %v", e.Component, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

package raster

import (
	"errors"
	"fmt"
)

// ErrDegenerate reports inputs that would make the job geometry meaningless,
// such as an empty image or a zero pixel pitch.
var ErrDegenerate = errors.New("degenerate raster geometry")

// ConfigError reports an invalid or contradictory planner setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

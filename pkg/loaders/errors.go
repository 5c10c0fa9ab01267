package loaders

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for output paths whose extension has no encoder
var ErrUnsupportedFormat = errors.New("loaders: unsupported image format")

// ConfigSyntaxError reports a configuration file that is not structurally valid INI
type ConfigSyntaxError struct {
	Path string
	Err  error
}

func (e *ConfigSyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %v", e.Path, e.Err)
}

func (e *ConfigSyntaxError) Unwrap() error { return e.Err }

// ConfigValidationError reports a well-formed file whose content is unusable: a
// missing or malformed key, an out-of-range value, an unknown or duplicate section
type ConfigValidationError struct {
	Path    string
	Section string
	Key     string // Empty when the problem concerns the whole section
	Reason  string
	Err     error // Underlying cause, if any
}

func (e *ConfigValidationError) Error() string {
	location := fmt.Sprintf("[%s]", e.Section)
	if e.Key != "" {
		location += " " + e.Key
	}
	msg := fmt.Sprintf("%s: %s: %s", e.Path, location, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigValidationError) Unwrap() error { return e.Err }

// ABOUTME: Typed errors for the sizing pipeline: configuration, terminal, and image failures
// ABOUTME: Callers match with errors.As; none of these are recoverable within a render

package sizing

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid output-size configuration.
// Fields names the options involved, in the order they were checked.
type ConfigurationError struct {
	Fields []string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid size configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid size configuration (%s): %s", strings.Join(e.Fields, ", "), e.Reason)
}

// TerminalUnavailableError reports that the terminal size could not be
// queried and the policy needed it.
type TerminalUnavailableError struct {
	Err error
}

func (e *TerminalUnavailableError) Error() string {
	if e.Err == nil {
		return "terminal size unavailable"
	}
	return "terminal size unavailable: " + e.Err.Error()
}

func (e *TerminalUnavailableError) Unwrap() error { return e.Err }

// InvalidImageError reports an image that cannot be rendered: zero
// dimensions or a decoder failure.
type InvalidImageError struct {
	Width, Height int
	Err           error
}

func (e *InvalidImageError) Error() string {
	if e.Err != nil {
		return "invalid image: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid image: dimensions %dx%d", e.Width, e.Height)
}

func (e *InvalidImageError) Unwrap() error { return e.Err }

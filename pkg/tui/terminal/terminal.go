// ABOUTME: Defines the Terminal interface: a fresh size query plus an output sink.
// ABOUTME: Implementations target a real TTY (ProcessTerminal) or a fake (VirtualTerminal).

package terminal

import (
	"errors"

	"github.com/mauromedda/blockpix/pkg/tui/sizing"
)

// ErrNotTerminal is returned by Size when the output is not a TTY, for
// example when it is redirected to a file or a pipe.
var ErrNotTerminal = errors.New("output is not a terminal")

// Terminal is where rendered images go. Size is queried on every call;
// terminals are resized between renders.
type Terminal interface {
	Size() (sizing.Dimensions, error)
	Write(p []byte) (n int, err error)
}

// SizeFunc adapts t into the resolver's injectable size query.
func SizeFunc(t Terminal) sizing.SizeFunc {
	return t.Size
}

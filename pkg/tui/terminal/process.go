// ABOUTME: ProcessTerminal implements Terminal over an *os.File using golang.org/x/term.
// ABOUTME: Size fails fast with ErrNotTerminal when the file is not a TTY.

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/mauromedda/blockpix/pkg/tui/sizing"
)

// ProcessTerminal is a real terminal backed by a file descriptor,
// normally os.Stdout.
type ProcessTerminal struct {
	out *os.File
}

// NewProcessTerminal returns a ProcessTerminal writing to out.
func NewProcessTerminal(out *os.File) *ProcessTerminal {
	return &ProcessTerminal{out: out}
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (sizing.Dimensions, error) {
	fd := int(t.out.Fd())
	if !term.IsTerminal(fd) {
		return sizing.Dimensions{}, fmt.Errorf("%s: %w", t.out.Name(), ErrNotTerminal)
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return sizing.Dimensions{}, fmt.Errorf("getting terminal size: %w", err)
	}
	return sizing.Dimensions{Columns: w, Rows: h}, nil
}

// Write sends bytes to the underlying file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to %s: %w", t.out.Name(), err)
	}
	return n, nil
}

// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Captures output in a buffer; size is settable and can be made to fail.

package terminal

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/mauromedda/blockpix/pkg/tui/sizing"
)

// VirtualTerminal is a fake Terminal for unit tests.
type VirtualTerminal struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	width   int
	height  int
	sizeErr error
	queries int
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:  width,
		height: height,
	}
}

// Size returns the configured dimensions, or the configured error.
func (v *VirtualTerminal) Size() (sizing.Dimensions, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.queries++
	if v.sizeErr != nil {
		return sizing.Dimensions{}, v.sizeErr
	}
	return sizing.Dimensions{Columns: v.width, Rows: v.height}, nil
}

// Write appends data to the internal buffer.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// --- Test helpers (not part of Terminal interface) ---

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// SetSize updates the dimensions reported by the next Size call.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width = width
	v.height = height
}

// FailSize makes subsequent Size calls return err; nil restores success.
func (v *VirtualTerminal) FailSize(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sizeErr = err
}

// Queries returns how many times Size was called.
func (v *VirtualTerminal) Queries() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.queries
}

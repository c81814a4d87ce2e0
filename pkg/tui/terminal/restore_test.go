// ABOUTME: Tests for panic restoration without os.Exit
// ABOUTME: Verifies the reset sequence reaches the terminal only when a panic occurs

package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestRestoreOnPanic_NoPanic(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(80, 24)
	func() {
		defer RestoreOnPanic(vt)
	}()

	if got := vt.Output(); got != "" {
		t.Errorf("Output() = %q, want nothing written", got)
	}
}

func TestRestore_ReportsPanicValue(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(80, 24)
	var errOut bytes.Buffer
	restore(vt, &errOut, "boom")

	if got := vt.Output(); got != restoreSeq {
		t.Errorf("Output() = %q, want reset sequence", got)
	}
	if !strings.Contains(errOut.String(), "panic: boom") {
		t.Errorf("stderr = %q, want panic value", errOut.String())
	}
}

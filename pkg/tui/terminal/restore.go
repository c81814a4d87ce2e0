// ABOUTME: RestoreOnPanic recovers from panics, resets SGR state and the cursor, prints the stack.
// ABOUTME: Deferred in main so a crash mid-image never leaves the shell colored.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// restoreSeq resets colors and shows the cursor.
const restoreSeq = "\x1b[0m\x1b[?25h"

// RestoreOnPanic should be deferred at the top of main. On panic it
// resets the terminal via t, prints the panic value and stack trace to
// stderr, then exits with code 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}
	restore(t, os.Stderr, r)
	os.Exit(1)
}

func restore(t Terminal, errOut io.Writer, r any) {
	_, _ = t.Write([]byte(restoreSeq))
	fmt.Fprintf(errOut, "\npanic: %v\n\n%s\n", r, debug.Stack())
}

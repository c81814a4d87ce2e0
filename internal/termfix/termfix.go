// ABOUTME: Decides the viewer's light/dark palette from COLORFGBG before BubbleTea's init() runs
// ABOUTME: Setting it up front stops lipgloss from sending OSC 11 queries whose replies read as keys

package termfix

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// This package must not import bubbletea, directly or transitively, so
// that its init runs before bubbletea's.
func init() {
	lipgloss.SetHasDarkBackground(hasDarkBackground(os.Getenv("COLORFGBG")))
}

// hasDarkBackground reads a COLORFGBG value such as "15;0" or "0;default;15".
// The last field is the background palette index; 7 and 15 are the light
// grays. Anything unparseable counts as dark.
func hasDarkBackground(colorfgbg string) bool {
	fields := strings.Split(colorfgbg, ";")
	bg, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return true
	}
	return bg != 7 && bg != 15
}

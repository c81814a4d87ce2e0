// ABOUTME: Display width of styled text with grapheme-aware segmentation
// ABOUTME: Used to confirm that a rendered image line occupies exactly its column budget

package width

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisibleWidth returns the display width of s, ignoring ANSI escape
// sequences and measuring each grapheme cluster under the current locale.
func VisibleWidth(s string) int {
	stripped := StripANSI(s)
	if isPlainASCII(stripped) {
		return len(stripped)
	}
	w := 0
	state := -1
	for len(stripped) > 0 {
		var cluster string
		cluster, stripped, _, state = uniseg.FirstGraphemeClusterInString(stripped, state)
		r, _ := utf8.DecodeRuneInString(cluster)
		w += runewidth.RuneWidth(r)
	}
	return w
}

// LineWidths returns the visible width of each "\n"-terminated line of s.
func LineWidths(s string) []int {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	widths := make([]int, len(lines))
	for i, line := range lines {
		widths[i] = VisibleWidth(line)
	}
	return widths
}

// RuneWidth reports how many cells r occupies. With eastAsian set,
// ambiguous-width characters such as the block elements count as two.
func RuneWidth(r rune, eastAsian bool) int {
	c := runewidth.NewCondition()
	c.EastAsianWidth = eastAsian
	return c.RuneWidth(r)
}

// EastAsianLocale reports whether the environment's locale renders
// ambiguous-width characters two cells wide.
func EastAsianLocale() bool {
	return runewidth.DefaultCondition.EastAsianWidth
}

// isPlainASCII returns true if s contains only printable ASCII.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

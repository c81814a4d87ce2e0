// ABOUTME: Tests for parsing encoder output back into cells
// ABOUTME: Malformed sequences, missing resets, and out-of-range channels are rejected

package halfblock

import (
	"testing"

	"github.com/mauromedda/blockpix/pkg/tui/pixel"
)

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	cells, err := Parse("")
	if err != nil || len(cells) != 0 {
		t.Errorf("Parse(\"\") = %v, %v; want no cells", cells, err)
	}
}

func TestParse_ZeroWidthRows(t *testing.T) {
	t.Parallel()

	cells, err := Parse("\n\n")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(cells) != 2 || len(cells[0]) != 0 {
		t.Errorf("Parse(\"\\n\\n\") = %v, want two empty rows", cells)
	}
}

func TestParse_SingleCell(t *testing.T) {
	t.Parallel()

	cells, err := Parse("\x1b[38;2;1;2;3;48;2;4;5;6m\u2580\x1b[0m\n")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	want := Cell{FG: pixel.RGB{R: 1, G: 2, B: 3}, BG: pixel.RGB{R: 4, G: 5, B: 6}}
	if len(cells) != 1 || len(cells[0]) != 1 || cells[0][0] != want {
		t.Errorf("Parse() = %+v, want [[%+v]]", cells, want)
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no trailing newline": "\x1b[38;2;1;2;3;48;2;4;5;6m\u2580\x1b[0m",
		"no reset":            "\x1b[38;2;1;2;3;48;2;4;5;6m\u2580\n",
		"wrong glyph":         "\x1b[38;2;1;2;3;48;2;4;5;6m\u2584\x1b[0m\n",
		"channel overflow":    "\x1b[38;2;256;2;3;48;2;4;5;6m\u2580\x1b[0m\n",
		"plain text":          "hello\x1b[0m\n",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse(text); err == nil {
				t.Errorf("Parse(%q) expected error", text)
			}
		})
	}
}

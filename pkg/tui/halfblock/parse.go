// ABOUTME: Parses half-block encoder output back into cells
// ABOUTME: Splits each line on the reset sequence and extracts both color triples

package halfblock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mauromedda/blockpix/pkg/tui/pixel"
)

var cellRe = regexp.MustCompile(`^\x1b\[38;2;(\d{1,3});(\d{1,3});(\d{1,3});48;2;(\d{1,3});(\d{1,3});(\d{1,3})m\x{2580}$`)

// Parse recovers the cell rows from text produced by Encode. Every line
// must be "\n"-terminated and contain only encoded cells.
func Parse(text string) ([][]Cell, error) {
	if text == "" {
		return nil, nil
	}
	if !strings.HasSuffix(text, "\n") {
		return nil, fmt.Errorf("encoded text does not end with a newline")
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	rows := make([][]Cell, 0, len(lines))
	for i, line := range lines {
		row, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseLine(line string) ([]Cell, error) {
	if line == "" {
		return []Cell{}, nil
	}
	if !strings.HasSuffix(line, reset) {
		return nil, fmt.Errorf("missing trailing reset")
	}

	segments := strings.Split(strings.TrimSuffix(line, reset), reset)
	row := make([]Cell, 0, len(segments))
	for x, seg := range segments {
		m := cellRe.FindStringSubmatch(seg)
		if m == nil {
			return nil, fmt.Errorf("cell %d: malformed sequence %q", x, seg)
		}
		var ch [6]uint8
		for i := range ch {
			v, err := strconv.ParseUint(m[i+1], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("cell %d: channel %q: %w", x, m[i+1], err)
			}
			ch[i] = uint8(v)
		}
		row = append(row, Cell{
			FG: pixel.RGB{R: ch[0], G: ch[1], B: ch[2]},
			BG: pixel.RGB{R: ch[3], G: ch[4], B: ch[5]},
		})
	}
	return row, nil
}

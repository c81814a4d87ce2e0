// ABOUTME: Half-block encoder: two pixel rows become one row of ▀ cells with 24-bit fg/bg
// ABOUTME: Top pixel is the foreground, bottom pixel the background; every cell ends with a reset

package halfblock

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mauromedda/blockpix/pkg/tui/pixel"
)

// Glyph is the upper-half-block character drawn in every cell.
const Glyph = '▀'

const (
	sgrPrefix = "\x1b[38;2;"
	sgrBG     = ";48;2;"
	reset     = "\x1b[0m"
	cellTail  = "m" + string(Glyph) + reset
)

// Cell is one character cell: foreground from the top pixel, background
// from the bottom pixel.
type Cell struct {
	FG pixel.RGB
	BG pixel.RGB
}

// Cells pairs the grid's rows top to bottom. An odd final row is dropped,
// not padded.
func Cells(g *pixel.Grid) [][]Cell {
	rows := make([][]Cell, 0, g.Height()/2)
	for y := 0; y+1 < g.Height(); y += 2 {
		row := make([]Cell, g.Width())
		for x := range row {
			row[x] = Cell{FG: g.At(x, y), BG: g.At(x, y+1)}
		}
		rows = append(rows, row)
	}
	return rows
}

// Encode renders g as styled text, one line per pair of pixel rows, each
// line terminated by "\n". Grids shorter than two rows encode to "".
func Encode(g *pixel.Grid) string {
	var e encoder
	var buf []byte
	for y := 0; y+1 < g.Height(); y += 2 {
		buf = e.appendRow(buf, g, y)
	}
	return string(buf)
}

// Write streams the encoding of g to w one line at a time. The bytes written
// are identical to Encode(g).
func Write(w io.Writer, g *pixel.Grid) error {
	var e encoder
	var buf []byte
	for y := 0; y+1 < g.Height(); y += 2 {
		buf = e.appendRow(buf[:0], g, y)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing cell row %d: %w", y/2, err)
		}
	}
	return nil
}

// encoder remembers the last cell's escape bytes so runs of identical
// cells copy them instead of reformatting six numbers.
type encoder struct {
	last   Cell
	cached []byte
}

func (e *encoder) appendRow(dst []byte, g *pixel.Grid, y int) []byte {
	for x := 0; x < g.Width(); x++ {
		dst = e.appendCell(dst, Cell{FG: g.At(x, y), BG: g.At(x, y+1)})
	}
	return append(dst, '\n')
}

func (e *encoder) appendCell(dst []byte, c Cell) []byte {
	if e.cached != nil && c == e.last {
		return append(dst, e.cached...)
	}
	start := len(dst)
	dst = AppendCell(dst, c)
	e.cached = append(e.cached[:0], dst[start:]...)
	e.last = c
	return dst
}

// AppendCell appends the escape encoding of a single cell to dst.
func AppendCell(dst []byte, c Cell) []byte {
	dst = append(dst, sgrPrefix...)
	dst = appendTriple(dst, c.FG)
	dst = append(dst, sgrBG...)
	dst = appendTriple(dst, c.BG)
	return append(dst, cellTail...)
}

func appendTriple(dst []byte, p pixel.RGB) []byte {
	dst = strconv.AppendUint(dst, uint64(p.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(p.G), 10)
	dst = append(dst, ';')
	return strconv.AppendUint(dst, uint64(p.B), 10)
}

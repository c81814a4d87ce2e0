// ABOUTME: Immutable RGB pixel grid consumed by the half-block encoder
// ABOUTME: Built from image.Image with alpha truncated (dropped, never blended)

package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// RGB is an 8-bit-per-channel color with no alpha.
type RGB struct {
	R, G, B uint8
}

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Grid is an immutable width x height array of RGB pixels, stored row-major.
type Grid struct {
	width  int
	height int
	pix    []RGB
}

// New builds a grid over pix, which must hold exactly width*height pixels.
// The slice is copied.
func New(width, height int, pix []RGB) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative grid dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("grid %dx%d needs %d pixels, got %d", width, height, width*height, len(pix))
	}
	return &Grid{width: width, height: height, pix: append([]RGB(nil), pix...)}, nil
}

// FromRows builds a grid from rows of equal length.
func FromRows(rows [][]RGB) (*Grid, error) {
	g := &Grid{height: len(rows)}
	if len(rows) > 0 {
		g.width = len(rows[0])
	}
	g.pix = make([]RGB, 0, g.width*g.height)
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("row %d has %d pixels, want %d", y, len(row), g.width)
		}
		g.pix = append(g.pix, row...)
	}
	return g, nil
}

// FromImage copies img into a grid. Any alpha channel is discarded: the
// straight (non-premultiplied) color channels are kept as they are. Images
// that store premultiplied color lose whatever alpha already removed.
func FromImage(img image.Image) *Grid {
	b := img.Bounds()
	g := &Grid{width: b.Dx(), height: b.Dy()}
	g.pix = make([]RGB, 0, g.width*g.height)

	// Fast paths for the types produced by the resamplers.
	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			for x := 0; x < g.width; x++ {
				p := src.Pix[off+x*4 : off+x*4+3 : off+x*4+3]
				g.pix = append(g.pix, RGB{p[0], p[1], p[2]})
			}
		}
		return g
	case *image.RGBA:
		if src.Opaque() {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				off := src.PixOffset(b.Min.X, y)
				for x := 0; x < g.width; x++ {
					p := src.Pix[off+x*4 : off+x*4+3 : off+x*4+3]
					g.pix = append(g.pix, RGB{p[0], p[1], p[2]})
				}
			}
			return g
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			g.pix = append(g.pix, RGB{c.R, c.G, c.B})
		}
	}
	return g
}

// Width returns the grid width in pixels.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in pixels.
func (g *Grid) Height() int { return g.height }

// At returns the pixel at column x, row y. It panics when out of range,
// like a slice index.
func (g *Grid) At(x, y int) RGB {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("pixel: At(%d, %d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return g.pix[y*g.width+x]
}

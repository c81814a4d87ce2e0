// ABOUTME: Integer box reduction: each factor x factor block becomes its average color
// ABOUTME: Legacy sizing path that bypasses the resolver; edge blocks average what they cover

package pixel

import (
	"fmt"

	"github.com/mauromedda/blockpix/pkg/tui/sizing"
)

// ReduceByFactor shrinks g by an integer divisor. The result is
// ceil(w/factor) x ceil(h/factor); each output pixel is the rounded mean of
// the source block it covers. A factor of 1 returns g itself.
func ReduceByFactor(g *Grid, factor int) (*Grid, error) {
	if factor < 1 {
		return nil, &sizing.ConfigurationError{
			Fields: []string{"reduce"},
			Reason: fmt.Sprintf("factor %d must be at least 1", factor),
		}
	}
	if factor == 1 {
		return g, nil
	}

	outW := (g.width + factor - 1) / factor
	outH := (g.height + factor - 1) / factor
	out := &Grid{width: outW, height: outH, pix: make([]RGB, 0, outW*outH)}

	for by := 0; by < outH; by++ {
		y0, y1 := by*factor, min((by+1)*factor, g.height)
		for bx := 0; bx < outW; bx++ {
			x0, x1 := bx*factor, min((bx+1)*factor, g.width)

			var r, gr, b, n uint64
			for y := y0; y < y1; y++ {
				for _, p := range g.pix[y*g.width+x0 : y*g.width+x1] {
					r += uint64(p.R)
					gr += uint64(p.G)
					b += uint64(p.B)
				}
				n += uint64(x1 - x0)
			}
			out.pix = append(out.pix, RGB{
				R: uint8((r + n/2) / n),
				G: uint8((gr + n/2) / n),
				B: uint8((b + n/2) / n),
			})
		}
	}
	return out, nil
}

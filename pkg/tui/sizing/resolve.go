// ABOUTME: Sizing resolver: image pixel dims + policy + terminal cells -> target pixel grid
// ABOUTME: A cell shows 2 image rows and 1 image column, so height scales are doubled

package sizing

import (
	"errors"
	"fmt"
	"math"
)

// pixelsPerRow is the number of image rows packed into one character row.
const pixelsPerRow = 2

// floorEpsilon keeps exact ratios like columns/w*w from flooring to columns-1.
const floorEpsilon = 1e-9

// Dimensions is the terminal's character-cell grid.
type Dimensions struct {
	Columns int
	Rows    int
}

// SizeFunc queries the current terminal dimensions. It is called at most
// once per Resolve and only when the policy needs it.
type SizeFunc func() (Dimensions, error)

// Fixed returns a SizeFunc that always reports d.
func Fixed(d Dimensions) SizeFunc {
	return func() (Dimensions, error) { return d, nil }
}

// Target is the resolved pixel grid size, in image pixels.
type Target struct {
	Width  int
	Height int
}

// Cells returns the character-cell footprint of t once encoded. A trailing
// odd pixel row produces no cell row.
func (t Target) Cells() (columns, rows int) {
	return t.Width, t.Height / pixelsPerRow
}

// Resolve computes the target pixel size for an imageWidth x imageHeight
// image under policy. size is consulted only for terminal-relative modes.
func Resolve(imageWidth, imageHeight int, policy Policy, size SizeFunc) (Target, error) {
	if imageWidth <= 0 || imageHeight <= 0 {
		return Target{}, &InvalidImageError{Width: imageWidth, Height: imageHeight}
	}
	if err := policy.Validate(); err != nil {
		return Target{}, err
	}

	var term Dimensions
	if policy.NeedsTerminal() {
		d, err := query(size)
		if err != nil {
			return Target{}, err
		}
		term = d
	}

	scaling := Scaling(imageWidth, imageHeight, policy, term)
	if !(scaling > 0) || math.IsInf(scaling, 0) {
		return Target{}, &ConfigurationError{
			Fields: []string{policy.Mode().String()},
			Reason: fmt.Sprintf("derived scale %g is not positive (terminal %dx%d)", scaling, term.Columns, term.Rows),
		}
	}

	return Target{
		Width:  scaled(imageWidth, scaling),
		Height: scaled(imageHeight, scaling),
	}, nil
}

// Scaling returns the uniform multiplier policy applies to both image axes
// given terminal dimensions term. It does no validation.
func Scaling(imageWidth, imageHeight int, policy Policy, term Dimensions) float64 {
	w := float64(imageWidth)
	h := float64(imageHeight)
	cols := float64(term.Columns)
	rows := float64(term.Rows)

	switch policy.mode {
	case WidthFraction:
		return (cols * policy.fraction) / w
	case HeightFraction:
		return ((rows * policy.fraction) / h) * pixelsPerRow
	case ExplicitColumns:
		return float64(policy.count) / w
	case ExplicitRows:
		return (float64(policy.count) / h) * pixelsPerRow
	default:
		// One row is kept free so the prompt after the image does not scroll it.
		return math.Min(cols/w, ((rows-1)/h)*pixelsPerRow)
	}
}

func query(size SizeFunc) (Dimensions, error) {
	if size == nil {
		return Dimensions{}, &TerminalUnavailableError{Err: errors.New("no terminal size source")}
	}
	d, err := size()
	if err != nil {
		return Dimensions{}, &TerminalUnavailableError{Err: err}
	}
	if d.Columns <= 0 || d.Rows <= 0 {
		return Dimensions{}, &TerminalUnavailableError{
			Err: fmt.Errorf("terminal reported %dx%d", d.Columns, d.Rows),
		}
	}
	return d, nil
}

func scaled(n int, scaling float64) int {
	v := int(math.Floor(float64(n)*scaling + floorEpsilon))
	if v < 1 {
		return 1
	}
	return v
}

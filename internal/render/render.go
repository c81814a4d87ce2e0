// ABOUTME: Render pipeline: decode, size, resample and half-block encode an image
// ABOUTME: One synchronous Render per image; RenderAll fans out decoding with errgroup

package render

import (
	"context"
	"errors"
	"fmt"
	goimage "image"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/blockpix/internal/log"
	"github.com/mauromedda/blockpix/pkg/tui/halfblock"
	"github.com/mauromedda/blockpix/pkg/tui/image"
	"github.com/mauromedda/blockpix/pkg/tui/pixel"
	"github.com/mauromedda/blockpix/pkg/tui/sizing"
	"github.com/mauromedda/blockpix/pkg/tui/width"
)

// Renderer turns encoded images into half-block text. The zero value
// renders with the default filter, no sharpening and no size limit, but
// needs Size for terminal-relative policies.
type Renderer struct {
	Size        sizing.SizeFunc
	Filter      image.Filter
	Sharpen     float64
	MaxFileSize int64
}

// Request selects the output size. Reduce > 1 takes the box-reduction path
// and ignores the terminal; 0 and 1 resolve Policy.
type Request struct {
	Policy sizing.Policy
	Reduce int
}

// Validate rejects a reduce factor combined with a non-default policy.
func (r Request) Validate() error {
	if r.Reduce < 0 {
		return &sizing.ConfigurationError{
			Fields: []string{"reduce"},
			Reason: fmt.Sprintf("factor must be >= 1, got %d", r.Reduce),
		}
	}
	if r.Reduce > 1 && r.Policy.Mode() != sizing.FitTerminal {
		return &sizing.ConfigurationError{
			Fields: []string{"reduce", r.Policy.Mode().String()},
			Reason: "reduce cannot be combined with another size option",
		}
	}
	return nil
}

// Source is a decoded image ready to be rendered at any size.
type Source struct {
	Name   string
	Image  goimage.Image
	Format string
}

// Width returns the source width in pixels.
func (s *Source) Width() int { return s.Image.Bounds().Dx() }

// Height returns the source height in pixels.
func (s *Source) Height() int { return s.Image.Bounds().Dy() }

// Result is one rendered image. Grid holds the pixels Text encodes.
type Result struct {
	Name    string
	Grid    *pixel.Grid
	Text    string
	Format  string
	Target  sizing.Target
	Columns int
	Rows    int
}

// Input names a blob of encoded image bytes.
type Input struct {
	Name string
	Data []byte
}

// Decode checks the size limit and decodes data.
func (r *Renderer) Decode(name string, data []byte) (*Source, error) {
	defer log.Timed("decode " + name)()

	if r.MaxFileSize > 0 && int64(len(data)) > r.MaxFileSize {
		return nil, &sizing.InvalidImageError{
			Err: fmt.Errorf("%d bytes exceeds the %d byte limit", len(data), r.MaxFileSize),
		}
	}
	img, format, err := image.Decode(data)
	if err != nil {
		return nil, err
	}
	src := &Source{Name: name, Image: img, Format: format}
	log.Debug("decoded %s: %s %dx%d", displayName(name), format, src.Width(), src.Height())
	return src, nil
}

// Render decodes data and renders it under req.
func (r *Renderer) Render(data []byte, req Request) (Result, error) {
	src, err := r.Decode("", data)
	if err != nil {
		return Result{}, err
	}
	return r.RenderSource(src, req)
}

// RenderSource renders an already decoded image. The terminal is queried
// afresh on every call.
func (r *Renderer) RenderSource(src *Source, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	var grid *pixel.Grid
	if req.Reduce > 1 {
		g, err := pixel.ReduceByFactor(pixel.FromImage(r.sharpen(src.Image)), req.Reduce)
		if err != nil {
			return Result{}, err
		}
		grid = g
		log.Debug("reduced %s by %d to %dx%d", displayName(src.Name), req.Reduce, grid.Width(), grid.Height())
	} else {
		target, err := sizing.Resolve(src.Width(), src.Height(), req.Policy, r.Size)
		if err != nil {
			return Result{}, err
		}
		f := r.filter()
		log.Debug("resolved %s under %s to %dx%d with %s", displayName(src.Name), req.Policy, target.Width, target.Height, f)

		done := log.Timed("resample")
		resized := image.Resample(r.sharpen(src.Image), target.Width, target.Height, f)
		done()
		grid = pixel.FromImage(resized)
	}

	warnWideGlyph()

	target := sizing.Target{Width: grid.Width(), Height: grid.Height()}
	cols, rows := target.Cells()
	res := Result{
		Name:    src.Name,
		Grid:    grid,
		Text:    halfblock.Encode(grid),
		Format:  src.Format,
		Target:  target,
		Columns: cols,
		Rows:    rows,
	}
	if log.GetLevel() <= log.LevelDebug {
		if err := CheckWidths(res); err != nil {
			log.Warn("%s: %v", displayName(src.Name), err)
		}
	}
	return res, nil
}

// CheckWidths measures every encoded line and reports the first one whose
// visible width differs from res.Columns.
func CheckWidths(res Result) error {
	for i, w := range width.LineWidths(res.Text) {
		if w != res.Columns {
			return fmt.Errorf("line %d is %d cells wide, want %d", i, w, res.Columns)
		}
	}
	return nil
}

// RenderAll decodes and renders inputs concurrently, at most limit at a
// time (limit <= 0 means no limit). Results are in input order. The first
// failure cancels the rest and is returned wrapped with the input name.
func (r *Renderer) RenderAll(ctx context.Context, inputs []Input, req Request, limit int) ([]Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := r.Decode(in.Name, in.Data)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(in.Name), err)
			}
			res, err := r.RenderSource(src, req)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(in.Name), err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ReadFile reads at most limit+1 bytes of path so that oversized files
// fail without being loaded whole. limit <= 0 reads everything.
func ReadFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	return ReadLimited(f, limit)
}

// ReadLimited reads r up to limit bytes; more than that is an
// *sizing.InvalidImageError.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, &sizing.InvalidImageError{
			Err: fmt.Errorf("input exceeds the %d byte limit", limit),
		}
	}
	return data, nil
}

func (r *Renderer) filter() image.Filter {
	if r.Filter.String() != "" {
		return r.Filter
	}
	f, _ := image.ParseFilter("")
	return f
}

func (r *Renderer) sharpen(img goimage.Image) goimage.Image {
	if r.Sharpen <= 0 {
		return img
	}
	defer log.Timed("sharpen")()
	return image.Sharpen(img, r.Sharpen)
}

var wideGlyphOnce sync.Once

// warnWideGlyph notes once per process that the glyph occupies two cells
// under an East Asian locale, which doubles the rendered width.
func warnWideGlyph() {
	wideGlyphOnce.Do(func() {
		if width.RuneWidth(halfblock.Glyph, width.EastAsianLocale()) > 1 {
			log.Warn("locale renders %q as two cells wide; images will appear stretched", halfblock.Glyph)
		}
	})
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "<stdin>"
	}
	return name
}

// IsConfigError reports whether err is a size configuration error.
func IsConfigError(err error) bool {
	var ce *sizing.ConfigurationError
	return errors.As(err, &ce)
}

// ABOUTME: Image decoding for the render pipeline (PNG, JPEG, GIF, WebP, BMP, TIFF)
// ABOUTME: Probes headers first so empty or oversized images fail before a full decode

package image

import (
	"bytes"
	"errors"
	"fmt"
	goimage "image"

	// Register decoders for standard formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mauromedda/blockpix/pkg/tui/sizing"
)

// MaxDimension is the largest width or height accepted from a header.
const MaxDimension = 16384

// Decode turns encoded image bytes into an image. Every failure is an
// *sizing.InvalidImageError.
func Decode(data []byte) (goimage.Image, string, error) {
	if len(data) == 0 {
		return nil, "", &sizing.InvalidImageError{Err: errors.New("empty image data")}
	}

	hdr, err := Probe(data)
	if errors.Is(err, errUnknownFormat) {
		hdr, err = probeConfig(data)
	}
	switch {
	case err != nil:
		return nil, "", &sizing.InvalidImageError{Err: err}
	case hdr.Width <= 0 || hdr.Height <= 0:
		return nil, "", &sizing.InvalidImageError{Width: hdr.Width, Height: hdr.Height}
	case hdr.Width > MaxDimension || hdr.Height > MaxDimension:
		return nil, "", &sizing.InvalidImageError{
			Err: fmt.Errorf("%s is %dx%d, larger than %d on a side", hdr.Format, hdr.Width, hdr.Height, MaxDimension),
		}
	}

	img, format, err := goimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &sizing.InvalidImageError{Err: fmt.Errorf("decoding image: %w", err)}
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, "", &sizing.InvalidImageError{Width: b.Dx(), Height: b.Dy()}
	}
	return img, format, nil
}

// probeConfig reads the header through the registered decoders, for
// formats such as TIFF that Probe does not sniff itself.
func probeConfig(data []byte) (Header, error) {
	cfg, format, err := goimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Header{}, fmt.Errorf("decoding image config: %w", err)
	}
	return Header{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// ABOUTME: Tests for filter lookup, resampling to exact targets, and sharpening
// ABOUTME: Every filter must hit the requested size; flat colors must survive resampling

package image

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func flat(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	for _, name := range FilterNames() {
		f, err := ParseFilter(name)
		if err != nil {
			t.Errorf("ParseFilter(%q) unexpected error: %v", name, err)
			continue
		}
		if f.String() != name {
			t.Errorf("ParseFilter(%q).String() = %q", name, f.String())
		}
	}

	f, err := ParseFilter("  ")
	if err != nil || f.String() != DefaultFilter {
		t.Errorf("ParseFilter(blank) = %v, %v; want %s", f, err, DefaultFilter)
	}

	f, err = ParseFilter("Lanczos3")
	if err != nil || f.String() != "lanczos3" {
		t.Errorf("ParseFilter(Lanczos3) = %v, %v; want lanczos3", f, err)
	}
}

func TestParseFilter_Suggests(t *testing.T) {
	t.Parallel()

	_, err := ParseFilter("lanczos")
	if err == nil {
		t.Fatal("expected error for unknown filter")
	}
	if !strings.Contains(err.Error(), "did you mean") || !strings.Contains(err.Error(), "lanczos3") {
		t.Errorf("error = %q, want lanczos suggestions", err)
	}

	_, err = ParseFilter("zzz")
	if err == nil || !strings.Contains(err.Error(), "known:") {
		t.Errorf("error = %v, want list of known filters", err)
	}
}

func TestResample_AllFiltersHitTarget(t *testing.T) {
	t.Parallel()

	src := flat(64, 48, color.NRGBA{R: 200, G: 40, B: 90, A: 255})
	for _, name := range FilterNames() {
		f, _ := ParseFilter(name)
		for _, size := range [][2]int{{16, 12}, {80, 7}, {1, 1}} {
			out := Resample(src, size[0], size[1], f)
			if b := out.Bounds(); b.Dx() != size[0] || b.Dy() != size[1] {
				t.Errorf("%s: bounds = %v, want %dx%d", name, b, size[0], size[1])
				continue
			}
			r, g, b, _ := out.At(out.Bounds().Min.X, out.Bounds().Min.Y).RGBA()
			if diff(r>>8, 200) > 2 || diff(g>>8, 40) > 2 || diff(b>>8, 90) > 2 {
				t.Errorf("%s %v: flat color drifted to (%d, %d, %d)", name, size, r>>8, g>>8, b>>8)
			}
		}
	}
}

func TestResample_SameSizeIsNoop(t *testing.T) {
	t.Parallel()

	src := flat(5, 5, color.NRGBA{A: 255})
	f, _ := ParseFilter("")
	if out := Resample(src, 5, 5, f); out != image.Image(src) {
		t.Error("expected the source image back for an unchanged size")
	}
}

func TestSharpen(t *testing.T) {
	t.Parallel()

	src := flat(8, 8, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	if out := Sharpen(src, 0); out != image.Image(src) {
		t.Error("Sharpen(0) should return the source image")
	}

	out := Sharpen(src, 1.0)
	if b := out.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("Sharpen bounds = %v, want 8x8", b)
	}
}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

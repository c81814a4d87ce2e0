// ABOUTME: Tests for pixel grid construction and alpha truncation
// ABOUTME: Covers row validation, image conversion fast paths, and the generic path

package pixel

import (
	"image"
	"image/color"
	"testing"
)

func TestFromRows(t *testing.T) {
	t.Parallel()

	g, err := FromRows([][]RGB{
		{{1, 2, 3}, {4, 5, 6}},
		{{7, 8, 9}, {10, 11, 12}},
		{{13, 14, 15}, {16, 17, 18}},
	})
	if err != nil {
		t.Fatalf("FromRows() unexpected error: %v", err)
	}
	if g.Width() != 2 || g.Height() != 3 {
		t.Fatalf("size = %dx%d, want 2x3", g.Width(), g.Height())
	}
	if got := g.At(1, 2); got != (RGB{16, 17, 18}) {
		t.Errorf("At(1, 2) = %v, want {16 17 18}", got)
	}
}

func TestFromRows_Ragged(t *testing.T) {
	t.Parallel()

	_, err := FromRows([][]RGB{{{}, {}}, {{}}})
	if err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestFromRows_Empty(t *testing.T) {
	t.Parallel()

	g, err := FromRows(nil)
	if err != nil {
		t.Fatalf("FromRows(nil) unexpected error: %v", err)
	}
	if g.Width() != 0 || g.Height() != 0 {
		t.Errorf("size = %dx%d, want 0x0", g.Width(), g.Height())
	}
}

func TestNew_LengthMismatch(t *testing.T) {
	t.Parallel()

	if _, err := New(2, 2, make([]RGB, 3)); err == nil {
		t.Error("expected error for short pixel buffer")
	}
	if _, err := New(-1, 0, nil); err == nil {
		t.Error("expected error for negative width")
	}
}

func TestNew_CopiesInput(t *testing.T) {
	t.Parallel()

	pix := []RGB{{1, 1, 1}}
	g, err := New(1, 1, pix)
	if err != nil {
		t.Fatal(err)
	}
	pix[0] = RGB{9, 9, 9}
	if g.At(0, 0) != (RGB{1, 1, 1}) {
		t.Error("grid shares caller's slice")
	}
}

func TestFromImage_TruncatesAlpha(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	g := FromImage(img)
	if got := g.At(0, 0); got != (RGB{200, 100, 50}) {
		t.Errorf("transparent pixel = %v, want {200 100 50}", got)
	}
	if got := g.At(1, 0); got != (RGB{10, 20, 30}) {
		t.Errorf("half-transparent pixel = %v, want {10 20 30}", got)
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(5, 5, 7, 7))
	for y := 5; y < 7; y++ {
		for x := 5; x < 7; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 1, A: 255})
		}
	}

	g := FromImage(img)
	if g.Width() != 2 || g.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", g.Width(), g.Height())
	}
	if got := g.At(1, 0); got != (RGB{6, 5, 1}) {
		t.Errorf("At(1, 0) = %v, want {6 5 1}", got)
	}
}

func TestFromImage_GenericPath(t *testing.T) {
	t.Parallel()

	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 77})

	if got := FromImage(img).At(0, 0); got != (RGB{77, 77, 77}) {
		t.Errorf("gray pixel = %v, want {77 77 77}", got)
	}
}

func TestRGB_Hex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c    RGB
		want string
	}{
		{RGB{}, "#000000"},
		{RGB{255, 0, 16}, "#ff0010"},
		{RGB{1, 2, 3}, "#010203"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

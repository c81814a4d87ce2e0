// ABOUTME: Tests for print mode covering text, inspect and JSON output plus input reading
// ABOUTME: Renders small in-memory PNGs with explicit sizes so no terminal is needed

package print

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauromedda/blockpix/internal/render"
	"github.com/mauromedda/blockpix/pkg/tui/sizing"
)

func redOverBlue(t *testing.T) []byte {
	t.Helper()
	img := goimage.NewNRGBA(goimage.Rect(0, 0, 2, 2))
	for x := range 2 {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, A: 255})
		img.SetNRGBA(x, 1, color.NRGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

var twoColumns = render.Request{Policy: sizing.Columns(2)}

func TestRun_Text(t *testing.T) {
	t.Parallel()

	data := redOverBlue(t)
	inputs := []render.Input{{Name: "a.png", Data: data}, {Name: "b.png", Data: data}}

	var out bytes.Buffer
	err := Run(context.Background(), Config{}, &render.Renderer{}, inputs, twoColumns, &out)
	if err != nil {
		t.Fatal(err)
	}

	cell := "\x1b[38;2;255;0;0;48;2;0;0;255m▀\x1b[0m"
	row := cell + cell + "\n"
	if out.String() != row+row {
		t.Errorf("output = %q, want %q", out.String(), row+row)
	}
}

func TestRun_Inspect(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	inputs := []render.Input{{Data: redOverBlue(t)}}
	err := Run(context.Background(), Config{OutputFormat: FormatInspect}, &render.Renderer{}, inputs, twoColumns, &out)
	if err != nil {
		t.Fatal(err)
	}

	want := "<stdin>: png, pixels 2x2, cells 2x1\n  visible width 2 on 1 lines\n  row 0: #ff0000/#0000ff #ff0000/#0000ff\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_JSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	inputs := []render.Input{{Name: "x.png", Data: redOverBlue(t)}}
	err := Run(context.Background(), Config{OutputFormat: FormatJSON}, &render.Renderer{}, inputs, twoColumns, &out)
	if err != nil {
		t.Fatal(err)
	}

	var got []jsonEntry
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	e := got[0]
	if e.Name != "x.png" || e.Width != 2 || e.Height != 2 || e.Columns != 2 || e.Rows != 1 {
		t.Errorf("entry = %+v", e)
	}
	if !strings.HasSuffix(e.Text, "\n") {
		t.Errorf("Text = %q, want encoded rows", e.Text)
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{OutputFormat: "xml"}, &render.Renderer{}, nil, twoColumns, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("err = %v, want unknown format error", err)
	}
}

func TestRun_RenderErrorWritesNothing(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	inputs := []render.Input{{Name: "ok.png", Data: redOverBlue(t)}, {Name: "bad.png", Data: []byte("??")}}
	err := Run(context.Background(), Config{}, &render.Renderer{}, inputs, twoColumns, &out)

	var ie *sizing.InvalidImageError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want InvalidImageError", err)
	}
	if out.Len() != 0 {
		t.Errorf("partial output written: %q", out.String())
	}
}

func TestReadInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	if err := os.WriteFile(path, []byte("file-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("stdin when no paths", func(t *testing.T) {
		t.Parallel()
		got, err := ReadInputs(nil, strings.NewReader("stdin-bytes"), 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Name != "" || string(got[0].Data) != "stdin-bytes" {
			t.Errorf("ReadInputs = %+v", got)
		}
	})

	t.Run("paths and dash", func(t *testing.T) {
		t.Parallel()
		got, err := ReadInputs([]string{path, "-"}, strings.NewReader("piped"), 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Name != path || string(got[0].Data) != "file-bytes" || string(got[1].Data) != "piped" {
			t.Errorf("ReadInputs = %+v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := ReadInputs([]string{filepath.Join(dir, "nope.png")}, nil, 0)
		if err == nil || !strings.Contains(err.Error(), "nope.png") {
			t.Errorf("err = %v, want error naming the file", err)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		t.Parallel()
		_, err := ReadInputs([]string{path}, nil, 4)
		var ie *sizing.InvalidImageError
		if !errors.As(err, &ie) {
			t.Errorf("err = %v, want InvalidImageError", err)
		}
	})
}

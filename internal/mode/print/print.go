// ABOUTME: Print mode: render every input and write the results to a writer in order
// ABOUTME: Formatters for raw half-block text, an inspect summary, and JSON metadata

package print

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mauromedda/blockpix/internal/render"
	"github.com/mauromedda/blockpix/pkg/tui/halfblock"
	"github.com/mauromedda/blockpix/pkg/tui/width"
)

// Output formats.
const (
	FormatText    = "text"
	FormatInspect = "inspect"
	FormatJSON    = "json"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatInspect, FormatJSON}

// Config configures print mode execution.
type Config struct {
	OutputFormat string // "text" (default), "inspect", "json"
	Concurrency  int    // decode workers; 0 = unlimited
}

// Run renders inputs and writes them to out in argument order.
func Run(ctx context.Context, cfg Config, r *render.Renderer, inputs []render.Input, req render.Request, out io.Writer) error {
	f, err := newFormatter(cfg.OutputFormat, out)
	if err != nil {
		return err
	}

	results, err := r.RenderAll(ctx, inputs, req, cfg.Concurrency)
	if err != nil {
		return err
	}

	for _, res := range results {
		if err := f.result(res); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return f.end()
}

// ReadInputs loads each path, or standard input when paths is empty.
// The path "-" also reads standard input.
func ReadInputs(paths []string, stdin io.Reader, limit int64) ([]render.Input, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	inputs := make([]render.Input, 0, len(paths))
	for _, p := range paths {
		var (
			data []byte
			err  error
		)
		if p == "-" {
			data, err = render.ReadLimited(stdin, limit)
			p = ""
		} else {
			data, err = render.ReadFile(p, limit)
		}
		if err != nil {
			if p == "" {
				return nil, fmt.Errorf("stdin: %w", err)
			}
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		inputs = append(inputs, render.Input{Name: p, Data: data})
	}
	return inputs, nil
}

// formatter abstracts output formatting.
type formatter interface {
	result(res render.Result) error
	end() error
}

func newFormatter(format string, out io.Writer) (formatter, error) {
	switch format {
	case "", FormatText:
		return &textFormatter{out: out}, nil
	case FormatInspect:
		return &inspectFormatter{out: out}, nil
	case FormatJSON:
		return &jsonFormatter{out: out}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (known: %s)", format, strings.Join(Formats, ", "))
	}
}

// textFormatter streams the encoded cells one row at a time.
type textFormatter struct {
	out io.Writer
}

func (f *textFormatter) result(res render.Result) error {
	if res.Grid == nil {
		_, err := io.WriteString(f.out, res.Text)
		return err
	}
	return halfblock.Write(f.out, res.Grid)
}

func (f *textFormatter) end() error { return nil }

// inspectFormatter parses the encoded text back into cells and prints a
// summary, the measured line widths and the colors of the first cell row.
type inspectFormatter struct {
	out io.Writer
}

func (f *inspectFormatter) result(res render.Result) error {
	cells, err := halfblock.Parse(res.Text)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", nameOf(res), err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s, pixels %dx%d, cells %dx%d\n",
		nameOf(res), res.Format, res.Target.Width, res.Target.Height, res.Columns, len(cells))
	if widths := width.LineWidths(res.Text); len(widths) > 0 {
		lo, hi := slices.Min(widths), slices.Max(widths)
		if lo == hi {
			fmt.Fprintf(&b, "  visible width %d on %d lines\n", lo, len(widths))
		} else {
			fmt.Fprintf(&b, "  visible width %d-%d on %d lines\n", lo, hi, len(widths))
		}
	}
	if len(cells) > 0 {
		b.WriteString("  row 0:")
		for _, c := range cells[0] {
			fmt.Fprintf(&b, " %s/%s", c.FG.Hex(), c.BG.Hex())
		}
		b.WriteByte('\n')
	}
	_, err = io.WriteString(f.out, b.String())
	return err
}

func (f *inspectFormatter) end() error { return nil }

// jsonFormatter collects metadata and writes a single JSON array at the end.
type jsonFormatter struct {
	out     io.Writer
	entries []jsonEntry
}

type jsonEntry struct {
	Name    string `json:"name"`
	Format  string `json:"format"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
	Text    string `json:"text"`
}

func (f *jsonFormatter) result(res render.Result) error {
	f.entries = append(f.entries, jsonEntry{
		Name:    nameOf(res),
		Format:  res.Format,
		Width:   res.Target.Width,
		Height:  res.Target.Height,
		Columns: res.Columns,
		Rows:    res.Rows,
		Text:    res.Text,
	})
	return nil
}

func (f *jsonFormatter) end() error {
	if f.entries == nil {
		f.entries = []jsonEntry{}
	}
	enc := json.NewEncoder(f.out)
	enc.SetEscapeHTML(false)
	return enc.Encode(f.entries)
}

func nameOf(res render.Result) string {
	if res.Name == "" {
		return "<stdin>"
	}
	return res.Name
}

// ABOUTME: CLI flag definitions and their conversion into render requests and settings
// ABOUTME: Size flags map onto sizing.Options; at most one may be given, or --reduce alone

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mauromedda/blockpix/internal/config"
	"github.com/mauromedda/blockpix/internal/mode/print"
	"github.com/mauromedda/blockpix/internal/render"
	"github.com/mauromedda/blockpix/pkg/tui/image"
	"github.com/mauromedda/blockpix/pkg/tui/sizing"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func appFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:    "width",
			Aliases: []string{"w"},
			Usage:   "fraction (0,1] of the terminal width to fill",
		},
		&cli.Float64Flag{
			Name:    "height",
			Aliases: []string{"hg"},
			Usage:   "fraction (0,1] of the terminal height to fill",
		},
		&cli.IntFlag{
			Name:    "columns",
			Aliases: []string{"c"},
			Usage:   "output width in character columns",
		},
		&cli.IntFlag{
			Name:    "rows",
			Aliases: []string{"r"},
			Usage:   "output height in character rows",
		},
		&cli.IntFlag{
			Name:  "reduce",
			Usage: "shrink by an integer factor with a box filter, ignoring the terminal",
		},
		&cli.StringSliceFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "image file to render (repeatable; \"-\" reads stdin)",
		},
		&cli.BoolFlag{
			Name:    "paste",
			Aliases: []string{"p"},
			Usage:   "render the image on the system clipboard",
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "resample filter: " + strings.Join(image.FilterNames(), ", "),
		},
		&cli.Float64Flag{
			Name:  "sharpen",
			Usage: "unsharp mask amount applied before resampling (0 disables)",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "images decoded concurrently",
		},
		&cli.Int64Flag{
			Name:  "max-file-size",
			Usage: "largest accepted input in bytes",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   print.FormatText,
			Usage:   "output format: " + strings.Join(print.Formats, ", "),
		},
		&cli.BoolFlag{
			Name:  "inspect",
			Usage: "print a cell summary instead of the image (same as --output inspect)",
		},
		&cli.BoolFlag{
			Name:  "view",
			Usage: "open an interactive viewer that refits the image on resize",
		},
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{config.EnvConfig},
			Usage:   "path to a config file",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log debug details to stderr",
		},
	}
}

// sizeOptions collects the size flags. A flag given explicitly as zero is
// rejected here, since Options treats zero as absent.
func sizeOptions(c *cli.Context) (sizing.Options, error) {
	opts := sizing.Options{
		Width:   c.Float64("width"),
		Height:  c.Float64("height"),
		Columns: c.Int("columns"),
		Rows:    c.Int("rows"),
	}
	zero := []struct {
		name string
		zero bool
	}{
		{"width", opts.Width == 0},
		{"height", opts.Height == 0},
		{"columns", opts.Columns == 0},
		{"rows", opts.Rows == 0},
	}
	for _, f := range zero {
		if c.IsSet(f.name) && f.zero {
			return sizing.Options{}, &sizing.ConfigurationError{
				Fields: []string{f.name},
				Reason: "must be non-zero",
			}
		}
	}
	return opts, nil
}

// buildRequest turns the size flags into a render request.
func buildRequest(c *cli.Context) (render.Request, error) {
	opts, err := sizeOptions(c)
	if err != nil {
		return render.Request{}, err
	}
	policy, err := opts.Policy()
	if err != nil {
		return render.Request{}, err
	}

	req := render.Request{Policy: policy}
	if c.IsSet("reduce") {
		req.Reduce = c.Int("reduce")
		if req.Reduce < 1 {
			return render.Request{}, &sizing.ConfigurationError{
				Fields: []string{"reduce"},
				Reason: fmt.Sprintf("factor must be >= 1, got %d", req.Reduce),
			}
		}
		if mode := policy.Mode(); mode != sizing.FitTerminal {
			return render.Request{}, &sizing.ConfigurationError{
				Fields: []string{"reduce", mode.String()},
				Reason: "reduce cannot be combined with another size option",
			}
		}
	}
	if err := req.Validate(); err != nil {
		return render.Request{}, err
	}
	return req, nil
}

// outputFormat resolves --output and its --inspect shorthand.
func outputFormat(c *cli.Context) (string, error) {
	format := c.String("output")
	if c.Bool("inspect") {
		if c.IsSet("output") && format != print.FormatInspect {
			return "", fmt.Errorf("--inspect conflicts with --output %s", format)
		}
		format = print.FormatInspect
	}
	return format, nil
}

// applyOverrides lets explicit flags win over file settings.
func applyOverrides(c *cli.Context, s *config.Settings) {
	if c.IsSet("filter") {
		s.Filter = c.String("filter")
	}
	if c.IsSet("sharpen") {
		s.Sharpen = c.Float64("sharpen")
	}
	if c.IsSet("jobs") {
		s.Concurrency = c.Int("jobs")
	}
	if c.IsSet("max-file-size") {
		s.MaxFileSize = c.Int64("max-file-size")
	}
}

// inputPaths returns --file values followed by positional arguments.
func inputPaths(c *cli.Context) []string {
	return append(c.StringSlice("file"), c.Args().Slice()...)
}

// reorderArgs moves flags ahead of positional arguments so that
// "blockpix img.png -c 40" parses like "blockpix -c 40 img.png"; the flag
// package stops at the first positional. args[0] is the program name.
// Positionals follow a "--" so a later one starting with "-" stays a path.
func reorderArgs(flags []cli.Flag, args []string) []string {
	if len(args) < 2 {
		return args
	}
	takesValue := make(map[string]bool)
	for _, f := range flags {
		if _, ok := f.(*cli.BoolFlag); ok {
			continue
		}
		for _, name := range f.Names() {
			takesValue[name] = true
		}
	}

	out := []string{args[0]}
	var positional []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg == "--":
			positional = append(positional, rest[i+1:]...)
			i = len(rest)
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			positional = append(positional, arg)
		default:
			out = append(out, arg)
			name := strings.TrimLeft(arg, "-")
			if !strings.Contains(name, "=") && takesValue[name] && i+1 < len(rest) {
				i++
				out = append(out, rest[i])
			}
		}
	}
	if len(positional) > 0 {
		out = append(out, "--")
		out = append(out, positional...)
	}
	return out
}

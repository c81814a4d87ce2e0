// ABOUTME: CLI entry point for blockpix with terminal crash recovery
// ABOUTME: Loads settings, builds the render request, dispatches to print or view mode

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/blockpix/internal/termfix"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/mauromedda/blockpix/internal/config"
	"github.com/mauromedda/blockpix/internal/log"
	"github.com/mauromedda/blockpix/internal/mode/print"
	"github.com/mauromedda/blockpix/internal/mode/view"
	"github.com/mauromedda/blockpix/internal/render"
	"github.com/mauromedda/blockpix/pkg/tui/image"
	"github.com/mauromedda/blockpix/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit statuses.
const (
	exitFailure = 1
	exitConfig  = 2
)

func main() {
	out := terminal.NewProcessTerminal(os.Stdout)
	defer terminal.RestoreOnPanic(out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newApp(func(c *cli.Context) error {
		return exitError(run(c, out))
	})
	if err := app.RunContext(ctx, reorderArgs(app.Flags, os.Args)); err != nil {
		fmt.Fprintf(os.Stderr, "blockpix: %v\n", err)
		os.Exit(exitFailure)
	}
}

func newApp(action cli.ActionFunc) *cli.App {
	return &cli.App{
		Name:            "blockpix",
		Usage:           "render images in the terminal with half-block characters",
		UsageText:       "blockpix [options] [FILE...]\n\nOptions may also follow the files; use -- before a file name starting with -.",
		Version:         fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Flags:           appFlags(),
		HideHelpCommand: true,
		Action:          action,
	}
}

// run is the whole program once flags are parsed. out is both the size
// source for terminal-relative policies and the destination of print mode.
func run(c *cli.Context, out terminal.Terminal) error {
	if c.Bool("verbose") {
		log.SetLevel(log.LevelDebug)
	}

	settings, err := loadSettings(c)
	if err != nil {
		return configError{err}
	}
	applyOverrides(c, settings)
	if err := settings.Validate(); err != nil {
		return configError{err}
	}

	filter, err := image.ParseFilter(settings.Filter)
	if err != nil {
		return configError{err}
	}
	req, err := buildRequest(c)
	if err != nil {
		return err
	}
	format, err := outputFormat(c)
	if err != nil {
		return configError{err}
	}

	r := &render.Renderer{
		Size:        terminal.SizeFunc(out),
		Filter:      filter,
		Sharpen:     settings.Sharpen,
		MaxFileSize: settings.MaxFileSize,
	}

	inputs, err := readInputs(c, settings.MaxFileSize)
	if err != nil {
		return err
	}

	if c.Bool("view") {
		if len(inputs) != 1 {
			return configError{fmt.Errorf("--view takes exactly one image, got %d", len(inputs))}
		}
		src, err := r.Decode(inputs[0].Name, inputs[0].Data)
		if err != nil {
			return err
		}
		return view.Run(*r, src, req)
	}

	cfg := print.Config{OutputFormat: format, Concurrency: settings.Concurrency}
	return print.Run(c.Context, cfg, r, inputs, req, out)
}

func loadSettings(c *cli.Context) (*config.Settings, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return config.Load(cwd)
}

func readInputs(c *cli.Context, limit int64) ([]render.Input, error) {
	if c.Bool("paste") {
		if len(inputPaths(c)) > 0 {
			return nil, configError{errors.New("--paste cannot be combined with files")}
		}
		data, err := image.Clipboard(c.Context)
		if err != nil {
			return nil, err
		}
		return []render.Input{{Name: "<clipboard>", Data: data}}, nil
	}

	paths := inputPaths(c)
	if len(paths) == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, configError{errors.New("no image given; pass a FILE or pipe one on stdin")}
	}
	return print.ReadInputs(paths, os.Stdin, limit)
}

// configError marks usage mistakes that are not size configuration errors
// but share their exit status.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// exitError maps err to the process exit status: 2 for configuration
// mistakes, 1 for everything else.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var ce configError
	if render.IsConfigError(err) || errors.As(err, &ce) {
		return cli.Exit("blockpix: "+err.Error(), exitConfig)
	}
	return cli.Exit("blockpix: "+err.Error(), exitFailure)
}

// ABOUTME: View mode: Bubble Tea program showing one image fit to the window
// ABOUTME: Re-renders on every resize with the window size as the terminal size; f cycles filters

package view

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/blockpix/internal/log"
	"github.com/mauromedda/blockpix/internal/render"
	"github.com/mauromedda/blockpix/pkg/tui/image"
	"github.com/mauromedda/blockpix/pkg/tui/sizing"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the viewer state. The decoded source is shared between copies;
// everything else is rebuilt on resize.
type Model struct {
	renderer render.Renderer
	src      *render.Source
	req      render.Request

	filters   []string
	filterIdx int

	width  int
	height int
	result render.Result
	err    error
}

// New creates a viewer for src. The renderer's Size is replaced by the
// window size reported by Bubble Tea.
func New(r render.Renderer, src *render.Source, req render.Request) Model {
	m := Model{
		renderer: r,
		src:      src,
		req:      req,
		filters:  image.FilterNames(),
	}
	current := r.Filter.String()
	if current == "" {
		current = image.DefaultFilter
	}
	for i, name := range m.filters {
		if name == current {
			m.filterIdx = i
		}
	}
	return m
}

// Init returns nil; the first WindowSizeMsg triggers the first render.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles resize and key messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.rerender(), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "f":
			m.filterIdx = (m.filterIdx + 1) % len(m.filters)
			return m.rerender(), nil
		}
	}
	return m, nil
}

// rerender renders the source against the current window. The status line
// takes the row fit-to-terminal keeps free.
func (m Model) rerender() Model {
	if m.width <= 0 || m.height <= 0 {
		return m
	}

	f, err := image.ParseFilter(m.filters[m.filterIdx])
	if err != nil {
		m.err = err
		return m
	}
	m.renderer.Filter = f
	m.renderer.Size = sizing.Fixed(sizing.Dimensions{Columns: m.width, Rows: m.height})

	res, err := m.renderer.RenderSource(m.src, m.req)
	if err != nil {
		log.Debug("view render at %dx%d: %v", m.width, m.height, err)
		m.err = err
		m.result = render.Result{}
		return m
	}
	m.err = nil
	m.result = res
	return m
}

// View draws the image followed by the status line.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}
	if m.err != nil {
		return errorStyle.MaxWidth(m.width).Render(m.err.Error()) + "\n" + m.status()
	}
	return m.result.Text + m.status()
}

func (m Model) status() string {
	name := m.src.Name
	if name == "" {
		name = "<stdin>"
	}
	text := fmt.Sprintf("%s  %dx%d → %dx%d  %s  ",
		name, m.src.Width(), m.src.Height(), m.result.Target.Width, m.result.Target.Height, m.filters[m.filterIdx])
	keys := keyStyle.Render("f") + statusStyle.Render(" filter  ") + keyStyle.Render("q") + statusStyle.Render(" quit")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(statusStyle.Render(text) + keys)
}

// Filter returns the name of the filter in use.
func (m Model) Filter() string { return m.filters[m.filterIdx] }

// Result returns the most recent render.
func (m Model) Result() render.Result { return m.result }

// Err returns the most recent render error, if any.
func (m Model) Err() error { return m.err }

// Run starts the viewer on the alternate screen. Blocks until the user exits.
func Run(r render.Renderer, src *render.Source, req render.Request) error {
	p := tea.NewProgram(
		New(r, src, req),
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}

// ABOUTME: Output-size policy as a closed tagged variant (fit, fractions, explicit counts)
// ABOUTME: Options is the optional four-field surface; Policy() enforces mutual exclusivity

package sizing

import "fmt"

// Mode identifies which sizing rule a Policy applies.
type Mode int

const (
	FitTerminal     Mode = iota // Fit the whole image inside the terminal
	WidthFraction               // Fraction of the terminal width
	HeightFraction              // Fraction of the terminal height
	ExplicitColumns             // Fixed number of character columns
	ExplicitRows                // Fixed number of character rows
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case WidthFraction:
		return "width-fraction"
	case HeightFraction:
		return "height-fraction"
	case ExplicitColumns:
		return "columns"
	case ExplicitRows:
		return "rows"
	default:
		return "fit"
	}
}

// Policy selects exactly one sizing mode. The zero value is FitTerminal.
type Policy struct {
	mode     Mode
	fraction float64
	count    int
}

// Fit returns the fit-to-terminal policy.
func Fit() Policy { return Policy{} }

// WidthOf targets f * columns character cells of width.
func WidthOf(f float64) Policy { return Policy{mode: WidthFraction, fraction: f} }

// HeightOf targets f * rows character cells of height.
func HeightOf(f float64) Policy { return Policy{mode: HeightFraction, fraction: f} }

// Columns targets exactly n character columns.
func Columns(n int) Policy { return Policy{mode: ExplicitColumns, count: n} }

// Rows targets exactly n character rows.
func Rows(n int) Policy { return Policy{mode: ExplicitRows, count: n} }

// Mode returns the policy's sizing mode.
func (p Policy) Mode() Mode { return p.mode }

// NeedsTerminal reports whether resolving p requires a terminal size query.
func (p Policy) NeedsTerminal() bool {
	switch p.mode {
	case ExplicitColumns, ExplicitRows:
		return false
	default:
		return true
	}
}

// String renders the policy for logs, e.g. "width-fraction=0.5".
func (p Policy) String() string {
	switch p.mode {
	case WidthFraction, HeightFraction:
		return fmt.Sprintf("%s=%g", p.mode, p.fraction)
	case ExplicitColumns, ExplicitRows:
		return fmt.Sprintf("%s=%d", p.mode, p.count)
	default:
		return p.mode.String()
	}
}

// Validate checks the policy's parameter range.
func (p Policy) Validate() error {
	switch p.mode {
	case WidthFraction, HeightFraction:
		if !(p.fraction > 0 && p.fraction <= 1) {
			return &ConfigurationError{
				Fields: []string{p.mode.String()},
				Reason: fmt.Sprintf("fraction %g is outside (0, 1]", p.fraction),
			}
		}
	case ExplicitColumns, ExplicitRows:
		if p.count <= 0 {
			return &ConfigurationError{
				Fields: []string{p.mode.String()},
				Reason: fmt.Sprintf("count %d must be positive", p.count),
			}
		}
	}
	return nil
}

// Options is the optional size surface collected by a CLI or config file.
// A zero field is absent. At most one field may be set.
type Options struct {
	Width   float64 // fraction of terminal width
	Height  float64 // fraction of terminal height
	Columns int
	Rows    int
}

// Policy converts o into a Policy. Supplying more than one option is a
// ConfigurationError listing every populated field.
func (o Options) Policy() (Policy, error) {
	var set []string
	var p Policy
	if o.Width != 0 {
		set = append(set, "width")
		p = WidthOf(o.Width)
	}
	if o.Height != 0 {
		set = append(set, "height")
		p = HeightOf(o.Height)
	}
	if o.Columns != 0 {
		set = append(set, "columns")
		p = Columns(o.Columns)
	}
	if o.Rows != 0 {
		set = append(set, "rows")
		p = Rows(o.Rows)
	}

	if len(set) > 1 {
		return Policy{}, &ConfigurationError{
			Fields: set,
			Reason: "options are mutually exclusive; supply at most one",
		}
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is used when the width cannot be detected.
const DefaultTermWidth = 120

// DisplayContext describes the stream reports are printed to.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// IsTerminal reports whether f is an interactive terminal, including
// Cygwin and MSYS pseudo terminals.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewDisplayContext inspects f. Only terminals get a measured width.
func NewDisplayContext(f *os.File) *DisplayContext {
	d := &DisplayContext{TermWidth: DefaultTermWidth, IsTTY: IsTerminal(f)}
	if !d.IsTTY {
		return d
	}
	if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
		d.TermWidth = w
	}
	return d
}

// AvailableWidth is the width left after a left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	if w := d.TermWidth - leftMargin; w > 0 {
		return w
	}
	return 1
}

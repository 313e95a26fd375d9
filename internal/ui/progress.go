package ui

import (
	"fmt"
	"io"
	"os"
)

// Progress shows "message (n/total)" on a terminal, rewriting one line.
// On anything else it stays silent.
type Progress struct {
	w       io.Writer
	enabled bool
	message string
	total   int
	current int
}

// NewProgress creates a progress indicator writing to w. It is only enabled
// when w is a terminal.
func NewProgress(w io.Writer, message string, total int) *Progress {
	f, isFile := w.(*os.File)
	return &Progress{
		w:       w,
		enabled: total > 1 && isFile && IsTerminal(f),
		message: message,
		total:   total,
	}
}

// Increment advances the progress by one.
func (p *Progress) Increment() {
	p.current++
	if p.enabled {
		fmt.Fprintf(p.w, "\r%s %s", p.message, Muted.Render(fmt.Sprintf("(%d/%d)", p.current, p.total)))
	}
}

// Done clears the progress line.
func (p *Progress) Done() {
	if p.enabled {
		fmt.Fprint(p.w, "\r\033[K")
	}
}

package ui

import "fmt"

// Status symbols prefixed to one-line messages.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolInfo    = "ℹ"
)

// Report table cell marks.
const (
	CellOK     = "✔"
	CellFailed = "✘"
)

func withSymbol(symbol, msg string) string {
	return symbol + " " + msg
}

// Success prefixes msg with a check mark.
func Success(msg string) string { return withSymbol(SymbolSuccess, msg) }

// Successf is Success with formatting.
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error prefixes msg with a cross.
func Error(msg string) string { return withSymbol(SymbolError, msg) }

// Errorf is Error with formatting.
func Errorf(format string, args ...interface{}) string {
	return Error(fmt.Sprintf(format, args...))
}

// Info prefixes msg with an info symbol.
func Info(msg string) string { return withSymbol(SymbolInfo, msg) }

// Header renders a bold section header.
func Header(msg string) string { return Bold.Render(msg) }

// FilePath renders a path in the accent color.
func FilePath(path string) string { return Accent.Render(path) }

// Hint renders secondary text.
func Hint(msg string) string { return Muted.Render(msg) }

// ErrorInfoCounts formats "(3 errors, 2 infos)", leaving out zero counts
// unless both are zero.
func ErrorInfoCounts(errors, infos int) string {
	switch {
	case errors > 0 && infos > 0:
		return fmt.Sprintf("(%s, %s)", countOf(errors, "error"), countOf(infos, "info"))
	case infos > 0:
		return fmt.Sprintf("(%s)", countOf(infos, "info"))
	default:
		return fmt.Sprintf("(%s)", countOf(errors, "error"))
	}
}

func countOf(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

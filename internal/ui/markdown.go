package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderMargin is the left margin of rendered markdown.
const MarkdownRenderMargin = 2

// RenderMarkdown renders a markdown report for the terminal, wrapping at
// width columns (DefaultTermWidth when width is not positive).
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(reportStyle(lipgloss.HasDarkBackground())),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// reportStyle starts from glamour's stock theme and swaps in the accent
// color for headings and inline code.
func reportStyle(dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	if dark {
		cfg = styles.DarkStyleConfig
	}

	margin := uint(MarkdownRenderMargin)
	cfg.Document.Margin = &margin

	if color, ok := AccentColor(); ok {
		cfg.Heading.Color = &color
		cfg.Code.Color = &color
	}
	// H1 as a plain prefix, without the badge background.
	cfg.H1.BackgroundColor = nil
	cfg.H1.Prefix = "# "
	cfg.H1.Suffix = ""
	return cfg
}

package report

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a markdown document. Cell contents are
// escaped so values with pipes cannot break the table.
func (r *Report) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", mdEscape(r.Sheet))
	fmt.Fprintf(&sb, "Runmode `%s`, %s\n\n", r.RunMode, r.summaryLine())

	sb.WriteString("| line |")
	for _, col := range r.Columns {
		fmt.Fprintf(&sb, " %s |", mdEscape(col))
	}
	sb.WriteString("\n|---:|")
	for range r.Columns {
		sb.WriteString(":---:|")
	}
	sb.WriteString("\n")
	for _, row := range r.Rows {
		fmt.Fprintf(&sb, "| %d |", row.Line)
		for _, c := range row.Cells {
			fmt.Fprintf(&sb, " %s |", mdEscape(cellText(c)))
		}
		sb.WriteString("\n")
	}

	if len(r.SheetErrors) > 0 || len(r.SheetWarnings) > 0 {
		sb.WriteString("\n## Samplesheet\n\n")
		mdMessages(&sb, "", r.SheetErrors)
		mdMessages(&sb, "warning: ", r.SheetWarnings)
	}
	for _, row := range r.Rows {
		if len(row.Errors) == 0 && len(row.Infos) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## Line %d: %s\n\n", row.Line, mdEscape(row.Individual))
		mdMessages(&sb, "", row.Errors)
		mdMessages(&sb, "info: ", row.Infos)
	}
	return sb.String()
}

func mdMessages(sb *strings.Builder, prefix string, list []Messages) {
	for _, m := range list {
		for _, msg := range m.Messages {
			fmt.Fprintf(sb, "- %s**%s**: %s\n", prefix, mdEscape(m.Key), mdEscape(msg))
		}
	}
}

var mdReplacer = strings.NewReplacer(`|`, `\|`, `*`, `\*`, `_`, `\_`, "`", "\\`")

func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}

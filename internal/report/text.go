package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aidanlsb/vipcheck/internal/ui"
)

type styler struct {
	header func(string) string
	column func(string) string
	muted  func(string) string
}

func plain(s string) string { return s }

var (
	plainStyle = styler{header: plain, column: plain, muted: plain}
	termStyle  = styler{
		header: func(s string) string { return ui.Bold.Render(s) },
		column: func(s string) string { return ui.Accent.Render(s) },
		muted:  func(s string) string { return ui.Muted.Render(s) },
	}
)

// Text renders the report as an aligned table followed by the messages.
// With styled unset the output contains no escape sequences.
func (r *Report) Text(styled bool) string {
	st := plainStyle
	if styled {
		st = termStyle
	}

	var sb strings.Builder
	sb.WriteString(st.header(fmt.Sprintf("Samplesheet %s (runmode %s)", r.Sheet, r.RunMode)))
	sb.WriteString("\n\n")

	tbl := ui.NewTable(len(r.Columns) + 1)
	head := make([]string, 0, len(r.Columns)+1)
	head = append(head, "")
	for _, col := range r.Columns {
		head = append(head, st.column(col))
	}
	tbl.SetHeader(head...)
	for _, row := range r.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, st.muted(strconv.Itoa(row.Line)))
		for _, c := range row.Cells {
			cells = append(cells, cellText(c))
		}
		tbl.AddRow(cells...)
	}
	sb.WriteString(tbl.String())

	if len(r.SheetErrors) > 0 {
		sb.WriteString("\nGeneral errors found in the samplesheet:\n")
		writeMessages(&sb, st, r.SheetErrors)
	}
	if len(r.SheetWarnings) > 0 {
		sb.WriteString("\nWarnings for the samplesheet:\n")
		writeMessages(&sb, st, r.SheetWarnings)
	}

	for _, row := range r.Rows {
		if len(row.Errors) > 0 {
			fmt.Fprintf(&sb, "\nFound problems for sample %q on line %d:\n", row.Individual, row.Line)
			writeMessages(&sb, st, row.Errors)
		}
		if len(row.Infos) > 0 {
			fmt.Fprintf(&sb, "\nFound the following notifications for sample %q on line %d:\n", row.Individual, row.Line)
			writeMessages(&sb, st, row.Infos)
		}
	}

	sb.WriteString("\n")
	sb.WriteString(r.summaryLine())
	sb.WriteString("\n")
	return sb.String()
}

func cellText(c Cell) string {
	mark := ui.CellOK
	if !c.OK {
		mark = ui.CellFailed
	}
	if c.Value == "" {
		return mark
	}
	return mark + " " + c.Value
}

func writeMessages(sb *strings.Builder, st styler, list []Messages) {
	for _, m := range list {
		for _, msg := range m.Messages {
			fmt.Fprintf(sb, "\t[%s]: %s\n", st.column(m.Key), msg)
		}
	}
}

func (r *Report) summaryLine() string {
	errs := r.Summary.Errors + r.Summary.SheetErrors
	if errs == 0 {
		return ui.Successf("%d %s checked, no errors", r.Summary.Records, plural("sample", r.Summary.Records))
	}
	return ui.Errorf("%d %s checked %s", r.Summary.Records, plural("sample", r.Summary.Records), ui.ErrorInfoCounts(errs, r.shownInfos()))
}

func (r *Report) shownInfos() int {
	if !r.opts.ShowInfo {
		return 0
	}
	return r.Summary.Infos
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Package report turns a validated sheet into the tables and message lists
// shown to users and written next to the checked sheets.
package report

import (
	"github.com/aidanlsb/vipcheck/internal/check"
	"github.com/aidanlsb/vipcheck/internal/registry"
	"github.com/aidanlsb/vipcheck/internal/sheet"
)

// Options controls what a report includes.
type Options struct {
	// PrintValues adds the stripped cell value next to each ok/failed mark.
	PrintValues bool
	// ShowInfo includes informational messages.
	ShowInfo bool
}

// Cell is the verdict for one column of one row.
type Cell struct {
	Column string `json:"column"`
	OK     bool   `json:"ok"`
	Value  string `json:"value,omitempty"`
}

// Messages lists diagnostics of one column or category.
type Messages struct {
	Key      string   `json:"column"`
	Messages []string `json:"messages"`
}

// Row summarizes one record.
type Row struct {
	Line       int        `json:"line"`
	Individual string     `json:"individual_id"`
	Cells      []Cell     `json:"cells"`
	Errors     []Messages `json:"errors,omitempty"`
	Infos      []Messages `json:"infos,omitempty"`
}

// Report is everything known about a checked sheet.
type Report struct {
	Sheet         string        `json:"sheet"`
	RunMode       string        `json:"runmode"`
	Columns       []string      `json:"columns"`
	Rows          []Row         `json:"rows"`
	SheetErrors   []Messages    `json:"sheet_errors,omitempty"`
	SheetWarnings []Messages    `json:"sheet_warnings,omitempty"`
	Summary       check.Summary `json:"summary"`

	opts Options
}

// Build collects the diagnostics attached to s. s must have been validated.
func Build(s *sheet.Sheet, mode registry.RunMode, opts Options) *Report {
	r := &Report{
		Sheet:         s.Path,
		RunMode:       string(mode),
		Columns:       s.Header(),
		Rows:          make([]Row, 0, s.Len()),
		SheetErrors:   messages(s.SheetErrors()),
		SheetWarnings: messages(s.SheetWarnings()),
		Summary:       check.Summarize(s),
		opts:          opts,
	}

	for _, rec := range s.Records() {
		row := Row{
			Line:       rec.Line(),
			Individual: rec.Value(sheet.ColIndividual),
			Cells:      make([]Cell, 0, len(r.Columns)),
			Errors:     messages(rec.Errors()),
		}
		if opts.ShowInfo {
			row.Infos = messages(rec.Infos())
		}
		for _, col := range r.Columns {
			cell := Cell{Column: col, OK: !rec.Errors().Has(col)}
			if opts.PrintValues {
				cell.Value = rec.Value(col)
			}
			row.Cells = append(row.Cells, cell)
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}

// Failed reports whether the sheet should fail a run. With strict set,
// warnings and (when shown) infos fail it too.
func (r *Report) Failed(strict bool) bool {
	if !r.Summary.OK() {
		return true
	}
	if !strict {
		return false
	}
	if r.Summary.Warnings > 0 {
		return true
	}
	return r.opts.ShowInfo && r.Summary.Infos > 0
}

func messages(d *sheet.Diagnostics) []Messages {
	keys := d.Keys()
	if len(keys) == 0 {
		return nil
	}
	out := make([]Messages, 0, len(keys))
	for _, k := range keys {
		out = append(out, Messages{Key: k, Messages: d.Get(k)})
	}
	return out
}

// Package sheet models a VIP samplesheet: the header, one Record per data
// row and the cross-record indices the consistency checks need.
package sheet

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
)

// DefaultProject is the project a row belongs to when it has no project id.
const DefaultProject = "vip"

// CategoryColumns is the sheet-level warning category for rows whose cell
// count differs from the header.
const CategoryColumns = "columns"

// ConsistencyColumns are tracked per project; a project should use one value
// for each of them.
var ConsistencyColumns = []string{ColMethod, ColPlatform, ColAssembly}

// Sheet is a parsed samplesheet.
type Sheet struct {
	Path string

	header     []string
	hasProject bool
	records    map[int]*Record
	order      []int

	individuals        map[string][]int
	families           map[string][]string
	projectSamples     map[string][]int
	projectIndividuals map[string][]string
	projectValues      map[string]map[string][]string

	sheetErrors   Diagnostics
	sheetWarnings Diagnostics
}

// New returns an empty sheet with the given header.
func New(path string, header []string) *Sheet {
	s := &Sheet{
		Path:               path,
		header:             append([]string(nil), header...),
		records:            make(map[int]*Record),
		individuals:        make(map[string][]int),
		families:           make(map[string][]string),
		projectSamples:     make(map[string][]int),
		projectIndividuals: make(map[string][]string),
		projectValues:      make(map[string]map[string][]string, len(ConsistencyColumns)),
	}
	for _, col := range header {
		if col == ColProject {
			s.hasProject = true
		}
	}
	for _, col := range ConsistencyColumns {
		s.projectValues[col] = make(map[string][]string)
	}
	return s
}

// Header returns the column names in file order.
func (s *Sheet) Header() []string {
	return append([]string(nil), s.header...)
}

// HasColumn reports whether the header contains column.
func (s *Sheet) HasColumn(column string) bool {
	for _, h := range s.header {
		if h == column {
			return true
		}
	}
	return false
}

// Append adds the next data row and updates all indices.
func (s *Sheet) Append(fields []string) *Record {
	line := len(s.order) + 1
	rec := NewRecord(line, s.header, fields)
	s.records[line] = rec
	s.order = append(s.order, line)

	if n := len(fields); n != len(s.header) {
		rel := "fewer"
		if n > len(s.header) {
			rel = "more"
		}
		msg := fmt.Sprintf("Sample on line %d has %s columns than the header (%d instead of %d).", line, rel, n, len(s.header))
		s.sheetWarnings.Add(CategoryColumns, msg)
		slog.Warn("column count mismatch", "sheet", s.Path, "line", line, "columns", n, "header", len(s.header))
	}

	s.index(rec)
	return rec
}

func (s *Sheet) index(rec *Record) {
	project := s.ProjectOf(rec)
	s.projectSamples[project] = append(s.projectSamples[project], rec.Line())

	id := rec.Value(ColIndividual)
	if id != "" {
		s.individuals[id] = append(s.individuals[id], rec.Line())
		s.projectIndividuals[project] = append(s.projectIndividuals[project], id)
	}

	if family := rec.Value(ColFamily); family != "" && id != "" {
		if !slices.Contains(s.families[family], id) {
			s.families[family] = append(s.families[family], id)
		}
	}

	for _, col := range ConsistencyColumns {
		if !rec.Has(col) {
			continue
		}
		v := rec.Value(col)
		if !slices.Contains(s.projectValues[col][project], v) {
			s.projectValues[col][project] = append(s.projectValues[col][project], v)
		}
	}
}

// ProjectOf returns the project of rec, DefaultProject when the sheet has no
// project column or the cell is empty.
func (s *Sheet) ProjectOf(rec *Record) string {
	if !s.hasProject {
		return DefaultProject
	}
	if p := rec.Value(ColProject); p != "" {
		return p
	}
	return DefaultProject
}

// Len returns the number of records.
func (s *Sheet) Len() int { return len(s.order) }

// Record returns the record at line.
func (s *Sheet) Record(line int) (*Record, bool) {
	r, ok := s.records[line]
	return r, ok
}

// Records returns all records in line order.
func (s *Sheet) Records() []*Record {
	out := make([]*Record, 0, len(s.order))
	for _, line := range s.order {
		out = append(out, s.records[line])
	}
	return out
}

// Individuals maps each non-empty individual id to the lines it occurs on.
func (s *Sheet) Individuals() map[string][]int {
	return copyIntIndex(s.individuals)
}

// IsIndividual reports whether id is the individual id of any record.
func (s *Sheet) IsIndividual(id string) bool {
	_, ok := s.individuals[id]
	return ok
}

// Families maps each non-empty family id to its distinct individual ids.
func (s *Sheet) Families() map[string][]string {
	return copyStringIndex(s.families)
}

// ProjectSamples maps each project to the lines of its records.
func (s *Sheet) ProjectSamples() map[string][]int {
	return copyIntIndex(s.projectSamples)
}

// ProjectIndividuals maps each project to the individual ids of its records,
// duplicates included.
func (s *Sheet) ProjectIndividuals() map[string][]string {
	return copyStringIndex(s.projectIndividuals)
}

// ProjectValues maps each project to the distinct values seen for column,
// in first seen order. Only ConsistencyColumns are tracked.
func (s *Sheet) ProjectValues(column string) map[string][]string {
	return copyStringIndex(s.projectValues[column])
}

// ProjectValueSet returns the distinct values of column over the whole sheet,
// sorted.
func (s *Sheet) ProjectValueSet(column string) []string {
	var out []string
	for _, vals := range s.projectValues[column] {
		for _, v := range vals {
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Projects returns the project ids in sorted order.
func (s *Sheet) Projects() []string {
	out := make([]string, 0, len(s.projectSamples))
	for p := range s.projectSamples {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// AddSheetError records a sheet-level error under category.
func (s *Sheet) AddSheetError(category, msg string) { s.sheetErrors.Add(category, msg) }

// AddSheetErrorOnce records a sheet-level error unless already present.
func (s *Sheet) AddSheetErrorOnce(category, msg string) bool {
	return s.sheetErrors.AddOnce(category, msg)
}

// ResetDiagnostics drops sheet-level errors and the errors and infos of every
// record. Warnings found while reading are kept.
func (s *Sheet) ResetDiagnostics() {
	s.sheetErrors = Diagnostics{}
	for _, rec := range s.records {
		rec.ResetDiagnostics()
	}
}

// SheetErrors returns the sheet-level errors by category.
func (s *Sheet) SheetErrors() *Diagnostics { return &s.sheetErrors }

// SheetWarnings returns structural warnings found while reading.
func (s *Sheet) SheetWarnings() *Diagnostics { return &s.sheetWarnings }

func copyIntIndex(in map[string][]int) map[string][]int {
	out := make(map[string][]int, len(in))
	for k, v := range in {
		out[k] = append([]int(nil), v...)
	}
	return out
}

func copyStringIndex(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}

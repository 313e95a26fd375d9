package sheet

import (
	"strings"
)

// Well-known column names.
const (
	ColIndividual = "individual_id"
	ColProject    = "project_id"
	ColFamily     = "family_id"
	ColPaternal   = "paternal_id"
	ColMaternal   = "maternal_id"
	ColSex        = "sex"
	ColAffected   = "affected"
	ColProband    = "proband"
	ColHPO        = "hpo_ids"
	ColMethod     = "sequencing_method"
	ColPlatform   = "sequencing_platform"
	ColAssembly   = "assembly"
	ColRegions    = "regions"
	ColPCR        = "pcr_performed"
	ColAdaptive   = "adaptive_sampling"
	ColFastq      = "fastq"
	ColFastqR1    = "fastq_r1"
	ColFastqR2    = "fastq_r2"
	ColCram       = "cram"
	ColGvcf       = "gvcf"
	ColVcf        = "vcf"
)

// Record is one data row of a samplesheet.
type Record struct {
	line        int
	cells       map[string]string
	columnCount int

	affected bool
	proband  bool
	pcr      bool

	hpoTerms    map[string][]string
	hpoProblems []string

	errors Diagnostics
	infos  Diagnostics
}

// NewRecord builds the record for a data row. Cells beyond the header are
// ignored and header columns beyond the row are absent.
func NewRecord(line int, header, fields []string) *Record {
	r := &Record{
		line:        line,
		cells:       make(map[string]string, len(header)),
		columnCount: len(fields),
	}
	for i, col := range header {
		if i >= len(fields) {
			break
		}
		r.cells[col] = fields[i]
	}

	r.affected = r.Value(ColAffected) == "true"
	r.proband = r.Value(ColProband) == "true"
	r.pcr = r.Value(ColPCR) == "true"
	r.hpoTerms, r.hpoProblems = ParseHPO(r.Value(ColHPO))
	return r
}

// Line is the 1-based data row number of the record within its sheet.
func (r *Record) Line() int { return r.line }

// ColumnCount is the number of values present on the row.
func (r *Record) ColumnCount() int { return r.columnCount }

// Raw returns the unmodified cell.
func (r *Record) Raw(column string) (string, bool) {
	v, ok := r.cells[column]
	return v, ok
}

// Has reports whether the row has a cell for column.
func (r *Record) Has(column string) bool {
	_, ok := r.cells[column]
	return ok
}

// Value returns the cell with control characters removed and surrounding
// whitespace trimmed. Absent cells yield "".
func (r *Record) Value(column string) string {
	return Strip(r.cells[column])
}

// IsAffected reports whether affected is "true".
func (r *Record) IsAffected() bool { return r.affected }

// IsProband reports whether proband is "true".
func (r *Record) IsProband() bool { return r.proband }

// PCRPerformed reports whether pcr_performed is "true".
func (r *Record) PCRPerformed() bool { return r.pcr }

// HPOTerms returns phenotype codes grouped by prefix.
func (r *Record) HPOTerms() map[string][]string {
	out := make(map[string][]string, len(r.hpoTerms))
	for k, v := range r.hpoTerms {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// HPOProblems returns the hpo_ids entries that could not be parsed.
func (r *Record) HPOProblems() []string {
	return append([]string(nil), r.hpoProblems...)
}

// AddError records an error on column.
func (r *Record) AddError(column, msg string) { r.errors.Add(column, msg) }

// AddErrorOnce records an error on column unless it is already present.
func (r *Record) AddErrorOnce(column, msg string) bool { return r.errors.AddOnce(column, msg) }

// AddInfo records an informational message on column.
func (r *Record) AddInfo(column, msg string) { r.infos.Add(column, msg) }

// Errors returns the errors of the record by column.
func (r *Record) Errors() *Diagnostics { return &r.errors }

// Infos returns the informational messages of the record by column.
func (r *Record) Infos() *Diagnostics { return &r.infos }

// ResetDiagnostics drops all errors and infos.
func (r *Record) ResetDiagnostics() {
	r.errors = Diagnostics{}
	r.infos = Diagnostics{}
}

// HasErrors reports whether the record has any error.
func (r *Record) HasErrors() bool { return r.errors.Count() > 0 }

// Format writes the record back as a samplesheet line: raw cells joined by
// tabs in header order, absent cells as empty strings.
func (r *Record) Format(header []string) string {
	return r.join(header, func(s string) string { return s })
}

// FormatStripped is Format with control characters removed from every cell.
func (r *Record) FormatStripped(header []string) string {
	return r.join(header, Strip)
}

func (r *Record) join(header []string, conv func(string) string) string {
	parts := make([]string, len(header))
	for i, col := range header {
		parts[i] = conv(r.cells[col])
	}
	return strings.Join(parts, "\t")
}

// Strip removes ASCII control characters (0x00-0x1F) and trims surrounding
// whitespace.
func Strip(s string) string {
	clean := strings.Map(func(c rune) rune {
		if c < 0x20 {
			return -1
		}
		return c
	}, s)
	return strings.TrimSpace(clean)
}

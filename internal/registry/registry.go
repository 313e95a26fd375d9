// Package registry holds the column metadata of VIP samplesheets: which
// columns each run mode requires or accepts, the closed value sets of
// enumerated columns, their defaults and the file extensions of path columns.
package registry

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// RunMode selects the kind of input data a samplesheet describes.
type RunMode string

const (
	RunModeFastq RunMode = "fastq"
	RunModeCram  RunMode = "cram"
	RunModeGvcf  RunMode = "gvcf"
	RunModeVcf   RunMode = "vcf"
)

// RunModes lists the supported run modes in pipeline order.
var RunModes = []RunMode{RunModeFastq, RunModeCram, RunModeGvcf, RunModeVcf}

// ParseRunMode converts a user supplied string to a RunMode.
func ParseRunMode(s string) (RunMode, error) {
	mode := RunMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range RunModes {
		if m == mode {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown runmode %q (expected one of %s)", s, joinModes(RunModes))
}

func joinModes(modes []RunMode) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// FileKind identifies the file type a path column must point to.
type FileKind string

const (
	KindFastq FileKind = "fastq"
	KindBed   FileKind = "bed"
	KindCram  FileKind = "cram"
	KindGvcf  FileKind = "gvcf"
	KindVcf   FileKind = "vcf"
)

// Label is the name used for the kind in diagnostics.
func (k FileKind) Label() string {
	switch k {
	case KindCram:
		return "SAM/BAM/CRAM"
	default:
		return strings.ToUpper(string(k))
	}
}

// Registry is immutable after loading and safe to share.
type Registry struct {
	modes      map[RunMode]modeSpec
	values     map[string][]string
	defaults   map[string]string
	extensions map[FileKind][]string
	files      map[string]FileKind
}

type modeSpec struct {
	required     []string
	optional     []string
	alternatives [][]string
	defaults     map[string]string
}

// Required returns the columns the header must contain for mode.
func (r *Registry) Required(mode RunMode) []string {
	return append([]string(nil), r.modes[mode].required...)
}

// Optional returns the columns the header may contain for mode.
func (r *Registry) Optional(mode RunMode) []string {
	return append([]string(nil), r.modes[mode].optional...)
}

// Known reports whether column is required or optional in mode.
func (r *Registry) Known(mode RunMode, column string) bool {
	spec := r.modes[mode]
	return slices.Contains(spec.required, column) || slices.Contains(spec.optional, column)
}

// Values returns the closed value set of an enumerated column.
func (r *Registry) Values(column string) ([]string, bool) {
	vals, ok := r.values[column]
	if !ok {
		return nil, false
	}
	return append([]string(nil), vals...), true
}

// Allows reports whether value is in the closed set of column. Columns
// without a closed set allow anything.
func (r *Registry) Allows(column, value string) bool {
	vals, ok := r.values[column]
	if !ok {
		return true
	}
	return slices.Contains(vals, value)
}

// Default returns the value assumed when column is left empty in mode.
// Mode specific defaults take precedence over global ones.
func (r *Registry) Default(column string, mode RunMode) (string, bool) {
	if v, ok := r.modes[mode].defaults[column]; ok {
		return v, true
	}
	v, ok := r.defaults[column]
	return v, ok
}

// Extensions returns the accepted extensions for kind, without leading dot.
func (r *Registry) Extensions(kind FileKind) []string {
	return append([]string(nil), r.extensions[kind]...)
}

// FileKindFor returns the file kind of a path column.
func (r *Registry) FileKindFor(column string) (FileKind, bool) {
	k, ok := r.files[column]
	return k, ok
}

// Alternatives returns the column groups that can each satisfy the
// alternative requirement of mode (for fastq: single-end or paired reads).
func (r *Registry) Alternatives(mode RunMode) [][]string {
	groups := r.modes[mode].alternatives
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = append([]string(nil), g...)
	}
	return out
}

// MissingColumns returns the required columns of mode absent from header,
// sorted. Columns that belong to an alternative group are only reported
// when no group is fully present, e.g. a fastq sheet needs either "fastq"
// or both "fastq_r1" and "fastq_r2".
func (r *Registry) MissingColumns(mode RunMode, header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	spec := r.modes[mode]
	satisfied := false
	inGroup := make(map[string]bool)
	for _, group := range spec.alternatives {
		complete := true
		for _, col := range group {
			inGroup[col] = true
			if !present[col] {
				complete = false
			}
		}
		if complete {
			satisfied = true
		}
	}

	var missing []string
	for _, col := range spec.required {
		if present[col] {
			continue
		}
		if satisfied && inGroup[col] {
			continue
		}
		missing = append(missing, col)
	}
	sort.Strings(missing)
	return missing
}

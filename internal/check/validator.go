// Package check validates samplesheets: field rules per cell, file checks
// for path columns and consistency rules across records.
package check

import (
	"context"
	"log/slog"

	"github.com/aidanlsb/vipcheck/internal/filecheck"
	"github.com/aidanlsb/vipcheck/internal/registry"
	"github.com/aidanlsb/vipcheck/internal/sheet"
)

// Options toggles the optional sheet-level rules.
type Options struct {
	// Trios requires every family to have exactly three members.
	Trios bool
	// SheetWideConsistency flags a sequencing method, platform or assembly
	// that differs anywhere in the sheet, on top of the per-project check.
	SheetWideConsistency bool
}

// DefaultOptions enables the trio rule. Consistency is compared per project
// only; the sheet-wide rule is opt-in.
func DefaultOptions() Options {
	return Options{Trios: true}
}

// Validator checks sheets for one run mode.
type Validator struct {
	reg    *registry.Registry
	mode   registry.RunMode
	oracle filecheck.Oracle
	opts   Options
}

// NewValidator creates a validator. oracle answers file existence questions;
// nil means the local filesystem.
func NewValidator(reg *registry.Registry, mode registry.RunMode, oracle filecheck.Oracle, opts Options) *Validator {
	if oracle == nil {
		oracle = filecheck.Local{}
	}
	return &Validator{reg: reg, mode: mode, oracle: oracle, opts: opts}
}

// Mode returns the run mode the validator checks for.
func (v *Validator) Mode() registry.RunMode { return v.mode }

// Summary counts the diagnostics of a validated sheet.
type Summary struct {
	Records     int `json:"records"`
	Errors      int `json:"errors"`
	Infos       int `json:"infos"`
	SheetErrors int `json:"sheet_errors"`
	Warnings    int `json:"warnings"`
}

// OK reports whether the sheet has no errors.
func (s Summary) OK() bool { return s.Errors == 0 && s.SheetErrors == 0 }

// Summarize counts the diagnostics currently attached to s.
func Summarize(s *sheet.Sheet) Summary {
	sum := Summary{
		Records:     s.Len(),
		SheetErrors: s.SheetErrors().Count(),
		Warnings:    s.SheetWarnings().Count(),
	}
	for _, rec := range s.Records() {
		sum.Errors += rec.Errors().Count()
		sum.Infos += rec.Infos().Count()
	}
	return sum
}

// pass carries state shared by the rules of one validation run.
type pass struct {
	ctx   context.Context
	sheet *sheet.Sheet
	files *filecheck.Checker
}

func (v *Validator) newPass(ctx context.Context, s *sheet.Sheet) *pass {
	return &pass{ctx: ctx, sheet: s, files: filecheck.NewChecker(v.oracle)}
}

// Validate runs the header check, every field rule on every record and the
// sheet-level rules. Diagnostics from an earlier run are discarded first, so
// validating twice yields the same result.
func (v *Validator) Validate(ctx context.Context, s *sheet.Sheet) Summary {
	s.ResetDiagnostics()

	v.CheckHeader(s)

	p := v.newPass(ctx, s)
	for _, rec := range s.Records() {
		v.validateRecord(p, rec)
	}
	v.CheckConsistency(s)

	sum := Summarize(s)
	slog.Info("samplesheet checked",
		"sheet", s.Path,
		"runmode", v.mode,
		"records", sum.Records,
		"errors", sum.Errors+sum.SheetErrors,
		"infos", sum.Infos,
	)
	return sum
}

// CheckHeader records the required columns missing from the header as a
// sheet error and returns them.
func (v *Validator) CheckHeader(s *sheet.Sheet) []string {
	missing := v.reg.MissingColumns(v.mode, s.Header())
	if len(missing) > 0 {
		s.AddSheetErrorOnce(CategoryHeader, msgMissingColumns(missing))
	}
	return missing
}

// ValidateRecord applies the field rules to one record. Every registered
// column in the header is checked, including columns that belong to another
// run mode. Parent and file checks consult the rest of s.
func (v *Validator) ValidateRecord(ctx context.Context, s *sheet.Sheet, rec *sheet.Record) {
	v.validateRecord(v.newPass(ctx, s), rec)
}

func (v *Validator) validateRecord(p *pass, rec *sheet.Record) {
	for _, col := range p.sheet.Header() {
		rule, ok := fieldRules[col]
		if !ok {
			continue
		}
		v.applyRule(p, rec, col, rule)
	}
}

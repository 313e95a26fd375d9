package check

import (
	"strings"
	"unicode"

	"github.com/aidanlsb/vipcheck/internal/registry"
	"github.com/aidanlsb/vipcheck/internal/sheet"
)

// fieldRule describes the checks for one column. All enabled checks run;
// none stops the others.
type fieldRule struct {
	printable bool // raw value must not contain non-printable characters
	single    bool // value must not be a comma or space separated list
	domain    bool // value must be in the registry's closed set
	check     func(v *Validator, p *pass, rec *sheet.Record, column string)
}

var fieldRules map[string]fieldRule

func init() {
	enum := fieldRule{printable: true, single: true, domain: true}
	path := fieldRule{printable: true, single: true, check: (*Validator).checkPath}

	fieldRules = map[string]fieldRule{
		sheet.ColIndividual: {printable: true, single: true, check: (*Validator).checkIndividual},
		sheet.ColProject:    {printable: true, single: true},
		sheet.ColFamily:     {printable: true, single: true},
		sheet.ColPaternal:   {printable: true, single: true, check: (*Validator).checkParent},
		sheet.ColMaternal:   {printable: true, single: true, check: (*Validator).checkParent},
		sheet.ColSex:        enum,
		sheet.ColAffected:   enum,
		sheet.ColProband:    enum,
		sheet.ColMethod:     enum,
		sheet.ColPlatform:   enum,
		sheet.ColAssembly:   enum,
		sheet.ColPCR:        enum,
		sheet.ColHPO:        {printable: true, check: (*Validator).checkHPO},
		sheet.ColAdaptive:   {printable: true},
		sheet.ColRegions:    path,
		sheet.ColCram:       path,
		sheet.ColGvcf:       path,
		sheet.ColVcf:        path,
		sheet.ColFastq:      {check: (*Validator).checkReads},
		sheet.ColFastqR1:    {check: (*Validator).checkReads},
		sheet.ColFastqR2:    {check: (*Validator).checkReads},
	}
}

func (v *Validator) applyRule(p *pass, rec *sheet.Record, col string, rule fieldRule) {
	raw, _ := rec.Raw(col)
	value := rec.Value(col)

	if rule.printable && hasNonPrintable(raw) {
		rec.AddError(col, msgNonPrintable(value))
	}
	if rule.single {
		for _, sep := range []string{",", " "} {
			if len(strings.Split(value, sep)) > 1 {
				rec.AddError(col, msgMultipleValues(sep))
			}
		}
	}
	if rule.domain {
		v.checkDomain(rec, col, value)
	}
	if rule.check != nil {
		rule.check(v, p, rec, col)
	}
}

func hasNonPrintable(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsPrint(r) }) >= 0
}

func (v *Validator) checkDomain(rec *sheet.Record, col, value string) {
	if !v.reg.Allows(col, value) {
		allowed, _ := v.reg.Values(col)
		rec.AddError(col, msgNotAllowed(value, allowed))
		return
	}
	if value != "" {
		return
	}
	if def, ok := v.reg.Default(col, v.mode); ok {
		rec.AddInfo(col, msgDefault(col, def))
	} else {
		rec.AddInfo(col, msgNoDefault(col, v.mode))
	}
}

func (v *Validator) checkIndividual(_ *pass, rec *sheet.Record, col string) {
	if rec.Value(col) == "" {
		rec.AddError(col, msgEmptyIndividual)
	}
}

func (v *Validator) checkParent(p *pass, rec *sheet.Record, col string) {
	id := rec.Value(col)
	if id != "" && !p.sheet.IsIndividual(id) {
		rec.AddError(col, msgParentNotFound(col, id))
	}
}

func (v *Validator) checkHPO(_ *pass, rec *sheet.Record, col string) {
	for _, problem := range rec.HPOProblems() {
		rec.AddError(col, problem)
	}
}

// mandatoryFor maps path columns to the run mode in which they must be filed.
var mandatoryFor = map[string]registry.RunMode{
	sheet.ColCram: registry.RunModeCram,
	sheet.ColGvcf: registry.RunModeGvcf,
	sheet.ColVcf:  registry.RunModeVcf,
}

func (v *Validator) checkPath(p *pass, rec *sheet.Record, col string) {
	kind, ok := v.reg.FileKindFor(col)
	if !ok {
		return
	}
	value := rec.Value(col)
	if value == "" {
		if mode, ok := mandatoryFor[col]; ok && mode == v.mode {
			rec.AddError(col, msgNoFile(kind))
		}
		return
	}
	v.checkFile(p, rec, col, kind, value)
}

// checkReads handles the fastq columns, which hold comma separated lists of
// files. In fastq mode a record needs either fastq or both mates.
func (v *Validator) checkReads(p *pass, rec *sheet.Record, col string) {
	kind, ok := v.reg.FileKindFor(col)
	if !ok {
		return
	}
	raw, _ := rec.Raw(col)
	if sheet.Strip(raw) == "" {
		if v.mode == registry.RunModeFastq && !hasReads(rec) {
			rec.AddError(col, msgNoReads)
		}
		return
	}

	for _, elem := range strings.Split(raw, ",") {
		if hasNonPrintable(elem) {
			rec.AddError(col, msgNonPrintable(sheet.Strip(elem)))
		}
		path := sheet.Strip(elem)
		if path == "" {
			continue
		}
		v.checkFile(p, rec, col, kind, path)
	}
}

func hasReads(rec *sheet.Record) bool {
	if rec.Value(sheet.ColFastq) != "" {
		return true
	}
	return rec.Value(sheet.ColFastqR1) != "" && rec.Value(sheet.ColFastqR2) != ""
}

func (v *Validator) checkFile(p *pass, rec *sheet.Record, col string, kind registry.FileKind, path string) {
	res := p.files.Check(p.ctx, path, v.reg.Extensions(kind))
	for _, f := range res.Findings {
		msg, isErr := msgFile(kind, path, f)
		if isErr {
			rec.AddError(col, msg)
		} else {
			rec.AddInfo(col, msg)
		}
	}
}

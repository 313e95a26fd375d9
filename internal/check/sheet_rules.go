package check

import (
	"sort"

	"github.com/aidanlsb/vipcheck/internal/sheet"
)

// CheckConsistency runs the rules that compare records with each other.
// Messages already present are not added again, so running it repeatedly
// leaves the sheet unchanged after the first run.
func (v *Validator) CheckConsistency(s *sheet.Sheet) {
	checkProjectConsistency(s)
	if v.opts.SheetWideConsistency {
		checkSheetConsistency(s)
	}
	checkDuplicates(s)
	checkProjectDuplicates(s)
	if v.opts.Trios {
		checkTrios(s)
	}
}

// checkProjectConsistency flags every record of a project that uses more
// than one sequencing method, platform or assembly.
func checkProjectConsistency(s *sheet.Sheet) {
	samples := s.ProjectSamples()
	for _, col := range sheet.ConsistencyColumns {
		values := s.ProjectValues(col)
		for _, project := range sortedKeys(values) {
			if len(values[project]) < 2 {
				continue
			}
			msg := msgProjectInconsistent(project)
			for _, line := range samples[project] {
				if rec, ok := s.Record(line); ok {
					rec.AddErrorOnce(col, msg)
				}
			}
		}
	}
}

func checkSheetConsistency(s *sheet.Sheet) {
	for _, col := range sheet.ConsistencyColumns {
		if vals := s.ProjectValueSet(col); len(vals) > 1 {
			s.AddSheetErrorOnce(col, msgSheetInconsistent(col, vals))
		}
	}
}

func checkDuplicates(s *sheet.Sheet) {
	individuals := s.Individuals()
	for _, id := range sortedKeys(individuals) {
		lines := individuals[id]
		if len(lines) < 2 {
			continue
		}
		for _, line := range lines {
			if rec, ok := s.Record(line); ok {
				rec.AddErrorOnce(sheet.ColIndividual, msgDuplicate(id))
			}
		}
	}
}

func checkProjectDuplicates(s *sheet.Sheet) {
	samples := s.ProjectSamples()
	byProject := s.ProjectIndividuals()
	for _, project := range sortedKeys(byProject) {
		counts := make(map[string]int)
		for _, id := range byProject[project] {
			counts[id]++
		}
		for _, line := range samples[project] {
			rec, ok := s.Record(line)
			if !ok {
				continue
			}
			id := rec.Value(sheet.ColIndividual)
			if counts[id] > 1 {
				rec.AddErrorOnce(sheet.ColIndividual, msgProjectDuplicate(id, project))
			}
		}
	}
}

// checkTrios reports families that are not exactly three individuals, on the
// sheet and on the family_id of each member.
func checkTrios(s *sheet.Sheet) {
	families := s.Families()
	for _, family := range sortedKeys(families) {
		members := len(families[family])
		if members == 3 {
			continue
		}
		msg := msgTrio(family, members)
		s.AddSheetErrorOnce(sheet.ColFamily, msg)
		for _, rec := range s.Records() {
			if rec.Value(sheet.ColFamily) == family {
				rec.AddErrorOnce(sheet.ColFamily, msg)
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

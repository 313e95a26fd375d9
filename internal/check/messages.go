package check

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/vipcheck/internal/filecheck"
	"github.com/aidanlsb/vipcheck/internal/registry"
)

// Sheet-level categories that are not column names.
const (
	CategoryHeader = "header"
)

func msgNonPrintable(value string) string {
	return fmt.Sprintf("Value %q contains nonprintable characters and might cause unexpected things.", value)
}

var separatorNames = map[string]string{
	",": "commas",
	" ": "spaces",
}

func msgMultipleValues(sep string) string {
	return fmt.Sprintf("Contains multiple values separated by %s.", separatorNames[sep])
}

func msgNotAllowed(value string, allowed []string) string {
	var shown []string
	for _, a := range allowed {
		if a != "" {
			shown = append(shown, a)
		}
	}
	return fmt.Sprintf("Assigned value %q is not allowed. Please use one of the following values: %s (or leave empty).", value, strings.Join(shown, ", "))
}

func msgDefault(column, value string) string {
	return fmt.Sprintf("No assigned value for %s, %q will be used by default.", column, value)
}

func msgNoDefault(column string, mode registry.RunMode) string {
	return fmt.Sprintf("No assigned value for %s, no default applies in runmode %s.", column, mode)
}

func msgParentNotFound(column, id string) string {
	parent := "Paternal"
	if column == "maternal_id" {
		parent = "Maternal"
	}
	return fmt.Sprintf("%s id %q was not found in the samplesheet as individual.", parent, id)
}

const msgEmptyIndividual = "Value for individual_id cannot be empty."

func msgNoFile(kind registry.FileKind) string {
	return fmt.Sprintf("No %s file provided.", kind.Label())
}

const msgNoReads = "No FASTQ files provided, use fastq or both fastq_r1 and fastq_r2."

// msgFile describes a file finding; the bool reports whether it is an error.
func msgFile(kind registry.FileKind, path string, f filecheck.Finding) (string, bool) {
	label := kind.Label()
	switch f.Kind {
	case filecheck.Unresolvable:
		return fmt.Sprintf("Path to %s file %q contains a bash variable and might exist but could not be checked.", label, path), false
	case filecheck.Unverifiable:
		return fmt.Sprintf("%s file %q could not be checked: %v.", label, path, f.Err), false
	case filecheck.Missing:
		return fmt.Sprintf("%s file %q does not exist.", label, path), true
	case filecheck.Empty:
		return fmt.Sprintf("%s file %q has a size of 0 bytes.", label, path), true
	default:
		return fmt.Sprintf("%s file %q doesn't seem to be of the correct type.", label, path), true
	}
}

func msgProjectInconsistent(project string) string {
	return fmt.Sprintf("There is more than one value for project %q.", project)
}

func msgSheetInconsistent(column string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return fmt.Sprintf("Samplesheet contains multiple values for %s: %s.", strings.ReplaceAll(column, "_", " "), strings.Join(quoted, ", "))
}

func msgDuplicate(id string) string {
	return fmt.Sprintf("Value %q appears more than once in the samplesheet.", id)
}

func msgProjectDuplicate(id, project string) string {
	return fmt.Sprintf("Individual ID %s occurs more than once for project_id %s.", id, project)
}

func msgTrio(family string, members int) string {
	rel := "fewer"
	if members > 3 {
		rel = "more"
	}
	return fmt.Sprintf("Family with id %s has %s than three members (%d).", family, rel, members)
}

func msgMissingColumns(cols []string) string {
	return fmt.Sprintf("Missing required columns: %s.", strings.Join(cols, ", "))
}

package check

import (
	"sort"

	"github.com/aidanlsb/vipcheck/internal/sheet"
)

// Issue is one diagnostic flattened out of a sheet.
type Issue struct {
	Level    IssueLevel `json:"level"`
	FilePath string     `json:"file"`
	Line     int        `json:"line,omitempty"` // 0 for sheet-level issues
	Column   string     `json:"column"`
	Message  string     `json:"message"`
}

// IssueLevel indicates the severity of an issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
	LevelInfo
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	case LevelInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the level as lower case text.
func (l IssueLevel) MarshalText() ([]byte, error) {
	switch l {
	case LevelError:
		return []byte("error"), nil
	case LevelWarning:
		return []byte("warning"), nil
	default:
		return []byte("info"), nil
	}
}

// Issues lists every diagnostic of s: sheet-level errors and warnings first,
// then record diagnostics by line. Infos are included only when withInfo is
// set.
func Issues(s *sheet.Sheet, withInfo bool) []Issue {
	var out []Issue
	add := func(level IssueLevel, line int, d *sheet.Diagnostics) {
		for _, col := range d.Keys() {
			for _, msg := range d.Get(col) {
				out = append(out, Issue{Level: level, FilePath: s.Path, Line: line, Column: col, Message: msg})
			}
		}
	}

	add(LevelError, 0, s.SheetErrors())
	add(LevelWarning, 0, s.SheetWarnings())
	for _, rec := range s.Records() {
		add(LevelError, rec.Line(), rec.Errors())
		if withInfo {
			add(LevelInfo, rec.Line(), rec.Infos())
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

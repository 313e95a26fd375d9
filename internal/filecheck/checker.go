package filecheck

import (
	"context"
	"log/slog"
	"path"
	"slices"
	"strings"
)

// Kind classifies a problem with a referenced file.
type Kind int

const (
	// Unresolvable paths contain a shell variable and are not looked up.
	Unresolvable Kind = iota + 1
	Missing
	Empty
	WrongType
	// Unverifiable means the oracle failed, e.g. permission denied.
	Unverifiable
)

func (k Kind) String() string {
	switch k {
	case Unresolvable:
		return "unresolvable"
	case Missing:
		return "missing"
	case Empty:
		return "empty"
	case WrongType:
		return "wrong-type"
	case Unverifiable:
		return "unverifiable"
	default:
		return "unknown"
	}
}

// IsError reports whether the finding makes the path invalid. Unresolvable
// and unverifiable paths might still be fine.
func (k Kind) IsError() bool {
	return k == Missing || k == Empty || k == WrongType
}

// Finding is one problem with a path.
type Finding struct {
	Kind Kind
	Err  error
}

// Result lists the findings for one path. No findings means the file is OK.
type Result struct {
	Path     string
	Findings []Finding
}

// OK reports whether no problem was found.
func (r Result) OK() bool { return len(r.Findings) == 0 }

// Has reports whether the result contains a finding of kind.
func (r Result) Has(kind Kind) bool {
	for _, f := range r.Findings {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

type statResult struct {
	info Info
	err  error
}

// Checker classifies paths using an Oracle. Each path is looked up at most
// once for the lifetime of the Checker; use one Checker per validation pass.
type Checker struct {
	oracle Oracle
	memo   map[string]statResult
}

// NewChecker returns a Checker backed by oracle.
func NewChecker(oracle Oracle) *Checker {
	return &Checker{oracle: oracle, memo: make(map[string]statResult)}
}

// Stat returns the memoized oracle answer for p.
func (c *Checker) Stat(ctx context.Context, p string) (Info, error) {
	if r, ok := c.memo[p]; ok {
		return r.info, r.err
	}
	info, err := c.oracle.Stat(ctx, p)
	if err != nil {
		slog.Warn("could not check file", "path", p, "error", err)
	} else {
		slog.Debug("checked file", "path", p, "exists", info.Exists, "size", info.Size)
	}
	c.memo[p] = statResult{info: info, err: err}
	return info, err
}

// Check classifies p. The extension is checked whether or not the file
// exists; existence is not queried for unresolvable paths.
func (c *Checker) Check(ctx context.Context, p string, exts []string) Result {
	res := Result{Path: p}

	if IsUnresolvable(p) {
		res.Findings = append(res.Findings, Finding{Kind: Unresolvable})
	} else {
		info, err := c.Stat(ctx, p)
		switch {
		case err != nil:
			res.Findings = append(res.Findings, Finding{Kind: Unverifiable, Err: err})
		case !info.Exists:
			res.Findings = append(res.Findings, Finding{Kind: Missing})
		case info.Size == 0:
			res.Findings = append(res.Findings, Finding{Kind: Empty})
		}
	}

	if !HasExtension(p, exts) {
		res.Findings = append(res.Findings, Finding{Kind: WrongType})
	}
	return res
}

// IsUnresolvable reports whether p references a shell variable ($VAR or
// ${VAR}).
func IsUnresolvable(p string) bool {
	return strings.Contains(p, "$")
}

// HasExtension reports whether the file name of p ends in one of exts. Both
// the last dot-separated segment and, for names with at least two dots, the
// last two segments ("vcf.gz") are tried.
func HasExtension(p string, exts []string) bool {
	parts := strings.Split(path.Base(p), ".")
	if len(parts) < 2 {
		return false
	}
	candidates := []string{parts[len(parts)-1]}
	if len(parts) > 2 {
		candidates = append(candidates, parts[len(parts)-2]+"."+parts[len(parts)-1])
	}
	for _, want := range exts {
		if slices.Contains(candidates, want) {
			return true
		}
	}
	return false
}

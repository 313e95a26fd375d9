package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/aidanlsb/vipcheck/internal/atomicfile"
)

// FileName returns the report file name for a sheet path: "checked_" plus
// the slugified base name without extension, plus ".txt".
func FileName(sheetPath string) string {
	base := filepath.Base(sheetPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := slug.Make(base)
	if name == "" {
		name = "samplesheet"
	}
	return "checked_" + name + ".txt"
}

// WriteFile writes the plain text report into dir and returns its path.
// The file is replaced atomically.
func WriteFile(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	out := filepath.Join(dir, FileName(r.Sheet))
	err := atomicfile.Write(out, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, r.Text(false))
		return err
	})
	if err != nil {
		return "", fmt.Errorf("write report %s: %w", out, err)
	}
	return out, nil
}

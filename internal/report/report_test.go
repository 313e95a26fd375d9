package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlsb/vipcheck/internal/check"
	"github.com/aidanlsb/vipcheck/internal/filecheck"
	"github.com/aidanlsb/vipcheck/internal/registry"
	"github.com/aidanlsb/vipcheck/internal/sheet"
)

func checkedReport(t *testing.T, opts Options, lines ...string) *Report {
	t.Helper()
	s, err := sheet.Parse("samples.tsv", strings.NewReader(strings.Join(lines, "\n")+"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	files := filecheck.NewMemory(map[string]int64{"/data/S1.cram": 100})
	v := check.NewValidator(registry.MustLoad(), registry.RunModeCram, files, check.DefaultOptions())
	v.Validate(context.Background(), s)
	return Build(s, registry.RunModeCram, opts)
}

func TestBuild(t *testing.T) {
	r := checkedReport(t, Options{PrintValues: true},
		"individual_id\tcram",
		"S1\t/data/S1.cram",
		"S2\t/data/S2.cram",
	)

	if r.RunMode != "cram" || len(r.Rows) != 2 {
		t.Fatalf("unexpected report %+v", r)
	}
	if got := r.Rows[0].Cells; !got[0].OK || !got[1].OK || got[0].Value != "S1" {
		t.Errorf("row 1 cells = %+v", got)
	}
	row2 := r.Rows[1]
	if row2.Individual != "S2" || row2.Cells[1].OK || !row2.Cells[0].OK {
		t.Errorf("row 2 = %+v", row2)
	}
	if len(row2.Errors) != 1 || row2.Errors[0].Key != sheet.ColCram {
		t.Errorf("row 2 errors = %+v", row2.Errors)
	}
	if !r.Failed(false) {
		t.Error("sheet with errors should fail")
	}
}

func TestBuildWithoutValues(t *testing.T) {
	r := checkedReport(t, Options{},
		"individual_id\tcram",
		"S1\t/data/S1.cram",
	)
	for _, c := range r.Rows[0].Cells {
		if c.Value != "" {
			t.Errorf("value printed without PrintValues: %+v", c)
		}
	}
	if r.Failed(true) {
		t.Error("clean sheet should pass in strict mode")
	}
}

func TestFailedStrict(t *testing.T) {
	r := checkedReport(t, Options{},
		"individual_id\tcram",
		"S1\t/data/S1.cram\textra",
	)
	if len(r.SheetWarnings) == 0 {
		t.Fatal("expected a column count warning")
	}
	if r.Failed(false) {
		t.Error("warnings alone should not fail")
	}
	if !r.Failed(true) {
		t.Error("warnings should fail in strict mode")
	}
}

func TestText(t *testing.T) {
	r := checkedReport(t, Options{PrintValues: true},
		"individual_id\tcram",
		"S1\t/data/S1.cram",
		"S2\t/data/S2.cram",
	)
	out := r.Text(false)

	for _, want := range []string{
		"Samplesheet samples.tsv (runmode cram)",
		"individual_id",
		"✔ S1",
		"✘ /data/S2.cram",
		`Found problems for sample "S2" on line 2:`,
		"\t[cram]: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain text must not contain escape sequences")
	}
}

func TestMarkdown(t *testing.T) {
	r := checkedReport(t, Options{},
		"individual_id\tcram",
		"S1\t/data/S1.cram",
		"S2\t/data/S2.cram",
	)
	out := r.Markdown()

	for _, want := range []string{
		"# samples.tsv",
		"| line | individual\\_id | cram |",
		"| 2 | ✔ | ✘ |",
		"## Line 2: S2",
		"- **cram**: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "## Line 1") {
		t.Error("rows without messages should not get a section")
	}
}

func TestJSON(t *testing.T) {
	r := checkedReport(t, Options{},
		"individual_id\tcram",
		"S2\t/data/S2.cram",
	)
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"sheet", "runmode", "columns", "rows", "summary"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("json missing %q: %s", key, data)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/Run 42.tsv", "checked_run-42.txt"},
		{"samples.tsv", "checked_samples.txt"},
		{"s3-export/Batch-A.txt", "checked_batch-a.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FileName(tt.path); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	r := checkedReport(t, Options{},
		"individual_id\tcram",
		"S2\t/data/S2.cram",
	)
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteFile(dir, r)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if filepath.Base(path) != "checked_samples.txt" {
		t.Errorf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != r.Text(false) {
		t.Errorf("file content differs from plain text report")
	}
}

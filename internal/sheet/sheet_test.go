package sheet

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func parseString(t *testing.T, content string) *Sheet {
	t.Helper()
	s, err := Parse("test.tsv", strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestParse(t *testing.T) {
	t.Run("header and records", func(t *testing.T) {
		s := parseString(t, "individual_id\tsex\tvcf\nA\tmale\ta.vcf\nB\tfemale\tb.vcf\n")

		if got := s.Header(); !reflect.DeepEqual(got, []string{"individual_id", "sex", "vcf"}) {
			t.Fatalf("header = %v", got)
		}
		if s.Len() != 2 {
			t.Fatalf("expected 2 records, got %d", s.Len())
		}
		rec, ok := s.Record(2)
		if !ok {
			t.Fatal("expected record on line 2")
		}
		if rec.Value("individual_id") != "B" || rec.Value("vcf") != "b.vcf" {
			t.Errorf("unexpected record values %q %q", rec.Value("individual_id"), rec.Value("vcf"))
		}
		if rec.ColumnCount() != 3 {
			t.Errorf("column count = %d", rec.ColumnCount())
		}
	})

	t.Run("crlf and blank lines", func(t *testing.T) {
		s := parseString(t, "individual_id\tvcf\r\nA\ta.vcf\r\n\r\n\nB\tb.vcf\r\n")
		if s.Len() != 2 {
			t.Fatalf("expected 2 records, got %d", s.Len())
		}
		rec, _ := s.Record(1)
		raw, _ := rec.Raw("vcf")
		if raw != "a.vcf" {
			t.Errorf("line terminator kept in cell: %q", raw)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse("empty.tsv", strings.NewReader(""))
		if !errors.Is(err, ErrNoHeader) {
			t.Fatalf("expected ErrNoHeader, got %v", err)
		}
	})

	t.Run("short and long rows", func(t *testing.T) {
		s := parseString(t, "individual_id\tsex\tvcf\nA\tmale\nB\tfemale\tb.vcf\textra\n")

		warnings := s.SheetWarnings().Get(CategoryColumns)
		if len(warnings) != 2 {
			t.Fatalf("expected 2 column warnings, got %v", warnings)
		}
		if !strings.Contains(warnings[0], "line 1 has fewer") || !strings.Contains(warnings[1], "line 2 has more") {
			t.Errorf("unexpected warnings %v", warnings)
		}

		short, _ := s.Record(1)
		if short.Has("vcf") {
			t.Error("absent cell should not be present")
		}
		if short.Value("vcf") != "" {
			t.Error("absent cell should read as empty")
		}
		if s.SheetErrors().Count() != 0 {
			t.Errorf("column mismatch must not be a sheet error")
		}
	})
}

func TestRead(t *testing.T) {
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(dir, "samples.tsv")
		if err := os.WriteFile(path, []byte("individual_id\tcram\nA\ta.cram\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		s, err := Read(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Path != path || s.Len() != 1 {
			t.Errorf("path=%q len=%d", s.Path, s.Len())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(dir, "missing.tsv"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected not-exist error, got %v", err)
		}
	})
}

func TestRecordDerivedValues(t *testing.T) {
	header := []string{"individual_id", "affected", "proband", "pcr_performed", "hpo_ids"}

	tests := []struct {
		name     string
		fields   []string
		affected bool
		proband  bool
		pcr      bool
	}{
		{name: "all true", fields: []string{"A", "true", "true", "true", ""}, affected: true, proband: true, pcr: true},
		{name: "all false", fields: []string{"A", "false", "false", "false", ""}},
		{name: "empty", fields: []string{"A", "", "", "", ""}},
		{name: "case matters", fields: []string{"A", "TRUE", "True", "yes", ""}},
		{name: "padded true", fields: []string{"A", " true\x01", "true", "true", ""}, affected: true, proband: true, pcr: true},
		{name: "absent", fields: []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(1, header, tt.fields)
			if rec.IsAffected() != tt.affected || rec.IsProband() != tt.proband || rec.PCRPerformed() != tt.pcr {
				t.Errorf("affected=%v proband=%v pcr=%v", rec.IsAffected(), rec.IsProband(), rec.PCRPerformed())
			}
		})
	}
}

func TestStrip(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"plain":          "plain",
		"  padded  ":     "padded",
		"tab\tinside":    "tabinside",
		"\x00bell\x07\n": "bell",
		"keep\x7fdel":    "keep\x7fdel",
		"ümlaut":         "ümlaut",
	}
	for in, want := range tests {
		if got := Strip(in); got != want {
			t.Errorf("Strip(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseHPO(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		terms    map[string][]string
		problems int
	}{
		{name: "empty", value: "", terms: map[string][]string{}},
		{name: "single", value: "HP:0000001", terms: map[string][]string{"HP": {"0000001"}}},
		{
			name:  "several prefixes",
			value: "HP:1, ORPHA:2,HP:3",
			terms: map[string][]string{"HP": {"1", "3"}, "ORPHA": {"2"}},
		},
		{name: "no colon", value: "HP0001,HP:2", terms: map[string][]string{"HP": {"2"}}, problems: 1},
		{name: "empty code", value: "HP:", terms: map[string][]string{}, problems: 1},
		{name: "two colons", value: "HP:1:2", terms: map[string][]string{}, problems: 1},
		{name: "empty entries skipped", value: "HP:1,,", terms: map[string][]string{"HP": {"1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, problems := ParseHPO(tt.value)
			if !reflect.DeepEqual(terms, tt.terms) {
				t.Errorf("terms = %v, want %v", terms, tt.terms)
			}
			if len(problems) != tt.problems {
				t.Errorf("problems = %v, want %d", problems, tt.problems)
			}
		})
	}
}

func TestIndices(t *testing.T) {
	content := strings.Join([]string{
		"individual_id\tproject_id\tfamily_id\tsequencing_method",
		"A\tP1\tF1\tWGS",
		"B\tP1\tF1\tWES",
		"C\t\tF1\tWGS",
		"A\tP2\t\tWGS",
		"\tP2\tF2\t",
	}, "\n") + "\n"
	s := parseString(t, content)

	t.Run("individuals", func(t *testing.T) {
		ind := s.Individuals()
		if !reflect.DeepEqual(ind["A"], []int{1, 4}) {
			t.Errorf("A lines = %v", ind["A"])
		}
		if _, ok := ind[""]; ok {
			t.Error("empty individual id must not be indexed")
		}
		if !s.IsIndividual("C") || s.IsIndividual("D") {
			t.Error("IsIndividual mismatch")
		}
	})

	t.Run("families", func(t *testing.T) {
		fam := s.Families()
		if !reflect.DeepEqual(fam["F1"], []string{"A", "B", "C"}) {
			t.Errorf("F1 = %v", fam["F1"])
		}
		if _, ok := fam["F2"]; ok {
			t.Error("family with only an empty individual id should not be indexed")
		}
	})

	t.Run("projects", func(t *testing.T) {
		samples := s.ProjectSamples()
		want := map[string][]int{"P1": {1, 2}, DefaultProject: {3}, "P2": {4, 5}}
		if !reflect.DeepEqual(samples, want) {
			t.Errorf("project samples = %v", samples)
		}
		total := 0
		for _, lines := range samples {
			total += len(lines)
		}
		if total != s.Len() {
			t.Errorf("every record must belong to exactly one project: %d vs %d", total, s.Len())
		}
		if got := s.ProjectIndividuals()["P2"]; !reflect.DeepEqual(got, []string{"A"}) {
			t.Errorf("P2 individuals = %v", got)
		}
		if got := s.Projects(); !reflect.DeepEqual(got, []string{"P1", "P2", "vip"}) {
			t.Errorf("projects = %v", got)
		}
	})

	t.Run("project values", func(t *testing.T) {
		methods := s.ProjectValues("sequencing_method")
		if !reflect.DeepEqual(methods["P1"], []string{"WGS", "WES"}) {
			t.Errorf("P1 methods = %v", methods["P1"])
		}
		if !reflect.DeepEqual(methods["P2"], []string{"WGS", ""}) {
			t.Errorf("P2 methods = %v", methods["P2"])
		}
		if got := s.ProjectValueSet("sequencing_method"); !reflect.DeepEqual(got, []string{"", "WES", "WGS"}) {
			t.Errorf("value set = %v", got)
		}
	})
}

func TestDefaultProjectWithoutColumn(t *testing.T) {
	s := parseString(t, "individual_id\tsequencing_method\nA\tWGS\nB\tWES\n")
	samples := s.ProjectSamples()
	if len(samples) != 1 || len(samples[DefaultProject]) != 2 {
		t.Fatalf("expected all records under %q, got %v", DefaultProject, samples)
	}
}

func TestRoundTrip(t *testing.T) {
	header := []string{"individual_id", "sex", "hpo_ids", "vcf"}
	lines := []string{
		"A\tmale\tHP:1,HP:2\ta.vcf",
		" B \t\x01female\t\tb.vcf",
		"C\t\t\t",
	}

	for _, line := range lines {
		rec := NewRecord(1, header, strings.Split(line, "\t"))
		out := rec.Format(header)
		if out != line {
			t.Errorf("Format() = %q, want %q", out, line)
		}
		again := NewRecord(1, header, strings.Split(out, "\t"))
		for _, col := range header {
			a, _ := rec.Raw(col)
			b, _ := again.Raw(col)
			if a != b {
				t.Errorf("%s: %q != %q", col, a, b)
			}
		}
	}

	rec := NewRecord(1, header, []string{"A"})
	if got := rec.Format(header); got != "A\t\t\t" {
		t.Errorf("absent cells should be written empty, got %q", got)
	}
	rec = NewRecord(1, header, []string{" B ", "\x01female", "", "b.vcf"})
	if got := rec.FormatStripped(header); got != "B\tfemale\t\tb.vcf" {
		t.Errorf("FormatStripped() = %q", got)
	}
}

func TestWrite(t *testing.T) {
	content := "individual_id\tvcf\nA\ta.vcf\nB\tb.vcf\n"
	s := parseString(t, content)

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != content {
		t.Errorf("Write() = %q, want %q", buf.String(), content)
	}
}

func TestDiagnostics(t *testing.T) {
	rec := NewRecord(1, []string{"individual_id"}, []string{"A"})
	rec.AddError("sex", "first")
	rec.AddError("individual_id", "second")
	rec.AddError("sex", "third")
	if !rec.AddErrorOnce("sex", "fourth") {
		t.Error("expected new message to be added")
	}
	if rec.AddErrorOnce("sex", "first") {
		t.Error("duplicate message should not be added")
	}
	rec.AddInfo("sex", "note")

	errs := rec.Errors()
	if !reflect.DeepEqual(errs.Keys(), []string{"sex", "individual_id"}) {
		t.Errorf("keys = %v", errs.Keys())
	}
	if !reflect.DeepEqual(errs.Get("sex"), []string{"first", "third", "fourth"}) {
		t.Errorf("sex errors = %v", errs.Get("sex"))
	}
	if errs.Count() != 4 || rec.Infos().Count() != 1 {
		t.Errorf("errors=%d infos=%d", errs.Count(), rec.Infos().Count())
	}
	if !rec.HasErrors() || !errs.Has("individual_id") || errs.Has("vcf") {
		t.Error("Has mismatch")
	}
}

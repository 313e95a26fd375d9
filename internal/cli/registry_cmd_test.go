package cli

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/vipcheck/internal/registry"
)

func TestWriteRegistryYAML(t *testing.T) {
	reg, err := registry.Load()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeRegistryYAML(&buf, reg, []registry.RunMode{registry.RunModeCram}); err != nil {
		t.Fatalf("writeRegistryYAML() error = %v", err)
	}

	var doc registry.File
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	mode, ok := doc.RunModes["cram"]
	if !ok {
		t.Fatalf("cram missing from %s", buf.String())
	}
	if strings.Join(mode.Required, ",") != "individual_id,cram" {
		t.Errorf("required = %v", mode.Required)
	}
	if doc.Files["cram"] != "cram" {
		t.Errorf("files = %v", doc.Files)
	}

	buf.Reset()
	if err := writeRegistryYAML(&buf, reg, registry.RunModes); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n---\n"); n != len(registry.RunModes)-1 {
		t.Errorf("expected %d document separators, got %d", len(registry.RunModes)-1, n)
	}
}

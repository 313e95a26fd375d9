package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
runmode = "cram"
registry_file = "/etc/vipcheck/registry.yaml"
show_info = true
strict = true

[checks]
trios = false
sheet_consistency = true

[log]
level = "debug"
format = "json"

[ui]
accent = "39"

[s3]
region = "eu-west-1"
endpoint = "http://localhost:9000"
path_style = true
access_key_id = "AKIAEXAMPLE"
secret_access_key = "secret"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.RunMode != "cram" || cfg.RegistryFile != "/etc/vipcheck/registry.yaml" {
			t.Errorf("unexpected top level values %+v", cfg)
		}
		if !cfg.ShowInfo || !cfg.Strict || cfg.PrintValues {
			t.Errorf("unexpected flags %+v", cfg)
		}
		if cfg.Checks.TriosEnabled() {
			t.Error("trios should be disabled")
		}
		if !cfg.Checks.SheetConsistencyEnabled() {
			t.Error("sheet consistency should be enabled")
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("log = %+v", cfg.Log)
		}
		if cfg.S3.Region != "eu-west-1" || !cfg.S3.PathStyle || cfg.S3.Endpoint != "http://localhost:9000" {
			t.Errorf("s3 = %+v", cfg.S3)
		}
		if cfg.S3.AccessKeyID != "AKIAEXAMPLE" || cfg.S3.SecretAccessKey != "secret" || cfg.S3.SessionToken != "" {
			t.Errorf("s3 credentials = %+v", cfg.S3)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("runmod = \"vcf\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Fatal("expected error for unknown key")
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("runmode = \n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestChecksDefaults(t *testing.T) {
	var c ChecksConfig
	if !c.TriosEnabled() {
		t.Error("unset trios should be enabled")
	}
	if c.SheetConsistencyEnabled() {
		t.Error("unset sheet consistency should be disabled")
	}
	yes, no := true, false
	c.Trios = &no
	c.SheetConsistency = &yes
	if c.TriosEnabled() || !c.SheetConsistencyEnabled() {
		t.Errorf("explicit values ignored: %+v", c)
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := ResolveConfigPath("/tmp/custom.toml"); got != "/tmp/custom.toml" {
		t.Errorf("got %q", got)
	}
	if got := ResolveConfigPath("  "); got != DefaultPath() {
		t.Errorf("got %q, want default", got)
	}
}

func TestCreateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	written, err := CreateDefault(path)
	if err != nil || !written {
		t.Fatalf("CreateDefault() = %v, %v", written, err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("default config must load: %v", err)
	}
	if cfg.RunMode != "" {
		t.Errorf("default config should leave runmode unset, got %q", cfg.RunMode)
	}

	written, err = CreateDefault(path)
	if err != nil || written {
		t.Errorf("second call should not overwrite: %v, %v", written, err)
	}
}

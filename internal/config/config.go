// Package config handles vipcheck configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/vipcheck/internal/atomicfile"
)

// Config represents the vipcheck configuration file.
type Config struct {
	// RunMode is used when no --runmode flag is given.
	RunMode string `toml:"runmode"`

	// RegistryFile replaces the built-in column registry.
	RegistryFile string `toml:"registry_file"`

	// ShowInfo prints informational messages next to errors.
	ShowInfo bool `toml:"show_info"`

	// PrintValues shows cell values in the report table.
	PrintValues bool `toml:"print_values"`

	// Strict makes warnings fail the check.
	Strict bool `toml:"strict"`

	Checks ChecksConfig `toml:"checks"`
	Log    LogConfig    `toml:"log"`
	UI     UIConfig     `toml:"ui"`
	S3     S3Config     `toml:"s3"`
}

// ChecksConfig toggles optional sheet-level rules. The trio rule is on
// unless disabled; the sheet-wide consistency rule is off unless enabled.
type ChecksConfig struct {
	Trios            *bool `toml:"trios"`
	SheetConsistency *bool `toml:"sheet_consistency"`
}

// TriosEnabled reports whether families must be trios.
func (c ChecksConfig) TriosEnabled() bool {
	return c.Trios == nil || *c.Trios
}

// SheetConsistencyEnabled reports whether sequencing settings must agree
// across the whole sheet, not only within each project.
func (c ChecksConfig) SheetConsistencyEnabled() bool {
	return c.SheetConsistency != nil && *c.SheetConsistency
}

// LogConfig configures diagnostics logging on stderr.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// S3Config configures lookups of s3:// paths.
type S3Config struct {
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	Profile   string `toml:"profile"`
	PathStyle bool   `toml:"path_style"`

	// Static credentials. When AccessKeyID is empty the AWS default chain
	// is used.
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	SessionToken    string `toml:"session_token"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &config, nil
}

// ResolveConfigPath returns explicit when set, otherwise DefaultPath.
func ResolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/vipcheck/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "vipcheck", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "vipcheck", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

const defaultConfig = `# vipcheck configuration

# Run mode used when --runmode is not given: fastq, cram, gvcf or vcf.
# runmode = "vcf"

# Alternative column registry (YAML, same layout as the built-in one).
# registry_file = "/path/to/registry.yaml"

# show_info = false
# print_values = false
# strict = false

# sheet_consistency compares sequencing settings across all projects.
# [checks]
# trios = true
# sheet_consistency = false

# [log]
# level = "warn"
# format = "text"

# [ui]
# accent = "39"

# Credentials come from the usual AWS environment and shared config files
# unless access_key_id is set.
# [s3]
# region = "eu-west-1"
# endpoint = "https://minio.example.org"
# profile = "default"
# path_style = true
# access_key_id = ""
# secret_access_key = ""
# session_token = ""
`

// CreateDefault writes a commented config file to path unless one exists.
// It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	err := atomicfile.Write(path, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, defaultConfig)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

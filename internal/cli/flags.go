package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/vipcheck/internal/registry"
)

// runModeValue is a pflag.Value that only accepts known run modes.
type runModeValue struct {
	mode registry.RunMode
}

var _ pflag.Value = (*runModeValue)(nil)

func (v *runModeValue) String() string { return string(v.mode) }

func (v *runModeValue) Set(s string) error {
	mode, err := registry.ParseRunMode(s)
	if err != nil {
		return err
	}
	v.mode = mode
	return nil
}

func (v *runModeValue) Type() string { return "runmode" }

// Report output formats.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
)

// formatValue is a pflag.Value for --format.
type formatValue struct {
	format string
}

var _ pflag.Value = (*formatValue)(nil)

func (v *formatValue) String() string {
	if v.format == "" {
		return formatText
	}
	return v.format
}

func (v *formatValue) Set(s string) error {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case formatText, formatMarkdown:
		v.format = f
		return nil
	case "md":
		v.format = formatMarkdown
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text or markdown)", s)
	}
}

func (v *formatValue) Type() string { return "format" }

// boolSetting returns the flag value when the flag was given, otherwise the
// configured value.
func boolSetting(flags *pflag.FlagSet, name string, flagValue, configValue bool) bool {
	if flags.Changed(name) {
		return flagValue
	}
	return configValue
}

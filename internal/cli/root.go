package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vipcheck/internal/config"
	"github.com/aidanlsb/vipcheck/internal/logging"
	"github.com/aidanlsb/vipcheck/internal/ui"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
)

// errSilent ends a command with a non-zero exit after the command has
// already reported the failure itself.
var errSilent = errors.New("silent failure")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vipcheck",
	Short: "vipcheck - validate VIP samplesheets",
	Long: `vipcheck checks tab-separated samplesheets before they are handed to the
VIP pipeline. It reports, per row and column, values outside the allowed sets,
missing or misnamed input files, broken pedigrees and inconsistent projects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			logging.Setup(logLevel, logFormat, os.Stderr)
			return handleError(ErrConfigInvalid, err, "Fix the file or run 'vipcheck config init' on a new path")
		}

		level, format := cfg.Log.Level, cfg.Log.Format
		if cmd.Flags().Changed("log-level") || level == "" {
			level = logLevel
		}
		if cmd.Flags().Changed("log-format") || format == "" {
			format = logFormat
		}
		logging.Setup(level, format, os.Stderr)

		if strings.TrimSpace(cfg.UI.Accent) != "" {
			ui.ConfigureTheme(cfg.UI.Accent)
		}
		return nil
	},
}

// Execute runs the CLI. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}

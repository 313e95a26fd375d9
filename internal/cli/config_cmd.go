package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vipcheck/internal/config"
	"github.com/aidanlsb/vipcheck/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the vipcheck config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, statErr := os.Stat(resolvedConfigPath)
		exists := statErr == nil

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": resolvedConfigPath,
				"exists":      exists,
			}, nil)
			return nil
		}

		fmt.Println(resolvedConfigPath)
		if !exists {
			fmt.Println(ui.Hint("(file does not exist; built-in defaults are used)"))
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		written, err := config.CreateDefault(path)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": path,
				"created":     written,
			}, nil)
			return nil
		}

		if written {
			fmt.Println(ui.Successf("Created %s", ui.FilePath(path)))
		} else {
			fmt.Println(ui.Info(fmt.Sprintf("Config already exists at %s", ui.FilePath(path))))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

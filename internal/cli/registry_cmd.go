package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/vipcheck/internal/registry"
)

var (
	registryRunMode runModeValue
	registryFile    string
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Show the columns, values and defaults of a run mode",
	Long: `Prints the column registry used by 'vipcheck check': required and optional
columns, allowed values, defaults and file extensions. Without --runmode the
configured run mode is used, or every run mode when none is configured.

The output is YAML in the same layout a --registry file uses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()

		path := c.RegistryFile
		if registryFile != "" {
			path = registryFile
		}
		reg, err := loadRegistry(path)
		if err != nil {
			return handleError(ErrRegistryInvalid, err, "")
		}

		modes := registry.RunModes
		switch {
		case cmd.Flags().Changed("runmode"):
			modes = []registry.RunMode{registryRunMode.mode}
		case strings.TrimSpace(c.RunMode) != "":
			mode, err := registry.ParseRunMode(c.RunMode)
			if err != nil {
				return handleError(ErrInvalidRunMode, fmt.Errorf("config runmode: %w", err), "")
			}
			modes = []registry.RunMode{mode}
		}

		if isJSONOutput() {
			docs := make(map[string]registry.File, len(modes))
			for _, mode := range modes {
				docs[string(mode)] = reg.Document(mode)
			}
			outputSuccess(docs, &Meta{Count: len(docs)})
			return nil
		}

		if err := writeRegistryYAML(os.Stdout, reg, modes); err != nil {
			return handleError(ErrInternal, err, "")
		}
		return nil
	},
}

// writeRegistryYAML writes one YAML document per run mode.
func writeRegistryYAML(w io.Writer, reg *registry.Registry, modes []registry.RunMode) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, mode := range modes {
		if err := enc.Encode(reg.Document(mode)); err != nil {
			return fmt.Errorf("encode registry for %s: %w", mode, err)
		}
	}
	return enc.Close()
}

func init() {
	registryCmd.Flags().VarP(&registryRunMode, "runmode", "r", "Run mode to show")
	registryCmd.Flags().StringVar(&registryFile, "registry", "", "Column registry YAML replacing the built-in one")
	rootCmd.AddCommand(registryCmd)
}

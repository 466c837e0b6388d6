package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/opmodel/tagloader/internal/cmdtypes"
	"github.com/opmodel/tagloader/internal/config"
	"github.com/opmodel/tagloader/internal/output"
)

const configHeader = `# tagloader configuration
# Values can be overridden with flags and TAGLOADER_* environment variables.

`

const exampleRules = `
# Transform rules for inline sub-resources, first match wins.
# rules:
#   - test: '\.less$'
#     use:
#       - style-loader
#       - loader: css-loader
#         options: {modules: true}
#       - less-loader
#   - glob: '**/*.template.txt'
#     loader: raw-loader
`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new tagloader configuration file",
		Long: `Create a new tagloader configuration file with default values.

The configuration file is created at ~/.tagloader/config.yaml by default.
Use --config or TAGLOADER_CONFIG to choose a different location.

Examples:
  # Initialize configuration
  tagloader config init

  # Overwrite existing configuration
  tagloader config init --force`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, gc, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, gc *cmdtypes.GlobalConfig, force bool) error {
	path, err := config.ExpandPath(gc.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err:  fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
		}
	}

	data, err := DefaultConfigYAML()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	output.Debug("config file created", "path", path, "overwritten", exists)
	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+path))
	return nil
}

// DefaultConfigYAML renders the default configuration with a header and
// commented example rules.
func DefaultConfigYAML() ([]byte, error) {
	cfg := config.DefaultConfig()
	cfg.Log.Timestamps = output.BoolPtr(true)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}

	out := append([]byte(configHeader), data...)
	return append(out, exampleRules...), nil
}

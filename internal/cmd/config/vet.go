package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opmodel/tagloader/internal/cmdtypes"
	"github.com/opmodel/tagloader/internal/config"
	oerrors "github.com/opmodel/tagloader/internal/errors"
	"github.com/opmodel/tagloader/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the tagloader configuration file",
		Long: `Validate the tagloader configuration file against the embedded schema.

Every rule is also compiled: regular expressions and glob patterns must be
valid and each loader entry must name a loader. When a rules file is
configured it is checked the same way.`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, gc)
		},
	}
}

func runVet(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	path, err := config.ExpandPath(gc.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cmdtypes.ExitError{
				Code: cmdtypes.ExitNotFound,
				Err: oerrors.NewNotFoundError("config file not found", path,
					"Run 'tagloader config init' to create one"),
			}
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}
	if err := validator.Validate(data, path); err != nil {
		return cmdtypes.ExitErrorFor(err)
	}

	rules, err := config.ParseRules(data)
	if err != nil {
		return cmdtypes.ExitErrorFor(oerrors.NewValidationError(err.Error(), path, ""))
	}
	output.Debug("config rules compiled", "rules", len(rules))

	if gc.Resolved != nil && gc.Resolved.RulesFile.Value != "" {
		rulesFile := gc.Resolved.RulesFile.Value
		fileRules, err := config.ReadRulesFile(rulesFile)
		if err != nil {
			return cmdtypes.ExitErrorFor(err)
		}
		output.Debug("rules file compiled", "path", rulesFile, "rules", len(fileRules))
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file is valid: "+path))
	return nil
}

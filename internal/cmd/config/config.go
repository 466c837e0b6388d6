// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/tagloader/internal/cmdtypes"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the tagloader CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(gc))
	c.AddCommand(NewConfigVetCmd(gc))

	return c
}

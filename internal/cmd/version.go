package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/tagloader/internal/cmdtypes"
	"github.com/opmodel/tagloader/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show tagloader version information.

Displays:
  - tagloader version, commit, and build date
  - CUE SDK version (config schema validation)
  - the resolved template compiler command`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVersion(c, gc)
		},
	}
}

func runVersion(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	info := version.Get()

	compiler := "not configured"
	if gc != nil && gc.Resolved != nil && len(gc.Resolved.CompilerCommand) > 0 {
		compiler = fmt.Sprintf("%s (%s)", strings.Join(gc.Resolved.CompilerCommand, " "), gc.Resolved.Compiler.Source)
	}

	fmt.Fprintln(c.OutOrStdout(), info.String())
	fmt.Fprintf(c.OutOrStdout(), "  Compiler: %s\n", compiler)
	return nil
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opmodel/tagloader/internal/cmdtypes"
	"github.com/opmodel/tagloader/internal/cmdutil"
)

// NewTransformCmd creates the transform command.
func NewTransformCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var sf cmdutil.SourceFlags
	var outFlag string

	c := &cobra.Command{
		Use:   "transform <resource>",
		Short: "Transform one template resource into module text",
		Long: `Transform one template resource into the module text handed back to the bundler.

The resource is the template path, optionally followed by a mode marker
(?dependencies or ?hydrate). The template is read from the resource path
unless --source is given.

The module is written exactly as the loader returns it, plus one trailing
newline when it does not already end with one.

Examples:
  # Full render module for the browser
  tagloader transform src/widget.template

  # Dependencies-only module, template read from stdin
  tagloader transform 'src/widget.template?dependencies' --source -

  # Server module written to a file
  tagloader transform src/widget.template --target node -o dist/widget.js`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runTransform(c, args[0], gc, &sf, outFlag)
		},
	}

	sf.AddTo(c)
	c.Flags().StringVarP(&outFlag, "output", "o", "", "Write the module to this file instead of stdout")

	return c
}

func runTransform(c *cobra.Command, resource string, gc *cmdtypes.GlobalConfig, sf *cmdutil.SourceFlags, out string) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source, err := cmdutil.ReadSource(resource, sf.Source, c.InOrStdin())
	if err != nil {
		return cmdtypes.ExitErrorFor(err)
	}

	l, err := cmdutil.NewLoader(gc)
	if err != nil {
		return err
	}

	module, err := cmdutil.Transform(ctx, l, gc, resource, source)
	if err != nil {
		return err
	}

	if err := cmdutil.WriteModule(c.OutOrStdout(), out, module); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}
	return nil
}

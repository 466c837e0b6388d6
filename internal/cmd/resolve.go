package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/opmodel/tagloader/internal/chain"
	"github.com/opmodel/tagloader/internal/cmdtypes"
	"github.com/opmodel/tagloader/internal/output"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "resolve <virtual-path>...",
		Short: "Show the loader chain an inline resource would pass through",
		Long: `Show the loader chain each virtual path resolves to.

Configured rules are checked in declared order and the first match wins.
Without a match the file extension is looked up in the built-in table
(css -> style-loader!css-loader!). Anything else resolves to no loaders.

Examples:
  tagloader resolve src/widget.template.css
  tagloader resolve src/widget.template.less --rules rules.yaml -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(c, args, gc, outputFlag)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "table", "Output format: table, yaml, json")

	return c
}

func runResolve(c *cobra.Command, paths []string, gc *cmdtypes.GlobalConfig, outputFmt string) error {
	format, valid := output.ParseFormat(outputFmt)
	if !valid {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitValidationError,
			Err:  fmt.Errorf("invalid output format %q (valid: %v)", outputFmt, output.ValidFormats()),
		}
	}

	resolutions := make([]chain.Resolution, 0, len(paths))
	for _, p := range paths {
		resolutions = append(resolutions, chain.Explain(p, gc.Rules))
	}

	var rendered string
	switch format {
	case output.FormatYAML:
		data, err := yaml.Marshal(resolutions)
		if err != nil {
			return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("marshaling yaml: %w", err)}
		}
		rendered = string(data)
	case output.FormatJSON:
		data, err := json.MarshalIndent(resolutions, "", "  ")
		if err != nil {
			return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("marshaling json: %w", err)}
		}
		rendered = string(data) + "\n"
	default:
		rendered = resolutionTable(resolutions) + "\n"
	}

	_, err := fmt.Fprint(c.OutOrStdout(), rendered)
	return err
}

func resolutionTable(resolutions []chain.Resolution) string {
	tbl := output.NewTable("PATH", "CHAIN", "SOURCE", "MATCHED BY").
		Column(0, output.StyleNoun).
		Column(3, lipgloss.NewStyle().Foreground(output.ColorDimGray))
	for _, r := range resolutions {
		tbl.Row(r.Path, r.Prefix, output.StatusStyle(string(r.Source)).Render(string(r.Source)), matchedBy(r))
	}
	return tbl.String()
}

func matchedBy(r chain.Resolution) string {
	switch r.Source {
	case chain.SourceRule:
		return "rule " + strconv.Itoa(r.RuleIndex) + " " + r.Pattern
	case chain.SourceDefault:
		return "extension ." + r.Extension
	default:
		return ""
	}
}

// Package cmdutil provides shared command utilities: loader construction from
// resolved configuration, source reading, error mapping and output writing.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// SourceFlags holds flags for commands that read template sources
// (transform, build).
type SourceFlags struct {
	// Source overrides where the template text is read from.
	// "-" reads stdin. Empty reads the resource's own path.
	Source string
}

// AddTo registers the source flags on the given cobra command.
func (f *SourceFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Source, "source", "s", "",
		"Read the template from this file instead of the resource path (- for stdin)")
}

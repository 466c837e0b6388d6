package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/tagloader/internal/cmdtypes"
	"github.com/opmodel/tagloader/internal/codequery"
	oerrors "github.com/opmodel/tagloader/internal/errors"
)

// NewDecodeCmd creates the decode command, the synthetic code loader.
func NewDecodeCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <payload>",
		Short: "Decode an inline code payload",
		Long: `Decode the payload of an inline request and print the original code.

This is the code loader's side of inline sub-resources: the bundler passes the
query of a request such as

  !!style-loader!css-loader!tagloader/code-loader?LndpZGdldCB7fQ!./widget.template

and receives the embedded code back. A leading '?' is accepted. Use - to read
the payload from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDecode(c, args[0])
		},
	}
}

func runDecode(c *cobra.Command, payload string) error {
	if payload == "-" {
		data, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("reading payload: %w", err)}
		}
		payload = strings.TrimSpace(string(data))
	}

	code, err := codequery.Decode(payload)
	if err != nil {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitValidationError,
			Err:  oerrors.NewValidationError(err.Error(), "", "Pass the query part of an inline request"),
		}
	}

	_, err = io.WriteString(c.OutOrStdout(), code)
	return err
}

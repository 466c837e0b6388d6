// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/opmodel/tagloader/internal/chain"
	"github.com/opmodel/tagloader/internal/config"
	oerrors "github.com/opmodel/tagloader/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded config file (empty when the file does not exist).
	Config *config.Config

	// Resolved holds the values after flag > env > config > default precedence.
	Resolved *config.ResolvedConfig

	// Rules are the transform rules in effect: the rules file when one is
	// resolved, otherwise the rules declared in the config file.
	Rules []chain.Rule

	// ConfigPath is the resolved --config path.
	ConfigPath string

	Verbose bool
}

// Target returns the resolved bundler target.
func (g *GlobalConfig) Target() string {
	if g.Resolved == nil {
		return config.DefaultTarget
	}
	return g.Resolved.Target.Value
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess         = oerrors.ExitSuccess
	ExitGeneralError    = oerrors.ExitGeneralError
	ExitValidationError = oerrors.ExitValidationError
	ExitNotFound        = oerrors.ExitNotFound
	ExitCompileError    = oerrors.ExitCompileError
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// ExitErrorFor wraps err with the exit code its sentinel maps to.
func ExitErrorFor(err error) *ExitError {
	return &ExitError{Err: err, Code: oerrors.ExitCodeFromError(err)}
}

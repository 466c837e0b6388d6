package cmdutil

import (
	"context"
	"fmt"

	"github.com/opmodel/tagloader/internal/cmdtypes"
	"github.com/opmodel/tagloader/internal/compiler"
	"github.com/opmodel/tagloader/internal/config"
	oerrors "github.com/opmodel/tagloader/internal/errors"
	"github.com/opmodel/tagloader/internal/loader"
	"github.com/opmodel/tagloader/internal/output"
)

// unconfiguredCompiler stands in when no compiler command is resolved.
// Hydration requests never reach it.
type unconfiguredCompiler struct{}

func (unconfiguredCompiler) Compile(context.Context, string, string, compiler.Options) (string, error) {
	return "", oerrors.NewValidationError("no template compiler configured", "",
		fmt.Sprintf("Set --compiler, %s or compiler.command in the config file", config.EnvCompiler))
}

// NewCompiler builds the external compiler from the resolved configuration.
func NewCompiler(gc *cmdtypes.GlobalConfig) (compiler.Compiler, error) {
	if gc == nil || gc.Resolved == nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}
	if len(gc.Resolved.CompilerCommand) == 0 {
		return unconfiguredCompiler{}, nil
	}

	var cfg config.Config
	if gc.Config != nil {
		cfg = *gc.Config
	}

	c, err := compiler.NewExec(compiler.ExecConfig{
		Command: gc.Resolved.CompilerCommand,
		Dir:     cfg.Compiler.Dir,
		Env:     cfg.Compiler.Env,
		Browser: cfg.Compiler.Browser,
	})
	if err != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
	}

	output.Debug("using external compiler",
		"command", gc.Resolved.CompilerCommand,
		"source", gc.Resolved.Compiler.Source,
		"browser", cfg.Compiler.Browser,
	)
	return c, nil
}

// NewLoader builds a Loader wired to the resolved compiler and runtime references.
func NewLoader(gc *cmdtypes.GlobalConfig) (*loader.Loader, error) {
	c, err := NewCompiler(gc)
	if err != nil {
		return nil, err
	}

	opts := []loader.Option{
		loader.WithCodeLoader(gc.Resolved.CodeLoader.Value),
		loader.WithLogger(output.Logger()),
	}
	if gc.Config != nil {
		opts = append(opts,
			loader.WithRegistryModule(gc.Config.RegistryModule),
			loader.WithInitHook(gc.Config.InitHook),
		)
	}

	return loader.New(c, opts...), nil
}

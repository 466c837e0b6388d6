package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opmodel/tagloader/internal/cmdtypes"
	oerrors "github.com/opmodel/tagloader/internal/errors"
	"github.com/opmodel/tagloader/internal/loader"
	"github.com/opmodel/tagloader/internal/request"
)

// ReadSource returns the template text for resource.
//
// sourceFlag overrides the path the text is read from ("-" reads stdin).
// Hydration requests need no source and return "" without touching disk.
func ReadSource(resource, sourceFlag string, stdin io.Reader) (string, error) {
	path, mode := request.ParseResource(resource)
	if mode == request.Hydrate && sourceFlag == "" {
		return "", nil
	}

	if sourceFlag == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading source from stdin: %w", err)
		}
		return string(data), nil
	}
	if sourceFlag != "" {
		path = sourceFlag
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", oerrors.NewNotFoundError("template source does not exist", path,
				"Pass --source to read the template from another file")
		}
		return "", fmt.Errorf("reading template source: %w", err)
	}
	return string(data), nil
}

// Transform runs one invocation with the globally resolved target and rules.
//
// Failures come back as *ExitError. Compiler failures are attributed to the
// source path and keep the compiler's error reachable.
func Transform(ctx context.Context, l *loader.Loader, gc *cmdtypes.GlobalConfig, resource, source string) (string, error) {
	inv := loader.NewInvocation(resource, source, gc.Target(), gc.Rules)

	out, err := l.Transform(ctx, inv)
	if err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) {
			return "", err
		}
		var detail *oerrors.DetailError
		if !errors.As(err, &detail) {
			err = oerrors.NewCompileError(inv.SourcePath, err)
		}
		return "", cmdtypes.ExitErrorFor(err)
	}
	return out, nil
}

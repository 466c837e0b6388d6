package cmdutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	oerrors "github.com/opmodel/tagloader/internal/errors"
	"github.com/opmodel/tagloader/internal/request"
)

// WriteModule writes module text to path, or to w when path is empty or "-".
// A newline is appended when module does not end with one; the bytes before
// it are the loader's output unchanged.
func WriteModule(w io.Writer, path, module string) error {
	if !strings.HasSuffix(module, "\n") {
		module += "\n"
	}

	if path == "" || path == "-" {
		_, err := io.WriteString(w, module)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(module), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// OutputPath returns where the build command writes the module for resource.
//
// The file keeps the source's location relative to root, with the mode
// folded into the name:
//
//	widget.template               -> widget.template.js
//	widget.template?dependencies  -> widget.template.dependencies.js
//	widget.template?hydrate       -> widget.template.hydrate.js
//
// Sources outside root fall back to their base name.
func OutputPath(outDir, root, resource string) string {
	path, mode := request.ParseResource(resource)

	name := filepath.Base(path)
	if root != "" {
		if abs, err := filepath.Abs(path); err == nil {
			if rel, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(rel, "..") {
				name = rel
			}
		}
	}

	switch mode {
	case request.DependenciesOnly:
		name += ".dependencies"
	case request.Hydrate:
		name += ".hydrate"
	}
	return filepath.Join(outDir, name+".js")
}

// OutputPaths maps every resource to its output file under outDir, keeping
// directories relative to the deepest directory shared by all sources.
// Two resources that would write the same file are a validation error.
func OutputPaths(outDir string, resources []string) ([]string, error) {
	dirs := make([]string, 0, len(resources))
	for _, resource := range resources {
		path, _ := request.ParseResource(resource)
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		dirs = append(dirs, filepath.Dir(abs))
	}
	root := CommonDir(dirs)

	paths := make([]string, len(resources))
	seen := make(map[string]string, len(resources))
	for i, resource := range resources {
		out := OutputPath(outDir, root, resource)
		if prev, ok := seen[out]; ok {
			return nil, oerrors.NewValidationError(
				fmt.Sprintf("%s and %s both write %s", prev, resource, out),
				resource, "Pass each resource once")
		}
		seen[out] = resource
		paths[i] = out
	}
	return paths, nil
}

// CommonDir returns the deepest directory containing every absolute dir.
func CommonDir(dirs []string) string {
	if len(dirs) == 0 {
		return ""
	}
	common := strings.Split(filepath.Clean(dirs[0]), string(filepath.Separator))
	for _, dir := range dirs[1:] {
		parts := strings.Split(filepath.Clean(dir), string(filepath.Separator))
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}
	if len(common) == 1 && common[0] == "" {
		return string(filepath.Separator)
	}
	return strings.Join(common, string(filepath.Separator))
}

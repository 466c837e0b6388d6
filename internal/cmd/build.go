package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/opmodel/tagloader/internal/cmdtypes"
	"github.com/opmodel/tagloader/internal/cmdutil"
	"github.com/opmodel/tagloader/internal/loader"
	"github.com/opmodel/tagloader/internal/output"
)

// buildResult is the outcome of one resource in a batch build.
type buildResult struct {
	Resource string
	Path     string
	Err      error
	Duration time.Duration
}

// NewBuildCmd creates the build command.
func NewBuildCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var outDirFlag string

	c := &cobra.Command{
		Use:   "build <resource>...",
		Short: "Transform many template resources into an output directory",
		Long: `Transform many template resources concurrently.

Each resource is transformed independently and written to --out-dir. Output
files keep their directory relative to the deepest directory shared by all
sources, and the mode is folded into the name:

  widget.template               -> widget.template.js
  widget.template?dependencies  -> widget.template.dependencies.js
  widget.template?hydrate       -> widget.template.hydrate.js

Results are reported in argument order. The command fails if any resource
fails, and refuses to start when two resources would write the same file.

Examples:
  # Build full and dependencies-only modules
  tagloader build src/a.template 'src/a.template?dependencies' --out-dir dist`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c, args, gc, outDirFlag)
		},
	}

	c.Flags().StringVar(&outDirFlag, "out-dir", "./dist", "Directory for generated modules")

	return c
}

func runBuild(c *cobra.Command, resources []string, gc *cmdtypes.GlobalConfig, outDir string) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	paths, err := cmdutil.OutputPaths(outDir, resources)
	if err != nil {
		return cmdtypes.ExitErrorFor(err)
	}

	l, err := cmdutil.NewLoader(gc)
	if err != nil {
		return err
	}

	var results []buildResult
	title := fmt.Sprintf("Transforming %d resources...", len(resources))
	if err := output.RunWithSpinner(ctx, func() error {
		results = buildAll(ctx, l, gc, resources, paths)
		return nil
	}, output.WithTitle(title)); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	var firstErr error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			output.ResourceLogger(r.Resource).Error("transform failed", "error", r.Err)
			output.Info(output.FormatResourceLine(r.Resource, output.StatusFailed))
			continue
		}
		output.Debug("wrote module", "resource", r.Resource, "path", r.Path, "duration", r.Duration)
		output.Info(output.FormatResourceLine(r.Resource, output.StatusWritten))
	}

	if failed > 0 {
		exitErr := cmdtypes.ExitErrorFor(firstErr)
		exitErr.Err = fmt.Errorf("%d of %d resources failed: %w", failed, len(resources), firstErr)
		exitErr.Printed = true
		return exitErr
	}

	files := make(map[string]string, len(results))
	for _, r := range results {
		rel, err := filepath.Rel(outDir, r.Path)
		if err != nil {
			rel = filepath.Base(r.Path)
		}
		files[rel] = r.Resource
	}
	fmt.Fprint(c.OutOrStdout(), output.RenderFileTree(outDir, files))

	output.Info(output.StyleSummary.Render(output.FormatCheckmark(
		fmt.Sprintf("wrote %d modules to %s", len(results), outDir))))
	return nil
}

// buildAll transforms every resource in its own goroutine and returns the
// results in input order.
func buildAll(ctx context.Context, l *loader.Loader, gc *cmdtypes.GlobalConfig, resources, paths []string) []buildResult {
	results := make([]buildResult, len(resources))

	var wg sync.WaitGroup
	for i, resource := range resources {
		wg.Add(1)
		go func(i int, resource string) {
			defer wg.Done()
			results[i] = buildOne(ctx, l, gc, resource, paths[i])
		}(i, resource)
	}
	wg.Wait()

	return results
}

func buildOne(ctx context.Context, l *loader.Loader, gc *cmdtypes.GlobalConfig, resource, path string) buildResult {
	start := time.Now()
	result := buildResult{Resource: resource, Path: path}

	source, err := cmdutil.ReadSource(resource, "", nil)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	module, err := cmdutil.Transform(ctx, l, gc, resource, source)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Err = cmdutil.WriteModule(nil, result.Path, module)
	result.Duration = time.Since(start)
	return result
}

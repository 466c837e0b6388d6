// Package compiler defines the template compiler capabilities the loader
// depends on and dispatches a compilation to the right entry point.
//
// A compiler always offers Compile. Browser-oriented compilation is an
// optional capability (BrowserCompiler) checked at call time; compilers
// without it are served by the full compile path.
package compiler

import (
	"context"

	"github.com/opmodel/tagloader/internal/target"
)

// Options are passed through to the compiler on every call.
type Options struct {
	// WriteToDisk lets the compiler persist generated files. Always false here.
	WriteToDisk bool `json:"writeToDisk"`

	// RequireTemplates asks the compiler to resolve template references eagerly.
	RequireTemplates bool `json:"requireTemplates,omitempty"`
}

// Compiler compiles template source into a complete render module.
type Compiler interface {
	Compile(ctx context.Context, source, path string, opts Options) (string, error)
}

// BrowserCompiler is the optional capability to compile for the browser and
// report the template's dependency metadata.
type BrowserCompiler interface {
	Compiler
	CompileForBrowser(ctx context.Context, source, path string, opts Options) (*BrowserResult, error)
}

// BrowserResult is the output of a browser compilation.
type BrowserResult struct {
	Code string   `json:"code"`
	Meta Metadata `json:"meta"`
}

// Metadata is what the compiler reports about a template's dependencies.
type Metadata struct {
	// ID identifies the component for registration.
	ID string `json:"id,omitempty"`

	// Component is the module path of the template's component, if any.
	Component string `json:"component,omitempty"`

	// Deps are inline and external sub-resources, in template order.
	Deps []Dependency `json:"deps,omitempty"`

	// Tags are the virtual paths of custom tags the template uses.
	Tags []string `json:"tags,omitempty"`
}

// Dependency is a sub-resource of a template.
type Dependency struct {
	// Path is the file to require for an external dependency.
	Path string `json:"path,omitempty"`

	// VirtualPath routes inline code through the loader chain of its extension.
	VirtualPath string `json:"virtualPath,omitempty"`

	// Code is the inline content. Empty means the dependency is a real file.
	Code string `json:"code,omitempty"`
}

// Inline reports whether the dependency carries inline code.
func (d Dependency) Inline() bool {
	return d.Code != ""
}

// RequirePath is the path required for an external dependency.
func (d Dependency) RequirePath() string {
	if d.Path != "" {
		return d.Path
	}
	return d.VirtualPath
}

// RoutingPath is the path used to resolve an inline dependency's loader chain.
func (d Dependency) RoutingPath() string {
	if d.VirtualPath != "" {
		return d.VirtualPath
	}
	return d.Path
}

// Output is the result of Invoke.
type Output struct {
	// Code is the generated module code.
	Code string

	// Meta is set only when browser compilation ran.
	Meta *Metadata
}

// Browser reports whether the output came from browser compilation.
func (o Output) Browser() bool {
	return o.Meta != nil
}

// Invoke compiles source for env.
//
// Server targets always get the full compile with templates required eagerly.
// Browser targets use CompileForBrowser when c supports it and fall back to
// the full compile otherwise. Compiler errors are returned unchanged.
func Invoke(ctx context.Context, c Compiler, env target.Environment, source, path string) (Output, error) {
	if env == target.Browser {
		if bc, ok := c.(BrowserCompiler); ok {
			res, err := bc.CompileForBrowser(ctx, source, path, Options{WriteToDisk: false})
			if err != nil {
				return Output{}, err
			}
			meta := res.Meta
			return Output{Code: res.Code, Meta: &meta}, nil
		}
	}

	code, err := c.Compile(ctx, source, path, Options{WriteToDisk: false, RequireTemplates: true})
	if err != nil {
		return Output{}, err
	}
	return Output{Code: code}, nil
}

// SupportsBrowser reports whether c offers browser compilation.
func SupportsBrowser(c Compiler) bool {
	_, ok := c.(BrowserCompiler)
	return ok
}

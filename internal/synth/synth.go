// Package synth turns compiler metadata into the ordered module-request
// statements of a browser template module.
package synth

import (
	"fmt"
	"path/filepath"

	"github.com/opmodel/tagloader/internal/chain"
	"github.com/opmodel/tagloader/internal/codequery"
	"github.com/opmodel/tagloader/internal/compiler"
	"github.com/opmodel/tagloader/internal/request"
)

// Synthesizer emits dependency requests for browser-compiled templates.
type Synthesizer struct {
	// CodeLoader is the loader reference that decodes inline payloads.
	CodeLoader string

	// RegistryModule is required to register components.
	RegistryModule string
}

// Input is one template's compilation result plus its request context.
type Input struct {
	// DependenciesOnly selects the dependencies-only module.
	DependenciesOnly bool

	// Code is the compiled render code.
	Code string

	// Meta is the compiler metadata.
	Meta compiler.Metadata

	// SourcePath is the template file path, without any mode marker.
	SourcePath string

	// Rules are the bundler's configured transform rules.
	Rules []chain.Rule
}

// Synthesize returns the statements for in, in emission order:
// component registration, sub-resources, tag dependencies, render code.
func (s Synthesizer) Synthesize(in Input) []string {
	var stmts []string

	if in.DependenciesOnly && in.Meta.Component != "" {
		stmts = append(stmts, s.register(in.Meta.ID, in.Meta.Component))
	}

	contextDir := filepath.Dir(in.SourcePath)
	for _, dep := range in.Meta.Deps {
		if !dep.Inline() {
			stmts = append(stmts, requireStmt(request.Quote(dep.RequirePath())))
			continue
		}
		prefix := chain.Resolve(dep.RoutingPath(), in.Rules)
		virtual := request.Inline(prefix, s.CodeLoader, codequery.Encode(dep.Code), in.SourcePath)
		stmts = append(stmts, requireStmt(request.Stringify(contextDir, virtual)))
	}

	if in.DependenciesOnly {
		for _, tag := range in.Meta.Tags {
			stmts = append(stmts, requireStmt(request.Quote(request.Dependencies(tag))))
		}
	}

	if !in.DependenciesOnly {
		stmts = append(stmts, in.Code)
	}

	return stmts
}

func (s Synthesizer) register(id, component string) string {
	return fmt.Sprintf("require(%s).register(%s, require(%s));",
		request.Quote(s.RegistryModule), request.Quote(id), request.Quote(component))
}

func requireStmt(quoted string) string {
	return "require(" + quoted + ");"
}

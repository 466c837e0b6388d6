// Package loader is the bundler-facing entry point: it turns one template
// resource into the module text handed back to the bundler.
//
// Each call runs the same state machine:
//
//	hydrate request  -> fixed bootstrap (source and compiler ignored)
//	otherwise        -> classify target -> compile
//	                    server  -> compiled code as-is
//	                    browser -> synthesize dependency requests -> join
//
// A Loader holds only immutable settings and may be shared by concurrent
// transformations.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/opmodel/tagloader/internal/chain"
	"github.com/opmodel/tagloader/internal/compiler"
	"github.com/opmodel/tagloader/internal/output"
	"github.com/opmodel/tagloader/internal/request"
	"github.com/opmodel/tagloader/internal/synth"
	"github.com/opmodel/tagloader/internal/target"
)

// Defaults for the runtime references written into generated code.
const (
	DefaultCodeLoader     = "tagloader/code-loader"
	DefaultRegistryModule = "tagloader/components"
	DefaultInitHook       = "$initComponents"
)

// Invocation is everything one transformation needs. Build it with
// NewInvocation and treat it as read-only.
type Invocation struct {
	// Source is the template text.
	Source string

	// Resource is the requested resource, including any mode marker.
	Resource string

	// SourcePath is Resource without the mode marker.
	SourcePath string

	// Mode is the invocation mode selected by the resource marker.
	Mode request.Mode

	// Target is the raw bundler target.
	Target string

	// Rules are the bundler's transform rules, in declared order.
	Rules []chain.Rule
}

// NewInvocation derives the source path and mode from resource.
func NewInvocation(resource, source, rawTarget string, rules []chain.Rule) Invocation {
	path, mode := request.ParseResource(resource)
	return Invocation{
		Source:     source,
		Resource:   resource,
		SourcePath: path,
		Mode:       mode,
		Target:     rawTarget,
		Rules:      rules,
	}
}

// Option configures a Loader.
type Option func(*Loader)

// WithCodeLoader sets the reference of the loader that decodes inline payloads.
func WithCodeLoader(ref string) Option {
	return func(l *Loader) {
		if ref != "" {
			l.synth.CodeLoader = ref
		}
	}
}

// WithRegistryModule sets the module whose register function receives components.
func WithRegistryModule(module string) Option {
	return func(l *Loader) {
		if module != "" {
			l.synth.RegistryModule = module
		}
	}
}

// WithInitHook sets the global function the hydration bootstrap calls.
func WithInitHook(hook string) Option {
	return func(l *Loader) {
		if hook != "" {
			l.initHook = hook
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader transforms template resources.
type Loader struct {
	compiler compiler.Compiler
	synth    synth.Synthesizer
	initHook string
	logger   *log.Logger
}

// New creates a Loader that compiles with c.
func New(c compiler.Compiler, opts ...Option) *Loader {
	l := &Loader{
		compiler: c,
		synth: synth.Synthesizer{
			CodeLoader:     DefaultCodeLoader,
			RegistryModule: DefaultRegistryModule,
		},
		initHook: DefaultInitHook,
		logger:   output.Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cacheable reports whether hosts may cache results. It is always false:
// output depends on compiler state the loader cannot observe.
func (l *Loader) Cacheable() bool {
	return false
}

// Transform produces the module text for inv.
// Compiler errors are returned exactly as the compiler reported them.
func (l *Loader) Transform(ctx context.Context, inv Invocation) (string, error) {
	if inv.Mode == request.Hydrate {
		l.logger.Debug("emitting hydration bootstrap", "resource", inv.SourcePath)
		return Bootstrap(inv.SourcePath, l.initHook), nil
	}

	env := target.Classify(inv.Target)
	l.logger.Debug("transforming template",
		"resource", inv.SourcePath,
		"mode", inv.Mode,
		"target", inv.Target,
		"env", env,
		"browser_capable", compiler.SupportsBrowser(l.compiler),
	)

	out, err := compiler.Invoke(ctx, l.compiler, env, inv.Source, inv.SourcePath)
	if err != nil {
		return "", err
	}

	if !out.Browser() {
		return out.Code, nil
	}

	stmts := l.synth.Synthesize(synth.Input{
		DependenciesOnly: inv.Mode == request.DependenciesOnly,
		Code:             out.Code,
		Meta:             *out.Meta,
		SourcePath:       inv.SourcePath,
		Rules:            inv.Rules,
	})
	l.logger.Debug("synthesized module",
		"resource", inv.SourcePath,
		"statements", len(stmts),
		"deps", len(out.Meta.Deps),
		"tags", len(out.Meta.Tags),
	)

	return strings.Join(stmts, "\n"), nil
}

// Bootstrap returns the hydration snippet for sourcePath: a require of the
// file's dependencies-only module, relative to its own directory, followed by
// a guarded call to the global init hook.
func Bootstrap(sourcePath, hook string) string {
	deps := request.Dependencies("./" + filepath.Base(sourcePath))
	return fmt.Sprintf("require(%s);\nwindow.%s && window.%s();", request.Quote(deps), hook, hook)
}

// Package config provides configuration loading and management.
package config

import (
	"github.com/opmodel/tagloader/internal/chain"
)

// CompilerConfig describes the external template compiler process.
type CompilerConfig struct {
	// Command is the compiler program and its arguments.
	// Env: TAGLOADER_COMPILER (split on whitespace)
	Command []string `mapstructure:"command" json:"command,omitempty"`

	// Dir is the working directory for the compiler process.
	Dir string `mapstructure:"dir" json:"dir,omitempty"`

	// Env is appended to the compiler's environment.
	Env []string `mapstructure:"env" json:"env,omitempty"`

	// Browser declares that the compiler implements browser compilation.
	Browser bool `mapstructure:"browser" json:"browser,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty"`
}

// Config represents the tagloader configuration file.
// Loaded from ~/.tagloader/config.yaml, validated against an embedded CUE schema.
type Config struct {
	// Target is the bundler target used when none is passed.
	// Env: TAGLOADER_TARGET, Default: "web"
	Target string `mapstructure:"target" json:"target,omitempty"`

	// CodeLoader is the reference of the loader that decodes inline payloads.
	// Env: TAGLOADER_CODE_LOADER
	CodeLoader string `mapstructure:"codeLoader" json:"codeLoader,omitempty"`

	// RegistryModule is the module components are registered with.
	RegistryModule string `mapstructure:"registryModule" json:"registryModule,omitempty"`

	// InitHook is the global function the hydration bootstrap calls.
	InitHook string `mapstructure:"initHook" json:"initHook,omitempty"`

	// RulesFile is a separate YAML, JSON or JSONC file of transform rules.
	// Env: TAGLOADER_RULES
	RulesFile string `mapstructure:"rulesFile" json:"rulesFile,omitempty"`

	// Compiler configures the external compiler.
	Compiler CompilerConfig `mapstructure:"compiler" json:"compiler,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" json:"log,omitempty"`

	// Rules are the transform rules declared inline in the config file.
	// Decoded separately to keep option key order.
	Rules []chain.Rule `mapstructure:"-" json:"-"`
}

// DefaultTarget is used when no target is configured anywhere.
const DefaultTarget = "web"

// DefaultConfig returns a Config with all default values populated.
// Used by `tagloader config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Target:         DefaultTarget,
		CodeLoader:     "tagloader/code-loader",
		RegistryModule: "tagloader/components",
		InitHook:       "$initComponents",
		Compiler: CompilerConfig{
			Command: []string{"node", "./node_modules/.bin/tagc", "--json"},
			Browser: true,
		},
	}
}

package config

import (
	"os"
	"strings"

	"github.com/opmodel/tagloader/internal/output"
)

// Environment variables read by the resolver.
const (
	EnvConfig     = "TAGLOADER_CONFIG"
	EnvTarget     = "TAGLOADER_TARGET"
	EnvCompiler   = "TAGLOADER_COMPILER"
	EnvRules      = "TAGLOADER_RULES"
	EnvCodeLoader = "TAGLOADER_CODE_LOADER"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value and where it came from.
type ResolvedValue struct {
	// Key is the configuration key.
	Key string
	// Value is the resolved value.
	Value string
	// Source indicates where the value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// resolve applies the precedence flag > env > config > default.
func resolve(key, flagValue, envVar, configValue, defaultValue string) ResolvedValue {
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(envVar)},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) TAGLOADER_CONFIG env, (3) ~/.tagloader/config.yaml
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return resolve("config", flagValue, EnvConfig, "", paths.ConfigFile), nil
}

// ResolveAllOptions contains the raw inputs to resolution.
type ResolveAllOptions struct {
	TargetFlag     string
	CompilerFlag   string
	RulesFlag      string
	CodeLoaderFlag string

	// Config is the loaded config file. May be nil.
	Config *Config
}

// ResolvedConfig holds every resolved value used by the commands.
type ResolvedConfig struct {
	Target     ResolvedValue
	Compiler   ResolvedValue
	RulesFile  ResolvedValue
	CodeLoader ResolvedValue

	// CompilerCommand is Compiler split into program and arguments.
	CompilerCommand []string
}

// ResolveAll resolves all values with precedence flag > env > config > default.
func ResolveAll(opts ResolveAllOptions) *ResolvedConfig {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}
	defaults := DefaultConfig()

	resolved := &ResolvedConfig{
		Target:     resolve("target", opts.TargetFlag, EnvTarget, cfg.Target, defaults.Target),
		Compiler:   resolve("compiler", opts.CompilerFlag, EnvCompiler, strings.Join(cfg.Compiler.Command, " "), ""),
		RulesFile:  resolve("rulesFile", opts.RulesFlag, EnvRules, cfg.RulesFile, ""),
		CodeLoader: resolve("codeLoader", opts.CodeLoaderFlag, EnvCodeLoader, cfg.CodeLoader, defaults.CodeLoader),
	}

	// Config keeps the exact argv; flag and env values are split on whitespace.
	if resolved.Compiler.Source == SourceConfig {
		resolved.CompilerCommand = cfg.Compiler.Command
	} else {
		resolved.CompilerCommand = strings.Fields(resolved.Compiler.Value)
	}

	return resolved
}

// Values returns the resolved values in a stable order.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{r.Target, r.Compiler, r.RulesFile, r.CodeLoader}
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}

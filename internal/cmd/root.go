// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/tagloader/internal/cmd/config"
	"github.com/opmodel/tagloader/internal/cmdtypes"
	cfgpkg "github.com/opmodel/tagloader/internal/config"
	"github.com/opmodel/tagloader/internal/output"
	"github.com/opmodel/tagloader/internal/version"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	config     string
	target     string
	compiler   string
	rules      string
	codeLoader string
	envFiles   []string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the tagloader CLI.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	gc := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "tagloader",
		Short: "Template bundler loader",
		Long: `tagloader turns template files into bundler modules.

A bundler-side shim calls 'tagloader transform' for every template resource.
Server targets receive the compiled template. Browser targets receive a module
that requires the template's dependencies, routes inline sub-resources (such as
embedded styles) through the configured loader chains, and registers components
for client-side hydration.

Resource markers:
  widget.template                 full render module
  widget.template?dependencies    dependencies-only module
  widget.template?hydrate         hydration bootstrap`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, &flags, gc)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", fmt.Sprintf("Path to config file (env: %s)", cfgpkg.EnvConfig))
	pf.StringVarP(&flags.target, "target", "t", "", fmt.Sprintf("Bundler target, e.g. web or node (env: %s)", cfgpkg.EnvTarget))
	pf.StringVar(&flags.compiler, "compiler", "", fmt.Sprintf("Template compiler command (env: %s)", cfgpkg.EnvCompiler))
	pf.StringVar(&flags.rules, "rules", "", fmt.Sprintf("Transform rules file: YAML, JSON or JSONC (env: %s)", cfgpkg.EnvRules))
	pf.StringVar(&flags.codeLoader, "code-loader", "", fmt.Sprintf("Loader that decodes inline payloads (env: %s)", cfgpkg.EnvCodeLoader))
	pf.StringSliceVar(&flags.envFiles, "env-file", []string{".env"}, "Dotenv files loaded before resolving configuration")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewTransformCmd(gc),
		NewBuildCmd(gc),
		NewResolveCmd(gc),
		NewDecodeCmd(gc),
		config.NewConfigCmd(gc),
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals loads .env files and the config file, resolves every
// value, sets up logging and loads the transform rules into gc.
func initializeGlobals(cmd *cobra.Command, flags *rootFlags, gc *cmdtypes.GlobalConfig) error {
	if err := cfgpkg.LoadDotEnv(flags.envFiles...); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err}
	}

	configPath, err := cfgpkg.ResolveConfigPath(flags.config)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("resolving config path: %w", err)}
	}

	loader, err := cfgpkg.NewLoader()
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	cfg, err := loader.Load(configPath.Value)
	if err != nil {
		// config vet reports the problem itself.
		if !isConfigCommand(cmd) {
			return cmdtypes.ExitErrorFor(err)
		}
		output.Debug("config load error", "error", err)
		cfg = &cfgpkg.Config{}
	}

	resolved := cfgpkg.ResolveAll(cfgpkg.ResolveAllOptions{
		TargetFlag:     flags.target,
		CompilerFlag:   flags.compiler,
		RulesFlag:      flags.rules,
		CodeLoaderFlag: flags.codeLoader,
		Config:         cfg,
	})

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("tagloader started", "version", info.Version, "config", configPath.Value)
	cfgpkg.LogResolvedValues(resolved.Values())

	rules := cfg.Rules
	if rulesFile := resolved.RulesFile.Value; rulesFile != "" {
		rules, err = cfgpkg.ReadRulesFile(rulesFile)
		switch {
		case err == nil:
			output.Debug("loaded rules file", "path", rulesFile, "rules", len(rules))
		case isConfigCommand(cmd):
			output.Debug("rules file load error", "error", err)
		default:
			return cmdtypes.ExitErrorFor(err)
		}
	}

	gc.Config = cfg
	gc.Resolved = resolved
	gc.Rules = rules
	gc.ConfigPath = configPath.Value
	gc.Verbose = flags.verbose

	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/tagloader/internal/chain"
	oerrors "github.com/opmodel/tagloader/internal/errors"
	"github.com/opmodel/tagloader/internal/testutil"
)

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		content := `
target: node
codeLoader: /tools/code-loader.js
registryModule: app/components
initHook: $boot
rulesFile: ./rules.jsonc
compiler:
  command: [node, compile.js, --json]
  dir: /srv/app
  browser: true
rules:
  - test: '\.css$'
    use: style-loader!css-loader
log:
  timestamps: false
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		loader, err := NewLoader()
		require.NoError(t, err)
		cfg, err := loader.Load(configFile)
		require.NoError(t, err)

		assert.Equal(t, "node", cfg.Target)
		assert.Equal(t, "/tools/code-loader.js", cfg.CodeLoader)
		assert.Equal(t, "app/components", cfg.RegistryModule)
		assert.Equal(t, "$boot", cfg.InitHook)
		assert.Equal(t, "./rules.jsonc", cfg.RulesFile)
		assert.Equal(t, []string{"node", "compile.js", "--json"}, cfg.Compiler.Command)
		assert.Equal(t, "/srv/app", cfg.Compiler.Dir)
		assert.True(t, cfg.Compiler.Browser)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
		require.Len(t, cfg.Rules, 1)
		assert.Equal(t, "style-loader!css-loader!", chain.Resolve("a.css", cfg.Rules))
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		loader, err := NewLoader()
		require.NoError(t, err)

		cfg, err := loader.Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Target)
		assert.Empty(t, cfg.Rules)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("targets: web\n"), 0o644))

		loader, err := NewLoader()
		require.NoError(t, err)

		_, err = loader.Load(configFile)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
	})
}

func TestConfigFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte("target: web\n"), 0o644))
	exists, err = ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TAGLOADER_TARGET=electron\n"), 0o644))

	testutil.UnsetEnv(t, EnvTarget)

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "electron", os.Getenv("TAGLOADER_TARGET"))
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TAGLOADER_TARGET=electron\n"), 0o644))

	t.Setenv("TAGLOADER_TARGET", "node")
	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "node", os.Getenv("TAGLOADER_TARGET"))
}

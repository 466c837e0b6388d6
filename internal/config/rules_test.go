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
)

func TestParseRules_Shapes(t *testing.T) {
	data := []byte(`
- test: '\.css$'
  use:
    - loader: style-loader
    - loader: css-loader
      options:
        modules: true
        importLoaders: 1
- test: '\.less$'
  use: style-loader!css-loader!less-loader
- glob: '**/*.txt'
  loader: raw-loader
- test: '\.md$'
  use:
    loader: markdown-loader
    options: "gfm=true"
- test: '\.svg$'
`)

	rules, err := ParseRules(data)
	require.NoError(t, err)
	require.Len(t, rules, 5)

	// Options keep their declared key order.
	assert.Equal(t, `style-loader!css-loader?{"modules":true,"importLoaders":1}!`, chain.Resolve("a.css", rules))
	assert.Equal(t, "style-loader!css-loader!less-loader!", chain.Resolve("a.less", rules))
	assert.Equal(t, "raw-loader!", chain.Resolve("docs/notes.txt", rules))
	assert.Equal(t, "markdown-loader?gfm=true!", chain.Resolve("README.md", rules))
	assert.Equal(t, "", chain.Resolve("icon.svg", rules))
}

func TestParseRules_RulesKey(t *testing.T) {
	rules, err := ParseRules([]byte(`
target: web
rules:
  - test: '\.css$'
    use: [style-loader, css-loader]
`))
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "style-loader!css-loader!", chain.Resolve("x.css", rules))
}

func TestParseRules_NoRules(t *testing.T) {
	for _, data := range []string{"", "target: web\n", "rules:\n", "[]"} {
		rules, err := ParseRules([]byte(data))
		require.NoError(t, err, data)
		assert.Empty(t, rules, data)
	}
}

func TestParseRules_NestedOptions(t *testing.T) {
	rules, err := ParseRules([]byte(`
- test: '\.css$'
  use:
    loader: css-loader
    options:
      url: false
      modules: {mode: local, localIdentName: "[name]__[local]"}
      paths: [a, b]
      ratio: 1.5
      nothing: null
`))
	require.NoError(t, err)
	assert.Equal(t,
		`css-loader?{"url":false,"modules":{"mode":"local","localIdentName":"[name]__[local]"},"paths":["a","b"],"ratio":1.5,"nothing":null}!`,
		chain.Resolve("a.css", rules))
}

func TestParseRules_FalsyOptions(t *testing.T) {
	rules, err := ParseRules([]byte(`
- test: '\.a$'
  use: {loader: a-loader, options: false}
- test: '\.b$'
  use: {loader: b-loader, options: ""}
`))
	require.NoError(t, err)
	assert.Equal(t, "a-loader!", chain.Resolve("x.a", rules))
	assert.Equal(t, "b-loader!", chain.Resolve("x.b", rules))
}

func TestParseRules_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not a list", "rules: {test: x}"},
		{"rule not a mapping", "- just-a-string"},
		{"missing test", "- use: css-loader"},
		{"both test and glob", "- {test: a, glob: b, use: x}"},
		{"bad regexp", "- {test: '(', use: x}"},
		{"bad glob", "- {glob: '[', use: x}"},
		{"loader without name", "- {test: a, use: {options: {}}}"},
		{"invalid yaml", "- [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation), err.Error())
		})
	}
}

func TestReadRulesFile_JSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.jsonc")
	content := `[
  // inline styles
  {
    "test": "\\.css$",
    "use": [
      "style-loader",
      {"loader": "css-loader", "options": {"modules": true}}, // trailing comma next
    ],
  },
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := ReadRulesFile(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, `style-loader!css-loader?{"modules":true}!`, chain.Resolve("w.template.css", rules))
}

func TestReadRulesFile_Missing(t *testing.T) {
	_, err := ReadRulesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

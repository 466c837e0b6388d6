package compiler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/tagloader/internal/errors"
	"github.com/opmodel/tagloader/internal/testutil"
)

func TestNewExec_EmptyCommand(t *testing.T) {
	_, err := NewExec(ExecConfig{})
	assert.Error(t, err)

	_, err = NewExec(ExecConfig{Command: []string{" "}})
	assert.Error(t, err)
}

func TestNewExec_Capability(t *testing.T) {
	full, err := NewExec(ExecConfig{Command: []string{"true"}})
	require.NoError(t, err)
	assert.False(t, SupportsBrowser(full))

	browser, err := NewExec(ExecConfig{Command: []string{"true"}, Browser: true})
	require.NoError(t, err)
	assert.True(t, SupportsBrowser(browser))
}

func TestExec_Compile(t *testing.T) {
	testutil.RequireShell(t)

	c, err := NewExec(ExecConfig{Command: testutil.FakeCompiler(t, t.TempDir(), `{"code":"module.exports = render;"}`)})
	require.NoError(t, err)

	code, err := c.Compile(context.Background(), "<div/>", "/src/a.template", Options{})
	require.NoError(t, err)
	assert.Equal(t, "module.exports = render;", code)
}

func TestExec_CompileForBrowser(t *testing.T) {
	testutil.RequireShell(t)

	c, err := NewExec(ExecConfig{
		Command: testutil.FakeCompiler(t, t.TempDir(), `{"code":"x","meta":{"id":"w1","component":"./component.js","deps":[{"virtualPath":"./a.template.css","code":".a{}"}],"tags":["./button.tag"]}}`),
		Browser: true,
	})
	require.NoError(t, err)

	bc, ok := c.(BrowserCompiler)
	require.True(t, ok)

	res, err := bc.CompileForBrowser(context.Background(), "<div/>", "/src/a.template", Options{})
	require.NoError(t, err)
	assert.Equal(t, "x", res.Code)
	assert.Equal(t, "w1", res.Meta.ID)
	assert.Equal(t, "./component.js", res.Meta.Component)
	require.Len(t, res.Meta.Deps, 1)
	assert.True(t, res.Meta.Deps[0].Inline())
	assert.Equal(t, []string{"./button.tag"}, res.Meta.Tags)
}

func TestExec_ReportedError(t *testing.T) {
	testutil.RequireShell(t)

	c, err := NewExec(ExecConfig{Command: testutil.FakeCompiler(t, t.TempDir(), `{"error":"unclosed <div> at line 2"}`)})
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), "<div>", "/src/a.template", Options{})
	require.Error(t, err)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "/src/a.template", compileErr.Path)
	assert.True(t, errors.Is(err, oerrors.ErrCompile))
}

func TestExec_ProcessFailure(t *testing.T) {
	testutil.RequireShell(t)

	c, err := NewExec(ExecConfig{Command: []string{"/bin/sh", "-c", "echo boom >&2; exit 3"}})
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), "", "/src/a.template", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestExec_InvalidResponse(t *testing.T) {
	testutil.RequireShell(t)

	c, err := NewExec(ExecConfig{Command: testutil.FakeCompiler(t, t.TempDir(), `not json`)})
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), "", "/src/a.template", Options{})
	assert.ErrorContains(t, err, "decoding compiler response")
}

func TestExec_Request(t *testing.T) {
	testutil.RequireShell(t)

	c, err := NewExec(ExecConfig{Command: testutil.EchoCompiler(t, t.TempDir()), Browser: true})
	require.NoError(t, err)

	res, err := c.(BrowserCompiler).CompileForBrowser(context.Background(), "<div class=\"a\"/>", "/src/a.template", Options{})
	require.NoError(t, err)

	var req execRequest
	require.NoError(t, json.Unmarshal([]byte(res.Code), &req))
	assert.Equal(t, OpCompileForBrowser, req.Op)
	assert.Equal(t, `<div class="a"/>`, req.Source)
	assert.Equal(t, "/src/a.template", req.Path)
	assert.False(t, req.Options.WriteToDisk)
}

func TestExec_Env(t *testing.T) {
	testutil.RequireShell(t)

	c, err := NewExec(ExecConfig{
		Command: []string{"/bin/sh", "-c", `cat >/dev/null; printf '{"code":"%s"}' "$TEMPLATE_MODE"`},
		Env:     []string{"TEMPLATE_MODE=production"},
	})
	require.NoError(t, err)

	code, err := c.Compile(context.Background(), "", "/src/a.template", Options{})
	require.NoError(t, err)
	assert.Equal(t, "production", code)
}

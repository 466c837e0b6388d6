package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	oerrors "github.com/opmodel/tagloader/internal/errors"
)

// Operations understood by an external compiler process.
const (
	OpCompile           = "compile"
	OpCompileForBrowser = "compileForBrowser"
)

// ExecConfig describes an external compiler process.
//
// The process receives one JSON request on stdin:
//
//	{"op": "compile", "source": "...", "path": "...", "options": {"writeToDisk": false}}
//
// and must write one JSON response to stdout:
//
//	{"code": "...", "meta": {...}}   or   {"error": "message"}
type ExecConfig struct {
	// Command is the program and its arguments.
	Command []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is appended to the current environment.
	Env []string

	// Browser declares that the process implements compileForBrowser.
	Browser bool
}

// CompileError is a template compilation failure reported by the compiler.
type CompileError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s: %s", e.Path, e.Message)
}

// Unwrap lets callers match ErrCompile.
func (e *CompileError) Unwrap() error {
	return oerrors.ErrCompile
}

type execRequest struct {
	Op      string  `json:"op"`
	Source  string  `json:"source"`
	Path    string  `json:"path"`
	Options Options `json:"options"`
}

type execResponse struct {
	Code  string    `json:"code"`
	Meta  *Metadata `json:"meta,omitempty"`
	Error string    `json:"error,omitempty"`
}

type execCompiler struct {
	cfg ExecConfig
}

type execBrowserCompiler struct {
	*execCompiler
}

// NewExec returns a compiler backed by an external process. The returned
// value implements BrowserCompiler only when cfg.Browser is set.
func NewExec(cfg ExecConfig) (Compiler, error) {
	if len(cfg.Command) == 0 || strings.TrimSpace(cfg.Command[0]) == "" {
		return nil, errors.New("compiler command is empty")
	}
	c := &execCompiler{cfg: cfg}
	if cfg.Browser {
		return execBrowserCompiler{c}, nil
	}
	return c, nil
}

// Compile runs the "compile" operation.
func (c *execCompiler) Compile(ctx context.Context, source, path string, opts Options) (string, error) {
	resp, err := c.run(ctx, execRequest{Op: OpCompile, Source: source, Path: path, Options: opts})
	if err != nil {
		return "", err
	}
	return resp.Code, nil
}

// CompileForBrowser runs the "compileForBrowser" operation.
func (c execBrowserCompiler) CompileForBrowser(ctx context.Context, source, path string, opts Options) (*BrowserResult, error) {
	resp, err := c.run(ctx, execRequest{Op: OpCompileForBrowser, Source: source, Path: path, Options: opts})
	if err != nil {
		return nil, err
	}
	res := &BrowserResult{Code: resp.Code}
	if resp.Meta != nil {
		res.Meta = *resp.Meta
	}
	return res, nil
}

func (c *execCompiler) run(ctx context.Context, req execRequest) (*execResponse, error) {
	input, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding compiler request: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.cfg.Command[0], c.cfg.Command[1:]...)
	cmd.Dir = c.cfg.Dir
	cmd.Env = append(os.Environ(), c.cfg.Env...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("running compiler %q: %w", c.cfg.Command[0], err)
		}
		return nil, fmt.Errorf("running compiler %q: %w: %s", c.cfg.Command[0], err, msg)
	}

	var resp execResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("decoding compiler response: %w", err)
	}
	if resp.Error != "" {
		return nil, &CompileError{Path: req.Path, Message: resp.Error}
	}
	return &resp, nil
}

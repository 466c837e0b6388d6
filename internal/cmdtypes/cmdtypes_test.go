package cmdtypes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opmodel/tagloader/internal/config"
	oerrors "github.com/opmodel/tagloader/internal/errors"
)

func TestGlobalConfigTarget(t *testing.T) {
	assert.Equal(t, config.DefaultTarget, (&GlobalConfig{}).Target())

	g := &GlobalConfig{Resolved: &config.ResolvedConfig{
		Target: config.ResolvedValue{Key: "target", Value: "node", Source: config.SourceFlag},
	}}
	assert.Equal(t, "node", g.Target())
}

func TestExitErrorFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", oerrors.Wrap(oerrors.ErrValidation, "bad rule"), ExitValidationError},
		{"not found", oerrors.NewNotFoundError("missing", "/x", ""), ExitNotFound},
		{"compile", oerrors.NewCompileError("/a.template", fmt.Errorf("boom: %w", oerrors.ErrCompile)), ExitCompileError},
		{"general", errors.New("other"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitErr := ExitErrorFor(tt.err)
			assert.Equal(t, tt.code, exitErr.Code)
			assert.ErrorIs(t, exitErr, tt.err)
		})
	}
}

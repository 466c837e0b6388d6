package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	oerrors "github.com/opmodel/tagloader/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Validator validates config files against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if def.Err() != nil {
		return nil, fmt.Errorf("looking up #Config: %w", def.Err())
	}

	return &Validator{ctx: ctx, schema: def}, nil
}

// Validate checks YAML config data. location is used in error messages.
func (v *Validator) Validate(data []byte, location string) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return oerrors.NewValidationError(fmt.Sprintf("invalid YAML: %v", err), location, "")
	}
	if doc == nil {
		return nil
	}

	val := v.ctx.Encode(doc)
	if val.Err() != nil {
		return oerrors.NewValidationError(val.Err().Error(), location, "")
	}

	if err := v.schema.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return oerrors.NewValidationError(
			strings.TrimSpace(cueerrors.Details(err, nil)),
			location,
			"Run 'tagloader config init' to see a valid configuration",
		)
	}

	return nil
}

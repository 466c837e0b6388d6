package chain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Options is one of QueryOptions or JSONOptions.
type Options interface {
	query() string
}

// QueryOptions is an options value configured as a string. It is used verbatim.
type QueryOptions string

func (q QueryOptions) query() string { return string(q) }

// JSONOptions holds options already encoded as JSON.
type JSONOptions []byte

func (j JSONOptions) query() string { return string(j) }

// EncodeOptions encodes v as compact JSON without HTML escaping, the way the
// bundler renders an options object into a loader query.
func EncodeOptions(v any) (JSONOptions, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding loader options: %w", err)
	}
	return JSONOptions(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// MustEncodeOptions is like EncodeOptions but panics on error.
// Intended for static option values.
func MustEncodeOptions(v any) JSONOptions {
	opts, err := EncodeOptions(v)
	if err != nil {
		panic(err)
	}
	return opts
}

// Package chain models bundler loader chains and resolves the chain an inline
// sub-resource must pass through.
//
// A loader chain is configured in several shapes: a plain request string, a
// list of entries, or a structured {loader, options} record. Chain is a closed
// variant over those shapes and Serialize renders any of them into the
// textual loader-request prefix the bundler understands, e.g.
//
//	style-loader!css-loader?{"modules":true}!
package chain

import "strings"

// Separator chains loader invocations in a request string.
const Separator = "!"

// Chain is one of Empty, Literal, Sequence or Structured.
type Chain interface {
	writeTo(b *strings.Builder)
}

// Empty is an absent chain. It serializes to the empty string.
type Empty struct{}

// Literal is a chain already written as a request string, e.g. "style-loader!css-loader".
type Literal string

// Sequence is an ordered list of chains applied left to right.
type Sequence []Chain

// Structured is a single named loader with optional options.
type Structured struct {
	// Name is the loader reference.
	Name string

	// Options are rendered after a '?' when present.
	Options Options
}

// Serialize renders c as a request prefix ending in Separator.
// Empty chains (and sequences of empty chains) render as "".
func Serialize(c Chain) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	c.writeTo(&b)
	return b.String()
}

func (Empty) writeTo(*strings.Builder) {}

func (l Literal) writeTo(b *strings.Builder) {
	if l == "" {
		return
	}
	b.WriteString(string(l))
	if !strings.HasSuffix(string(l), Separator) {
		b.WriteString(Separator)
	}
}

func (s Sequence) writeTo(b *strings.Builder) {
	for _, c := range s {
		if c != nil {
			c.writeTo(b)
		}
	}
}

func (s Structured) writeTo(b *strings.Builder) {
	b.WriteString(s.Name)
	if s.Options != nil {
		if q := s.Options.query(); q != "" {
			b.WriteString("?")
			b.WriteString(q)
		}
	}
	b.WriteString(Separator)
}

// Loader is shorthand for a Structured chain without options.
func Loader(name string) Structured {
	return Structured{Name: name}
}

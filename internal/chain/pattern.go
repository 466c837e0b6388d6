package chain

import (
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// Pattern decides whether a rule applies to a path.
type Pattern interface {
	Match(path string) bool
	String() string
}

// Regexp matches paths against a regular expression, like a bundler rule's test.
type Regexp struct {
	re *regexp.Regexp
}

// NewRegexp compiles expr into a Regexp pattern.
func NewRegexp(expr string) (*Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling rule test %q: %w", expr, err)
	}
	return &Regexp{re: re}, nil
}

// MustRegexp is like NewRegexp but panics if expr does not compile.
func MustRegexp(expr string) *Regexp {
	p, err := NewRegexp(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the expression matches anywhere in path.
func (r *Regexp) Match(path string) bool { return r.re.MatchString(path) }

func (r *Regexp) String() string { return r.re.String() }

// Glob matches paths against a doublestar glob such as "**/*.less".
type Glob struct {
	pattern string
}

// NewGlob validates pattern and returns a Glob.
func NewGlob(pattern string) (*Glob, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return &Glob{pattern: pattern}, nil
}

// Match reports whether the whole path matches the glob.
func (g *Glob) Match(path string) bool {
	ok, err := doublestar.Match(g.pattern, path)
	return err == nil && ok
}

func (g *Glob) String() string { return g.pattern }

// PatternFunc adapts a function to Pattern.
type PatternFunc func(path string) bool

// Match calls f(path).
func (f PatternFunc) Match(path string) bool { return f(path) }

func (f PatternFunc) String() string { return "func" }

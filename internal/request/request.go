// Package request parses resource markers and builds the module request
// strings emitted into generated code.
package request

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"
)

// Resource suffixes selecting a special invocation mode.
const (
	DependenciesSuffix = "?dependencies"
	HydrateSuffix      = "?hydrate"
)

// Mode is the invocation mode selected by the resource suffix.
type Mode int

const (
	// Normal compiles the full render module.
	Normal Mode = iota

	// DependenciesOnly emits only the template's dependency requests.
	DependenciesOnly

	// Hydrate emits the hydration bootstrap.
	Hydrate
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case DependenciesOnly:
		return "dependencies"
	case Hydrate:
		return "hydrate"
	default:
		return "normal"
	}
}

// ParseResource splits a resource identifier into its file path and mode.
// Only a trailing marker selects a mode; any other query is kept on the path.
func ParseResource(resource string) (string, Mode) {
	switch {
	case strings.HasSuffix(resource, HydrateSuffix):
		return strings.TrimSuffix(resource, HydrateSuffix), Hydrate
	case strings.HasSuffix(resource, DependenciesSuffix):
		return strings.TrimSuffix(resource, DependenciesSuffix), DependenciesOnly
	default:
		return resource, Normal
	}
}

// Dependencies returns the dependencies-only request for path.
func Dependencies(path string) string {
	return path + DependenciesSuffix
}

// Quote renders s as a JavaScript string literal.
//
// U+2028 and U+2029 are escaped as \u2028 and \u2029, and invalid UTF-8
// becomes the escape \ufffd. Both are valid JavaScript, but such paths do not
// match a JSON.stringify rendering byte for byte.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimRight(buf.String(), "\n")
}

// Inline composes the virtual request feeding inline content to the code
// loader. The leading "!!" disables configured loaders so only prefix applies.
func Inline(prefix, codeLoader, payload, sourcePath string) string {
	return "!!" + prefix + codeLoader + "?" + payload + "!" + sourcePath
}

var querySplit = regexp.MustCompile(`^(.*?)(\?.*)`)

var relativePrefix = regexp.MustCompile(`^\.\.?/`)

// Stringify quotes a request after making each absolute path segment
// relative to contextDir, the way bundlers stringify loader requests so
// generated code does not embed machine-specific paths.
func Stringify(contextDir, req string) string {
	parts := strings.Split(req, "!")
	for i, part := range parts {
		parts[i] = relativize(contextDir, part)
	}
	return Quote(strings.Join(parts, "!"))
}

func relativize(contextDir, part string) string {
	single, query := part, ""
	if m := querySplit.FindStringSubmatch(part); m != nil {
		single, query = m[1], m[2]
	}

	if contextDir != "" && filepath.IsAbs(single) {
		rel, err := filepath.Rel(contextDir, single)
		if err != nil || filepath.IsAbs(rel) {
			return single + query
		}
		rel = filepath.ToSlash(rel)
		if !relativePrefix.MatchString(rel) {
			rel = "./" + rel
		}
		single = rel
	}

	return strings.ReplaceAll(single, `\`, "/") + query
}

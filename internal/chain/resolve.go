package chain

import "strings"

// Rule is a configured transform rule: paths matching Test are loaded through Use.
type Rule struct {
	Test Pattern
	Use  Chain
}

// Source records where a resolved chain came from.
type Source string

const (
	// SourceRule means a configured rule matched.
	SourceRule Source = "rule"
	// SourceDefault means the built-in extension table supplied the chain.
	SourceDefault Source = "default"
	// SourceNone means nothing matched and the prefix is empty.
	SourceNone Source = "none"
)

// defaultChains is the fallback used when no configured rule matches.
// Keep it explicit: an unmapped extension means "no transform".
var defaultChains = map[string]Chain{
	"css": Literal("style-loader!css-loader!"),
}

// DefaultChain returns the built-in chain for a file extension (without the dot).
func DefaultChain(ext string) (Chain, bool) {
	c, ok := defaultChains[ext]
	return c, ok
}

// Resolution describes how a virtual path's chain was resolved.
type Resolution struct {
	// Path is the virtual path that was resolved.
	Path string `json:"path"`

	// Prefix is the serialized chain, ready to prepend to a request.
	Prefix string `json:"prefix"`

	// Source is where the prefix came from.
	Source Source `json:"source"`

	// RuleIndex is the index of the matching rule, or -1.
	RuleIndex int `json:"ruleIndex"`

	// Pattern is the matching rule's pattern, if any.
	Pattern string `json:"pattern,omitempty"`

	// Extension is the extension consulted in the default table.
	Extension string `json:"extension,omitempty"`
}

// Resolve returns the loader-chain prefix for virtualPath.
//
// Rules are scanned in order and the first match wins. Without a match the
// extension (text after the last '.') is looked up in the default table; an
// unknown extension yields "". A matching rule whose chain is empty still
// wins and yields "".
func Resolve(virtualPath string, rules []Rule) string {
	return Explain(virtualPath, rules).Prefix
}

// Explain resolves virtualPath like Resolve and reports which source was used.
func Explain(virtualPath string, rules []Rule) Resolution {
	for i, rule := range rules {
		if rule.Test == nil || !rule.Test.Match(virtualPath) {
			continue
		}
		return Resolution{
			Path:      virtualPath,
			Prefix:    Serialize(rule.Use),
			Source:    SourceRule,
			RuleIndex: i,
			Pattern:   rule.Test.String(),
		}
	}

	ext := Extension(virtualPath)
	res := Resolution{
		Path:      virtualPath,
		Source:    SourceNone,
		RuleIndex: -1,
		Extension: ext,
	}
	if c, ok := DefaultChain(ext); ok {
		res.Prefix = Serialize(c)
		res.Source = SourceDefault
	}
	return res
}

// Extension returns the text after the last '.' in path, or the whole path
// when it contains no '.'.
func Extension(path string) string {
	return path[strings.LastIndex(path, ".")+1:]
}

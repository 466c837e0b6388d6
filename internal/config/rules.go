package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/tagloader/internal/chain"
	oerrors "github.com/opmodel/tagloader/internal/errors"
)

// ReadRulesFile reads transform rules from a YAML, JSON or JSONC file.
//
// The file holds either a list of rules or a mapping with a "rules" key.
// JSON files may carry comments and trailing commas.
func ReadRulesFile(path string) ([]chain.Rule, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding rules path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("rules file does not exist", expanded,
				"Check --rules, TAGLOADER_RULES or rulesFile in the config file")
		}
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(expanded)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	return rules, nil
}

// ParseRules decodes transform rules from YAML (or JSON) data.
//
// Each rule has a "test" regular expression or a "glob" pattern, and a
// chain under "use" (or "loader"). A chain is a string, a list of chains,
// or a {loader, options} mapping. Structured options keep their key order
// when rendered as JSON.
func ParseRules(data []byte) ([]chain.Rule, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("parsing rules: %v", err))
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind == yaml.MappingNode {
		root = mappingValue(root, "rules")
		if root == nil {
			return nil, nil
		}
	}
	return parseRuleList(root)
}

func parseRuleList(node *yaml.Node) ([]chain.Rule, error) {
	node = resolveAlias(node)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, ruleError(node, "rules must be a list")
	}

	rules := make([]chain.Rule, 0, len(node.Content))
	for i, item := range node.Content {
		rule, err := parseRule(resolveAlias(item))
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func parseRule(node *yaml.Node) (chain.Rule, error) {
	if node.Kind != yaml.MappingNode {
		return chain.Rule{}, ruleError(node, "rule must be a mapping")
	}

	var rule chain.Rule

	test, glob := mappingValue(node, "test"), mappingValue(node, "glob")
	switch {
	case test != nil && glob != nil:
		return chain.Rule{}, ruleError(node, "rule sets both test and glob")
	case test != nil:
		p, err := chain.NewRegexp(test.Value)
		if err != nil {
			return chain.Rule{}, ruleError(test, err.Error())
		}
		rule.Test = p
	case glob != nil:
		p, err := chain.NewGlob(glob.Value)
		if err != nil {
			return chain.Rule{}, ruleError(glob, err.Error())
		}
		rule.Test = p
	default:
		return chain.Rule{}, ruleError(node, "rule needs a test or glob")
	}

	use := mappingValue(node, "use")
	if use == nil || isNull(use) {
		use = mappingValue(node, "loader")
	}
	c, err := parseChain(use)
	if err != nil {
		return chain.Rule{}, err
	}
	rule.Use = c

	return rule, nil
}

func parseChain(node *yaml.Node) (chain.Chain, error) {
	node = resolveAlias(node)
	if isNull(node) {
		return chain.Empty{}, nil
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return chain.Literal(node.Value), nil
	case yaml.SequenceNode:
		seq := make(chain.Sequence, 0, len(node.Content))
		for _, item := range node.Content {
			c, err := parseChain(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, c)
		}
		return seq, nil
	case yaml.MappingNode:
		name := mappingValue(node, "loader")
		if name == nil || name.Kind != yaml.ScalarNode || name.Value == "" {
			return nil, ruleError(node, "loader entry needs a loader name")
		}
		opts, err := parseOptions(mappingValue(node, "options"))
		if err != nil {
			return nil, err
		}
		return chain.Structured{Name: name.Value, Options: opts}, nil
	default:
		return nil, ruleError(node, "unsupported loader chain")
	}
}

func parseOptions(node *yaml.Node) (chain.Options, error) {
	node = resolveAlias(node)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind == yaml.ScalarNode {
		if node.ShortTag() == "!!str" {
			return chain.QueryOptions(node.Value), nil
		}
		// false and 0 mean "no options", like any other falsy value.
		if node.Value == "false" || node.Value == "0" {
			return nil, nil
		}
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, node); err != nil {
		return nil, err
	}
	return chain.JSONOptions(buf.Bytes()), nil
}

// writeJSON renders node as compact JSON in document order.
func writeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalarJSON(buf, resolveAlias(node.Content[i]).Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return ruleError(node, err.Error())
		}
		return writeScalarJSON(buf, v)
	default:
		return ruleError(node, "unsupported options value")
	}
	return nil
}

func writeScalarJSON(buf *bytes.Buffer, v any) error {
	opts, err := chain.EncodeOptions(v)
	if err != nil {
		return err
	}
	buf.Write(opts)
	return nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

func ruleError(node *yaml.Node, msg string) error {
	return oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("line %d: %s", node.Line, msg))
}

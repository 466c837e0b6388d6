package output

import "strings"

// OutputFormat specifies the output format.
type OutputFormat string

const (
	// FormatTable outputs a human-readable table.
	FormatTable OutputFormat = "table"

	// FormatYAML outputs in YAML format.
	FormatYAML OutputFormat = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON OutputFormat = "json"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTable, FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat parses s into an OutputFormat and reports whether it is valid.
// An empty string selects FormatTable.
func ParseFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(s) {
	case "", "table":
		return FormatTable, true
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	default:
		return OutputFormat(s), false
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"table", "yaml", "json"}
}

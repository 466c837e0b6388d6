package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in    string
		want  OutputFormat
		valid bool
	}{
		{"", FormatTable, true},
		{"table", FormatTable, true},
		{"YAML", FormatYAML, true},
		{"yml", FormatYAML, true},
		{"json", FormatJSON, true},
		{"xml", OutputFormat("xml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, valid := ParseFormat(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestOutputFormat_IsValid(t *testing.T) {
	for _, f := range ValidFormats() {
		assert.True(t, OutputFormat(f).IsValid(), f)
	}
	assert.False(t, OutputFormat("dir").IsValid())
	assert.Equal(t, "json", FormatJSON.String())
}

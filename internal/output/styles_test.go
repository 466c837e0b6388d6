package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "rule is green", status: StatusRule, wantFG: colorGreen},
		{name: "written is green", status: StatusWritten, wantFG: colorGreen},
		{name: "default is yellow", status: StatusDefault, wantFG: ColorYellow},
		{name: "none is faint", status: StatusNone, wantDim: true},
		{name: "failed is bold red", status: StatusFailed, wantFG: ColorBoldRed, wantBold: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestStatusStyle_Unknown(t *testing.T) {
	style := StatusStyle("something")
	assert.False(t, style.GetBold())
	assert.False(t, style.GetFaint())
}

func TestFormatResourceLine(t *testing.T) {
	line := FormatResourceLine("src/widget.template", StatusWritten)
	assert.Contains(t, line, "src/widget.template")
	assert.Contains(t, line, StatusWritten)

	long := strings.Repeat("x", 60)
	line = FormatResourceLine(long, StatusFailed)
	assert.Contains(t, line, long+"  ")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
	assert.Contains(t, FormatCheckmark("done"), "✔")
}

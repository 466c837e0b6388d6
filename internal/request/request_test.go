package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResource(t *testing.T) {
	tests := []struct {
		resource string
		path     string
		mode     Mode
	}{
		{"/src/widget.template", "/src/widget.template", Normal},
		{"/src/widget.template?dependencies", "/src/widget.template", DependenciesOnly},
		{"/src/widget.template?hydrate", "/src/widget.template", Hydrate},
		{"/src/widget.template?hydrate=1", "/src/widget.template?hydrate=1", Normal},
		{"/src/widget.template?dependencies&x", "/src/widget.template?dependencies&x", Normal},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			path, mode := ParseResource(tt.resource)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.mode, mode)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "normal", Normal.String())
	assert.Equal(t, "dependencies", DependenciesOnly.String())
	assert.Equal(t, "hydrate", Hydrate.String())
}

func TestDependencies(t *testing.T) {
	assert.Equal(t, "./button.tag?dependencies", Dependencies("./button.tag"))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"./a.css"`, Quote("./a.css"))
	assert.Equal(t, `"<b>&\"q\""`, Quote(`<b>&"q"`))
	assert.Equal(t, `"line\nbreak"`, Quote("line\nbreak"))
	assert.Equal(t, `"a\u2028b\u2029c"`, Quote("a\u2028b\u2029c"))
	assert.Equal(t, `"a\ufffdb"`, Quote("a\xffb"))
}

func TestInline(t *testing.T) {
	got := Inline("style-loader!css-loader!", "/tools/code-loader.js", "LmE", "/src/app.template")
	assert.Equal(t, "!!style-loader!css-loader!/tools/code-loader.js?LmE!/src/app.template", got)

	got = Inline("", "code-loader", "LmE", "/src/app.template")
	assert.Equal(t, "!!code-loader?LmE!/src/app.template", got)
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name    string
		context string
		request string
		want    string
	}{
		{
			name:    "same directory",
			context: "/src/components",
			request: "/src/components/app.template",
			want:    `"./app.template"`,
		},
		{
			name:    "parent directory",
			context: "/src/components",
			request: "!!style-loader!/tools/code-loader.js?LmE!/src/components/app.template",
			want:    `"!!style-loader!../../tools/code-loader.js?LmE!./app.template"`,
		},
		{
			name:    "query with absolute path is kept",
			context: "/src",
			request: `css-loader?{"root":"/x"}!/src/a.css`,
			want:    `"css-loader?{\"root\":\"/x\"}!./a.css"`,
		},
		{
			name:    "no context",
			context: "",
			request: "/src/a.css",
			want:    `"/src/a.css"`,
		},
		{
			name:    "relative paths untouched",
			context: "/src",
			request: "./a.css",
			want:    `"./a.css"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.context, tt.request))
		})
	}
}

package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		text string
		vars map[string]any
		want string
	}{
		{
			name: "simple replacement",
			text: "Hello {name}!",
			vars: map[string]any{"name": "Ali"},
			want: "Hello Ali!",
		},
		{
			name: "unmatched placeholder kept",
			text: "Hello {name}, {missing}",
			vars: map[string]any{"name": "Ali"},
			want: "Hello Ali, {missing}",
		},
		{
			name: "repeated token",
			text: "{x}-{x}",
			vars: map[string]any{"x": 1},
			want: "1-1",
		},
		{
			name: "non-string values",
			text: "{n} {f} {b}",
			vars: map[string]any{"n": 3, "f": 2.5, "b": true},
			want: "3 2.5 true",
		},
		{
			name: "inserted values are not rescanned",
			text: "{a}",
			vars: map[string]any{"a": "{b}", "b": "nope"},
			want: "{b}",
		},
		{
			name: "css braces untouched",
			text: "body { color: red; } {x}",
			vars: map[string]any{"x": "y"},
			want: "body { color: red; } y",
		},
		{
			name: "no vars",
			text: "{x}",
			want: "{x}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.text, tt.vars))
		})
	}
}

func TestRender(t *testing.T) {
	vars := map[string]any{"name": "Ali", "body": "ignored", "title": "Hi"}
	got := Render("<h1>{title}</h1><div>{body}</div>", "Dear {name}", vars)
	assert.Equal(t, "<h1>Hi</h1><div>Dear Ali</div>", got)
	assert.Equal(t, "ignored", vars["body"], "caller's map is not modified")
}

func TestRenderPlainRoundTrip(t *testing.T) {
	assert.Equal(t, "just text {unknown}", Render(Plain.HTML(), "just text {unknown}", nil))
}

func TestRenderBodyContainingPlaceholder(t *testing.T) {
	got := Render("<p>{body}</p>", "literal {body} token", nil)
	assert.Equal(t, "<p>literal {body} token</p>", got)
}

func TestRenderBuiltInKeepsStyles(t *testing.T) {
	got := Render(Default.HTML(), "Hello", nil)
	assert.Contains(t, got, "Hello")
	assert.Contains(t, got, "max-width: 600px;")
	assert.NotContains(t, got, Placeholder)
}

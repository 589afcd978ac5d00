package templates

import (
	_ "embed"
	"strings"
)

// BuiltIn identifies one of the layouts shipped with exmailer.
type BuiltIn int

const (
	Persian BuiltIn = iota + 1
	Default
	Minimal
	Plain
)

// Placeholder marks where the message body goes in a layout.
const Placeholder = "{body}"

var (
	//go:embed html/persian.html
	persianHTML string
	//go:embed html/default.html
	defaultHTML string
	//go:embed html/minimal.html
	minimalHTML string
)

var builtIns = []struct {
	tag     BuiltIn
	name    string
	aliases []string
	html    *string
}{
	{Persian, "persian", []string{"persian", "farsi", "rtl", "fa"}, &persianHTML},
	{Default, "default", []string{"default", "english", "ltr", "en"}, &defaultHTML},
	{Minimal, "minimal", []string{"minimal", "simple"}, &minimalHTML},
	{Plain, "plain", []string{"plain", "none"}, nil},
}

// BuiltIns returns every built-in layout in display order.
func BuiltIns() []BuiltIn {
	out := make([]BuiltIn, len(builtIns))
	for i, b := range builtIns {
		out[i] = b.tag
	}
	return out
}

// ParseBuiltIn matches s case-insensitively against the alias groups.
func ParseBuiltIn(s string) (BuiltIn, bool) {
	name := strings.ToLower(s)
	for _, b := range builtIns {
		for _, alias := range b.aliases {
			if alias == name {
				return b.tag, true
			}
		}
	}
	return 0, false
}

// Aliases returns the names that select b.
func Aliases(b BuiltIn) []string {
	for _, entry := range builtIns {
		if entry.tag == b {
			return append([]string(nil), entry.aliases...)
		}
	}
	return nil
}

func (b BuiltIn) String() string {
	for _, entry := range builtIns {
		if entry.tag == b {
			return entry.name
		}
	}
	return "unknown"
}

// HTML returns the layout. Plain is the bare placeholder.
func (b BuiltIn) HTML() string {
	for _, entry := range builtIns {
		if entry.tag != b {
			continue
		}
		if entry.html == nil {
			return Placeholder
		}
		return *entry.html
	}
	return Placeholder
}

// Selector returns a selector for b.
func (b BuiltIn) Selector() Selector {
	return Selector{builtIn: b}
}

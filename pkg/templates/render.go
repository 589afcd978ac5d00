package templates

import (
	"fmt"
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// Substitute replaces every {key} in text whose key is present in vars
// with the value's string form. Other brace groups are kept verbatim and
// inserted values are not scanned again.
func Substitute(text string, vars map[string]any) string {
	if len(vars) == 0 {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		value, ok := vars[token[1:len(token)-1]]
		if !ok {
			return token
		}
		return stringify(value)
	})
}

// Render substitutes vars into body and then places the result, together
// with vars, into layout. A "body" entry in vars is ignored; vars is not
// modified.
func Render(layout, body string, vars map[string]any) string {
	merged := make(map[string]any, len(vars)+1)
	for k, v := range vars {
		if k == "body" {
			continue
		}
		merged[k] = v
	}
	rendered := Substitute(body, merged)
	merged["body"] = rendered
	return Substitute(layout, merged)
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

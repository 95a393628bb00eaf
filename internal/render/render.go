// Package render fills line templates such as "{name} in {time}".
package render

import "strings"

// Field binds a placeholder token (including braces) to its value.
type Field struct {
	Placeholder string
	Value       string
}

// F builds a Field for the placeholder {name}.
func F(name, value string) Field {
	return Field{Placeholder: "{" + name + "}", Value: value}
}

// Render replaces every occurrence of each field's placeholder in tmpl.
//
// Substitution is a single left-to-right pass over tmpl: values are copied
// verbatim and never rescanned, so a value containing "{time}" stays as is.
// Tokens with no matching field are left untouched. When two placeholders
// would match at the same position, the earlier field wins.
func Render(tmpl string, fields []Field) string {
	if len(fields) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(fields)*2)
	for _, f := range fields {
		if f.Placeholder == "" {
			continue
		}
		pairs = append(pairs, f.Placeholder, f.Value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

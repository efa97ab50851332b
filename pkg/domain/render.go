package domain

import "strings"

// Renderer produces an indented, human-readable view of an entity.
type Renderer interface {
	Render(indent uint8) string
}

// Indent returns level tab characters.
func Indent(level uint8) string {
	return strings.Repeat("\t", int(level))
}

func renderField(b *strings.Builder, tab, name, value string) {
	b.WriteString(tab)
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}

// Package markers provides utilities for reading bold-label markers such as "**Title Tag:**" from scraped text.
package markers

import (
	"regexp"
	"strings"
)

// Mode selects how much text after a marker belongs to its value.
type Mode int

const (
	// SameLine captures the rest of the marker line.
	SameLine Mode = iota
	// UntilNextMarker captures up to the next blank line followed by a bold label, or end of text.
	UntilNextMarker
	// ToEnd captures everything after the marker.
	ToEnd
)

// nextMarker is the boundary used by UntilNextMarker values.
const nextMarker = "\n\n**"

// Field describes one labeled value.
type Field struct {
	Name string
	Mode Mode
}

// Label returns the literal marker text for a field name.
func Label(name string) string {
	return "**" + name + ":**"
}

// Compile builds the pattern for a field. Group 1 holds the raw value.
func (f Field) Compile() *regexp.Regexp {
	label := regexp.QuoteMeta(Label(f.Name))

	switch f.Mode {
	case SameLine:
		return regexp.MustCompile(label + ` (.*)`)
	default:
		return regexp.MustCompile(label + `\s*([\s\S]*)`)
	}
}

// Matcher is a compiled field.
type Matcher struct {
	pattern *regexp.Regexp
	field   Field
}

// NewMatcher compiles a field into a matcher.
func NewMatcher(f Field) *Matcher {
	return &Matcher{field: f, pattern: f.Compile()}
}

// Find returns the trimmed value of the field, or "" when the marker is absent.
func (m *Matcher) Find(content string) string {
	match := m.pattern.FindStringSubmatch(content)
	if len(match) < 2 {
		return ""
	}

	value := match[1]

	if m.field.Mode == UntilNextMarker {
		if idx := strings.Index(value, nextMarker); idx >= 0 {
			value = value[:idx]
		}
	}

	if m.field.Mode == SameLine {
		return value
	}

	return strings.TrimSpace(value)
}

// StripFrom removes the marker and everything after it.
func StripFrom(content, name string) string {
	idx := strings.Index(content, Label(name))
	if idx < 0 {
		return content
	}

	return content[:idx]
}

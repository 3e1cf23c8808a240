package markers

import "testing"

const sample = "**Title Tag:** Hello there \n**Designation:** Engineer, Delhi\nsecond line\n\n**Tagline:** Keep going\n\n**Banner Image:**\n![a](b.png)\n"

func TestMatcher_Find(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"Same line keeps trailing space", Field{Name: "Title Tag", Mode: SameLine}, "Hello there "},
		{"Until next marker", Field{Name: "Designation", Mode: UntilNextMarker}, "Engineer, Delhi\nsecond line"},
		{"Single line value", Field{Name: "Tagline", Mode: UntilNextMarker}, "Keep going"},
		{"To end", Field{Name: "Banner Image", Mode: ToEnd}, "![a](b.png)"},
		{"Absent", Field{Name: "Read Time", Mode: SameLine}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMatcher(tt.field).Find(sample)
			if got != tt.want {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripFrom(t *testing.T) {
	if got := StripFrom("body\n\n**Search Tags:** a, b", "Search Tags"); got != "body\n\n" {
		t.Errorf("StripFrom() = %q", got)
	}

	if got := StripFrom("body", "Search Tags"); got != "body" {
		t.Errorf("StripFrom() without marker = %q", got)
	}
}

func TestLabel(t *testing.T) {
	if got := Label("Date"); got != "**Date:**" {
		t.Errorf("Label() = %q", got)
	}
}

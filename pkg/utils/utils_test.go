package utils

import "testing"

func TestHTTPHelper_IsValidURL(t *testing.T) {
	h := NewHTTPHelper()

	tests := map[string]bool{
		"https://example.com/data.json": true,
		"http://localhost:8080":         true,
		"ftp://example.com/file":        false,
		"/local/path.json":              false,
		"https://":                      false,
		"::not a url":                   false,
	}

	for raw, want := range tests {
		if got := h.IsValidURL(raw); got != want {
			t.Errorf("IsValidURL(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestHTTPHelper_BuildHeaders(t *testing.T) {
	headers := NewHTTPHelper().BuildHeaders(map[string]string{
		"cookie":     "session=1",
		"csrf-token": "",
	})

	if got := headers.Get("User-Agent"); got != UserAgent {
		t.Errorf("User-Agent = %q", got)
	}

	if got := headers.Get("Cookie"); got != "session=1" {
		t.Errorf("Cookie = %q", got)
	}

	if _, ok := headers["Csrf-Token"]; ok {
		t.Error("empty header value should be skipped")
	}
}

func TestStringHelper_TruncateString(t *testing.T) {
	s := NewStringHelper()

	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 7, "this is..."},
		{"日本語テキスト", 6, "日本語..."},
	}

	for _, tt := range tests {
		if got := s.TruncateString(tt.in, tt.width); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestStringHelper_Preview(t *testing.T) {
	got := NewStringHelper().Preview("line one\n\n  line two", 100)
	if got != "line one line two" {
		t.Errorf("Preview() = %q", got)
	}
}

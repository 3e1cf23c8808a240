// Package formatter renders block bodies to HTML fragments and formats markdown tables.
package formatter

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// LineBreak replaces newlines in rendered output; the destination drops whitespace.
const LineBreak = "<br><br>"

// headerPrefix starts a line that is rendered as its own heading unit.
const headerPrefix = "## "

var (
	h2Pattern             = regexp.MustCompile(`<h2>(.*?)</h2>`)
	emptyParagraphPattern = regexp.MustCompile(`<p>\s*</p>`)
)

// unit is one group of lines converted in a single markdown pass.
type unit struct {
	content  string
	isHeader bool
}

// Renderer converts block bodies to HTML fragments.
type Renderer struct {
	engine    goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSanitizer enables UGC sanitization of every rendered unit.
// The engine runs with raw HTML enabled, so without the sanitizer script tags
// and javascript: links in the source reach the output unchanged.
func WithSanitizer(enabled bool) Option {
	return func(r *Renderer) {
		if !enabled {
			r.sanitizer = nil

			return
		}

		r.sanitizer = bluemonday.UGCPolicy().RequireNoFollowOnLinks(false)
	}
}

// NewRenderer creates a renderer with GFM enabled and raw HTML passed through.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render converts body text to an HTML fragment.
// Lines starting with "## " become heading units; any other h2 produced inside
// body prose is demoted to its inner text. Empty paragraphs are dropped and the
// remaining newlines become LineBreak markers.
func (r *Renderer) Render(text string) (string, error) {
	units := groupUnits(text)
	rendered := make([]string, 0, len(units))

	for _, u := range units {
		out, err := r.convert(u.content)
		if err != nil {
			return "", err
		}

		if !u.isHeader {
			out = h2Pattern.ReplaceAllString(out, "$1")
		}

		rendered = append(rendered, out)
	}

	htmlContent := strings.Join(rendered, "\n")
	htmlContent = emptyParagraphPattern.ReplaceAllString(htmlContent, "")
	htmlContent = strings.ReplaceAll(htmlContent, "\n\n", LineBreak)
	htmlContent = strings.ReplaceAll(htmlContent, "\n", LineBreak)

	return htmlContent, nil
}

func (r *Renderer) convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}

	if r.sanitizer != nil {
		return r.sanitizer.Sanitize(buf.String()), nil
	}

	return buf.String(), nil
}

// groupUnits splits text into paragraph groups and standalone "## " header lines.
func groupUnits(text string) []unit {
	var (
		units   []unit
		current strings.Builder
	)

	flush := func() {
		if content := strings.TrimSpace(current.String()); content != "" {
			units = append(units, unit{content: content})
		}

		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, headerPrefix):
			flush()

			units = append(units, unit{content: line, isHeader: true})
		case line != "":
			current.WriteString(line)
			current.WriteString("\n")
		}
	}

	flush()

	return units
}

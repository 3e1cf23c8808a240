// Package segmenter splits an article body into ordered content blocks.
package segmenter

import (
	"regexp"
	"strings"

	"cfmigrate/internal/models"
)

// Placeholder is the literal non-breaking-space line used as an explicit separator.
const Placeholder = "&nbsp;"

var (
	headingPattern       = regexp.MustCompile(`^#{2,6}\s`)
	markdownImagePattern = regexp.MustCompile(`^!\[.*?\]\(.*?\)`)
	htmlImagePattern     = regexp.MustCompile(`^<img\s+.*?>`)
	headingMarkerPattern = regexp.MustCompile(`^#+\s*`)
)

// Boundary is the classification of a single body line.
type Boundary int

// Line classifications, in priority order.
const (
	Content Boundary = iota
	PlaceholderSeparator
	PlaceholderContent
	Heading
	Image
)

// State is the segmenter walk state.
type State int

// Walk states.
const (
	// Collecting means the current block holds a heading or body text.
	Collecting State = iota
	// JustFlushed means the current block is empty.
	JustFlushed
)

// IsHeadingLine reports whether a trimmed line is a level 2-6 heading.
func IsHeadingLine(trimmed string) bool {
	return headingPattern.MatchString(trimmed)
}

// IsImageLine reports whether a trimmed line starts with markdown or HTML image markup.
func IsImageLine(trimmed string) bool {
	return markdownImagePattern.MatchString(trimmed) || htmlImagePattern.MatchString(trimmed)
}

// Segmenter walks body lines and emits blocks.
type Segmenter struct {
	blocks            []models.ContentBlock
	heading           string
	body              strings.Builder
	state             State
	hasHeadings       bool
	totalPlaceholders int
	seenPlaceholders  int
}

// Segment splits the trimmed body into content blocks.
func Segment(body string) []models.ContentBlock {
	lines := strings.Split(body, "\n")

	s := &Segmenter{state: JustFlushed}
	s.scan(lines)

	for _, line := range lines {
		s.Step(line)
	}

	s.flush()

	return s.blocks
}

// scan records the whole-body facts the walk depends on.
func (s *Segmenter) scan(lines []string) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if IsHeadingLine(trimmed) {
			s.hasHeadings = true
		}

		if trimmed == Placeholder {
			s.totalPlaceholders++
		}
	}
}

// Classify returns the boundary class of a line given the walk so far.
// The last placeholder line of a body is content, every earlier one separates blocks.
func (s *Segmenter) Classify(line string) Boundary {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == Placeholder:
		if s.seenPlaceholders+1 < s.totalPlaceholders {
			return PlaceholderSeparator
		}

		return PlaceholderContent
	case IsHeadingLine(trimmed):
		return Heading
	case !s.hasHeadings && IsImageLine(trimmed):
		return Image
	}

	return Content
}

// Step consumes one line.
func (s *Segmenter) Step(line string) {
	trimmed := strings.TrimSpace(line)

	switch s.Classify(line) {
	case PlaceholderSeparator:
		s.seenPlaceholders++
		s.flush()
	case PlaceholderContent:
		s.seenPlaceholders++
		s.appendLine(line)
	case Heading:
		s.flush()
		s.heading = trimmed
		s.state = Collecting
	case Image:
		s.flush()
		s.body.WriteString(trimmed)
		s.state = Collecting
	case Content:
		s.appendLine(line)
	}
}

func (s *Segmenter) appendLine(line string) {
	if s.body.Len() > 0 {
		s.body.WriteString("\n")
	}

	s.body.WriteString(line)

	if s.body.Len() > 0 {
		s.state = Collecting
	}
}

// flush emits the current block when it holds a heading or body text, then resets it.
func (s *Segmenter) flush() {
	if s.state == Collecting && (s.heading != "" || s.body.Len() > 0) {
		s.blocks = append(s.blocks, newBlock(s.heading, s.body.String()))
	}

	s.heading = ""
	s.body.Reset()
	s.state = JustFlushed
}

func newBlock(heading, body string) models.ContentBlock {
	block := models.ContentBlock{Body: body}

	if heading != "" {
		block.HeadingLevel = models.HeadingLevelFromLine(heading)
		block.HeadingText = strings.TrimSpace(headingMarkerPattern.ReplaceAllString(heading, ""))
	}

	return block
}

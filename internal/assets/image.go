// Package assets resolves embedded image references against the asset rename table.
package assets

import (
	"regexp"
	"strings"

	"cfmigrate/internal/models"
)

var (
	// imagePattern captures alt text, source path and the optional quoted title.
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)(?:\s+"([^"]+)")?\)`)
	// imageLinePattern matches an image with the rest of its line.
	imageLinePattern = regexp.MustCompile(`!\[[^\]]*\]\([^)\s]+(?:\s+"[^"]*")?\)[^\n]*\n?`)
	fileTypePattern  = regexp.MustCompile(`\.(\w+)(?:\?|$)`)
)

// ExtractImage returns the first markdown image in text.
// The second result is false when text holds no image markup.
func ExtractImage(text string) (models.ImageReference, bool) {
	match := imagePattern.FindStringSubmatch(text)
	if match == nil {
		return models.ImageReference{}, false
	}

	return models.ImageReference{
		Alt:      match[1],
		Src:      match[2],
		Title:    match[3],
		FileType: FileType(match[2]),
	}, true
}

// FileType infers the lowercase extension of a path, ignoring a query string.
func FileType(src string) string {
	match := fileTypePattern.FindStringSubmatch(src)
	if match == nil {
		return ""
	}

	return strings.ToLower(match[1])
}

// StripImages removes every image and the remainder of its line, then trims the result.
func StripImages(text string) string {
	return strings.TrimSpace(imageLinePattern.ReplaceAllString(text, ""))
}

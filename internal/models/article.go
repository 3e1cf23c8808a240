// Package models defines data structures shared by the extractor, segmenter and submission stages.
package models

import (
	"fmt"
	"strings"
)

// ArticleRecord is one scraped input unit from the corpus.
type ArticleRecord struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ExtractedMetadata holds the marker fields pulled out of a record.
// Absent markers leave their field as the empty string.
type ExtractedMetadata struct {
	Title           string   `json:"title"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	MetaKeywords    string   `json:"metaKeywords"`
	DateText        string   `json:"dateText"`
	ReadTime        string   `json:"readTime"`
	Tags            []string `json:"tags"`
	Designation     string   `json:"designation"`
	Education       string   `json:"education"`
	Location        string   `json:"location"`
	Quote           string   `json:"quote"`
	BannerSection   string   `json:"bannerSection"`
}

// HeadingLevel is the structural level of a content block heading.
type HeadingLevel string

// Heading levels. HeadingNone marks a block without a heading line.
const (
	HeadingNone HeadingLevel = ""
	HeadingH2   HeadingLevel = "h2"
	HeadingH3   HeadingLevel = "h3"
	HeadingH4   HeadingLevel = "h4"
)

// HeadingLevelFromLine maps a heading line to its level.
// Five or more leading hashes collapse to h4.
func HeadingLevelFromLine(line string) HeadingLevel {
	hashes := len(line) - len(strings.TrimLeft(line, "#"))

	switch {
	case hashes >= 4:
		return HeadingH4
	case hashes == 3:
		return HeadingH3
	case hashes == 2:
		return HeadingH2
	}

	return HeadingNone
}

// ContentBlock is one segment of an article body.
type ContentBlock struct {
	HeadingLevel HeadingLevel `json:"headingLevel"`
	HeadingText  string       `json:"headingText"`
	Body         string       `json:"body"`
}

// ImageReference is the first image found in a block.
// The zero value is the empty sentinel used for blocks without images.
type ImageReference struct {
	Alt      string `json:"alt"`
	Src      string `json:"src"`
	Title    string `json:"title"`
	FileType string `json:"fileType"`
}

// IsEmpty reports whether the reference is the empty sentinel.
func (r ImageReference) IsEmpty() bool {
	return r == ImageReference{}
}

// MissingAssetEntry records an image whose source has no rename entry.
type MissingAssetEntry struct {
	Src     string `json:"src"`
	Path    string `json:"path"`
	Article string `json:"article"`
}

// Section is a rendered block ready for submission.
type Section struct {
	Image        ImageReference `json:"image"`
	Slug         string         `json:"slug"`
	Path         string         `json:"path"`
	HeadingLevel HeadingLevel   `json:"headingLevel"`
	HeadingText  string         `json:"headingText"`
	Description  string         `json:"description"`
	Index        int            `json:"index"`
}

// Article is the fully populated structure of a blog record.
type Article struct {
	SourceURL       string    `json:"sourceUrl"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	MetaTitle       string    `json:"metaTitle"`
	MetaDescription string    `json:"metaDescription"`
	MetaKeywords    string    `json:"metaKeywords"`
	PublishDate     string    `json:"publishDate"`
	ReadTime        string    `json:"readTime"`
	CardDescription string    `json:"cardDescription"`
	Tags            []string  `json:"tags"`
	Sections        []Section `json:"sections"`
}

// SectionPaths returns the repository paths of all sections in block order.
func (a *Article) SectionPaths() []string {
	paths := make([]string, 0, len(a.Sections))
	for _, s := range a.Sections {
		paths = append(paths, s.Path)
	}

	return paths
}

// Story is the fully populated structure of a success-story record.
type Story struct {
	Banner          ImageReference `json:"banner"`
	SourceURL       string         `json:"sourceUrl"`
	Slug            string         `json:"slug"`
	Name            string         `json:"name"`
	Title           string         `json:"title"`
	MetaTitle       string         `json:"metaTitle"`
	MetaDescription string         `json:"metaDescription"`
	MetaKeywords    string         `json:"metaKeywords"`
	Education       string         `json:"education"`
	Location        string         `json:"location"`
	Quote           string         `json:"quote"`
	Description     string         `json:"description"`
}

// String returns a short representation for logs.
func (a *Article) String() string {
	return fmt.Sprintf("Article{Slug: %s, Sections: %d, Tags: %d}", a.Slug, len(a.Sections), len(a.Tags))
}

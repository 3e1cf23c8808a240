// Package extractor pulls labeled metadata fields and the article body out of scraped article text.
package extractor

import (
	"regexp"
	"strings"

	"cfmigrate/internal/models"
	"cfmigrate/pkg/markers"
)

// Marker names used by the upstream content generator.
const (
	MarkerTitleTag        = "Title Tag"
	MarkerMetaDescription = "Meta Description"
	MarkerMetaKeywords    = "Meta Keywords"
	MarkerPageTitle       = "Page Title"
	MarkerDate            = "Date"
	MarkerReadTime        = "Read Time"
	MarkerSearchTags      = "Search Tags"
	MarkerArticleContent  = "Article Content"
	MarkerDesignation     = "Designation"
	MarkerTagline         = "Tagline"
	MarkerBannerImage     = "Banner Image"
)

// apostropheEntity is the only entity decoded in tag lists.
const apostropheEntity = "&#039;"

// Extractor handles marker-driven field extraction.
type Extractor struct {
	metaTitle       *markers.Matcher
	metaDescription *markers.Matcher
	metaKeywords    *markers.Matcher
	designation     *markers.Matcher
	tagline         *markers.Matcher
	bannerImage     *markers.Matcher
	articleContent  *markers.Matcher
	pageTitle       *regexp.Regexp
	date            *regexp.Regexp
	readTime        *regexp.Regexp
	searchTags      *regexp.Regexp
}

// NewExtractor creates a new extractor instance.
func NewExtractor() *Extractor {
	return &Extractor{
		metaTitle:       markers.NewMatcher(markers.Field{Name: MarkerTitleTag, Mode: markers.SameLine}),
		metaDescription: markers.NewMatcher(markers.Field{Name: MarkerMetaDescription, Mode: markers.SameLine}),
		metaKeywords:    markers.NewMatcher(markers.Field{Name: MarkerMetaKeywords, Mode: markers.SameLine}),
		designation:     markers.NewMatcher(markers.Field{Name: MarkerDesignation, Mode: markers.UntilNextMarker}),
		tagline:         markers.NewMatcher(markers.Field{Name: MarkerTagline, Mode: markers.UntilNextMarker}),
		bannerImage:     markers.NewMatcher(markers.Field{Name: MarkerBannerImage, Mode: markers.ToEnd}),
		articleContent:  markers.NewMatcher(markers.Field{Name: MarkerArticleContent, Mode: markers.ToEnd}),
		// Title must be followed by a blank line
		pageTitle:  regexp.MustCompile(`\*\*Page Title:\*\* (.+?)\n\n`),
		date:       regexp.MustCompile(`\*\*Date:\*\*\s*(.+)`),
		readTime:   regexp.MustCompile(`\*\*Read Time:\*\*\s*(\d+)`),
		searchTags: regexp.MustCompile(`\*\*Search Tags:\*\*\s*(.+)`),
	}
}

// Extract returns the metadata fields of a record and its raw body.
// The body is the text after the article-content marker with any trailing
// search-tag block removed.
func (e *Extractor) Extract(content string) (models.ExtractedMetadata, string) {
	meta := models.ExtractedMetadata{
		Title:           strings.TrimSpace(firstGroup(e.pageTitle, content)),
		MetaTitle:       e.metaTitle.Find(content),
		MetaDescription: e.metaDescription.Find(content),
		MetaKeywords:    e.metaKeywords.Find(content),
		DateText:        strings.TrimSpace(firstGroup(e.date, content)),
		ReadTime:        firstGroup(e.readTime, content),
		Tags:            SplitTags(strings.TrimSpace(firstGroup(e.searchTags, content))),
		Designation:     e.designation.Find(content),
		Quote:           e.tagline.Find(content),
		BannerSection:   e.bannerImage.Find(content),
	}

	meta.Education, meta.Location = SplitDesignation(meta.Designation)

	return meta, e.Body(content)
}

// Body returns the trimmed article body, or "" when the marker is absent.
func (e *Extractor) Body(content string) string {
	body := e.articleContent.Find(content)
	body = markers.StripFrom(body, MarkerSearchTags)

	return strings.TrimSpace(body)
}

// SplitTags splits a comma separated tag line. An empty line yields no tags.
func SplitTags(line string) []string {
	if line == "" {
		return []string{}
	}

	decoded := strings.ReplaceAll(line, apostropheEntity, "'")
	parts := strings.Split(decoded, ",")

	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}

	return tags
}

// SplitDesignation splits "education, location" on the first comma.
func SplitDesignation(designation string) (string, string) {
	education, location, found := strings.Cut(designation, ",")
	if !found {
		return strings.TrimSpace(designation), ""
	}

	return strings.TrimSpace(education), strings.TrimSpace(location)
}

func firstGroup(pattern *regexp.Regexp, content string) string {
	match := pattern.FindStringSubmatch(content)
	if len(match) < 2 {
		return ""
	}

	return match[1]
}

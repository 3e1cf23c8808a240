package normalizer

import (
	"fmt"
	"strings"

	"cfmigrate/internal/assets"
	"cfmigrate/internal/errs"
	"cfmigrate/internal/extractor"
	"cfmigrate/internal/formatter"
	"cfmigrate/internal/models"
	"cfmigrate/internal/segmenter"
	"cfmigrate/pkg/markers"
)

// Transformer turns validated records into fully populated structures.
type Transformer struct {
	extractor *extractor.Extractor
	resolver  *assets.Resolver
	renderer  *formatter.Renderer
	damRoot   string
}

// NewTransformer creates a transformer. damRoot prefixes section repository paths.
func NewTransformer(resolver *assets.Resolver, renderer *formatter.Renderer, damRoot string) *Transformer {
	if resolver == nil {
		resolver = assets.NewResolver(nil, nil)
	}

	if renderer == nil {
		renderer = formatter.NewRenderer()
	}

	return &Transformer{
		extractor: extractor.NewExtractor(),
		resolver:  resolver,
		renderer:  renderer,
		damRoot:   strings.TrimSuffix(damRoot, "/"),
	}
}

// TransformBlog builds an article and its sections in block order.
// A present but unparseable date fails the whole record.
func (t *Transformer) TransformBlog(record *models.ArticleRecord) (*models.Article, error) {
	meta, body := t.extractor.Extract(record.Content)

	publishDate := ""
	if meta.DateText != "" {
		normalized, err := NormalizeDate(meta.DateText)
		if err != nil {
			return nil, err
		}

		publishDate = normalized
	}

	slug := Slug(meta.Title)
	if slug == "" {
		return nil, errs.Skippable(ErrMissingTitle, "skipping record")
	}

	blocks := segmenter.Segment(body)

	article := &models.Article{
		SourceURL:       record.URL,
		Slug:            slug,
		Title:           meta.Title,
		MetaTitle:       meta.MetaTitle,
		MetaDescription: meta.MetaDescription,
		MetaKeywords:    meta.MetaKeywords,
		PublishDate:     publishDate,
		ReadTime:        meta.ReadTime,
		Tags:            meta.Tags,
		Sections:        make([]models.Section, 0, len(blocks)),
	}

	for i, block := range blocks {
		section, err := t.buildSection(slug, i, block)
		if err != nil {
			return nil, err
		}

		article.Sections = append(article.Sections, section)
	}

	if len(article.Sections) > 0 {
		article.CardDescription = article.Sections[0].Description
	}

	return article, nil
}

func (t *Transformer) buildSection(articleSlug string, i int, block models.ContentBlock) (models.Section, error) {
	sectionSlug := SectionSlug(articleSlug, i)
	structural := models.BlogSectionPath(articleSlug, sectionSlug)

	description, err := t.renderer.Render(assets.StripImages(block.Body))
	if err != nil {
		return models.Section{}, fmt.Errorf("section %d: %w", i+1, err)
	}

	return models.Section{
		Index:        i + 1,
		Slug:         sectionSlug,
		Path:         t.damRoot + structural,
		HeadingLevel: block.HeadingLevel,
		HeadingText:  block.HeadingText,
		Description:  description,
		Image:        t.resolver.Resolve(block.Body, structural, articleSlug),
	}, nil
}

// TransformStory builds a success story from a record.
// The slug comes from the url and the fragment name is the first word of the title.
func (t *Transformer) TransformStory(record *models.ArticleRecord) (*models.Story, error) {
	meta, body := t.extractor.Extract(record.Content)

	slug := LastPathSegment(record.URL)
	if slug == "" {
		return nil, errs.Skippable(ErrMissingSlug, "skipping record")
	}

	name := FirstWord(meta.Title)
	if name == "" {
		return nil, errs.Skippable(ErrMissingTitle, "skipping record")
	}

	body = markers.StripFrom(body, extractor.MarkerBannerImage)

	description, err := t.renderer.Render(assets.StripImages(body))
	if err != nil {
		return nil, fmt.Errorf("story body: %w", err)
	}

	return &models.Story{
		SourceURL:       record.URL,
		Slug:            slug,
		Name:            name,
		Title:           meta.Title,
		MetaTitle:       meta.MetaTitle,
		MetaDescription: meta.MetaDescription,
		MetaKeywords:    meta.MetaKeywords,
		Education:       meta.Education,
		Location:        meta.Location,
		Quote:           meta.Quote,
		Description:     description,
		Banner:          t.resolver.Resolve(meta.BannerSection, models.StoryPath(name), name),
	}, nil
}

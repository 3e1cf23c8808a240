// Package normalizer turns scraped article records into structured, rendered content.
package normalizer

import (
	"fmt"

	"cfmigrate/internal/models"
)

// Processor handles record validation and transformation.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor(transformer *Transformer) *Processor {
	if transformer == nil {
		transformer = NewTransformer(nil, nil, "")
	}

	return &Processor{
		validator:   NewValidator(),
		transformer: transformer,
	}
}

// ProcessBlog validates a record and builds its article.
func (p *Processor) ProcessBlog(record *models.ArticleRecord) (*models.Article, error) {
	if err := p.validator.Validate(record); err != nil {
		return nil, err
	}

	article, err := p.transformer.TransformBlog(record)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	return article, nil
}

// ProcessStory validates a record and builds its success story.
func (p *Processor) ProcessStory(record *models.ArticleRecord) (*models.Story, error) {
	if err := p.validator.Validate(record); err != nil {
		return nil, err
	}

	story, err := p.transformer.TransformStory(record)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	return story, nil
}

package normalizer

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cfmigrate/internal/errs"
	"cfmigrate/internal/models"
)

// Validation errors.
var (
	ErrNilRecord     = errors.New("record is nil")
	ErrInvalidRecord = errors.New("invalid article record")
	ErrMissingTitle  = errors.New("record has no page title")
	ErrMissingSlug   = errors.New("record url has no path segment")
)

// Validator checks input records before transformation.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate requires a non-empty url and content. Failures are skippable.
func (v *Validator) Validate(record *models.ArticleRecord) error {
	if record == nil {
		return errs.Skippable(ErrNilRecord, "skipping record")
	}

	err := validation.ValidateStruct(record,
		validation.Field(&record.URL, validation.Required),
		validation.Field(&record.Content, validation.Required),
	)
	if err != nil {
		return errs.Skippable(fmt.Errorf("%w: %w", ErrInvalidRecord, err), "skipping record")
	}

	return nil
}

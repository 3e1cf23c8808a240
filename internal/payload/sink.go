package payload

import (
	"context"
	"fmt"
	"strings"

	"cfmigrate/internal/errs"
	"cfmigrate/internal/logger"
	"cfmigrate/internal/models"
)

// Model templates under the model root.
const (
	TemplateBlogContent  = "/blog-content"
	TemplateBlogSection  = "/blog-section"
	TemplateStoryContent = "/success-stories-content"
)

const contentSuffix = ".cfm.content.json"

// Sink accepts one logical entity per call.
type Sink interface {
	Submit(ctx context.Context, entity Entity) error
}

// Ensure the sinks implement Sink.
var (
	_ Sink = (*FragmentSink)(nil)
	_ Sink = (*DryRunSink)(nil)
)

// Endpoints locate the repository services.
type Endpoints struct {
	// AuthorBase is the author host, ending with "/".
	AuthorBase string
	// CommandURL creates fragments from templates.
	CommandURL string
	DamRoot    string
	ModelRoot  string
}

// FragmentSink creates content fragments and posts their field sets.
// Every POST is preceded by a pacer wait.
type FragmentSink struct {
	client    Client
	pacer     *Pacer
	logger    *logger.Logger
	endpoints Endpoints
}

// NewFragmentSink creates a sink posting through client.
func NewFragmentSink(client Client, pacer *Pacer, endpoints Endpoints, log *logger.Logger) *FragmentSink {
	if !strings.HasSuffix(endpoints.AuthorBase, "/") {
		endpoints.AuthorBase += "/"
	}

	endpoints.DamRoot = strings.TrimSuffix(endpoints.DamRoot, "/")
	endpoints.ModelRoot = strings.TrimSuffix(endpoints.ModelRoot, "/")

	return &FragmentSink{
		client:    client,
		pacer:     pacer,
		logger:    log,
		endpoints: endpoints,
	}
}

// Submit creates the entity's fragment and updates its fields.
// Fragment and folder creation failures are logged and the update is still
// attempted, since the fragment may already exist. A failed update is a
// submission failure.
func (s *FragmentSink) Submit(ctx context.Context, entity Entity) error {
	var (
		parent, template, target string
		folder                   string
	)

	switch entity.Kind {
	case KindArticle:
		parent = s.endpoints.DamRoot + "/" + models.BlogsFolder
		template = s.endpoints.ModelRoot + TemplateBlogContent
		folder = s.endpoints.AuthorBase + models.BlogSectionsFolder + "/" + entity.Name
		target = s.endpoints.AuthorBase + models.BlogsFolder + "/" + entity.Name + contentSuffix
	case KindSection:
		parent = s.endpoints.DamRoot + models.BlogSectionFolder(entity.Parent)
		template = s.endpoints.ModelRoot + TemplateBlogSection
		target = s.endpoints.AuthorBase + models.BlogSectionsFolder + "/" + entity.Parent + "/" + entity.Name + contentSuffix
	case KindStory:
		parent = s.endpoints.DamRoot + "/" + models.StoriesFolder
		template = s.endpoints.ModelRoot + TemplateStoryContent
		target = s.endpoints.AuthorBase + models.StoriesFolder + "/" + entity.Name + contentSuffix
	default:
		return errs.Submission(fmt.Errorf("%w: %q", ErrUnknownEntityKind, entity.Kind), "submit entity")
	}

	if err := s.post(ctx, s.endpoints.CommandURL, FragmentForm(parent, template, entity.Name)); err != nil {
		if ctx.Err() != nil {
			return err
		}

		s.warn(fmt.Sprintf("Failed to create %s fragment %s: %v", entity.Kind, entity.Name, err))
	}

	if folder != "" {
		if err := s.post(ctx, folder, FolderForm(entity.Name)); err != nil {
			if ctx.Err() != nil {
				return err
			}

			s.warn(fmt.Sprintf("Failed to create section folder %s: %v", entity.Name, err))
		}
	}

	if err := s.post(ctx, target, entity.Fields); err != nil {
		return errs.Submission(err, fmt.Sprintf("update %s %s", entity.Kind, entity.Name))
	}

	if s.logger != nil {
		s.logger.Info(fmt.Sprintf("Submitted %s %s", entity.Kind, entity.Name))
	}

	return nil
}

func (s *FragmentSink) post(ctx context.Context, target string, form Form) error {
	if err := s.pacer.Wait(ctx); err != nil {
		return err
	}

	return s.client.PostForm(ctx, target, form)
}

func (s *FragmentSink) warn(msg string) {
	if s.logger != nil {
		s.logger.Warn(msg)
	}
}

// DryRunSink logs entities instead of posting them.
type DryRunSink struct {
	logger    *logger.Logger
	Submitted []Entity
}

// NewDryRunSink creates a sink that records and logs every entity.
func NewDryRunSink(log *logger.Logger) *DryRunSink {
	return &DryRunSink{logger: log}
}

// Submit records the entity.
func (s *DryRunSink) Submit(_ context.Context, entity Entity) error {
	s.Submitted = append(s.Submitted, entity)

	if s.logger != nil {
		s.logger.Info(fmt.Sprintf("[dry-run] %s %s %q (%d fields)", entity.Kind, entity.Name, entity.Fields.Get("title"), entity.Fields.Len()))
	}

	return nil
}

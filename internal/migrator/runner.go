// Package migrator runs the sequential record pipeline and forwards entities to a sink.
package migrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"cfmigrate/internal/assets"
	"cfmigrate/internal/errs"
	"cfmigrate/internal/logger"
	"cfmigrate/internal/models"
	"cfmigrate/internal/normalizer"
	"cfmigrate/internal/payload"
)

// Kind selects the content flow.
type Kind string

// Content flows.
const (
	KindBlog  Kind = "blog"
	KindStory Kind = "story"
)

// Options configures a Runner.
type Options struct {
	Kind      Kind
	Banner    payload.Banner
	URLPrefix string
}

// Result summarizes one run.
type Result struct {
	RunID      string
	Seen       int
	Processed  int
	Skipped    int
	Failed     int
	DateFailed int // subset of Failed with an unparseable publish date
	Submitted  int
	Failures   []error
	Missing    []models.MissingAssetEntry
	Duration   time.Duration
}

// Runner transforms records one at a time and submits their entities in order.
type Runner struct {
	processor *normalizer.Processor
	sink      payload.Sink
	collector *assets.Collector
	logger    *logger.Logger
	opts      Options
}

// NewRunner creates a runner. collector is the one the processor's resolver
// reports to; its entries are returned with the result.
func NewRunner(processor *normalizer.Processor, sink payload.Sink, collector *assets.Collector, opts Options, log *logger.Logger) *Runner {
	if opts.Kind == "" {
		opts.Kind = KindBlog
	}

	if log == nil {
		log = logger.NewLogger("error")
	}

	return &Runner{
		processor: processor,
		sink:      sink,
		collector: collector,
		logger:    log,
		opts:      opts,
	}
}

// Run processes records in order. Record-level problems are counted and logged;
// only context cancellation stops the loop early.
func (r *Runner) Run(ctx context.Context, records []models.ArticleRecord) *Result {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	log := r.logger.With("run", result.RunID)

	log.Info(fmt.Sprintf("Migrating %d %s records", len(records), r.opts.Kind))

	for i := range records {
		if ctx.Err() != nil {
			log.Warn(fmt.Sprintf("Run cancelled after %d of %d records", i, len(records)))

			break
		}

		result.Seen++

		record := &records[i]
		log.Info(fmt.Sprintf("[%d/%d] %s", i+1, len(records), r.displayPath(record.URL)))

		before := r.missingCount()

		var err error
		if r.opts.Kind == KindStory {
			err = r.runStory(ctx, record, result, log)
		} else {
			err = r.runBlog(ctx, record, result, log)
		}

		r.reportMissing(ctx, before, log)

		switch {
		case err == nil:
			result.Processed++
		case errs.IsSkippable(err):
			result.Skipped++
			log.Err(ctx, slog.LevelWarn, "Skipped record", err)
		case errs.IsDateParse(err):
			result.Failed++
			result.DateFailed++
			log.Err(ctx, slog.LevelError, "Record has an unparseable publish date", err)
		default:
			result.Failed++
			log.Err(ctx, slog.LevelError, "Record failed", err)
		}
	}

	if r.collector != nil {
		result.Missing = r.collector.Entries()
	}

	result.Duration = time.Since(start)

	log.Info(fmt.Sprintf("Run complete: %d processed, %d skipped, %d failed (%d bad dates), %d entities submitted, %d missing assets in %v",
		result.Processed, result.Skipped, result.Failed, result.DateFailed, result.Submitted, len(result.Missing), result.Duration))

	return result
}

func (r *Runner) runBlog(ctx context.Context, record *models.ArticleRecord, result *Result, log *logger.Logger) error {
	article, err := r.processor.ProcessBlog(record)
	if err != nil {
		return err
	}

	log = log.With("slug", article.Slug)
	log.Info(fmt.Sprintf("Parsed %q: %d sections, %d tags", article.Title, len(article.Sections), len(article.Tags)))

	r.submit(ctx, payload.ArticleEntity(article, r.opts.Banner), result, log)

	for _, section := range article.Sections {
		if ctx.Err() != nil {
			return nil
		}

		r.submit(ctx, payload.SectionEntity(article.Slug, section), result, log)
	}

	return nil
}

func (r *Runner) runStory(ctx context.Context, record *models.ArticleRecord, result *Result, log *logger.Logger) error {
	story, err := r.processor.ProcessStory(record)
	if err != nil {
		return err
	}

	log = log.With("slug", story.Slug)
	log.Info(fmt.Sprintf("Parsed story of %s", story.Name))

	if story.Banner.IsEmpty() {
		log.Warn("Story has no banner image")
	}

	r.submit(ctx, payload.StoryEntity(story), result, log)

	return nil
}

// submit forwards one entity. A failure is recorded and the caller moves on.
// Recorded failures always carry the submission code, whatever the sink returned.
func (r *Runner) submit(ctx context.Context, entity payload.Entity, result *Result, log *logger.Logger) {
	if err := r.sink.Submit(ctx, entity); err != nil {
		if !errs.IsSubmission(err) {
			err = errs.Submission(err, fmt.Sprintf("submit %s %s", entity.Kind, entity.Name))
		}

		result.Failures = append(result.Failures, err)
		log.Err(ctx, slog.LevelError, fmt.Sprintf("Failed to submit %s %s", entity.Kind, entity.Name), err)

		return
	}

	result.Submitted++
}

func (r *Runner) missingCount() int {
	if r.collector == nil {
		return 0
	}

	return r.collector.Len()
}

// reportMissing logs the entries recorded since the given count.
func (r *Runner) reportMissing(ctx context.Context, since int, log *logger.Logger) {
	if r.collector == nil || r.collector.Len() == since {
		return
	}

	for _, entry := range r.collector.Entries()[since:] {
		log.Err(ctx, slog.LevelWarn, fmt.Sprintf("Unresolved asset in %s", entry.Path), errs.UnresolvedAsset(entry.Src))
	}
}

func (r *Runner) displayPath(url string) string {
	if r.opts.URLPrefix == "" {
		return url
	}

	return strings.TrimPrefix(url, r.opts.URLPrefix)
}

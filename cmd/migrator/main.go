// Package main provides the migrator command that loads the corpus, transforms every
// record and submits the results to the content repository.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"cfmigrate/internal/assets"
	"cfmigrate/internal/config"
	"cfmigrate/internal/corpus"
	"cfmigrate/internal/diagnostics"
	"cfmigrate/internal/errs"
	"cfmigrate/internal/formatter"
	"cfmigrate/internal/logger"
	"cfmigrate/internal/migrator"
	"cfmigrate/internal/normalizer"
	"cfmigrate/internal/payload"
)

func main() {
	// 1. Define Command-Line Flags
	// ---------------------------
	configFile := flag.String("config", "", "Path to YAML configuration file")
	kind := flag.String("kind", "", "Content flow: blog or story (overrides config)")
	input := flag.String("input", "", "Corpus JSON file (replaces configured sources)")
	assetsPath := flag.String("assets", "", "Asset rename table (.xlsx or .csv)")
	sheet := flag.String("sheet", "", "Spreadsheet sheet name (default: first sheet)")
	missingPath := flag.String("missing", "", "Missing assets JSON output path")
	reportPath := flag.String("report", "", "Missing assets markdown report path")
	dryRun := flag.Bool("dry-run", false, "Log entities instead of submitting them")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	cookie := flag.String("cookie", "", "Session cookie (default: $"+config.EnvCookie+")")
	csrfToken := flag.String("csrf-token", "", "CSRF token (default: $"+config.EnvCSRFToken+")")
	saveConfig := flag.String("save-config", "", "Write the effective configuration (credentials removed) to this path and exit")

	flag.Parse()

	cfg, err := config.ReadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	applyFlags(cfg, flagOverrides{
		kind:      *kind,
		input:     *input,
		assets:    *assetsPath,
		sheet:     *sheet,
		missing:   *missingPath,
		report:    *reportPath,
		logLevel:  *logLevel,
		cookie:    *cookie,
		csrfToken: *csrfToken,
		dryRun:    *dryRun,
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *saveConfig != "" {
		if err := saveEffectiveConfig(cfg, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Configuration written to %s\n", *saveConfig)

		return
	}

	log := logger.NewLoggerWithOptions(logger.Options{
		Level:  cfg.Migrator.Logging.Level,
		Format: cfg.Migrator.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info(fmt.Sprintf("🚀 Starting %s migration", cfg.Migrator.Kind))

	if cfg.Features.DryRun {
		log.Info("👀 Dry-run mode (nothing will be submitted)")
	}

	startTime := time.Now()

	// 2. Ingestion
	// ------------
	log.Info("Phase 1: Loading corpus and asset table...")

	loader := corpus.NewLoader(corpus.NewFetcherWithConfig(&cfg.Migrator.Retry), log)

	records, err := loader.LoadSources(ctx, cfg)
	if err != nil {
		log.Err(ctx, slog.LevelError, "❌ "+corpusFailure(ctx, err), err)
		os.Exit(1)
	}

	table, err := assets.LoadTable(cfg.Migrator.Assets.Path, cfg.Migrator.Assets.Sheet)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Asset table load failed: %v", err))
		os.Exit(1)
	}

	if table.Len() == 0 {
		log.Warn("⚠️  Asset table is empty: every image will be reported missing")
	}

	log.Info(fmt.Sprintf("✅ Loaded %d records and %d asset mappings", len(records), table.Len()))

	// 3. Transformation and submission
	// --------------------------------
	log.Info("Phase 2: Transforming and submitting...")

	collector := assets.NewCollector()
	renderer := formatter.NewRenderer(formatter.WithSanitizer(cfg.Features.SanitizeHTML))
	transformer := normalizer.NewTransformer(assets.NewResolver(table, collector), renderer, cfg.Sink.DamRoot)

	runner := migrator.NewRunner(
		normalizer.NewProcessor(transformer),
		newSink(cfg, log),
		collector,
		migrator.Options{
			Kind: migrator.Kind(cfg.Migrator.Kind),
			Banner: payload.Banner{
				ID:    cfg.Migrator.Blog.Banner.ID,
				Alt:   cfg.Migrator.Blog.Banner.Alt,
				Title: cfg.Migrator.Blog.Banner.Title,
				Type:  cfg.Migrator.Blog.Banner.Type,
			},
			URLPrefix: cfg.URLPrefix(),
		},
		log,
	)

	result := runner.Run(ctx, records)

	// 4. Diagnostics
	// --------------
	log.Info("Phase 3: Writing diagnostics...")

	if err := diagnostics.WriteJSON(cfg.Migrator.Output.MissingAssetsPath, result.Missing); err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))
	} else {
		log.Info(fmt.Sprintf("✅ %d missing assets written to %s", len(result.Missing), cfg.Migrator.Output.MissingAssetsPath))
	}

	if cfg.Migrator.Output.ReportPath != "" {
		if err := diagnostics.WriteReport(cfg.Migrator.Output.ReportPath, result.RunID, result.Missing); err != nil {
			log.Error(fmt.Sprintf("❌ %v", err))
		}
	}

	printSummary(result, time.Since(startTime))
}

// flagOverrides holds the command-line values that replace configuration.
type flagOverrides struct {
	kind      string
	input     string
	assets    string
	sheet     string
	missing   string
	report    string
	logLevel  string
	cookie    string
	csrfToken string
	dryRun    bool
}

func applyFlags(cfg *config.Config, f flagOverrides) {
	if f.kind != "" {
		cfg.Migrator.Kind = f.kind
	}

	if f.input != "" {
		cfg.Migrator.Sources = []config.SourceConfig{{Name: "input", File: f.input, Enabled: true}}
	}

	if f.assets != "" {
		cfg.Migrator.Assets.Path = f.assets
	}

	if f.sheet != "" {
		cfg.Migrator.Assets.Sheet = f.sheet
	}

	if f.missing != "" {
		cfg.Migrator.Output.MissingAssetsPath = f.missing
	}

	if f.report != "" {
		cfg.Migrator.Output.ReportPath = f.report
	}

	if f.logLevel != "" {
		cfg.Migrator.Logging.Level = f.logLevel
	}

	if f.cookie != "" {
		cfg.Sink.Cookie = f.cookie
	}

	if f.csrfToken != "" {
		cfg.Sink.CSRFToken = f.csrfToken
	}

	if f.dryRun {
		cfg.Features.DryRun = true
	}
}

// corpusFailure names the cause of a failed corpus load.
func corpusFailure(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return "Corpus load interrupted"
	case errs.IsCorpus(err):
		return "Corpus I/O failed"
	default:
		return "Corpus load failed"
	}
}

// saveEffectiveConfig writes cfg with its session credentials cleared.
func saveEffectiveConfig(cfg *config.Config, path string) error {
	out := *cfg
	out.Sink.Cookie = ""
	out.Sink.CSRFToken = ""

	return out.SaveConfig(path)
}

func newSink(cfg *config.Config, log *logger.Logger) payload.Sink {
	if cfg.Features.DryRun {
		return payload.NewDryRunSink(log)
	}

	p := cfg.Sink.Politeness
	pacer := payload.NewPacer(
		time.Duration(p.MinDelayMs)*time.Millisecond,
		time.Duration(p.MaxDelayMs)*time.Millisecond,
		p.MaxPerMinute,
	)

	client := payload.NewHTTPClient(cfg.Sink.Cookie, cfg.Sink.CSRFToken, cfg.Sink.GetTimeout(), log)

	return payload.NewFragmentSink(client, pacer, payload.Endpoints{
		AuthorBase: cfg.Sink.AuthorBase(),
		CommandURL: cfg.Sink.CommandURL,
		DamRoot:    cfg.Sink.DamRoot,
		ModelRoot:  cfg.Sink.ModelRoot,
	}, log)
}

func printSummary(result *migrator.Result, elapsed time.Duration) {
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Records: %d seen, %d processed, %d skipped, %d failed (%d bad dates)\n",
		result.Seen, result.Processed, result.Skipped, result.Failed, result.DateFailed)
	fmt.Printf("Entities Submitted: %d\n", result.Submitted)
	fmt.Printf("Missing Assets: %d\n", len(result.Missing))
	fmt.Printf("Total Duration: %v\n", elapsed)

	if len(result.Failures) > 0 {
		fmt.Printf("⚠️  Submission failures: %d\n", len(result.Failures))

		for _, e := range result.Failures {
			fmt.Printf("  - %v\n", e)
		}
	}

	fmt.Println("------------------------------------------------")
}

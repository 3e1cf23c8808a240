// Package config provides configuration management for the migration worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"cfmigrate/pkg/utils"
)

// Content kinds handled by the migrator.
const (
	KindBlog  = "blog"
	KindStory = "story"
)

// Environment variables consulted for sink credentials.
const (
	EnvCookie    = "AEM_COOKIE"
	EnvCSRFToken = "AEM_CSRF_TOKEN"
)

// Configuration validation errors.
var (
	ErrNoSources                = errors.New("at least one source is required")
	ErrSourceMissingURLOrFile   = errors.New("either URL or file path is required")
	ErrNoEnabledSources         = errors.New("at least one source must be enabled")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidPolitenessDelay   = errors.New("sink.politeness delays must satisfy 0 <= min_delay_ms <= max_delay_ms")
	ErrInvalidRateCap           = errors.New("sink.politeness.max_per_minute must be non-negative")
	ErrInvalidSourceURL         = errors.New("source url must be an absolute http(s) url")
	ErrInvalidURL               = errors.New("must be an absolute http(s) url")
)

var httpHelper = utils.NewHTTPHelper()

// httpURL is an ozzo rule body. Empty values pass; Required covers presence.
func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" || httpHelper.IsValidURL(s) {
		return nil
	}

	return ErrInvalidURL
}

// Config represents the complete migrator configuration.
type Config struct {
	Migrator MigratorConfig `yaml:"migrator"`
	Sink     SinkConfig     `yaml:"sink"`
	Features FeaturesConfig `yaml:"features"`
}

// MigratorConfig contains pipeline settings.
type MigratorConfig struct {
	Kind    string         `yaml:"kind"`
	Story   StoryConfig    `yaml:"story"`
	Assets  AssetsConfig   `yaml:"assets"`
	Output  OutputConfig   `yaml:"output"`
	Logging LoggingConfig  `yaml:"logging"`
	Blog    BlogConfig     `yaml:"blog"`
	Sources []SourceConfig `yaml:"sources"`
	Retry   RetryPolicy    `yaml:"retry"`
}

// SourceConfig represents a corpus source.
type SourceConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	File    string `yaml:"file"`
	Enabled bool   `yaml:"enabled"`
}

// IsLocalFile returns true if this source uses a local file.
func (s *SourceConfig) IsLocalFile() bool {
	return s.File != ""
}

// GetSource returns the file path if local, or URL if remote.
func (s *SourceConfig) GetSource() string {
	if s.IsLocalFile() {
		return s.File
	}

	return s.URL
}

// AssetsConfig locates the asset rename table.
type AssetsConfig struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet"`
}

// RetryPolicy defines retry behavior for corpus fetches.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// OutputConfig defines where diagnostics are written.
type OutputConfig struct {
	MissingAssetsPath string `yaml:"missing_assets_path"`
	ReportPath        string `yaml:"report_path"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// BlogConfig holds blog specific settings.
type BlogConfig struct {
	URLPrefix string       `yaml:"url_prefix"`
	Banner    BannerConfig `yaml:"banner"`
}

// BannerConfig is the banner submitted with every blog article.
type BannerConfig struct {
	ID    string `yaml:"id"`
	Alt   string `yaml:"alt"`
	Title string `yaml:"title"`
	Type  string `yaml:"type"`
}

// StoryConfig holds success-story specific settings.
type StoryConfig struct {
	URLPrefix string `yaml:"url_prefix"`
}

// SinkConfig describes the content repository endpoint.
type SinkConfig struct {
	AuthorURL  string           `yaml:"author_url"`
	CommandURL string           `yaml:"command_url"`
	Cookie     string           `yaml:"cookie"`
	CSRFToken  string           `yaml:"csrf_token"`
	DamRoot    string           `yaml:"dam_root"`
	ModelRoot  string           `yaml:"model_root"`
	Politeness PolitenessConfig `yaml:"politeness"`
	TimeoutSec int              `yaml:"timeout_sec"`
}

// PolitenessConfig bounds the pause before each submission.
type PolitenessConfig struct {
	MinDelayMs   int `yaml:"min_delay_ms"`
	MaxDelayMs   int `yaml:"max_delay_ms"`
	MaxPerMinute int `yaml:"max_per_minute"`
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	DryRun       bool `yaml:"dry_run"`
	SanitizeHTML bool `yaml:"sanitize_html"`
}

// Default returns a configuration with every optional value populated.
func Default() *Config {
	return &Config{
		Migrator: MigratorConfig{
			Kind: KindBlog,
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
			Output: OutputConfig{
				MissingAssetsPath: "missingAssets.json",
			},
			Logging: LoggingConfig{Level: "info", Format: "text"},
			Blog: BlogConfig{
				Banner: BannerConfig{ID: "139450823", Alt: "Success Stories", Type: "jpg"},
			},
		},
		Sink: SinkConfig{
			TimeoutSec: 30,
			Politeness: PolitenessConfig{MinDelayMs: 3000, MaxDelayMs: 5000},
		},
		Features: FeaturesConfig{SanitizeHTML: true},
	}
}

// LoadConfig loads configuration from YAML file over the defaults and validates it.
func LoadConfig(filepath string) (*Config, error) {
	cfg, err := ReadConfig(filepath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ReadConfig loads configuration without validating it, so callers can apply
// overrides first. An empty path yields the defaults.
func ReadConfig(filepath string) (*Config, error) {
	cfg := Default()

	if filepath != "" {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.ApplyEnv()

	return cfg, nil
}

// ApplyEnv fills missing sink credentials from the environment.
func (c *Config) ApplyEnv() {
	if c.Sink.Cookie == "" {
		c.Sink.Cookie = os.Getenv(EnvCookie)
	}

	if c.Sink.CSRFToken == "" {
		c.Sink.CSRFToken = os.Getenv(EnvCSRFToken)
	}
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.validateFields(); err != nil {
		return err
	}

	if len(c.Migrator.Sources) == 0 {
		return ErrNoSources
	}

	enabledCount := 0

	for i, src := range c.Migrator.Sources {
		if src.URL == "" && src.File == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingURLOrFile, i)
		}

		if !src.IsLocalFile() && !httpHelper.IsValidURL(src.URL) {
			return fmt.Errorf("%w: source[%d] %q", ErrInvalidSourceURL, i, src.URL)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if c.Migrator.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Migrator.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Migrator.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Migrator.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	p := c.Sink.Politeness
	if p.MinDelayMs < 0 || p.MaxDelayMs < p.MinDelayMs {
		return ErrInvalidPolitenessDelay
	}

	if p.MaxPerMinute < 0 {
		return ErrInvalidRateCap
	}

	return nil
}

// validateFields checks per-field rules. Sink endpoints are only required when posting.
func (c *Config) validateFields() error {
	posting := !c.Features.DryRun

	migrator := &c.Migrator
	if err := validation.ValidateStruct(migrator,
		validation.Field(&migrator.Kind, validation.Required, validation.In(KindBlog, KindStory)),
	); err != nil {
		return goerrors.FromOzzoValidation(err, "invalid migrator configuration")
	}

	logging := &c.Migrator.Logging
	if err := validation.ValidateStruct(logging,
		validation.Field(&logging.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&logging.Format, validation.In("text", "json")),
	); err != nil {
		return goerrors.FromOzzoValidation(err, "invalid logging configuration")
	}

	sink := &c.Sink
	if err := validation.ValidateStruct(sink,
		validation.Field(&sink.AuthorURL, validation.When(posting, validation.Required), validation.By(httpURL)),
		validation.Field(&sink.CommandURL, validation.When(posting, validation.Required), validation.By(httpURL)),
		validation.Field(&sink.DamRoot, validation.Required),
		validation.Field(&sink.ModelRoot, validation.When(posting, validation.Required)),
		validation.Field(&sink.TimeoutSec, validation.Min(1)),
	); err != nil {
		return goerrors.FromOzzoValidation(err, "invalid sink configuration")
	}

	return nil
}

// GetEnabledSources returns only enabled sources.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Migrator.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// IsStory reports whether the run migrates success stories.
func (c *Config) IsStory() bool {
	return c.Migrator.Kind == KindStory
}

// URLPrefix returns the prefix trimmed from record urls in log lines.
func (c *Config) URLPrefix() string {
	if c.IsStory() {
		return c.Migrator.Story.URLPrefix
	}

	return c.Migrator.Blog.URLPrefix
}

// AuthorBase returns the author endpoint with a trailing slash.
func (s *SinkConfig) AuthorBase() string {
	if s.AuthorURL == "" || strings.HasSuffix(s.AuthorURL, "/") {
		return s.AuthorURL
	}

	return s.AuthorURL + "/"
}

// GetTimeout returns the sink request timeout.
func (s *SinkConfig) GetTimeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Kind: %s, Sources: %d, DryRun: %t, Sanitize: %t}",
		c.Migrator.Kind,
		len(c.Migrator.Sources),
		c.Features.DryRun,
		c.Features.SanitizeHTML,
	)
}

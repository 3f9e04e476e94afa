package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"

	"github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/models"
	"github.com/horw/issue-title-ai/internal/regex"
)

const (
	defaultLang = "en"

	EventNameIssues = "issues"

	inputPrefix = "INPUT_"
)

// Config holds the action inputs (INPUT_*) and the runner variables (GITHUB_*).
// Input tags use underscores; the lookuper maps them to the hyphenated names
// the runner exports, e.g. INPUT_GITHUB_TOKEN reads INPUT_GITHUB-TOKEN.
type Config struct {
	GitHubToken         string `env:"INPUT_GITHUB_TOKEN"`
	FallbackGitHubToken string `env:"GITHUB_TOKEN"`
	Repository          string `env:"GITHUB_REPOSITORY"`

	DaysToScan      int       `env:"INPUT_DAYS_TO_SCAN, default=7"`
	MaxIssues       int       `env:"INPUT_MAX_ISSUES, default=100"`
	ApplyToClosed   bool      `env:"INPUT_APPLY_TO_CLOSED, default=false"`
	RequiredLabels  LabelList `env:"INPUT_REQUIRED_LABELS"`
	IssueNumber     int       `env:"INPUT_ISSUE_NUMBER"`
	AutoUpdate      bool      `env:"INPUT_AUTO_UPDATE, default=false"`
	Quiet           bool      `env:"INPUT_QUIET, default=false"`
	StripCharacters string    `env:"INPUT_STRIP_CHARACTERS"`
	SkipLabel       string    `env:"INPUT_SKIP_LABEL, default=titled"`
	DryRun          bool      `env:"INPUT_DRY_RUN, default=false"`

	Prompt string `env:"INPUT_PROMPT"`
	Style  string `env:"INPUT_STYLE, default=summary"`

	AIProvider      string        `env:"INPUT_AI_PROVIDER"`
	DeprecatedModel string        `env:"INPUT_MODEL"`
	Gemini          ProviderInput `env:", prefix=INPUT_GEMINI_"`
	OpenAI          ProviderInput `env:", prefix=INPUT_OPENAI_"`
	DeepSeek        ProviderInput `env:", prefix=INPUT_DEEPSEEK_"`
	Anthropic       ProviderInput `env:", prefix=INPUT_ANTHROPIC_"`

	Verbose    bool   `env:"INPUT_VERBOSE, default=false"`
	Debug      bool   `env:"INPUT_DEBUG, default=false"`
	Language   string `env:"INPUT_LANGUAGE, default=en"`
	LocalesDir string `env:"INPUT_LOCALES_DIR"`

	MetricsFile string `env:"INPUT_METRICS_FILE"`

	EventName   string `env:"GITHUB_EVENT_NAME"`
	EventPath   string `env:"GITHUB_EVENT_PATH"`
	StepSummary string `env:"GITHUB_STEP_SUMMARY"`
}

// LabelList decodes a comma separated input, trimming entries and dropping empties.
type LabelList []string

func (l *LabelList) EnvDecode(val string) error {
	var out LabelList
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*l = out
	return nil
}

// Load reads the configuration through lookuper. A nil lookuper reads the
// process environment. Inputs set to the empty string count as unset so that
// defaults still apply to `with:` keys left blank in a workflow.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: nonEmptyLookuper{next: lookuper},
	}); err != nil {
		return nil, errors.ErrInvalidSetting.WithError(err)
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = cfg.FallbackGitHubToken
	}
	if cfg.Language == "" {
		cfg.Language = defaultLang
	}

	return &cfg, nil
}

type nonEmptyLookuper struct {
	next envconfig.Lookuper
}

func (l nonEmptyLookuper) Lookup(key string) (string, bool) {
	if name, ok := inputName(key); ok {
		if v, found := l.next.Lookup(name); found && v != "" {
			return v, true
		}
	}
	v, ok := l.next.Lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// inputName turns INPUT_DAYS_TO_SCAN into INPUT_DAYS-TO-SCAN.
func inputName(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, inputPrefix)
	if !ok || !strings.Contains(rest, "_") {
		return "", false
	}
	return inputPrefix + strings.ReplaceAll(rest, "_", "-"), true
}

// Validate reports the first configuration problem that makes a run impossible.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return errors.ErrTokenMissing
	}
	if c.Repository == "" {
		return errors.ErrRepositoryMissing
	}
	if _, _, err := c.OwnerRepo(); err != nil {
		return err
	}
	if strings.TrimSpace(c.SkipLabel) == "" {
		return errors.ErrInvalidSetting.WithContext("detail", "skip-label cannot be empty")
	}
	if c.DaysToScan <= 0 {
		return errors.ErrInvalidSetting.WithContext("detail", fmt.Sprintf("days-to-scan must be positive, got %d", c.DaysToScan))
	}
	if c.MaxIssues <= 0 {
		return errors.ErrInvalidSetting.WithContext("detail", fmt.Sprintf("max-issues must be positive, got %d", c.MaxIssues))
	}

	if c.AIProvider != "" {
		ai, ok := ParseAI(c.AIProvider)
		if !ok {
			return errors.ErrProviderUnsupported.WithContext("detail", c.AIProvider)
		}
		if c.providerInput(ai).APIKey == "" {
			return errors.ErrProviderKeyMissing.
				WithContext("detail", fmt.Sprintf("ai-provider is %s but %s-api-key is empty", ai, ai))
		}
		return nil
	}

	if len(c.ConfiguredProviders()) == 0 {
		return errors.ErrNoAIProvider
	}
	return nil
}

// OwnerRepo splits Repository into its owner and name.
func (c *Config) OwnerRepo() (string, string, error) {
	if !regex.RepositorySlug.MatchString(c.Repository) {
		return "", "", errors.ErrRepositoryInvalid.WithContext("detail", c.Repository)
	}
	owner, repo, _ := strings.Cut(c.Repository, "/")
	return owner, repo, nil
}

func (c *Config) ProcessingConfig() models.ProcessingConfig {
	pc := models.DefaultProcessingConfig()
	pc.SkipLabel = c.SkipLabel
	pc.RequiredLabels = append([]string(nil), c.RequiredLabels...)
	pc.AutoUpdate = c.AutoUpdate
	pc.Quiet = c.Quiet
	pc.StripCharacters = c.StripCharacters
	return pc
}

func (c *Config) ScanOptions() models.ScanOptions {
	return models.ScanOptions{
		DaysToScan:     c.DaysToScan,
		IncludeClosed:  c.ApplyToClosed,
		RequiredLabels: append([]string(nil), c.RequiredLabels...),
		MaxIssues:      c.MaxIssues,
	}
}

// IsIssuesEvent reports whether the run was triggered by an issues webhook.
func (c *Config) IsIssuesEvent() bool {
	return c.EventName == EventNameIssues && c.EventPath != ""
}

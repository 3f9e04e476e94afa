package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/horw/issue-title-ai/internal/ai"
	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/models"
	"github.com/horw/issue-title-ai/internal/prompts"
)

const ReasonBodyTooShort = "Issue body too short"

// Translator resolves localized message templates.
type Translator interface {
	GetMessage(messageID string, count int, templateData map[string]interface{}) string
}

// titleTracker defines only the mutations needed by TitleService.
type titleTracker interface {
	UpdateIssueTitle(ctx context.Context, number int, title string) error
	CreateComment(ctx context.Context, number int, body string) error
	AddLabel(ctx context.Context, number int, label string) bool
}

// TitleService decides whether an issue is eligible and, if so, asks the
// model for a better title and applies or suggests it.
type TitleService struct {
	generator  ai.TextGenerator
	tracker    titleTracker
	translator Translator
	template   string
	config     models.ProcessingConfig
}

type TitleServiceOption func(*TitleService)

func WithProcessingConfig(cfg models.ProcessingConfig) TitleServiceOption {
	return func(s *TitleService) {
		s.config = cfg
	}
}

func NewTitleService(
	generator ai.TextGenerator,
	tracker titleTracker,
	translator Translator,
	template string,
	opts ...TitleServiceOption,
) *TitleService {
	s := &TitleService{
		generator:  generator,
		tracker:    tracker,
		translator: translator,
		template:   template,
		config:     models.DefaultProcessingConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.config.MinBodyLength <= 0 {
		s.config.MinBodyLength = models.MinBodyLength
	}
	return s
}

// CheckEligibility runs the body length, skip-label and required-label checks
// in that order. A body that is too short gets an explanatory comment even
// when the issue already carries the skip-label.
func (s *TitleService) CheckEligibility(ctx context.Context, issue *models.Issue) (bool, string) {
	if length := utf8.RuneCountInString(issue.Body); length < s.config.MinBodyLength {
		logger.Info(ctx, "issue body too short, skipping", "length", length)
		comment := s.translator.GetMessage("comment_body_too_short", 0, map[string]interface{}{
			"MinLength": s.config.MinBodyLength,
		})
		if err := s.tracker.CreateComment(ctx, issue.Number, comment); err != nil {
			logger.Error(ctx, "failed to post short description comment", err)
		}
		return false, ReasonBodyTooShort
	}

	if issue.HasLabel(s.config.SkipLabel) {
		logger.Info(ctx, "issue already has the skip label", "label", s.config.SkipLabel)
		return false, fmt.Sprintf("Has '%s' label", s.config.SkipLabel)
	}

	if len(s.config.RequiredLabels) > 0 && !hasAnyLabel(issue.Labels, s.config.RequiredLabels) {
		logger.Info(ctx, "no matching labels, issue will not be processed",
			"labels", issue.LowerLabels(),
			"required", s.config.RequiredLabels)
		return false, fmt.Sprintf("No matching labels found. Current Issue Labels: '%s'; Required Labels: '%s'",
			strings.Join(issue.LowerLabels(), ", "),
			strings.Join(s.config.RequiredLabels, ", "))
	}

	return true, ""
}

// ProcessIssue runs the full pipeline for one issue and never returns an
// error: failures after the eligibility checks are recorded in the Outcome.
func (s *TitleService) ProcessIssue(ctx context.Context, issue *models.Issue) models.Outcome {
	if ok, reason := s.CheckEligibility(ctx, issue); !ok {
		return models.SkippedOutcome(issue, reason)
	}

	logger.Info(ctx, "processing issue", "title", issue.Title)

	prompt := prompts.Render(s.template, issue.Title, issue.Body)
	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.Warn(ctx, "error processing issue", "error", err)
		return models.FailedOutcome(issue.Number, err)
	}

	improved := s.normalize(response)
	if improved == "" || improved == issue.Title {
		logger.Info(ctx, "title already optimal")
		return models.Outcome{
			IssueNumber:   issue.Number,
			OriginalTitle: issue.Title,
		}
	}

	if err := s.apply(ctx, issue, improved); err != nil {
		logger.Warn(ctx, "error processing issue", "error", err)
		return models.FailedOutcome(issue.Number, err)
	}

	if s.tracker.AddLabel(ctx, issue.Number, s.config.SkipLabel) {
		logger.Info(ctx, "added skip label", "label", s.config.SkipLabel)
	}

	return models.Outcome{
		IssueNumber:   issue.Number,
		OriginalTitle: issue.Title,
		ImprovedTitle: improved,
		Updated:       s.config.AutoUpdate,
	}
}

func (s *TitleService) apply(ctx context.Context, issue *models.Issue, improved string) error {
	if !s.config.AutoUpdate {
		comment := s.translator.GetMessage("comment_title_suggested", 0, map[string]interface{}{
			"Current":   issue.Title,
			"Suggested": improved,
		})
		if err := s.tracker.CreateComment(ctx, issue.Number, comment); err != nil {
			return err
		}
		logger.Info(ctx, "added title suggestion", "suggested", improved)
		return nil
	}

	if err := s.tracker.UpdateIssueTitle(ctx, issue.Number, improved); err != nil {
		return err
	}
	logger.Info(ctx, "updated issue title", "title", improved)

	if s.config.Quiet {
		return nil
	}
	comment := s.translator.GetMessage("comment_title_updated", 0, map[string]interface{}{
		"Previous": issue.Title,
		"New":      improved,
	})
	return s.tracker.CreateComment(ctx, issue.Number, comment)
}

func (s *TitleService) normalize(response string) string {
	title := strings.TrimSpace(response)
	if s.config.StripCharacters != "" {
		title = strings.Trim(title, s.config.StripCharacters)
	}
	return title
}

func hasAnyLabel(labels, wanted []string) bool {
	for _, w := range wanted {
		if models.ContainsLabel(labels, w) {
			return true
		}
	}
	return false
}

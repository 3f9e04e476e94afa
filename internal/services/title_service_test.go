package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/horw/issue-title-ai/internal/i18n"
	"github.com/horw/issue-title-ai/internal/models"
)

const (
	testTemplate = "Improve: {original_title}\n\n{issue_body}"
	longBody     = "When I click the save button on the settings page nothing happens."
)

func newTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return trans
}

func newIssue(title, body string, labels ...string) *models.Issue {
	return &models.Issue{
		Number: 42,
		Title:  title,
		Body:   body,
		Labels: labels,
		State:  models.IssueStateOpen,
	}
}

func processingConfig(autoUpdate, quiet bool, strip string) models.ProcessingConfig {
	cfg := models.DefaultProcessingConfig()
	cfg.AutoUpdate = autoUpdate
	cfg.Quiet = quiet
	cfg.StripCharacters = strip
	return cfg
}

func TestTitleService_CheckEligibility(t *testing.T) {
	ctx := context.Background()

	t.Run("body too short posts one comment and skips", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate)

		mockTracker.On("CreateComment", mock.Anything, 42, "Hello, your description is too short. This usually means the issue is not fully described, which can mislead developers. Please ensure your description is longer than 40 characters.").Return(nil).Once()

		outcome := svc.ProcessIssue(ctx, newIssue("Bug", "too short"))

		assert.True(t, outcome.Skipped)
		assert.Equal(t, "Issue body too short", outcome.Reason)
		assert.Equal(t, "Bug", outcome.OriginalTitle)
		assert.Empty(t, outcome.ImprovedTitle)
		assert.False(t, outcome.Updated)
		mockTracker.AssertExpectations(t)
		mockTracker.AssertNotCalled(t, "UpdateIssueTitle", mock.Anything, mock.Anything, mock.Anything)
		mockTracker.AssertNotCalled(t, "AddLabel", mock.Anything, mock.Anything, mock.Anything)
		mockGen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("body length is counted in characters", func(t *testing.T) {
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(new(MockTextGenerator), mockTracker, newTranslations(t), testTemplate)

		// 39 three-byte runes is more than 40 bytes but still too short.
		body := strings.Repeat("é", 39)
		mockTracker.On("CreateComment", mock.Anything, 42, mock.Anything).Return(nil).Once()

		ok, reason := svc.CheckEligibility(ctx, newIssue("Bug", body))

		assert.False(t, ok)
		assert.Equal(t, ReasonBodyTooShort, reason)
		mockTracker.AssertExpectations(t)
	})

	t.Run("short body is checked before the skip label", func(t *testing.T) {
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(new(MockTextGenerator), mockTracker, newTranslations(t), testTemplate)
		mockTracker.On("CreateComment", mock.Anything, 42, mock.Anything).Return(nil).Once()

		ok, reason := svc.CheckEligibility(ctx, newIssue("Bug", "", "titled"))

		assert.False(t, ok)
		assert.Equal(t, ReasonBodyTooShort, reason)
		mockTracker.AssertExpectations(t)
	})

	t.Run("comment failure keeps the issue skipped", func(t *testing.T) {
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(new(MockTextGenerator), mockTracker, newTranslations(t), testTemplate)
		mockTracker.On("CreateComment", mock.Anything, 42, mock.Anything).Return(errors.New("forbidden"))

		outcome := svc.ProcessIssue(ctx, newIssue("Bug", "short"))

		assert.Equal(t, models.OutcomeSkipped, outcome.Status())
		assert.Empty(t, outcome.Error)
	})

	t.Run("skip label is matched case-insensitively", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate)

		outcome := svc.ProcessIssue(ctx, newIssue("Bug", longBody, "bug", "Titled"))

		assert.True(t, outcome.Skipped)
		assert.Equal(t, "Has 'titled' label", outcome.Reason)
		mockTracker.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
		mockGen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("required labels without intersection", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		cfg := models.DefaultProcessingConfig()
		cfg.RequiredLabels = []string{"feature", "enhancement"}
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate, WithProcessingConfig(cfg))

		outcome := svc.ProcessIssue(ctx, newIssue("Bug", longBody, "Bug", "docs"))

		assert.True(t, outcome.Skipped)
		assert.Equal(t,
			"No matching labels found. Current Issue Labels: 'bug, docs'; Required Labels: 'feature, enhancement'",
			outcome.Reason)
		mockTracker.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
		mockGen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("any required label is enough", func(t *testing.T) {
		cfg := models.DefaultProcessingConfig()
		cfg.RequiredLabels = []string{"feature", "bug"}
		svc := NewTitleService(new(MockTextGenerator), new(MockIssueTracker), newTranslations(t), testTemplate, WithProcessingConfig(cfg))

		ok, reason := svc.CheckEligibility(ctx, newIssue("Bug", longBody, "BUG"))

		assert.True(t, ok)
		assert.Empty(t, reason)
	})
}

func TestTitleService_ProcessIssue(t *testing.T) {
	ctx := context.Background()
	wantPrompt := "Improve: Bug in X\n\n" + longBody

	t.Run("auto update with strip characters", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate,
			WithProcessingConfig(processingConfig(true, false, "HA ")))

		mockGen.On("Generate", mock.Anything, wantPrompt).Return(" Bug in X component Y.HA ", nil)
		mockTracker.On("UpdateIssueTitle", mock.Anything, 42, "Bug in X component Y.").Return(nil).Once()
		mockTracker.On("CreateComment", mock.Anything, 42, mock.MatchedBy(func(body string) bool {
			return containsAll(body, "**Previous title:** Bug in X", "**New title:** Bug in X component Y.", "[^1]: Improved by")
		})).Return(nil).Once()
		mockTracker.On("AddLabel", mock.Anything, 42, "titled").Return(true).Once()

		outcome := svc.ProcessIssue(ctx, newIssue("Bug in X", longBody))

		assert.Equal(t, models.Outcome{
			IssueNumber:   42,
			OriginalTitle: "Bug in X",
			ImprovedTitle: "Bug in X component Y.",
			Updated:       true,
		}, outcome)
		mockGen.AssertExpectations(t)
		mockTracker.AssertExpectations(t)
	})

	t.Run("quiet auto update still labels", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate,
			WithProcessingConfig(processingConfig(true, true, "HA ")))

		mockGen.On("Generate", mock.Anything, wantPrompt).Return(" Bug in X component Y.HA ", nil)
		mockTracker.On("UpdateIssueTitle", mock.Anything, 42, "Bug in X component Y.").Return(nil).Once()
		mockTracker.On("AddLabel", mock.Anything, 42, "titled").Return(true).Once()

		outcome := svc.ProcessIssue(ctx, newIssue("Bug in X", longBody))

		assert.True(t, outcome.Updated)
		mockTracker.AssertExpectations(t)
		mockTracker.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("suggestion mode", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate,
			WithProcessingConfig(processingConfig(false, false, "HA ")))

		mockGen.On("Generate", mock.Anything, wantPrompt).Return(" Bug in X component Y.HA ", nil)
		mockTracker.On("CreateComment", mock.Anything, 42, mock.MatchedBy(func(body string) bool {
			return containsAll(body, "**Current title:** Bug in X", "**Suggested title:** Bug in X component Y.", "[^1]: Suggested by")
		})).Return(nil).Once()
		mockTracker.On("AddLabel", mock.Anything, 42, "titled").Return(true).Once()

		outcome := svc.ProcessIssue(ctx, newIssue("Bug in X", longBody))

		assert.Equal(t, "Bug in X component Y.", outcome.ImprovedTitle)
		assert.False(t, outcome.Updated)
		mockTracker.AssertExpectations(t)
		mockTracker.AssertNotCalled(t, "UpdateIssueTitle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unchanged title is a no-op", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate,
			WithProcessingConfig(processingConfig(true, false, "\"")))

		mockGen.On("Generate", mock.Anything, wantPrompt).Return("  \"Bug in X\"\n", nil)

		outcome := svc.ProcessIssue(ctx, newIssue("Bug in X", longBody))

		assert.Equal(t, models.Outcome{IssueNumber: 42, OriginalTitle: "Bug in X"}, outcome)
		mockTracker.AssertNotCalled(t, "UpdateIssueTitle", mock.Anything, mock.Anything, mock.Anything)
		mockTracker.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
		mockTracker.AssertNotCalled(t, "AddLabel", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty response is a no-op", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate)

		mockGen.On("Generate", mock.Anything, wantPrompt).Return("   ", nil)

		outcome := svc.ProcessIssue(ctx, newIssue("Bug in X", longBody))

		assert.False(t, outcome.Improved())
		assert.Equal(t, models.OutcomeCompleted, outcome.Status())
		mockTracker.AssertNotCalled(t, "AddLabel", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("model failure", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate)

		mockGen.On("Generate", mock.Anything, wantPrompt).Return("", errors.New("model unavailable"))

		outcome := svc.ProcessIssue(ctx, newIssue("Bug in X", longBody))

		assert.Equal(t, models.Outcome{IssueNumber: 42, Error: "model unavailable"}, outcome)
		mockTracker.AssertNotCalled(t, "UpdateIssueTitle", mock.Anything, mock.Anything, mock.Anything)
		mockTracker.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
		mockTracker.AssertNotCalled(t, "AddLabel", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("title update failure becomes an error outcome", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate,
			WithProcessingConfig(processingConfig(true, false, "")))

		mockGen.On("Generate", mock.Anything, wantPrompt).Return("Better title", nil)
		mockTracker.On("UpdateIssueTitle", mock.Anything, 42, "Better title").Return(errors.New("forbidden"))

		outcome := svc.ProcessIssue(ctx, newIssue("Bug in X", longBody))

		assert.Equal(t, models.Outcome{IssueNumber: 42, Error: "forbidden"}, outcome)
		mockTracker.AssertNotCalled(t, "AddLabel", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("label failure does not fail the outcome", func(t *testing.T) {
		mockGen := new(MockTextGenerator)
		mockTracker := new(MockIssueTracker)
		svc := NewTitleService(mockGen, mockTracker, newTranslations(t), testTemplate)

		mockGen.On("Generate", mock.Anything, wantPrompt).Return("Better title", nil)
		mockTracker.On("CreateComment", mock.Anything, 42, mock.Anything).Return(nil)
		mockTracker.On("AddLabel", mock.Anything, 42, "titled").Return(false)

		outcome := svc.ProcessIssue(ctx, newIssue("Bug in X", longBody))

		assert.Equal(t, models.OutcomeCompleted, outcome.Status())
		assert.Equal(t, "Better title", outcome.ImprovedTitle)
	})
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

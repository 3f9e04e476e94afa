package ui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/i18n"
	"github.com/horw/issue-title-ai/internal/models"
)

func init() {
	color.NoColor = true
}

func newTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return trans
}

var sampleOutcomes = []models.Outcome{
	{IssueNumber: 1, OriginalTitle: "bug", ImprovedTitle: "Crash when saving settings", Updated: true},
	{IssueNumber: 2, OriginalTitle: "help", ImprovedTitle: "Document the login flow"},
	{IssueNumber: 3, OriginalTitle: "Clear title"},
	{IssueNumber: 4, OriginalTitle: "x", Skipped: true, Reason: "Issue body too short"},
	{IssueNumber: 5, Error: "model unavailable"},
}

func TestStatusText(t *testing.T) {
	trans := newTranslations(t)

	want := []string{"updated", "suggested", "unchanged", "skipped", "failed"}
	for i, o := range sampleOutcomes {
		assert.Equal(t, want[i], StatusText(o, trans), "issue #%d", o.IssueNumber)
	}
}

func TestSummaryLine(t *testing.T) {
	trans := newTranslations(t)

	assert.Equal(t, "Summary: 2 of 5 issues improved", SummaryLine(sampleOutcomes, trans))
	assert.Equal(t, "Summary: 1 of 1 issue improved", SummaryLine(sampleOutcomes[:1], trans))
}

func TestWriteOutcomeTable(t *testing.T) {
	trans := newTranslations(t)

	t.Run("renders rows and summary", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutcomeTable(&buf, sampleOutcomes, trans))

		out := buf.String()
		assert.Contains(t, out, "#1")
		assert.Contains(t, out, "Crash when saving settings")
		assert.Contains(t, out, "Issue body too short")
		assert.Contains(t, out, "model unavailable")
		assert.Contains(t, out, "Summary: 2 of 5 issues improved")
	})

	t.Run("empty run", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutcomeTable(&buf, nil, trans))
		assert.Contains(t, buf.String(), "No issues found to process")
	})
}

func TestAppendStepSummary(t *testing.T) {
	trans := newTranslations(t)
	path := filepath.Join(t.TempDir(), "summary.md")
	require.NoError(t, os.WriteFile(path, []byte("previous step\n"), 0o644))

	require.NoError(t, AppendStepSummary(path, sampleOutcomes, trans))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, bytes.HasPrefix(data, []byte("previous step\n")))
	assert.Contains(t, content, "## Issue title improvements")
	assert.Contains(t, content, "| #2")
	assert.Contains(t, content, "Document the login flow")
	assert.Contains(t, content, "Summary: 2 of 5 issues improved")
}

func TestMarkdownSummary_EscapesCells(t *testing.T) {
	trans := newTranslations(t)
	outcomes := []models.Outcome{
		{IssueNumber: 9, OriginalTitle: "crash | freeze", ImprovedTitle: "App freezes\nafter saving | exporting"},
	}

	content, err := MarkdownSummary(outcomes, trans)

	require.NoError(t, err)
	assert.Contains(t, content, `crash \| freeze`)
	assert.Contains(t, content, `App freezes after saving \| exporting`)
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "| #9") {
			assert.Equal(t, 6, strings.Count(line, "|")-strings.Count(line, `\|`), line)
		}
	}
}

func TestAppendStepSummary_OpenFailure(t *testing.T) {
	trans := newTranslations(t)
	path := filepath.Join(t.TempDir(), "missing", "summary.md")

	err := AppendStepSummary(path, sampleOutcomes, trans)

	require.Error(t, err)
	var appErr *domainErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, path, appErr.Context["path"])
}

func TestHandleAppError(t *testing.T) {
	trans := newTranslations(t)

	t.Run("app error with suggestion", func(t *testing.T) {
		var buf bytes.Buffer
		err := domainErrors.ErrTokenMissing.WithSuggestion("Set the github-token input")

		HandleAppError(&buf, err, trans)

		out := buf.String()
		assert.Contains(t, out, string(domainErrors.TypeConfiguration))
		assert.Contains(t, out, domainErrors.ErrTokenMissing.Message)
		assert.Contains(t, out, "Suggestion: Set the github-token input")
	})

	t.Run("wrapped cause", func(t *testing.T) {
		var buf bytes.Buffer
		err := domainErrors.NewAppError(domainErrors.TypeVCS, "failed to list recent issues", errors.New("timeout"))

		HandleAppError(&buf, err, nil)

		assert.Contains(t, buf.String(), "Details: timeout")
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		HandleAppError(&buf, errors.New("boom"), trans)
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("nil error prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		HandleAppError(&buf, nil, trans)
		assert.Empty(t, buf.String())
	})
}

package github

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/horw/issue-title-ai/internal/errors"
)

const editedPayload = `{
  "action": "edited",
  "changes": {"title": {"from": "Crash when saving an empty file"}},
  "issue": {
    "number": 12,
    "title": "bug",
    "labels": [{"name": "titled"}, {"name": "Bug"}]
  },
  "sender": {"login": "octocat", "type": "User"}
}`

func TestParseIssueEvent(t *testing.T) {
	t.Run("should decode an edit event", func(t *testing.T) {
		event, err := ParseIssueEvent([]byte(editedPayload))

		require.NoError(t, err)
		assert.Equal(t, "edited", event.Action)
		assert.Equal(t, "User", event.SenderType)
		assert.Equal(t, "octocat", event.SenderLogin)
		assert.Equal(t, "Crash when saving an empty file", event.PreviousTitle)
		assert.Equal(t, 12, event.IssueNumber)
		assert.Equal(t, []string{"titled", "Bug"}, event.IssueLabels)
		assert.True(t, event.IsHumanEdit())
	})

	t.Run("should leave previous title empty without title changes", func(t *testing.T) {
		event, err := ParseIssueEvent([]byte(`{"action":"opened","issue":{"number":3},"sender":{"type":"Bot"}}`))

		require.NoError(t, err)
		assert.Empty(t, event.PreviousTitle)
		assert.Equal(t, 3, event.IssueNumber)
		assert.False(t, event.IsHumanEdit())
	})

	t.Run("should fail on malformed json", func(t *testing.T) {
		_, err := ParseIssueEvent([]byte(`{"action":`))
		assert.True(t, stderrors.Is(err, domainErrors.ErrEventParse))
	})

	t.Run("should fail without an issue", func(t *testing.T) {
		_, err := ParseIssueEvent([]byte(`{"action":"edited"}`))
		assert.True(t, stderrors.Is(err, domainErrors.ErrEventParse))
	})
}

func TestLoadIssueEvent(t *testing.T) {
	t.Run("should read the payload file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "event.json")
		require.NoError(t, os.WriteFile(path, []byte(editedPayload), 0o600))

		event, err := LoadIssueEvent(path)

		require.NoError(t, err)
		assert.Equal(t, 12, event.IssueNumber)
	})

	t.Run("should report a missing file", func(t *testing.T) {
		_, err := LoadIssueEvent(filepath.Join(t.TempDir(), "missing.json"))
		assert.True(t, stderrors.Is(err, domainErrors.ErrEventRead))
	})
}

package vcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horw/issue-title-ai/internal/models"
)

type recordingTracker struct {
	mutations []string
	issue     *models.Issue
	labels    []string
}

func (r *recordingTracker) GetIssue(context.Context, int) (*models.Issue, error) { return r.issue, nil }
func (r *recordingTracker) ListRecentIssues(context.Context, models.ScanOptions) ([]models.Issue, error) {
	return []models.Issue{*r.issue}, nil
}
func (r *recordingTracker) GetRepoLabels(context.Context) ([]string, error) { return r.labels, nil }
func (r *recordingTracker) UpdateIssueTitle(context.Context, int, string) error {
	r.mutations = append(r.mutations, "title")
	return nil
}
func (r *recordingTracker) CreateComment(context.Context, int, string) error {
	r.mutations = append(r.mutations, "comment")
	return nil
}
func (r *recordingTracker) AddLabel(context.Context, int, string) bool {
	r.mutations = append(r.mutations, "label")
	return true
}
func (r *recordingTracker) CreateLabel(context.Context, string, string, string) error {
	r.mutations = append(r.mutations, "create-label")
	return nil
}

func TestDryRunTracker(t *testing.T) {
	ctx := context.Background()
	next := &recordingTracker{issue: &models.Issue{Number: 3, Title: "bug"}, labels: []string{"titled"}}
	d := NewDryRunTracker(next)

	issue, err := d.GetIssue(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "bug", issue.Title)

	issues, err := d.ListRecentIssues(ctx, models.ScanOptions{})
	require.NoError(t, err)
	assert.Len(t, issues, 1)

	labels, err := d.GetRepoLabels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"titled"}, labels)

	assert.NoError(t, d.UpdateIssueTitle(ctx, 3, "new"))
	assert.NoError(t, d.CreateComment(ctx, 3, "hi"))
	assert.True(t, d.AddLabel(ctx, 3, "titled"))
	assert.NoError(t, d.CreateLabel(ctx, "titled", "ededed", ""))

	assert.Empty(t, next.mutations)
}

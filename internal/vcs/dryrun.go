package vcs

import (
	"context"

	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/models"
)

var _ IssueTracker = (*DryRunTracker)(nil)

// DryRunTracker reads through to the wrapped tracker and only logs mutations.
type DryRunTracker struct {
	next IssueTracker
}

func NewDryRunTracker(next IssueTracker) *DryRunTracker {
	return &DryRunTracker{next: next}
}

func (d *DryRunTracker) GetIssue(ctx context.Context, number int) (*models.Issue, error) {
	return d.next.GetIssue(ctx, number)
}

func (d *DryRunTracker) ListRecentIssues(ctx context.Context, opts models.ScanOptions) ([]models.Issue, error) {
	return d.next.ListRecentIssues(ctx, opts)
}

func (d *DryRunTracker) GetRepoLabels(ctx context.Context) ([]string, error) {
	return d.next.GetRepoLabels(ctx)
}

func (d *DryRunTracker) UpdateIssueTitle(ctx context.Context, number int, title string) error {
	logger.Info(ctx, "dry-run: would update title", "title", title)
	return nil
}

func (d *DryRunTracker) CreateComment(ctx context.Context, number int, body string) error {
	logger.Info(ctx, "dry-run: would comment")
	logger.Debug(ctx, "dry-run: comment body", "body", body)
	return nil
}

func (d *DryRunTracker) AddLabel(ctx context.Context, number int, label string) bool {
	logger.Info(ctx, "dry-run: would add label", "label", label)
	return true
}

func (d *DryRunTracker) CreateLabel(ctx context.Context, name, color, description string) error {
	logger.Info(ctx, "dry-run: would create label", "label", name, "color", color)
	return nil
}

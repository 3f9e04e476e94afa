package vcs

import (
	"context"

	"github.com/horw/issue-title-ai/internal/models"
)

// IssueTracker defines the issue operations the title pipeline needs from a
// code-hosting provider.
type IssueTracker interface {
	// GetIssue gets an issue by its number. Pull requests are rejected.
	GetIssue(ctx context.Context, number int) (*models.Issue, error)
	// ListRecentIssues lists issues created within the scan window, newest first,
	// never including pull requests.
	ListRecentIssues(ctx context.Context, opts models.ScanOptions) ([]models.Issue, error)
	// UpdateIssueTitle replaces the title of an issue.
	UpdateIssueTitle(ctx context.Context, number int, title string) error
	// CreateComment posts a comment on an issue.
	CreateComment(ctx context.Context, number int, body string) error
	// AddLabel adds a label to an issue. Failures are logged and reported as false.
	AddLabel(ctx context.Context, number int, label string) bool
	// GetRepoLabels gets all available labels in the repository
	GetRepoLabels(ctx context.Context) ([]string, error)
	// CreateLabel creates a new label in the repository
	CreateLabel(ctx context.Context, name string, color string, description string) error
}

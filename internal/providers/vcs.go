package providers

import (
	"context"

	"github.com/horw/issue-title-ai/internal/config"
	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/vcs"
	"github.com/horw/issue-title-ai/internal/vcs/github"
)

// NewIssueTracker creates the GitHub issue tracker for the configured
// repository, wrapped in a dry-run tracker when mutations are disabled.
func NewIssueTracker(ctx context.Context, cfg *config.Config) (vcs.IssueTracker, error) {
	owner, repo, err := cfg.OwnerRepo()
	if err != nil {
		return nil, err
	}

	var tracker vcs.IssueTracker = github.NewGitHubClient(owner, repo, cfg.GitHubToken)
	if cfg.DryRun {
		logger.Info(ctx, "dry-run enabled: no changes will be sent to GitHub")
		tracker = vcs.NewDryRunTracker(tracker)
	}
	return tracker, nil
}

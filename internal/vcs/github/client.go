package github

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/models"
	"github.com/horw/issue-title-ai/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.IssueTracker = (*GitHubClient)(nil)

const perPage = 100

type IssuesService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error)
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	Edit(ctx context.Context, owner, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
	ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	owner         string
	repo          string
	now           func() time.Time
}

func NewGitHubClient(owner, repo, token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return NewGitHubClientWithServices(client.Issues, owner, repo)
}

func NewGitHubClientWithServices(issuesService IssuesService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
		now:           time.Now,
	}
}

func (ghc *GitHubClient) GetIssue(ctx context.Context, number int) (*models.Issue, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github issue",
		"owner", ghc.owner,
		"repo", ghc.repo)

	issue, _, err := ghc.issuesService.Get(ctx, ghc.owner, ghc.repo, number)
	if err != nil {
		log.Error("failed to fetch github issue",
			"error", err)
		return nil, mapGitHubError(err, "issue", number)
	}

	if issue.IsPullRequest() {
		return nil, domainErrors.ErrIsPullRequest.WithContext("issue", number)
	}

	converted := toIssue(issue)
	log.Debug("github issue fetched successfully",
		"title", converted.Title,
		"state", converted.State,
		"labels_count", len(converted.Labels))

	return &converted, nil
}

// ListRecentIssues walks the newest-first listing until issues fall outside
// the scan window or MaxIssues is reached. Required labels use any-of
// semantics and are applied here because the API's labels filter is all-of.
func (ghc *GitHubClient) ListRecentIssues(ctx context.Context, opts models.ScanOptions) ([]models.Issue, error) {
	log := logger.FromContext(ctx)

	state := models.IssueStateOpen
	if opts.IncludeClosed {
		state = "all"
	}
	threshold := ghc.now().AddDate(0, 0, -opts.DaysToScan)

	listOpts := &github.IssueListByRepoOptions{
		State:       state,
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	log.Debug("listing recent issues",
		"state", state,
		"since", threshold.Format(time.RFC3339),
		"max", opts.MaxIssues)

	var result []models.Issue
	for {
		page, resp, err := ghc.issuesService.ListByRepo(ctx, ghc.owner, ghc.repo, listOpts)
		if err != nil {
			log.Error("failed to list issues", "error", err, "page", listOpts.ListOptions.Page)
			return nil, mapGitHubError(err, "page", listOpts.ListOptions.Page)
		}

		for _, issue := range page {
			if issue.GetCreatedAt().Time.Before(threshold) {
				return result, nil
			}
			if issue.IsPullRequest() {
				continue
			}
			converted := toIssue(issue)
			if len(opts.RequiredLabels) > 0 && !hasAnyLabel(converted.Labels, opts.RequiredLabels) {
				continue
			}
			result = append(result, converted)
			if opts.MaxIssues > 0 && len(result) >= opts.MaxIssues {
				return result, nil
			}
		}

		if resp == nil || resp.NextPage == 0 {
			return result, nil
		}
		listOpts.ListOptions.Page = resp.NextPage
	}
}

func (ghc *GitHubClient) UpdateIssueTitle(ctx context.Context, number int, title string) error {
	_, _, err := ghc.issuesService.Edit(ctx, ghc.owner, ghc.repo, number, &github.IssueRequest{
		Title: github.Ptr(title),
	})
	if err != nil {
		return mapGitHubError(err, "issue", number)
	}
	logger.Debug(ctx, "issue title updated", "title", title)
	return nil
}

func (ghc *GitHubClient) CreateComment(ctx context.Context, number int, body string) error {
	_, _, err := ghc.issuesService.CreateComment(ctx, ghc.owner, ghc.repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return mapGitHubError(err, "issue", number)
	}
	logger.Debug(ctx, "comment created")
	return nil
}

func (ghc *GitHubClient) AddLabel(ctx context.Context, number int, label string) bool {
	_, _, err := ghc.issuesService.AddLabelsToIssue(ctx, ghc.owner, ghc.repo, number, []string{label})
	if err != nil {
		logger.Error(ctx, "failed to add label", err, "label", label)
		return false
	}
	return true
}

func (ghc *GitHubClient) GetRepoLabels(ctx context.Context) ([]string, error) {
	opts := &github.ListOptions{PerPage: perPage}
	var labelNames []string
	for {
		labels, resp, err := ghc.issuesService.ListLabels(ctx, ghc.owner, ghc.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repository labels: %w", mapGitHubError(err))
		}
		for _, label := range labels {
			labelNames = append(labelNames, label.GetName())
		}
		if resp == nil || resp.NextPage == 0 {
			return labelNames, nil
		}
		opts.Page = resp.NextPage
	}
}

func (ghc *GitHubClient) CreateLabel(ctx context.Context, name, color, description string) error {
	_, _, err := ghc.issuesService.CreateLabel(ctx, ghc.owner, ghc.repo, &github.Label{
		Name:        github.Ptr(name),
		Color:       github.Ptr(color),
		Description: github.Ptr(description),
	})
	if err != nil {
		return mapGitHubError(err, "label", name)
	}
	return nil
}

func toIssue(issue *github.Issue) models.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		if label.Name != nil {
			labels = append(labels, label.GetName())
		}
	}

	return models.Issue{
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		Labels:        labels,
		State:         issue.GetState(),
		Author:        issue.GetUser().GetLogin(),
		URL:           issue.GetHTMLURL(),
		CreatedAt:     issue.GetCreatedAt().Time,
		IsPullRequest: issue.IsPullRequest(),
	}
}

func hasAnyLabel(labels, wanted []string) bool {
	for _, w := range wanted {
		if models.ContainsLabel(labels, w) {
			return true
		}
	}
	return false
}

// mapGitHubError turns go-github errors into VCS AppErrors. kv pairs are added
// as context.
func mapGitHubError(err error, kv ...interface{}) error {
	var appErr *domainErrors.AppError

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse

	switch {
	case stderrors.As(err, &rateErr), stderrors.As(err, &abuseErr):
		appErr = domainErrors.ErrGitHubRateLimit.WithError(err)
	case stderrors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized:
			appErr = domainErrors.ErrGitHubTokenInvalid.WithError(err)
		case http.StatusForbidden:
			appErr = domainErrors.ErrGitHubInsufficientPerms.WithError(err)
		case http.StatusNotFound, http.StatusGone:
			if req := respErr.Response.Request; req != nil && req.URL != nil && strings.Contains(req.URL.Path, "/issues/") {
				appErr = domainErrors.ErrIssueNotFound.WithError(err)
			} else {
				appErr = domainErrors.ErrRepositoryNotFound.WithError(err)
			}
		}
	}
	if appErr == nil {
		appErr = domainErrors.NewAppError(domainErrors.TypeVCS, "GitHub API request failed", err)
	}

	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			appErr = appErr.WithContext(key, kv[i+1])
		}
	}
	return appErr
}

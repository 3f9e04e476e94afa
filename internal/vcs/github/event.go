package github

import (
	"os"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/models"
)

const issuesEventType = "issues"

// ParseIssueEvent decodes an `issues` webhook payload.
func ParseIssueEvent(payload []byte) (*models.IssueEvent, error) {
	parsed, err := github.ParseWebHook(issuesEventType, payload)
	if err != nil {
		return nil, domainErrors.ErrEventParse.WithError(err)
	}
	event, ok := parsed.(*github.IssuesEvent)
	if !ok || event.GetIssue() == nil {
		return nil, domainErrors.ErrEventParse.WithContext("detail", "payload has no issue")
	}

	labels := make([]string, 0, len(event.GetIssue().Labels))
	for _, label := range event.GetIssue().Labels {
		labels = append(labels, label.GetName())
	}

	var previousTitle string
	if changes := event.GetChanges(); changes != nil && changes.Title != nil {
		previousTitle = changes.Title.GetFrom()
	}

	return &models.IssueEvent{
		Action:        event.GetAction(),
		SenderType:    event.GetSender().GetType(),
		SenderLogin:   event.GetSender().GetLogin(),
		PreviousTitle: previousTitle,
		IssueNumber:   event.GetIssue().GetNumber(),
		IssueLabels:   labels,
	}, nil
}

// LoadIssueEvent reads and decodes the payload file the runner points
// GITHUB_EVENT_PATH at.
func LoadIssueEvent(path string) (*models.IssueEvent, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, domainErrors.ErrEventRead.WithError(err).WithContext("path", path)
	}
	return ParseIssueEvent(payload)
}

package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/horw/issue-title-ai/internal/models"
)

type (
	MockTextGenerator struct {
		mock.Mock
	}

	MockIssueTracker struct {
		mock.Mock
	}

	MockIssueProcessor struct {
		mock.Mock
	}

	MockEditGuard struct {
		mock.Mock
	}
)

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) ProviderName() string {
	return "mock"
}

func (m *MockTextGenerator) ModelName() string {
	return "mock-model"
}

func (m *MockIssueTracker) GetIssue(ctx context.Context, number int) (*models.Issue, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Issue), args.Error(1)
}

func (m *MockIssueTracker) ListRecentIssues(ctx context.Context, opts models.ScanOptions) ([]models.Issue, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Issue), args.Error(1)
}

func (m *MockIssueTracker) UpdateIssueTitle(ctx context.Context, number int, title string) error {
	args := m.Called(ctx, number, title)
	return args.Error(0)
}

func (m *MockIssueTracker) CreateComment(ctx context.Context, number int, body string) error {
	args := m.Called(ctx, number, body)
	return args.Error(0)
}

func (m *MockIssueTracker) AddLabel(ctx context.Context, number int, label string) bool {
	args := m.Called(ctx, number, label)
	return args.Bool(0)
}

func (m *MockIssueTracker) GetRepoLabels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockIssueTracker) CreateLabel(ctx context.Context, name string, color string, description string) error {
	args := m.Called(ctx, name, color, description)
	return args.Error(0)
}

func (m *MockIssueProcessor) ProcessIssue(ctx context.Context, issue *models.Issue) models.Outcome {
	args := m.Called(ctx, issue)
	return args.Get(0).(models.Outcome)
}

func (m *MockEditGuard) Handle(ctx context.Context, event *models.IssueEvent, issueNumber int) (bool, error) {
	args := m.Called(ctx, event, issueNumber)
	return args.Bool(0), args.Error(1)
}

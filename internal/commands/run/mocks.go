package run

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/horw/issue-title-ai/internal/models"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) RunSingle(ctx context.Context, number int, event *models.IssueEvent) []models.Outcome {
	args := m.Called(ctx, number, event)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Outcome)
}

func (m *MockRunner) RunScan(ctx context.Context, opts models.ScanOptions) ([]models.Outcome, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Outcome), args.Error(1)
}

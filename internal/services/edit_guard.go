package services

import (
	"context"

	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/models"
)

type guardTracker interface {
	UpdateIssueTitle(ctx context.Context, number int, title string) error
	CreateComment(ctx context.Context, number int, body string) error
}

// EditGuard reverts manual title edits on issues that were already titled.
type EditGuard struct {
	tracker    guardTracker
	translator Translator
	skipLabel  string
}

func NewEditGuard(tracker guardTracker, translator Translator, skipLabel string) *EditGuard {
	return &EditGuard{
		tracker:    tracker,
		translator: translator,
		skipLabel:  skipLabel,
	}
}

// Applies reports whether the event is a human edit of a processed issue's title.
func (g *EditGuard) Applies(event *models.IssueEvent) bool {
	if !event.IsHumanEdit() {
		return false
	}
	if event.PreviousTitle == "" {
		return false
	}
	return models.ContainsLabel(event.IssueLabels, g.skipLabel)
}

// Handle posts a warning and restores the previous title when the event
// applies. It reports true when the event was handled and normal
// processing should stop.
func (g *EditGuard) Handle(ctx context.Context, event *models.IssueEvent, issueNumber int) (bool, error) {
	if !g.Applies(event) {
		return false, nil
	}

	logger.Info(ctx, "manual title edit on a titled issue, reverting",
		"sender", event.SenderLogin,
		"previous", event.PreviousTitle)

	comment := g.translator.GetMessage("comment_title_edit_blocked", 0, nil)
	if err := g.tracker.CreateComment(ctx, issueNumber, comment); err != nil {
		return false, err
	}
	if err := g.tracker.UpdateIssueTitle(ctx, issueNumber, event.PreviousTitle); err != nil {
		return false, err
	}
	return true, nil
}

package services

import (
	"context"
	"strings"

	"github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/models"
	"github.com/horw/issue-title-ai/internal/vcs"
)

const skipLabelColor = "ededed"

type issueProcessor interface {
	ProcessIssue(ctx context.Context, issue *models.Issue) models.Outcome
}

type editGuard interface {
	Handle(ctx context.Context, event *models.IssueEvent, issueNumber int) (bool, error)
}

// ProgressFunc receives scan progress. It is called synchronously.
type ProgressFunc func(models.ProgressEvent)

// BatchDriver runs the title pipeline for one issue or for a scan of
// recent issues, strictly one issue at a time.
type BatchDriver struct {
	tracker    vcs.IssueTracker
	processor  issueProcessor
	guard      editGuard
	translator Translator
	skipLabel  string
	progress   ProgressFunc
}

type BatchDriverOption func(*BatchDriver)

func WithProgress(fn ProgressFunc) BatchDriverOption {
	return func(d *BatchDriver) {
		d.progress = fn
	}
}

func WithSkipLabel(label string) BatchDriverOption {
	return func(d *BatchDriver) {
		d.skipLabel = label
	}
}

func NewBatchDriver(
	tracker vcs.IssueTracker,
	processor issueProcessor,
	guard editGuard,
	translator Translator,
	opts ...BatchDriverOption,
) *BatchDriver {
	d := &BatchDriver{
		tracker:    tracker,
		processor:  processor,
		guard:      guard,
		translator: translator,
		skipLabel:  models.DefaultProcessingConfig().SkipLabel,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RunSingle processes one issue, first giving the edit guard a chance to
// handle the triggering event. An event about another issue is ignored. A
// handled event yields no outcomes. Fetch and guard failures become a failed
// outcome for the issue.
func (d *BatchDriver) RunSingle(ctx context.Context, number int, event *models.IssueEvent) []models.Outcome {
	ctx = logger.With(ctx, "issue", number)
	logger.Info(ctx, "processing single issue from event trigger")

	if event != nil && event.IssueNumber != number {
		logger.Info(ctx, "event is for another issue, edit guard skipped", "event_issue", event.IssueNumber)
		event = nil
	}

	issue, err := d.tracker.GetIssue(ctx, number)
	if err != nil {
		logger.Error(ctx, "failed to fetch issue", err)
		return []models.Outcome{models.FailedOutcome(number, err)}
	}

	handled, err := d.guard.Handle(ctx, event, issue.Number)
	if err != nil {
		logger.Error(ctx, "failed to revert title edit", err)
		return []models.Outcome{models.FailedOutcome(number, err)}
	}
	if handled {
		logger.Info(ctx, d.translator.GetMessage("guard_handled", 0, map[string]interface{}{
			"Number": number,
		}))
		return nil
	}

	return []models.Outcome{d.processor.ProcessIssue(ctx, issue)}
}

// RunScan makes sure the skip-label exists, lists recent issues and
// processes them in listing order. Only a failed listing is returned as an
// error.
func (d *BatchDriver) RunScan(ctx context.Context, opts models.ScanOptions) ([]models.Outcome, error) {
	logger.Info(ctx, "regular scheduled run, processing recent issues", "days", opts.DaysToScan)

	d.ensureSkipLabel(ctx)

	issues, err := d.tracker.ListRecentIssues(ctx, opts)
	if err != nil {
		return nil, errors.NewAppError(errors.TypeVCS, "failed to list recent issues", err)
	}

	if len(issues) == 0 {
		logger.Info(ctx, d.noIssuesMessage(opts))
		return nil, nil
	}

	state := models.IssueStateOpen
	if opts.IncludeClosed {
		state = "open and closed"
	}
	logger.Info(ctx, "found issues to process", "count", len(issues), "state", state)
	d.report(models.ProgressEvent{Type: models.ProgressIssuesFound, Total: len(issues)})

	outcomes := make([]models.Outcome, 0, len(issues))
	for i := range issues {
		issue := &issues[i]
		issueCtx := logger.With(ctx, "issue", issue.Number)
		logger.Info(issueCtx, "processing issue", "index", i+1, "total", len(issues))
		d.report(models.ProgressEvent{Type: models.ProgressIssueStarted, Index: i + 1, Total: len(issues)})

		outcome := d.processor.ProcessIssue(issueCtx, issue)
		outcomes = append(outcomes, outcome)

		d.report(models.ProgressEvent{Type: models.ProgressIssueProcessed, Index: i + 1, Total: len(issues), Outcome: &outcome})
	}

	summary := models.Summarize(outcomes)
	logger.Info(ctx, d.translator.GetMessage("summary_improved", summary.Total, map[string]interface{}{
		"Improved": summary.Improved,
		"Total":    summary.Total,
	}))

	return outcomes, nil
}

func (d *BatchDriver) ensureSkipLabel(ctx context.Context) {
	labels, err := d.tracker.GetRepoLabels(ctx)
	if err != nil {
		logger.Warn(ctx, "could not list repository labels", "error", err)
		return
	}
	if models.ContainsLabel(labels, d.skipLabel) {
		return
	}

	description := d.translator.GetMessage("label_skip_description", 0, nil)
	if err := d.tracker.CreateLabel(ctx, d.skipLabel, skipLabelColor, description); err != nil {
		logger.Warn(ctx, "could not create skip label", "label", d.skipLabel, "error", err)
		return
	}
	logger.Info(ctx, "created skip label", "label", d.skipLabel)
}

func (d *BatchDriver) report(event models.ProgressEvent) {
	if d.progress != nil {
		d.progress(event)
	}
}

func (d *BatchDriver) noIssuesMessage(opts models.ScanOptions) string {
	state := models.IssueStateOpen
	if opts.IncludeClosed {
		state = "open or closed"
	}
	msg := d.translator.GetMessage("scan_no_issues", opts.DaysToScan, map[string]interface{}{
		"State": state,
		"Days":  opts.DaysToScan,
	})
	if len(opts.RequiredLabels) > 0 {
		msg += " " + d.translator.GetMessage("scan_no_issues_labels", 0, map[string]interface{}{
			"Labels": strings.Join(opts.RequiredLabels, ", "),
		})
	}
	return msg
}

package models

type ProgressEventType string

const (
	ProgressIssuesFound    ProgressEventType = "issues_found"
	ProgressIssueStarted   ProgressEventType = "issue_started"
	ProgressIssueProcessed ProgressEventType = "issue_processed"
)

// ProgressEvent reports scan progress to the caller.
type ProgressEvent struct {
	Type    ProgressEventType
	Index   int
	Total   int
	Outcome *Outcome
}

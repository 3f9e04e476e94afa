package models

// OutcomeStatus classifies an Outcome.
type OutcomeStatus string

const (
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Outcome is the result of processing one issue. An empty ImprovedTitle means
// no improvement was produced.
type Outcome struct {
	IssueNumber   int    `json:"issue_number"`
	OriginalTitle string `json:"original_title,omitempty"`
	ImprovedTitle string `json:"improved_title,omitempty"`
	Updated       bool   `json:"updated"`
	Skipped       bool   `json:"skipped,omitempty"`
	Reason        string `json:"reason,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Status returns which of completed, skipped or failed applies.
func (o Outcome) Status() OutcomeStatus {
	switch {
	case o.Error != "":
		return OutcomeFailed
	case o.Skipped:
		return OutcomeSkipped
	default:
		return OutcomeCompleted
	}
}

// Improved reports whether the model produced a different, non-empty title.
func (o Outcome) Improved() bool {
	return o.ImprovedTitle != ""
}

// SkippedOutcome builds a skipped Outcome for the issue.
func SkippedOutcome(issue *Issue, reason string) Outcome {
	return Outcome{
		IssueNumber:   issue.Number,
		OriginalTitle: issue.Title,
		Skipped:       true,
		Reason:        reason,
	}
}

// FailedOutcome builds an Outcome that carries only the issue number and the error.
func FailedOutcome(issueNumber int, err error) Outcome {
	return Outcome{
		IssueNumber: issueNumber,
		Error:       err.Error(),
	}
}

// OutcomeSummary aggregates a run.
type OutcomeSummary struct {
	Total    int
	Improved int
	Updated  int
	Skipped  int
	Failed   int
}

// Summarize counts the outcomes by status.
func Summarize(outcomes []Outcome) OutcomeSummary {
	s := OutcomeSummary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch o.Status() {
		case OutcomeFailed:
			s.Failed++
		case OutcomeSkipped:
			s.Skipped++
		default:
			if o.Improved() {
				s.Improved++
			}
			if o.Updated {
				s.Updated++
			}
		}
	}
	return s
}

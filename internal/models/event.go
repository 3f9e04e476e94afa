package models

const (
	EventActionEdited = "edited"
	SenderTypeUser    = "User"
)

// IssueEvent is the subset of an inbound issues event the edit guard needs.
type IssueEvent struct {
	Action        string
	SenderType    string
	SenderLogin   string
	PreviousTitle string
	IssueNumber   int
	IssueLabels   []string
}

// IsHumanEdit reports whether the event is an edit made by a user account.
func (e *IssueEvent) IsHumanEdit() bool {
	return e != nil && e.Action == EventActionEdited && e.SenderType == SenderTypeUser
}

package models

import (
	"strings"
	"time"
)

const (
	IssueStateOpen   = "open"
	IssueStateClosed = "closed"
)

// Issue is the tracker's view of an issue, read fresh for every processing call.
type Issue struct {
	Number        int
	Title         string
	Body          string
	Labels        []string
	State         string
	Author        string
	URL           string
	CreatedAt     time.Time
	IsPullRequest bool
}

// LowerLabels returns the label names lower-cased, preserving order.
func (i *Issue) LowerLabels() []string {
	lowered := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		lowered = append(lowered, strings.ToLower(l))
	}
	return lowered
}

// HasLabel reports whether the issue carries the label, ignoring case.
func (i *Issue) HasLabel(name string) bool {
	return ContainsLabel(i.Labels, name)
}

// ContainsLabel reports whether labels contains name, ignoring case.
func ContainsLabel(labels []string, name string) bool {
	for _, l := range labels {
		if strings.EqualFold(l, name) {
			return true
		}
	}
	return false
}

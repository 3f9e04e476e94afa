package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/models"
)

func summaryHeaders(t Translator) []string {
	return []string{
		t.GetMessage("summary_header_issue", 0, nil),
		t.GetMessage("summary_header_status", 0, nil),
		t.GetMessage("summary_header_original", 0, nil),
		t.GetMessage("summary_header_improved", 0, nil),
		t.GetMessage("summary_header_detail", 0, nil),
	}
}

// StatusText returns the localized status of an outcome.
func StatusText(o models.Outcome, t Translator) string {
	switch {
	case o.Status() == models.OutcomeFailed:
		return t.GetMessage("status_failed", 0, nil)
	case o.Status() == models.OutcomeSkipped:
		return t.GetMessage("status_skipped", 0, nil)
	case o.Improved() && o.Updated:
		return t.GetMessage("status_updated", 0, nil)
	case o.Improved():
		return t.GetMessage("status_suggested", 0, nil)
	default:
		return t.GetMessage("status_unchanged", 0, nil)
	}
}

func outcomeRow(o models.Outcome, t Translator) []string {
	detail := o.Reason
	if o.Error != "" {
		detail = o.Error
	}
	return []string{
		"#" + strconv.Itoa(o.IssueNumber),
		StatusText(o, t),
		o.OriginalTitle,
		o.ImprovedTitle,
		detail,
	}
}

// SummaryLine returns "Summary: N of M issues improved".
func SummaryLine(outcomes []models.Outcome, t Translator) string {
	s := models.Summarize(outcomes)
	return t.GetMessage("summary_improved", s.Total, map[string]interface{}{
		"Improved": s.Improved,
		"Total":    s.Total,
	})
}

// WriteOutcomeTable renders the outcomes as a terminal table.
func WriteOutcomeTable(w io.Writer, outcomes []models.Outcome, t Translator) error {
	if len(outcomes) == 0 {
		PrintInfo(w, t.GetMessage("summary_no_issues", 0, nil))
		return nil
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader(summaryHeaders(t)),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			MaxWidth: 160,
		}),
	)
	for _, o := range outcomes {
		if err := table.Append(outcomeRow(o, t)); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, Accent.Sprint(SummaryLine(outcomes, t)))
	return err
}

// markdownCellEscaper keeps user text such as issue titles inside one table cell.
var markdownCellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// MarkdownSummary renders the outcomes as a markdown section for the
// workflow step summary.
func MarkdownSummary(outcomes []models.Outcome, t Translator) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("## " + t.GetMessage("summary_title", 0, nil) + "\n\n")

	if len(outcomes) == 0 {
		buf.WriteString(t.GetMessage("summary_no_issues", 0, nil) + "\n")
		return buf.String(), nil
	}

	table := tablewriter.NewTable(&buf,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Behavior: tw.Behavior{TrimSpace: tw.Off},
		}),
		tablewriter.WithHeader(summaryHeaders(t)),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
	for _, o := range outcomes {
		row := outcomeRow(o, t)
		for i := range row {
			row[i] = markdownCellEscaper.Replace(row[i])
		}
		if err := table.Append(row); err != nil {
			return "", err
		}
	}
	if err := table.Render(); err != nil {
		return "", err
	}

	buf.WriteString("\n" + SummaryLine(outcomes, t) + "\n")
	return buf.String(), nil
}

// AppendStepSummary appends the markdown summary to the file GitHub exposes
// as GITHUB_STEP_SUMMARY.
func AppendStepSummary(path string, outcomes []models.Outcome, t Translator) (err error) {
	content, err := MarkdownSummary(outcomes, t)
	if err != nil {
		return errors.NewAppError(errors.TypeInternal, "failed to render step summary", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.NewAppError(errors.TypeInternal, "failed to open step summary", err).
			WithContext("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.NewAppError(errors.TypeInternal, "failed to close step summary", cerr).
				WithContext("path", path)
		}
	}()

	if _, err := f.WriteString(content); err != nil {
		return errors.NewAppError(errors.TypeInternal, "failed to write step summary", err).
			WithContext("path", path)
	}
	return nil
}

package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	domainErrors "github.com/horw/issue-title-ai/internal/errors"
)

var (
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
)

// Translator resolves localized message templates.
type Translator interface {
	GetMessage(messageID string, count int, templateData map[string]interface{}) string
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", InfoEmoji, Info.Sprint(msg))
}

// HandleAppError prints an error in a friendly way. AppErrors show their
// type, the wrapped cause and the suggestion when there is one. t may be nil,
// in which case English labels are used.
func HandleAppError(w io.Writer, err error, t Translator) {
	if err == nil {
		return
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	detailsLabel, suggestionLabel := "Details", "Suggestion"
	if t != nil {
		detailsLabel = t.GetMessage("error_details", 0, nil)
		suggestionLabel = t.GetMessage("error_suggestion", 0, nil)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = Error.Fprintf(w, "❌ %s: %s\n", appErr.Type, appErr.Message)

	if detail, ok := appErr.Context["detail"]; ok {
		_, _ = Dim.Fprintf(w, "   %s: %v\n", detailsLabel, detail)
	}
	if appErr.Err != nil {
		_, _ = Dim.Fprintf(w, "   %s: %v\n", detailsLabel, appErr.Err)
	}

	if appErr.Suggestion != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = Info.Fprintf(w, "💡 %s: ", suggestionLabel)
		lines := strings.Split(appErr.Suggestion, "\n")
		for i, line := range lines {
			if i == 0 {
				_, _ = fmt.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	_, _ = fmt.Fprintln(w)
}

package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeEvent         ErrorType = "EVENT"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if detail, ok := e.Context["detail"].(string); ok && detail != "" {
			msg += fmt.Sprintf(" - %s", detail)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors derived from the same sentinel (same type and message).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is required", nil).
			WithSuggestion("Pass the github-token input, e.g. github-token: ${{ secrets.GITHUB_TOKEN }}")

	ErrRepositoryMissing = NewAppError(TypeConfiguration, "GitHub repository name is required", nil).
				WithSuggestion("Set GITHUB_REPOSITORY or use --repo owner/name")

	ErrRepositoryInvalid = NewAppError(TypeConfiguration, "GitHub repository must be in owner/name form", nil)

	ErrNoAIProvider = NewAppError(TypeConfiguration, "No LLM API key was provided", nil).
			WithSuggestion("Provide one of the following: anthropic-api-key, deepseek-api-key, gemini-api-key, openai-api-key")

	ErrProviderKeyMissing = NewAppError(TypeConfiguration, "API key not found for the selected AI provider", nil)

	ErrProviderUnsupported = NewAppError(TypeConfiguration, "Unsupported AI provider", nil)

	ErrStyleNotFound = NewAppError(TypeConfiguration, "Style is not supported", nil)

	ErrFragmentNotFound = NewAppError(TypeConfiguration, "Included file doesn't exist", nil)

	ErrInvalidSetting = NewAppError(TypeConfiguration, "Invalid setting", nil)
)

// VCS errors
var (
	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository name and access permissions")

	ErrIssueNotFound = NewAppError(TypeVCS, "issue not found", nil)

	ErrIsPullRequest = NewAppError(TypeVCS, "number refers to a pull request, not an issue", nil)

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("The workflow needs 'issues: write' permission")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or lower max-issues")
)

// AI errors
var (
	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrQuotaExceeded = NewAppError(TypeAI, "AI quota exceeded or rate limited", nil).
				WithSuggestion("Wait a few minutes and try again, or check your API quota")

	ErrAPIKeyInvalid = NewAppError(TypeAI, "AI API key is invalid", nil)

	ErrEmptyResponse = NewAppError(TypeAI, "model returned no text", nil)
)

// Event errors
var (
	ErrEventRead  = NewAppError(TypeEvent, "failed to read event payload", nil)
	ErrEventParse = NewAppError(TypeEvent, "failed to parse event payload", nil)
)

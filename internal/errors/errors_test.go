package errors

import (
	"errors"
	"testing"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("original error")
	appErr := ErrAIGeneration.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeAI {
		t.Errorf("Expected type %s, got %s", TypeAI, appErr.Type)
	}

	if !errors.Is(appErr, baseErr) {
		t.Error("Expected errors.Is to reach the wrapped error")
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrStyleNotFound.WithContext("style", "fancy").WithContext("detail", "use one of summary")

	if appErr.Context["style"] != "fancy" {
		t.Errorf("Expected style context 'fancy', got %v", appErr.Context["style"])
	}

	if ErrStyleNotFound.Context != nil {
		t.Error("Sentinel must not be mutated by WithContext")
	}
}

func TestAppError_Is(t *testing.T) {
	derived := ErrProviderKeyMissing.WithContext("provider", "openai")

	if !errors.Is(derived, ErrProviderKeyMissing) {
		t.Error("Expected derived error to match its sentinel")
	}

	if errors.Is(derived, ErrNoAIProvider) {
		t.Error("Expected derived error not to match a different sentinel")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "Simple error without underlying error",
			err:  ErrTokenMissing,
			want: "CONFIGURATION: GitHub token is required",
		},
		{
			name: "Error with underlying error",
			err:  ErrAIGeneration.WithError(errors.New("503")),
			want: "AI: AI generation failed (503)",
		},
		{
			name: "Error with detail context",
			err:  ErrStyleNotFound.WithContext("detail", "please use one of summary, concise"),
			want: "CONFIGURATION: Style is not supported - please use one of summary, concise",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

package tools

import (
	"encoding/json"
	"errors"

	"feedscout/internal/models"
	"feedscout/internal/resolver"
	"feedscout/internal/services"
)

// Error codes carried by error payloads.
const (
	CodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	CodeFeedNotFound      = "FEED_NOT_FOUND"
	CodeAmbiguousCategory = "AMBIGUOUS_CATEGORY"
	CodeAmbiguousFeed     = "AMBIGUOUS_FEED"
	CodeFetchFailed       = "FETCH_FAILED"
	CodeEntryNotFound     = "ENTRY_NOT_FOUND"
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeUnknownTool       = "UNKNOWN_TOOL"
	CodeInternal          = "INTERNAL_ERROR"
)

// Result is what a tool call hands back to its caller: one JSON text payload
// and a flag telling error payloads apart from successful ones.
type Result struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}

// ErrorPayload is the JSON body of an error Result.
type ErrorPayload struct {
	Error      bool                 `json:"error"`
	Code       string               `json:"code"`
	Message    string               `json:"message"`
	Candidates []resolver.Candidate `json:"candidates,omitempty"`
}

// Error is a failure a tool wants reported with a specific code.
type Error struct {
	Code       string
	Message    string
	Candidates []resolver.Candidate
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// JSONResult encodes v as a successful result.
func JSONResult(v any) (Result, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: string(b)}, nil
}

// ErrorResult builds an error result. Encoding the payload cannot fail.
func ErrorResult(code, message string, candidates []resolver.Candidate) Result {
	b, _ := json.Marshal(ErrorPayload{
		Error:      true,
		Code:       code,
		Message:    message,
		Candidates: candidates,
	})
	return Result{Text: string(b), IsError: true}
}

// FromError maps a service error onto its error code.
func FromError(err error) Result {
	var toolErr *Error
	if errors.As(err, &toolErr) {
		return ErrorResult(toolErr.Code, toolErr.Message, toolErr.Candidates)
	}

	var resErr *services.ResolutionError
	if errors.As(err, &resErr) {
		return ErrorResult(resolutionCode(resErr), resErr.Error(), resErr.Outcome.Candidates)
	}

	switch {
	case errors.Is(err, models.ErrFetchFailed):
		return ErrorResult(CodeFetchFailed, err.Error(), nil)
	case errors.Is(err, models.ErrValidation):
		return ErrorResult(CodeInvalidArgument, err.Error(), nil)
	case errors.Is(err, models.ErrNotFound):
		return ErrorResult(CodeEntryNotFound, err.Error(), nil)
	default:
		return ErrorResult(CodeInternal, err.Error(), nil)
	}
}

func resolutionCode(e *services.ResolutionError) string {
	ambiguous := e.Outcome.Ambiguous()
	switch {
	case e.Kind == resolver.KindFeed && ambiguous:
		return CodeAmbiguousFeed
	case e.Kind == resolver.KindFeed:
		return CodeFeedNotFound
	case ambiguous:
		return CodeAmbiguousCategory
	default:
		return CodeCategoryNotFound
	}
}

package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the payload of every non-2xx response, nested under "error".
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errorResponse struct {
	Error ErrorBody `json:"error"`
}

// JSONError sends a structured error response and stops the handler chain.
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.AbortWithStatusJSON(status, errorResponse{Error: ErrorBody{
		Code:      code,
		Message:   msg,
		RequestID: ctx.GetString(requestIDKey),
	}})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

func NotFound(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusNotFound, "not_found", msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg)
}

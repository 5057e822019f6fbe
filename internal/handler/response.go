package handler

import (
	"net/http"
	"time"
)

// Error taxonomy codes carried in error envelopes.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUnprocessable   = "UNPROCESSABLE_ENTITY"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeUnknownError    = "UNKNOWN_ERROR"
	CodeDuplicateError  = "DUPLICATE_ERROR"
	CodeInvalidID       = "INVALID_ID"
	CodeDatabaseError   = "DATABASE_ERROR"
)

// Response is the success envelope: data plus the HTTP status, an optional
// human-readable message and an RFC 3339 timestamp.
type Response struct {
	Data      interface{} `json:"data"`
	Message   string      `json:"message,omitempty"`
	Status    int         `json:"status"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the error envelope. Details carries the field→message
// mapping for validation failures or the colliding field for duplicates.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func NewSuccessResponse(status int, data interface{}, message string) *Response {
	return &Response{
		Data:      data,
		Message:   message,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewErrorResponse builds an error envelope. An empty code falls back to the
// status-derived code from ErrorCodeForStatus.
func NewErrorResponse(status int, message, code string, details map[string]interface{}) *ErrorResponse {
	if code == "" {
		code = ErrorCodeForStatus(status)
	}
	return &ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorCodeForStatus maps an HTTP status to its taxonomy code.
func ErrorCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidationError
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusUnprocessableEntity:
		return CodeUnprocessable
	case http.StatusInternalServerError:
		return CodeInternalError
	default:
		return CodeUnknownError
	}
}

// ValidationDetails adapts a field→message map to the details type.
func ValidationDetails(fieldErrors map[string]string) map[string]interface{} {
	if len(fieldErrors) == 0 {
		return nil
	}
	details := make(map[string]interface{}, len(fieldErrors))
	for field, msg := range fieldErrors {
		details[field] = msg
	}
	return details
}

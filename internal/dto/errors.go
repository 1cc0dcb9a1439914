package dto

import "github.com/fintrack-io/fintrack_backend/internal/apperrors"

// ValidationError describes a single schema violation. Value echoes the
// rejected input so clients can correlate errors with what they sent.
type ValidationError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Value    any    `json:"value"`
	Location string `json:"location"` // body or query
}

// ErrorBody is the error payload shared by every rejection.
type ErrorBody struct {
	Message          string            `json:"message"`
	Details          string            `json:"details,omitempty"`
	ValidationErrors []ValidationError `json:"validationErrors,omitempty"`
}

// ErrorResponse is the envelope returned for any failed request.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// NewErrorResponse builds the envelope for a plain (non-validation) rejection.
func NewErrorResponse(message, details string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Message: message,
			Details: details,
		},
	}
}

// NewValidationErrorResponse builds the envelope for an accumulated list of
// schema violations.
func NewValidationErrorResponse(errs []ValidationError) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Message:          "Validation failed",
			Details:          "One or more fields are invalid",
			ValidationErrors: errs,
		},
	}
}

// FromAPIError maps a pipeline APIError to the response envelope.
func FromAPIError(err *apperrors.APIError) ErrorResponse {
	return NewErrorResponse(err.Message, err.Details)
}

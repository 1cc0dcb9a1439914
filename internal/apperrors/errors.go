package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// APIError is a request-terminating error carrying the HTTP status and the
// public message the pipeline returns to the client. Message and Details are
// safe to expose; anything internal stays out of this type.
type APIError struct {
	Status  int
	Kind    string
	Message string
	Details string
}

func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError unwraps err into an *APIError if there is one in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Pipeline rejection constructors, one per taxonomy entry, so that callers
// never assemble status codes by hand.

// NewInjectionDetected deliberately carries no field or payload detail to
// avoid echoing attack content back to the client.
func NewInjectionDetected() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Kind:    "INJECTION_DETECTED",
		Message: "Request contains potentially dangerous content",
	}
}

func NewPayloadTooLarge() *APIError {
	return &APIError{
		Status:  http.StatusRequestEntityTooLarge,
		Kind:    "PAYLOAD_TOO_LARGE",
		Message: "Request body is too large",
	}
}

func NewUnsupportedContentType() *APIError {
	return &APIError{
		Status:  http.StatusUnsupportedMediaType,
		Kind:    "UNSUPPORTED_CONTENT_TYPE",
		Message: "Content-Type must be application/json",
	}
}

func NewAccountInactive() *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Kind:    "ACCOUNT_INACTIVE",
		Message: "Account is deactivated",
	}
}

func NewSessionExpired() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Kind:    "SESSION_EXPIRED",
		Message: "Session has expired due to inactivity, please log in again",
	}
}

func NewDailyLimitReached() *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Kind:    "DAILY_LIMIT_REACHED",
		Message: "Daily transaction limit reached",
		Details: "Try again tomorrow or spread transactions across days",
	}
}

func NewAmountPolicyExceeded() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Kind:    "AMOUNT_POLICY_EXCEEDED",
		Message: "Transaction amount exceeds the allowed maximum",
	}
}

func NewInconsistentTransaction(details string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Kind:    "INCONSISTENT_TRANSACTION",
		Message: "Transaction data is inconsistent",
		Details: details,
	}
}

func NewPlanQuotaReached() *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Kind:    "PLAN_QUOTA_REACHED",
		Message: "Transaction quota for the current plan has been reached",
		Details: "Upgrade the plan to record more transactions",
	}
}

func NewPlanTagLimitExceeded() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Kind:    "PLAN_TAG_LIMIT_EXCEEDED",
		Message: "Too many tags for the current plan",
	}
}

func NewDuplicateTransaction() *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Kind:    "DUPLICATE_TRANSACTION",
		Message: "An identical transaction already exists",
		Details: "A transaction with the same amount, date and category was already recorded",
	}
}

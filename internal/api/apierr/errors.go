package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/transferhub/transferhub-go/internal/model"
	"github.com/transferhub/transferhub-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeEmptyUpdate        = "EMPTY_UPDATE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeTransferNotFound   = "TRANSFER_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer.
// 401 responses carry a WWW-Authenticate challenge hint.
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	if he.status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, "Validation failed", ve.Fields}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrTransferNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeTransferNotFound, Message: "Transfer not found"}}
	case errors.Is(err, model.ErrEmptyUpdate):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeEmptyUpdate, Message: "Update must name at least one field"}}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeUsernameExists, Message: "Username already exists"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeInvalidCredentials, Message: "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Invalid or expired token"}}

	default:
		// Persistence failures and anything unrecognized surface as a
		// generic server error; nothing is retried or swallowed
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}

package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/chessclub/internal/services/leaderboard"
	"github.com/mcoot/chessclub/internal/storage"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Hint is passed through from the store when it offers one
	Hint string `json:"hint,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeStoreError       = "STORE_ERROR"
	CodeSubmitInProgress = "SUBMIT_IN_PROGRESS"
	CodeUnavailable      = "UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
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

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusOf returns the HTTP status WriteError would use for err
func StatusOf(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var storeErr *leaderboard.StoreError
	switch {
	case errors.Is(err, leaderboard.ErrNameRequired):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: "Player name is required."}}
	case errors.Is(err, leaderboard.ErrSubmitInProgress):
		return &httpError{http.StatusConflict, APIError{Code: CodeSubmitInProgress, Message: "A submission is already in progress"}}
	case errors.Is(err, leaderboard.ErrDeactivated):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeUnavailable, Message: "Server is shutting down"}}
	case errors.As(err, &storeErr):
		// The store's own words are the useful part; they are shown to users anyway
		apiErr := APIError{Code: CodeStoreError, Message: storeErr.Err.Error()}
		var pgErr *storage.APIError
		if errors.As(storeErr.Err, &pgErr) {
			apiErr.Hint = pgErr.Hint
		}
		return &httpError{http.StatusBadGateway, apiErr}
	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewStoreError reports a store failure already rendered as text
func NewStoreError(message string) error {
	return &httpError{http.StatusBadGateway, APIError{Code: CodeStoreError, Message: message}}
}

// NewInternalError creates an internal server error; requestID, when set, is offered as the hint
func NewInternalError(requestID string) error {
	apiErr := APIError{Code: CodeInternalError, Message: "Internal server error"}
	if requestID != "" {
		apiErr.Hint = "request id " + requestID
	}
	return &httpError{http.StatusInternalServerError, apiErr}
}

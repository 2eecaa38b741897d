package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jterhune/watchvault/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeNotOwner           = "NOT_OWNER"
	CodeMovieNotFound      = "MOVIE_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
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

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
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
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, ve.Message}}
	}

	switch {
	case errors.Is(err, model.ErrMovieNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMovieNotFound, "Movie not found"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}

	// Not-owner deliberately maps to 401 rather than 403: clients of the
	// system this one replaces expect 401 here
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusUnauthorized, APIError{CodeNotOwner, "You can only access your own movies"}}

	// Invalid tokens map to 400, another compatibility quirk kept on purpose
	case errors.Is(err, model.ErrInvalidToken):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidToken, "Invalid token"}}
	case errors.Is(err, model.ErrTokenExpired):
		return &httpError{http.StatusBadRequest, APIError{CodeTokenExpired, "Token expired"}}

	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already taken"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthenticatedError creates an error for requests with no credential
func NewUnauthenticatedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthenticated, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

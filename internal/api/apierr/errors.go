package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hurlingham/leaguesync/internal/model"
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
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnresolvedIdentity  = "UNRESOLVED_IDENTITY"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeTimeslotNotFound    = "TIMESLOT_NOT_FOUND"
	CodeTimeslotLocked      = "TIMESLOT_LOCKED"
	CodeMatchNotFound       = "MATCH_NOT_FOUND"
	CodeMatchExists         = "MATCH_EXISTS"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeInvalidSlotDate     = "INVALID_SLOT_DATE"
	CodeShareTokenExists    = "SHARE_TOKEN_EXISTS"
	CodeStorageUnavailable  = "STORAGE_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
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
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrUnresolvedIdentity):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnresolvedIdentity, "Use your personal link"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrTimeslotNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTimeslotNotFound, "Timeslot not found"}}
	case errors.Is(err, model.ErrTimeslotLocked):
		return &httpError{http.StatusConflict, APIError{CodeTimeslotLocked, "Timeslot is locked by a match"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "No match for this timeslot"}}
	case errors.Is(err, model.ErrMatchExists):
		return &httpError{http.StatusConflict, APIError{CodeMatchExists, "Timeslot already has a match"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough available players to pair"}}
	case errors.Is(err, model.ErrInvalidSlotDate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSlotDate, "Slot date must be YYYY-MM-DD"}}
	case errors.Is(err, model.ErrEmptyPeriod):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Period must not be empty"}}
	case errors.Is(err, model.ErrShareTokenExists):
		return &httpError{http.StatusConflict, APIError{CodeShareTokenExists, "Share token already in use"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewStorageUnavailableError creates an error for failed storage reads/writes
func NewStorageUnavailableError() error {
	return &httpError{http.StatusBadGateway, APIError{CodeStorageUnavailable, "Storage backend unavailable"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

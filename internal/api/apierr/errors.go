package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/services/auth"
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
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeForbiddenScope     = "FORBIDDEN_SCOPE"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameExists         = "GAME_EXISTS"
	CodeGameLimitExceeded  = "GAME_LIMIT_EXCEEDED"
	CodeNotRevealed        = "NOT_REVEALED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeAlreadySelected    = "ALREADY_SELECTED"
	CodeInvalidFaction     = "INVALID_FACTION"
	CodeCatalogTooSmall    = "CATALOG_TOO_SMALL"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
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
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameExists):
		return &httpError{http.StatusConflict, APIError{CodeGameExists, "A game with this ID already exists"}}
	case errors.Is(err, model.ErrGameLimitExceeded):
		return &httpError{http.StatusTooManyRequests, APIError{CodeGameLimitExceeded, "Too many active games for this creator"}}
	case errors.Is(err, model.ErrNotRevealed):
		return &httpError{http.StatusConflict, APIError{CodeNotRevealed, "Game is not revealed yet"}}
	case errors.Is(err, model.ErrTooFewPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Not enough players"}}
	case errors.Is(err, model.ErrTooManyPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Too many players"}}
	case errors.Is(err, model.ErrDuplicatePlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Player names must be unique and non-empty"}}
	case errors.Is(err, model.ErrInvalidFactionsPerPlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid number of factions per player"}}
	case errors.Is(err, model.ErrInvalidGameID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Game ID may only contain letters, digits, hyphens and underscores"}}
	case errors.Is(err, model.ErrCatalogTooSmall):
		return &httpError{http.StatusBadRequest, APIError{CodeCatalogTooSmall, "Faction catalog is too small for this game"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found in this game"}}
	case errors.Is(err, model.ErrAlreadySelected):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySelected, "Faction already selected"}}
	case errors.Is(err, model.ErrInvalidFaction):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFaction, "Faction is not in your hand"}}

	// Map auth errors
	case errors.Is(err, auth.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordTooShort, "Password must be at least 4 characters"}}
	case errors.Is(err, auth.ErrWrongPassword):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Wrong password"}}
	case errors.Is(err, auth.ErrTokenExpired):
		return &httpError{http.StatusUnauthorized, APIError{CodeTokenExpired, "Token has expired"}}
	case errors.Is(err, auth.ErrTokenInvalid):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid token"}}
	case errors.Is(err, auth.ErrTokenScope):
		return &httpError{http.StatusForbidden, APIError{CodeForbiddenScope, "Token is not valid for this game or player"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

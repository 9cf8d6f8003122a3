package server

import (
	"errors"
	"net/http"
)

var (
	ErrCapacityExceeded       = errors.New("too many players to start game")
	ErrNoAvailableSpace       = errors.New("there is no available space")
	ErrPlayerNotFound         = errors.New("player not found")
	ErrInvalidMove            = errors.New("player is not currently on the board")
	ErrDirectionNotRecognized = errors.New("direction not recognized")
	ErrInvalidDimensions      = errors.New("board dimensions must be positive")
	// ErrPillsExhausted means a pill cell was eaten after the value queue ran dry.
	ErrPillsExhausted = errors.New("pill values exhausted")
)

type ResponseCode int

const (
	OK ResponseCode = iota
	NOT_FOUND
	INVALID
	CONFLICT
	FAILED
)

// CodeOf classifies an engine error for the HTTP layer.
func CodeOf(err error) ResponseCode {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ErrPlayerNotFound):
		return NOT_FOUND
	case errors.Is(err, ErrInvalidMove),
		errors.Is(err, ErrDirectionNotRecognized),
		errors.Is(err, ErrInvalidDimensions):
		return INVALID
	case errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrNoAvailableSpace):
		return CONFLICT
	default:
		return FAILED
	}
}

func (h ResponseCode) ToHttp() int {
	switch h {
	case OK:
		return http.StatusOK
	case NOT_FOUND:
		return http.StatusNotFound
	case INVALID:
		return http.StatusBadRequest
	case CONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

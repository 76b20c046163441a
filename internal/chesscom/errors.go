package chesscom

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the API reports 404 for the requested
	// player, archive, or country.
	ErrNotFound = errors.New("chess.com: resource not found")
)

// APIError is a non-success response from the chess.com API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("chess.com: http %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("chess.com: http %d for %s: %s", e.StatusCode, e.URL, e.Message)
}

package analysis

import "errors"

var (
	// ErrNoUsername is returned when Run is called with an empty username.
	ErrNoUsername = errors.New("no username provided")
)

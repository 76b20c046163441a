package openings

import "errors"

var (
	// ErrInvalidHeader is returned when a table does not start with the
	// processed openings header row.
	ErrInvalidHeader = errors.New("openings table must start with the processed header row")
	// ErrInvalidRow is returned when a table row cannot be interpreted.
	ErrInvalidRow = errors.New("invalid openings table row")
	// ErrEmptyBook is returned when a table contains a header but no rows.
	ErrEmptyBook = errors.New("openings table contains no rows")
)

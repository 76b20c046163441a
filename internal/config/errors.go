package config

import "errors"

var (
	// ErrMissingIdentity is returned when one or more identity keys are
	// absent from every configured source.
	ErrMissingIdentity = errors.New("missing identity keys")

	// ErrInvalidSetting is returned when a resolved setting is out of range.
	ErrInvalidSetting = errors.New("invalid setting")
)

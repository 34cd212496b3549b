package constants

import "errors"

// Configuration errors.
var (
	ErrNotAuthenticated  = errors.New("not authenticated, run 'gae login' or set GAE_TOKEN")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Validation errors.
var (
	ErrInvalidTrafficSplit = errors.New("invalid traffic split, expected VERSION=FRACTION")
	ErrInvalidBoolean      = errors.New("invalid boolean value")
)

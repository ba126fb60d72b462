package assets

import "errors"

// Sentinel kinds for asset lookups.
var (
	ErrNotFound      = errors.New("asset not found")
	ErrInvalidKey    = errors.New("invalid asset key")
	ErrUnknownDriver = errors.New("unknown asset driver")
)

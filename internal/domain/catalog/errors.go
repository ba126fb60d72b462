package catalog

import "errors"

// ErrInvalidCatalog is returned by Validate.
var ErrInvalidCatalog = errors.New("invalid catalog")

var (
	errEmpty       = errors.New("no candidates")
	errNonPositive = errors.New("non-positive candidate")
	errDuplicate   = errors.New("duplicate candidate")
)

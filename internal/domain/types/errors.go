package types

import "errors"

// Sentinel errors for label parsing.
var (
	ErrUnknownTimeSlot = errors.New("unknown time slot")
	ErrUnknownMaterial = errors.New("unknown material")
)

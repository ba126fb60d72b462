package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrLoad      = errors.New("selections could not be loaded")
	ErrNoInput   = errors.New("no selections file given")
	ErrWriteFail = errors.New("report could not be written")
)

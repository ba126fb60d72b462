package chart

import "errors"

// Sentinel kinds for chart rendering.
var (
	ErrIncomplete = errors.New("sheet is not complete")
	ErrRender     = errors.New("chart render failed")
)

package service

import "errors"

// Sentinel errors returned by the Analyzer.
var (
	ErrCanceled  = errors.New("render canceled")
	ErrNoCatalog = errors.New("analyzer has no catalog")
)

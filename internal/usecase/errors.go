package usecase

import "errors"

// Error definitions for sentiment usecases
var (
	ErrMissingField     = errors.New("missing required field")
	ErrMalformedRequest = errors.New("malformed request")
	ErrModelNotLoaded   = errors.New("model not loaded")
)

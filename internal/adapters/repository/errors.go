package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotLoaded     = errors.New("dataset not loaded")
	ErrAlreadyLoaded = errors.New("dataset already loaded")
)

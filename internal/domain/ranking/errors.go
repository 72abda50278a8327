package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	// ErrEmptyResult is returned when nothing is left to rank after filtering.
	ErrEmptyResult = errors.New("empty result")
	// ErrNoKeys is returned when criteria carry no usable sort key.
	ErrNoKeys = errors.New("ranking needs at least one key")
	// ErrInvalidKey is returned for a key without extractor or direction.
	ErrInvalidKey = errors.New("invalid ranking key")
	// ErrInvalidLimit is returned for a negative truncation limit.
	ErrInvalidLimit = errors.New("invalid ranking limit")
)

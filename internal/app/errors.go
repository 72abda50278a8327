package service

import "github.com/okian/iplstat/internal/domain/types"

// Sentinel kinds for session errors.
var (
	ErrUnknownQuery   = types.ErrUnknownQuery
	ErrPlayerNotFound = types.ErrPlayerNotFound
)

// PlayerNotFoundError carries close matches for a failed lookup.
type PlayerNotFoundError = types.PlayerNotFoundError

// Profile joins a player's batting and bowling rows.
type Profile = types.Profile

package types

import "github.com/okian/iplstat/internal/domain/model"

// Profile joins a player's batting and bowling rows by exact name.
type Profile struct {
	Name    string               `json:"name"`
	Batting *model.BattingRecord `json:"batting,omitempty"`
	Bowling *model.BowlingRecord `json:"bowling,omitempty"`

	BoundaryStrikeRate    *float64 `json:"boundary_strike_rate,omitempty"`
	MultiWicketStrikeRate *float64 `json:"multi_wicket_strike_rate,omitempty"`
}

// Package model contains the season records passed between layers.
package model

// BattingRecord is one row of the season batting table.
type BattingRecord struct {
	Position   int     `json:"position" validate:"min=0"`
	Player     string  `json:"player" validate:"required"`
	Matches    int     `json:"matches" validate:"min=0"`
	Innings    int     `json:"innings" validate:"min=0"`
	NotOuts    int     `json:"not_outs" validate:"min=0"`
	Runs       int     `json:"runs" validate:"min=0"`
	HighScore  string  `json:"high_score"` // may carry a trailing "*" for not out
	Average    float64 `json:"average" validate:"min=0"`
	BallsFaced int     `json:"balls_faced" validate:"min=0"`
	StrikeRate float64 `json:"strike_rate" validate:"min=0"`
	Hundreds   int     `json:"hundreds" validate:"min=0"`
	Fifties    int     `json:"fifties" validate:"min=0"`
	Fours      int     `json:"fours" validate:"min=0"`
	Sixes      int     `json:"sixes" validate:"min=0"`
}

// Equal reports whether both records describe the same player. Only the
// name takes part; the statistics may differ between sources.
func (r BattingRecord) Equal(o BattingRecord) bool { return r.Player == o.Player }

// Name returns the player name.
func (r BattingRecord) Name() string { return r.Player }

// BowlingRecord is one row of the season bowling table.
//
// Overs uses cricket notation: the digit after the point counts balls of an
// unfinished over, so 12.3 is twelve overs and three balls.
type BowlingRecord struct {
	Position     int     `json:"position" validate:"min=0"`
	Player       string  `json:"player" validate:"required"`
	Matches      int     `json:"matches" validate:"min=0"`
	Innings      int     `json:"innings" validate:"min=0"`
	Overs        float64 `json:"overs" validate:"min=0,overs"`
	RunsConceded int     `json:"runs_conceded" validate:"min=0"`
	Wickets      int     `json:"wickets" validate:"min=0"`
	BestBowling  string  `json:"best_bowling"`
	Average      float64 `json:"average" validate:"min=0"`
	Economy      float64 `json:"economy" validate:"min=0"`
	StrikeRate   float64 `json:"strike_rate" validate:"min=0"`
	FourWickets  int     `json:"four_wickets" validate:"min=0"`
	FiveWickets  int     `json:"five_wickets" validate:"min=0"`
}

// Equal reports whether both records describe the same player.
func (r BowlingRecord) Equal(o BowlingRecord) bool { return r.Player == o.Player }

// Name returns the player name.
func (r BowlingRecord) Name() string { return r.Player }

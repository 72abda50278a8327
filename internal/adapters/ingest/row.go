package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/okian/iplstat/internal/domain/model"
)

// undefinedCell marks a metric the source could not compute, e.g. an average
// for a batter never dismissed.
const undefinedCell = "-"

var errNotFinite = errors.New("value is not finite")

// count is a whole-number cell. Counts are never undefined upstream, so an
// empty or "-" cell fails to decode.
type count int

func (c *count) UnmarshalCSV(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*c = count(n)
	return nil
}

// stat is a decimal cell. An empty or "-" cell loads as 0.
type stat float64

func (f *stat) UnmarshalCSV(s string) error {
	if s == "" || s == undefinedCell {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q", errNotFinite, s)
	}
	*f = stat(v)
	return nil
}

// battingRow is one line of the season batting table. Tags hold the
// normalized header names.
type battingRow struct {
	Position   count  `csv:"pos"`
	Player     string `csv:"player"`
	Matches    count  `csv:"mat"`
	Innings    count  `csv:"inns"`
	NotOuts    count  `csv:"no"`
	Runs       count  `csv:"runs"`
	HighScore  string `csv:"hs"`
	Average    stat   `csv:"avg"`
	BallsFaced count  `csv:"bf"`
	StrikeRate stat   `csv:"sr"`
	Hundreds   count  `csv:"100"`
	Fifties    count  `csv:"50"`
	Fours      count  `csv:"4s"`
	Sixes      count  `csv:"6s"`
}

func (r battingRow) record() model.BattingRecord {
	return model.BattingRecord{
		Position:   int(r.Position),
		Player:     r.Player,
		Matches:    int(r.Matches),
		Innings:    int(r.Innings),
		NotOuts:    int(r.NotOuts),
		Runs:       int(r.Runs),
		HighScore:  r.HighScore,
		Average:    float64(r.Average),
		BallsFaced: int(r.BallsFaced),
		StrikeRate: float64(r.StrikeRate),
		Hundreds:   int(r.Hundreds),
		Fifties:    int(r.Fifties),
		Fours:      int(r.Fours),
		Sixes:      int(r.Sixes),
	}
}

// bowlingRow is one line of the season bowling table.
type bowlingRow struct {
	Position     count  `csv:"pos"`
	Player       string `csv:"player"`
	Matches      count  `csv:"mat"`
	Innings      count  `csv:"inns"`
	Overs        stat   `csv:"ov"`
	RunsConceded count  `csv:"runs"`
	Wickets      count  `csv:"wkts"`
	BestBowling  string `csv:"bbi"`
	Average      stat   `csv:"avg"`
	Economy      stat   `csv:"econ"`
	StrikeRate   stat   `csv:"sr"`
	FourWickets  count  `csv:"4w"`
	FiveWickets  count  `csv:"5w"`
}

func (r bowlingRow) record() model.BowlingRecord {
	return model.BowlingRecord{
		Position:     int(r.Position),
		Player:       r.Player,
		Matches:      int(r.Matches),
		Innings:      int(r.Innings),
		Overs:        float64(r.Overs),
		RunsConceded: int(r.RunsConceded),
		Wickets:      int(r.Wickets),
		BestBowling:  r.BestBowling,
		Average:      float64(r.Average),
		Economy:      float64(r.Economy),
		StrikeRate:   float64(r.StrikeRate),
		FourWickets:  int(r.FourWickets),
		FiveWickets:  int(r.FiveWickets),
	}
}

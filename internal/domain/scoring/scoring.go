// Package scoring computes derived metrics from raw season records.
//
// All functions are pure and deterministic for a given record.
package scoring

import (
	"math"

	"github.com/okian/iplstat/internal/domain/model"
)

// Cricket constants.
const (
	ballsPerOver     = 6
	runsPerFour      = 4
	runsPerSix       = 6
	fourWicketWeight = 4
	fiveWicketWeight = 5
	percent          = 100
)

// NoHaulStrikeRate is reported for bowlers without a four or five wicket
// haul. It is the worst possible value for a lower-is-better ranking, so
// such bowlers stay in a ranked list but never lead it.
const NoHaulStrikeRate = math.MaxFloat64

// BoundaryRuns returns the runs scored from boundaries.
func BoundaryRuns(fours, sixes int) int {
	return fours*runsPerFour + sixes*runsPerSix
}

// BoundaryStrikeRate returns boundary runs per hundred balls faced.
// ok is false when no balls were faced; the metric is undefined there and
// the caller must leave the record out of any ranking on it.
func BoundaryStrikeRate(r model.BattingRecord) (rate float64, ok bool) {
	if r.BallsFaced <= 0 {
		return 0, false
	}
	return float64(BoundaryRuns(r.Fours, r.Sixes)*percent) / float64(r.BallsFaced), true
}

// BallsBowled converts overs notation to balls: whole overs count six balls
// and the first fractional digit counts single balls (12.3 -> 75).
func BallsBowled(overs float64) int {
	if overs <= 0 || math.IsNaN(overs) || math.IsInf(overs, 0) {
		return 0
	}
	whole := math.Floor(overs)
	balls := int(math.Round((overs - whole) * 10))
	return int(whole)*ballsPerOver + balls
}

// HaulWeight weights four and five wicket hauls by their wicket count.
func HaulWeight(r model.BowlingRecord) int {
	return r.FourWickets*fourWicketWeight + r.FiveWickets*fiveWicketWeight
}

// MultiWicketStrikeRate returns balls bowled per weighted haul, or
// NoHaulStrikeRate when the bowler has no haul at all.
func MultiWicketStrikeRate(r model.BowlingRecord) float64 {
	weight := HaulWeight(r)
	if weight == 0 {
		return NoHaulStrikeRate
	}
	return float64(BallsBowled(r.Overs)) / float64(weight)
}

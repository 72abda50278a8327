package service

import (
	"context"

	"github.com/okian/iplstat/internal/domain/dedupe"
	"github.com/okian/iplstat/internal/domain/model"
	"github.com/okian/iplstat/internal/domain/ranking"
	"github.com/okian/iplstat/internal/domain/scoring"
	"github.com/okian/iplstat/internal/domain/types"
)

// Query names.
const (
	QueryTopBattingAverage         = "top-batting-average"
	QueryTopStrikeRate             = "top-strike-rate"
	QueryMostFours                 = "most-fours"
	QueryMostSixes                 = "most-sixes"
	QueryBestBoundaryStrikeRate    = "best-boundary-strike-rate"
	QueryAverageThenStrikeRate     = "average-then-strike-rate"
	QueryRunsThenAverage           = "runs-then-average"
	QueryHundredsThenAverage       = "hundreds-then-average"
	QueryNoMilestonesBestAverage   = "no-milestones-best-average"
	QueryBestBowlingAverage        = "best-bowling-average"
	QueryBestBowlingStrikeRate     = "best-bowling-strike-rate"
	QueryBestEconomy               = "best-economy"
	QueryBestMultiWicketStrikeRate = "best-multi-wicket-strike-rate"
	QueryMultiWicketStrikeRates    = "multi-wicket-strike-rates"
	QueryBowlingAverageThenStrike  = "bowling-average-then-strike-rate"
	QueryWicketsThenAverage        = "wickets-then-average"
	QueryBestBattingAndBowlingAvg  = "best-batting-and-bowling-average"
	QueryBestAllRounder            = "best-all-rounder"
)

// Batting keys.
var (
	battingAverage = ranking.Desc("average", func(r model.BattingRecord) float64 { return r.Average })
	battingSR      = ranking.Desc("strike_rate", func(r model.BattingRecord) float64 { return r.StrikeRate })
	fours          = ranking.Desc("fours", func(r model.BattingRecord) float64 { return float64(r.Fours) })
	sixes          = ranking.Desc("sixes", func(r model.BattingRecord) float64 { return float64(r.Sixes) })
	runs           = ranking.Desc("runs", func(r model.BattingRecord) float64 { return float64(r.Runs) })
	hundreds       = ranking.Desc("hundreds", func(r model.BattingRecord) float64 { return float64(r.Hundreds) })
	boundarySR     = ranking.Desc("boundary_strike_rate", func(r model.BattingRecord) float64 {
		rate, _ := scoring.BoundaryStrikeRate(r)
		return rate
	})
)

// Bowling keys.
var (
	bowlingAverage = ranking.Asc("average", func(r model.BowlingRecord) float64 { return r.Average })
	bowlingSR      = ranking.Asc("strike_rate", func(r model.BowlingRecord) float64 { return r.StrikeRate })
	economy        = ranking.Asc("economy", func(r model.BowlingRecord) float64 { return r.Economy })
	multiWicketSR  = ranking.Asc("multi_wicket_strike_rate", func(r model.BowlingRecord) float64 {
		return scoring.MultiWicketStrikeRate(r)
	})
	wickets = ranking.Desc("wickets", func(r model.BowlingRecord) float64 { return float64(r.Wickets) })
)

// Filters. Zero averages and strike rates mean the source had nothing to
// compute them from, so they must not compete for a "lowest" ranking.
func facedBalls(r model.BattingRecord) bool        { return r.BallsFaced > 0 }
func battingAverageSet(r model.BattingRecord) bool { return r.Average > 0 }
func noMilestones(r model.BattingRecord) bool      { return r.Hundreds == 0 && r.Fifties == 0 }
func bowlingAverageSet(r model.BowlingRecord) bool { return r.Average > 0 }
func tookWickets(r model.BowlingRecord) bool       { return r.Wickets > 0 }
func bowledBalls(r model.BowlingRecord) bool       { return scoring.BallsBowled(r.Overs) > 0 }
func tookHaul(r model.BowlingRecord) bool          { return scoring.HaulWeight(r) > 0 }

func strikeRateSet(r model.BowlingRecord) bool {
	return r.Wickets > 0 && r.StrikeRate > 0
}

func battingBy(keys ...ranking.Key[model.BattingRecord]) ranking.Criteria[model.BattingRecord] {
	return ranking.Criteria[model.BattingRecord]{Keys: keys}
}

func bowlingBy(keys ...ranking.Key[model.BowlingRecord]) ranking.Criteria[model.BowlingRecord] {
	return ranking.Criteria[model.BowlingRecord]{Keys: keys}
}

func where[T any](c ranking.Criteria[T], filter func(T) bool) ranking.Criteria[T] {
	c.Filter = filter
	return c
}

// Criteria behind every ranked query.
var (
	topAverageCriteria       = battingBy(battingAverage)
	topStrikeRateCriteria    = battingBy(battingSR)
	mostFoursCriteria        = battingBy(fours)
	mostSixesCriteria        = battingBy(sixes)
	boundaryCriteria         = where(battingBy(boundarySR), facedBalls)
	averageThenSRCriteria    = battingBy(battingAverage, battingSR)
	runsThenAverageCriteria  = battingBy(runs, battingAverage)
	hundredsThenAvgCriteria  = battingBy(hundreds, battingAverage)
	noMilestonesCriteria     = where(battingBy(battingAverage), noMilestones)
	bowlingAverageCriteria   = where(bowlingBy(bowlingAverage), bowlingAverageSet)
	bowlingSRCriteria        = where(bowlingBy(bowlingSR), strikeRateSet)
	economyCriteria          = where(bowlingBy(economy), bowledBalls)
	bestMultiWicketCriteria  = where(bowlingBy(multiWicketSR), tookHaul)
	multiWicketListCriteria  = bowlingBy(multiWicketSR, wickets)
	bowlingAvgThenSRCriteria = where(bowlingBy(bowlingAverage, bowlingSR), bowlingAverageSet)
	wicketsThenAvgCriteria   = bowlingBy(wickets, bowlingAverage)
)

// TopBattingAverage returns the highest batting average.
func (s *Service) TopBattingAverage(ctx context.Context) (float64, error) {
	best, err := topBatting(ctx, s, topAverageCriteria)
	return best.Average, err
}

// TopStrikeRate returns the highest batting strike rate.
func (s *Service) TopStrikeRate(ctx context.Context) (float64, error) {
	best, err := topBatting(ctx, s, topStrikeRateCriteria)
	return best.StrikeRate, err
}

// MostFours returns the batter with the most fours.
func (s *Service) MostFours(ctx context.Context) (model.BattingRecord, error) {
	return topBatting(ctx, s, mostFoursCriteria)
}

// MostSixes returns the batter with the most sixes.
func (s *Service) MostSixes(ctx context.Context) (model.BattingRecord, error) {
	return topBatting(ctx, s, mostSixesCriteria)
}

// BestBoundaryStrikeRate returns the batter scoring boundary runs fastest.
// Batters who faced no balls have no such rate and are left out.
func (s *Service) BestBoundaryStrikeRate(ctx context.Context) (model.BattingRecord, error) {
	return topBatting(ctx, s, boundaryCriteria)
}

// ByAverageThenStrikeRate ranks batters by average, then strike rate.
func (s *Service) ByAverageThenStrikeRate(ctx context.Context) ([]model.BattingRecord, error) {
	return rankBatting(ctx, s, averageThenSRCriteria)
}

// ByRunsThenAverage ranks batters by runs, then average.
func (s *Service) ByRunsThenAverage(ctx context.Context) ([]model.BattingRecord, error) {
	return rankBatting(ctx, s, runsThenAverageCriteria)
}

// ByHundredsThenAverage ranks batters by hundreds, then average.
func (s *Service) ByHundredsThenAverage(ctx context.Context) ([]model.BattingRecord, error) {
	return rankBatting(ctx, s, hundredsThenAvgCriteria)
}

// BestAverageWithoutMilestones ranks batters with neither a hundred nor a
// fifty by average.
func (s *Service) BestAverageWithoutMilestones(ctx context.Context) ([]model.BattingRecord, error) {
	return rankBatting(ctx, s, noMilestonesCriteria)
}

// BestBowlingAverage returns the bowler with the lowest recorded average.
func (s *Service) BestBowlingAverage(ctx context.Context) (model.BowlingRecord, error) {
	return topBowling(ctx, s, bowlingAverageCriteria)
}

// BestBowlingStrikeRate returns the wicket taker with the lowest strike rate.
func (s *Service) BestBowlingStrikeRate(ctx context.Context) (model.BowlingRecord, error) {
	return topBowling(ctx, s, bowlingSRCriteria)
}

// BestEconomy returns the lowest economy among bowlers who bowled a ball.
func (s *Service) BestEconomy(ctx context.Context) (float64, error) {
	best, err := topBowling(ctx, s, economyCriteria)
	return best.Economy, err
}

// BestMultiWicketStrikeRate returns the bowler with the lowest balls per
// weighted four or five wicket haul.
func (s *Service) BestMultiWicketStrikeRate(ctx context.Context) (model.BowlingRecord, error) {
	return topBowling(ctx, s, bestMultiWicketCriteria)
}

// ByMultiWicketStrikeRate ranks every bowler by multi-wicket strike rate,
// then wickets. Bowlers without a haul sink to the bottom.
func (s *Service) ByMultiWicketStrikeRate(ctx context.Context) ([]model.BowlingRecord, error) {
	return rankBowling(ctx, s, multiWicketListCriteria)
}

// ByBowlingAverageThenStrikeRate ranks bowlers with a recorded average by
// average, then strike rate.
func (s *Service) ByBowlingAverageThenStrikeRate(ctx context.Context) ([]model.BowlingRecord, error) {
	return rankBowling(ctx, s, bowlingAvgThenSRCriteria)
}

// ByWicketsThenAverage ranks bowlers by wickets, then average.
func (s *Service) ByWicketsThenAverage(ctx context.Context) ([]model.BowlingRecord, error) {
	return rankBowling(ctx, s, wicketsThenAvgCriteria)
}

// BestBattingAndBowlingAverages returns the players in both the top batting
// averages and the top bowling averages, in batting order.
func (s *Service) BestBattingAndBowlingAverages(ctx context.Context) ([]string, error) {
	return s.intersect(ctx,
		where(battingBy(battingAverage), battingAverageSet),
		bowlingAverageCriteria,
	)
}

// BestAllRounders returns the players in both the top run scorers and the
// top wicket takers, in run scoring order.
func (s *Service) BestAllRounders(ctx context.Context) ([]string, error) {
	return s.intersect(ctx,
		battingBy(runs),
		where(bowlingBy(wickets), tookWickets),
	)
}

// intersect ranks both tables, keeps the top window of each and returns the
// names they share.
func (s *Service) intersect(ctx context.Context, bat ranking.Criteria[model.BattingRecord], bowl ranking.Criteria[model.BowlingRecord]) ([]string, error) {
	bat.Limit = s.topWindow
	bowl.Limit = s.topWindow

	batters, err := rankBatting(ctx, s, bat)
	if err != nil {
		return nil, err
	}
	bowlers, err := rankBowling(ctx, s, bowl)
	if err != nil {
		return nil, err
	}
	return dedupe.Intersect(
		dedupe.Names(batters, model.BattingRecord.Name),
		dedupe.Names(bowlers, model.BowlingRecord.Name),
	), nil
}

func rankBatting(ctx context.Context, s *Service, c ranking.Criteria[model.BattingRecord]) ([]model.BattingRecord, error) {
	recs, err := s.battingRecords(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(recs, c)
}

func topBatting(ctx context.Context, s *Service, c ranking.Criteria[model.BattingRecord]) (model.BattingRecord, error) {
	recs, err := s.battingRecords(ctx)
	if err != nil {
		return model.BattingRecord{}, err
	}
	return ranking.Top(recs, c)
}

func rankBowling(ctx context.Context, s *Service, c ranking.Criteria[model.BowlingRecord]) ([]model.BowlingRecord, error) {
	recs, err := s.bowlingRecords(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(recs, c)
}

func topBowling(ctx context.Context, s *Service, c ranking.Criteria[model.BowlingRecord]) (model.BowlingRecord, error) {
	recs, err := s.bowlingRecords(ctx)
	if err != nil {
		return model.BowlingRecord{}, err
	}
	return ranking.Top(recs, c)
}

// query is one catalogue entry.
type query struct {
	types.QueryInfo
	eval func(ctx context.Context, s *Service) (types.Result, error)
}

func scalar(name, desc string, fn func(*Service, context.Context) (float64, error)) query {
	return query{
		QueryInfo: types.QueryInfo{Name: name, Kind: types.KindScalar, Description: desc},
		eval: func(ctx context.Context, s *Service) (types.Result, error) {
			v, err := fn(s, ctx)
			return types.Result{Value: v}, err
		},
	}
}

func single[T any](name, desc string, fn func(*Service, context.Context) (T, error)) query {
	return query{
		QueryInfo: types.QueryInfo{Name: name, Kind: types.KindRecord, Description: desc},
		eval: func(ctx context.Context, s *Service) (types.Result, error) {
			v, err := fn(s, ctx)
			return types.Result{Value: v}, err
		},
	}
}

func list[T any](name, desc string, fn func(*Service, context.Context) ([]T, error), keys []ranking.Key[T]) query {
	return query{
		QueryInfo: types.QueryInfo{Name: name, Kind: types.KindRecords, Description: desc},
		eval: func(ctx context.Context, s *Service) (types.Result, error) {
			v, err := fn(s, ctx)
			if err != nil {
				return types.Result{}, err
			}
			return types.Result{Value: v, Ranks: ranking.DenseRanks(v, keys)}, nil
		},
	}
}

func names(name, desc string, fn func(*Service, context.Context) ([]string, error)) query {
	return query{
		QueryInfo: types.QueryInfo{Name: name, Kind: types.KindNames, Description: desc},
		eval: func(ctx context.Context, s *Service) (types.Result, error) {
			v, err := fn(s, ctx)
			return types.Result{Value: v}, err
		},
	}
}

var catalogue = []query{
	scalar(QueryTopBattingAverage, "Highest batting average",
		(*Service).TopBattingAverage),
	scalar(QueryTopStrikeRate, "Highest batting strike rate",
		(*Service).TopStrikeRate),
	single(QueryMostFours, "Batter with the most fours",
		(*Service).MostFours),
	single(QueryMostSixes, "Batter with the most sixes",
		(*Service).MostSixes),
	single(QueryBestBoundaryStrikeRate, "Batter with the best boundary strike rate (balls faced > 0)",
		(*Service).BestBoundaryStrikeRate),
	list(QueryAverageThenStrikeRate, "Batters by average, then strike rate",
		(*Service).ByAverageThenStrikeRate, averageThenSRCriteria.Keys),
	list(QueryRunsThenAverage, "Batters by runs, then average",
		(*Service).ByRunsThenAverage, runsThenAverageCriteria.Keys),
	list(QueryHundredsThenAverage, "Batters by hundreds, then average",
		(*Service).ByHundredsThenAverage, hundredsThenAvgCriteria.Keys),
	list(QueryNoMilestonesBestAverage, "Batters without a hundred or fifty by average",
		(*Service).BestAverageWithoutMilestones, noMilestonesCriteria.Keys),
	single(QueryBestBowlingAverage, "Bowler with the lowest average (average > 0)",
		(*Service).BestBowlingAverage),
	single(QueryBestBowlingStrikeRate, "Bowler with the lowest strike rate (wickets > 0)",
		(*Service).BestBowlingStrikeRate),
	scalar(QueryBestEconomy, "Lowest economy rate",
		(*Service).BestEconomy),
	single(QueryBestMultiWicketStrikeRate, "Bowler with the lowest balls per weighted 4w/5w haul",
		(*Service).BestMultiWicketStrikeRate),
	list(QueryMultiWicketStrikeRates, "Bowlers by multi-wicket strike rate, then wickets",
		(*Service).ByMultiWicketStrikeRate, multiWicketListCriteria.Keys),
	list(QueryBowlingAverageThenStrike, "Bowlers by average, then strike rate (average > 0)",
		(*Service).ByBowlingAverageThenStrikeRate, bowlingAvgThenSRCriteria.Keys),
	list(QueryWicketsThenAverage, "Bowlers by wickets, then average",
		(*Service).ByWicketsThenAverage, wicketsThenAvgCriteria.Keys),
	names(QueryBestBattingAndBowlingAvg, "Players among both the best batting and best bowling averages",
		(*Service).BestBattingAndBowlingAverages),
	names(QueryBestAllRounder, "Players among both the top run scorers and top wicket takers",
		(*Service).BestAllRounders),
}

package ranking_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/iplstat/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

type player struct {
	name    string
	runs    float64
	average float64
}

func runs(p player) float64    { return p.runs }
func average(p player) float64 { return p.average }

func names(ps []player) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.name
	}
	return out
}

func squad() []player {
	return []player{
		{name: "A", runs: 500, average: 40},
		{name: "B", runs: 600, average: 35},
		{name: "C", runs: 500, average: 45},
		{name: "D", runs: 300, average: 45},
		{name: "E", runs: 500, average: 40},
	}
}

func TestRank(t *testing.T) {
	Convey("Given a squad with ties on runs", t, func() {
		in := squad()

		Convey("When ranked by runs descending", func() {
			out, err := ranking.Rank(in, ranking.Criteria[player]{
				Keys: []ranking.Key[player]{ranking.Desc("runs", runs)},
			})

			Convey("Then tied rows should keep their input order", func() {
				So(err, ShouldBeNil)
				So(names(out), ShouldResemble, []string{"B", "A", "C", "E", "D"})
			})

			Convey("And the input should not be reordered", func() {
				So(names(in), ShouldResemble, []string{"A", "B", "C", "D", "E"})
			})
		})

		Convey("When ranked by runs then average", func() {
			out, err := ranking.Rank(in, ranking.Criteria[player]{
				Keys: []ranking.Key[player]{
					ranking.Desc("runs", runs),
					ranking.Desc("average", average),
				},
			})

			Convey("Then the tie-breaker should decide among equal runs", func() {
				So(err, ShouldBeNil)
				So(names(out), ShouldResemble, []string{"B", "C", "A", "E", "D"})
			})
		})

		Convey("When ranked ascending with a limit", func() {
			out, err := ranking.Rank(in, ranking.Criteria[player]{
				Keys:  []ranking.Key[player]{ranking.Asc("average", average)},
				Limit: 2,
			})

			Convey("Then only the lowest two should remain", func() {
				So(err, ShouldBeNil)
				So(names(out), ShouldResemble, []string{"B", "A"})
			})
		})

		Convey("When the limit exceeds the input", func() {
			out, err := ranking.Rank(in, ranking.Criteria[player]{
				Keys:  []ranking.Key[player]{ranking.Desc("runs", runs)},
				Limit: 50,
			})

			Convey("Then every row should be returned", func() {
				So(err, ShouldBeNil)
				So(len(out), ShouldEqual, len(in))
			})
		})

		Convey("When a filter runs before ranking", func() {
			out, err := ranking.Rank(in, ranking.Criteria[player]{
				Filter: func(p player) bool { return p.runs < 600 },
				Keys:   []ranking.Key[player]{ranking.Desc("runs", runs)},
				Limit:  1,
			})

			Convey("Then excluded rows should never lead", func() {
				So(err, ShouldBeNil)
				So(names(out), ShouldResemble, []string{"A"})
			})
		})

		Convey("When ranking the same input twice", func() {
			c := ranking.Criteria[player]{Keys: []ranking.Key[player]{ranking.Desc("average", average)}}
			first, err1 := ranking.Rank(in, c)
			second, err2 := ranking.Rank(in, c)

			Convey("Then both results should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})
	})
}

func TestRankErrors(t *testing.T) {
	Convey("Given invalid ranking input", t, func() {
		in := squad()

		Convey("When the filter rejects everything", func() {
			_, err := ranking.Rank(in, ranking.Criteria[player]{
				Filter: func(player) bool { return false },
				Keys:   []ranking.Key[player]{ranking.Desc("runs", runs)},
			})
			So(errors.Is(err, ranking.ErrEmptyResult), ShouldBeTrue)
		})

		Convey("When the input is empty", func() {
			_, err := ranking.Rank(nil, ranking.Criteria[player]{
				Keys: []ranking.Key[player]{ranking.Desc("runs", runs)},
			})
			So(errors.Is(err, ranking.ErrEmptyResult), ShouldBeTrue)
		})

		Convey("When no key is given", func() {
			_, err := ranking.Rank(in, ranking.Criteria[player]{})
			So(errors.Is(err, ranking.ErrNoKeys), ShouldBeTrue)
		})

		Convey("When a key has no extractor", func() {
			_, err := ranking.Rank(in, ranking.Criteria[player]{
				Keys: []ranking.Key[player]{{Name: "broken", Dir: ranking.Ascending}},
			})
			So(errors.Is(err, ranking.ErrInvalidKey), ShouldBeTrue)
		})

		Convey("When a key has no direction", func() {
			_, err := ranking.Rank(in, ranking.Criteria[player]{
				Keys: []ranking.Key[player]{{Name: "runs", Value: runs}},
			})
			So(errors.Is(err, ranking.ErrInvalidKey), ShouldBeTrue)
		})

		Convey("When the limit is negative", func() {
			_, err := ranking.Rank(in, ranking.Criteria[player]{
				Keys:  []ranking.Key[player]{ranking.Desc("runs", runs)},
				Limit: -1,
			})
			So(errors.Is(err, ranking.ErrInvalidLimit), ShouldBeTrue)
		})
	})
}

func TestRankNaN(t *testing.T) {
	Convey("Given a row whose metric is undefined", t, func() {
		in := []player{
			{name: "undefined", average: math.NaN()},
			{name: "low", average: 10},
			{name: "high", average: 20},
		}

		Convey("Then it should rank last in ascending order", func() {
			out, err := ranking.Rank(in, ranking.Criteria[player]{
				Keys: []ranking.Key[player]{ranking.Asc("average", average)},
			})
			So(err, ShouldBeNil)
			So(names(out), ShouldResemble, []string{"low", "high", "undefined"})
		})

		Convey("And last in descending order", func() {
			out, err := ranking.Rank(in, ranking.Criteria[player]{
				Keys: []ranking.Key[player]{ranking.Desc("average", average)},
			})
			So(err, ShouldBeNil)
			So(names(out), ShouldResemble, []string{"high", "low", "undefined"})
		})
	})
}

func TestTop(t *testing.T) {
	Convey("Given a squad", t, func() {
		in := squad()

		Convey("When asking for the best average", func() {
			best, err := ranking.Top(in, ranking.Criteria[player]{
				Keys: []ranking.Key[player]{ranking.Desc("average", average)},
			})

			Convey("Then the first of the tied leaders should win", func() {
				So(err, ShouldBeNil)
				So(best.name, ShouldEqual, "C")
			})
		})

		Convey("When nothing qualifies", func() {
			best, err := ranking.Top(in, ranking.Criteria[player]{
				Filter: func(p player) bool { return p.runs > 1000 },
				Keys:   []ranking.Key[player]{ranking.Desc("runs", runs)},
			})

			Convey("Then the zero value and ErrEmptyResult should be returned", func() {
				So(errors.Is(err, ranking.ErrEmptyResult), ShouldBeTrue)
				So(best, ShouldResemble, player{})
			})
		})
	})
}

func TestDenseRanks(t *testing.T) {
	Convey("Given a ranked list with ties", t, func() {
		keys := []ranking.Key[player]{
			ranking.Desc("runs", runs),
			ranking.Desc("average", average),
		}
		ranked, err := ranking.Rank(squad(), ranking.Criteria[player]{Keys: keys})
		So(err, ShouldBeNil)

		Convey("Then rows equal on every key should share a standing", func() {
			So(ranking.DenseRanks(ranked, keys), ShouldResemble, []int{1, 2, 3, 3, 4})
		})

		Convey("And a primary-only comparison should merge more rows", func() {
			So(ranking.DenseRanks(ranked, keys[:1]), ShouldResemble, []int{1, 2, 2, 2, 3})
		})
	})

	Convey("Given an empty list", t, func() {
		So(ranking.DenseRanks([]player{}, []ranking.Key[player]{ranking.Desc("runs", runs)}), ShouldBeEmpty)
	})
}

func TestDirectionString(t *testing.T) {
	Convey("Directions should print their short names", t, func() {
		So(ranking.Ascending.String(), ShouldEqual, "asc")
		So(ranking.Descending.String(), ShouldEqual, "desc")
		So(ranking.Direction(0).String(), ShouldEqual, "direction(0)")
	})
}

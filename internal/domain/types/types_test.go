package types_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/okian/iplstat/internal/domain/model"
	types "github.com/okian/iplstat/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResult(t *testing.T) {
	Convey("Given query results of every kind", t, func() {
		Convey("When the result is a scalar", func() {
			r := types.Result{Query: "top-batting-average", Kind: types.KindScalar, Value: 83.2}

			Convey("Then it should carry one row", func() {
				So(r.Len(), ShouldEqual, 1)
			})

			Convey("And Head should leave it alone", func() {
				So(r.Head(0), ShouldResemble, r)
			})

			Convey("And the ranks field should be omitted from JSON", func() {
				b, err := json.Marshal(r)
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"query":"top-batting-average","kind":"scalar","value":83.2}`)
			})
		})

		Convey("When the result is a single record", func() {
			r := types.Result{Kind: types.KindRecord, Value: model.BattingRecord{Player: "Andre Russell"}}
			So(r.Len(), ShouldEqual, 1)
		})

		Convey("When the result is a list of names", func() {
			r := types.Result{Kind: types.KindNames, Value: []string{"Andre Russell", "Ishan Kishan", "Nitish Rana"}}

			Convey("Then every name should count", func() {
				So(r.Len(), ShouldEqual, 3)
			})

			Convey("And Head should keep the leading names", func() {
				head := r.Head(2)
				So(head.Value, ShouldResemble, []string{"Andre Russell", "Ishan Kishan"})
				So(r.Len(), ShouldEqual, 3)
			})
		})

		Convey("When the result is an empty list of names", func() {
			r := types.Result{Kind: types.KindNames, Value: []string{}}

			Convey("Then it should report zero rows", func() {
				So(r.Len(), ShouldEqual, 0)
			})

			Convey("And the value should encode as an empty array", func() {
				b, err := json.Marshal(r)
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"value":[]`)
			})
		})

		Convey("When the result is a ranked list of records", func() {
			r := types.Result{
				Kind:  types.KindRecords,
				Value: []model.BowlingRecord{{Player: "Imran Tahir"}, {Player: "Kagiso Rabada"}, {Player: "Deepak Chahar"}},
				Ranks: []int{1, 2, 2},
			}

			Convey("Then Head should trim records and ranks together", func() {
				head := r.Head(1)
				So(head.Len(), ShouldEqual, 1)
				So(head.Ranks, ShouldResemble, []int{1})
				So(head.Value.([]model.BowlingRecord)[0].Player, ShouldEqual, "Imran Tahir")
			})

			Convey("And a negative limit should be ignored", func() {
				So(r.Head(-1).Len(), ShouldEqual, 3)
			})
		})

		Convey("When the result has no value", func() {
			So(types.Result{}.Len(), ShouldEqual, 0)
		})
	})
}

func TestPlayerNotFoundError(t *testing.T) {
	Convey("Given a lookup miss with suggestions", t, func() {
		var err error = &types.PlayerNotFoundError{Name: "Virat Kohly", Suggestions: []string{"Virat Kohli"}}

		Convey("Then it should match the sentinel even when wrapped", func() {
			So(errors.Is(err, types.ErrPlayerNotFound), ShouldBeTrue)
			So(errors.Is(fmt.Errorf("lookup: %w", err), types.ErrPlayerNotFound), ShouldBeTrue)
			So(errors.Is(err, types.ErrUnknownQuery), ShouldBeFalse)
		})

		Convey("And the message should offer the suggestions", func() {
			So(err.Error(), ShouldEqual, `player not found: "Virat Kohly" (did you mean Virat Kohli?)`)
		})
	})

	Convey("Given a lookup miss without suggestions", t, func() {
		err := &types.PlayerNotFoundError{Name: "Xyzzy"}
		So(err.Error(), ShouldEqual, `player not found: "Xyzzy"`)
	})
}

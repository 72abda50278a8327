package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	battingFixture = "../../../testdata/batting.csv"
	bowlingFixture = "../../../testdata/bowling.csv"

	battingHeader = "POS,PLAYER,Mat,Inns,NO,Runs,HS,Avg,BF,SR,100,50,4s,6s"
	bowlingHeader = "POS,PLAYER,Mat,Inns,Ov,Runs,Wkts,BBI,Avg,Econ,SR,4w,5w"
)

func TestLoadBattingFixture(t *testing.T) {
	records, err := LoadBatting(context.Background(), battingFixture)
	require.NoError(t, err)
	require.Len(t, records, 101)

	first := records[0]
	assert.Equal(t, "David Warner", first.Player)
	assert.Equal(t, 692, first.Runs)
	assert.Equal(t, "100*", first.HighScore)
	assert.InDelta(t, 69.2, first.Average, 1e-9)
	assert.Equal(t, 481, first.BallsFaced)

	last := records[len(records)-1]
	assert.Equal(t, "Harpreet Brar", last.Player)
	assert.Zero(t, last.BallsFaced)
	assert.Zero(t, last.StrikeRate, "a dash loads as zero")
}

func TestLoadBowlingFixture(t *testing.T) {
	records, err := LoadBowling(context.Background(), bowlingFixture)
	require.NoError(t, err)
	require.Len(t, records, 99)

	var joseph, pandey bool
	for _, r := range records {
		switch r.Player {
		case "Alzarri Joseph":
			joseph = true
			assert.InDelta(t, 12.1, r.Overs, 1e-9)
			assert.Equal(t, 1, r.FiveWickets)
			assert.Equal(t, "6/12", r.BestBowling)
		case "Manish Pandey":
			pandey = true
			assert.Zero(t, r.Wickets)
			assert.Zero(t, r.Average)
			assert.Zero(t, r.StrikeRate)
		}
	}
	assert.True(t, joseph)
	assert.True(t, pandey)
}

func TestReadHeaderHandling(t *testing.T) {
	t.Run("columns in any order with BOM and padding", func(t *testing.T) {
		in := "\ufeff PLAYER ,SR,POS,Mat,Inns,NO,Runs,HS,Avg,BF,100,50,4s,6s\n" +
			"Virat Kohli,141.46,3,14,14,0,464,100,33.14,328,1,2,46,13\n"
		records, err := Read(context.Background(), strings.NewReader(in), BattingSchema)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Virat Kohli", records[0].Player)
		assert.InDelta(t, 141.46, records[0].StrikeRate, 1e-9)
		assert.Equal(t, 3, records[0].Position)
	})

	t.Run("missing column", func(t *testing.T) {
		in := "POS,PLAYER,Mat\n1,A,2\n"
		_, err := Read(context.Background(), strings.NewReader(in), BattingSchema)
		require.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "runs")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Read(context.Background(), strings.NewReader(""), BowlingSchema)
		require.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("duplicate header", func(t *testing.T) {
		in := battingHeader + ",Runs\n"
		_, err := Read(context.Background(), strings.NewReader(in), BattingSchema)
		require.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("header only", func(t *testing.T) {
		records, err := Read(context.Background(), strings.NewReader(bowlingHeader+"\n"), BowlingSchema)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		in := battingHeader + "\n\n1,A,1,1,0,10,10,10,8,125,0,0,1,0\n\n"
		records, err := Read(context.Background(), strings.NewReader(in), BattingSchema)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestReadMalformedRows(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		row    string
		line   int
		column string
	}{
		{"non numeric runs", "batting", "1,A,1,1,0,ten,10,10,8,125,0,0,1,0", 2, "Runs"},
		{"dash in a count", "batting", "1,A,1,1,0,10,10,10,-,125,0,0,1,0", 2, "BF"},
		{"negative fours", "batting", "1,A,1,1,0,10,10,10,8,125,0,0,-1,0", 2, "fours"},
		{"empty player", "batting", "1, ,1,1,0,10,10,10,8,125,0,0,1,0", 2, "player"},
		{"not finite average", "batting", "1,A,1,1,0,10,10,NaN,8,125,0,0,1,0", 2, "Avg"},
		{"too few fields", "batting", "1,A,1", 2, ""},
		{"seven balls in an over", "bowling", "1,B,1,1,3.7,20,1,1/20,20,6,23,0,0", 2, "overs"},
		{"two decimal overs", "bowling", "1,B,1,1,3.25,20,1,1/20,20,6,23,0,0", 2, "overs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			switch tt.schema {
			case "batting":
				_, err = Read(context.Background(), strings.NewReader(battingHeader+"\n"+tt.row+"\n"), BattingSchema)
			case "bowling":
				_, err = Read(context.Background(), strings.NewReader(bowlingHeader+"\n"+tt.row+"\n"), BowlingSchema)
			}
			require.ErrorIs(t, err, ErrMalformedRecord)

			var rowErr *RowError
			require.True(t, errors.As(err, &rowErr))
			assert.Equal(t, tt.line, rowErr.Line)
			assert.Equal(t, tt.column, rowErr.Column)
		})
	}
}

func TestReadReportsSourceLines(t *testing.T) {
	in := battingHeader + "\n\n" +
		"1,A,1,1,0,10,10,10,8,125,0,0,1,0\n\n\n" +
		"2,B,1,1,0,ten,10,10,8,125,0,0,1,0\n"
	_, err := Read(context.Background(), strings.NewReader(in), BattingSchema)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 6, rowErr.Line)
	assert.Equal(t, "Runs", rowErr.Column)
}

func TestCells(t *testing.T) {
	t.Run("stat", func(t *testing.T) {
		for in, want := range map[string]float64{"": 0, "-": 0, "33.14": 33.14, "0": 0} {
			var f stat
			require.NoError(t, f.UnmarshalCSV(in), in)
			assert.InDelta(t, want, float64(f), 1e-9, in)
		}
		for _, in := range []string{"x", "NaN", "+Inf"} {
			var f stat
			assert.Error(t, f.UnmarshalCSV(in), in)
		}
	})

	t.Run("count", func(t *testing.T) {
		var c count
		require.NoError(t, c.UnmarshalCSV("692"))
		assert.Equal(t, count(692), c)
		for _, in := range []string{"", "-", "10.5", "ten"} {
			assert.Error(t, c.UnmarshalCSV(in), in)
		}
	})
}

func TestReadUnderlyingCause(t *testing.T) {
	in := battingHeader + "\n1,A,1,1,0,ten,10,10,8,125,0,0,1,0\n"
	_, err := Read(context.Background(), strings.NewReader(in), BattingSchema)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestReadIsAllOrNothing(t *testing.T) {
	in := battingHeader + "\n" +
		"1,A,1,1,0,10,10,10,8,125,0,0,1,0\n" +
		"2,B,1,1,0,10,10,10,8,125,0,0,1,0\n" +
		"3,C,1,1,0,x,10,10,8,125,0,0,1,0\n"
	records, err := Read(context.Background(), strings.NewReader(in), BattingSchema)
	require.Error(t, err)
	assert.Nil(t, records)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 4, rowErr.Line)
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := battingHeader + "\n1,A,1,1,0,10,10,10,8,125,0,0,1,0\n"
	_, err := Read(ctx, strings.NewReader(in), BattingSchema)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadBatting(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
		require.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("malformed file names its path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bowling.csv")
		require.NoError(t, os.WriteFile(path, []byte(bowlingHeader+"\n1,B,1,1,x,20,1,1/20,20,6,23,0,0\n"), 0o600))

		_, err := LoadBowling(context.Background(), path)
		require.ErrorIs(t, err, ErrMalformedRecord)
		assert.Contains(t, err.Error(), path)
	})
}

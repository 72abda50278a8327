package ingest

import (
	"github.com/gocarina/gocsv"

	"github.com/okian/iplstat/internal/domain/model"
)

// Schema binds a CSV layout to a record type.
type Schema[T any] struct {
	// Dataset names the table in logs and metrics.
	Dataset string
	decode  func(in gocsv.CSVReader) ([]T, error)
}

// BattingSchema reads the season batting table.
var BattingSchema = schemaOf[model.BattingRecord, battingRow]("batting")

// BowlingSchema reads the season bowling table.
var BowlingSchema = schemaOf[model.BowlingRecord, bowlingRow]("bowling")

// schemaOf decodes rows of R by header name and converts each to T. Every
// tagged column of R must be present; order does not matter.
func schemaOf[T any, R interface{ record() T }](dataset string) Schema[T] {
	return Schema[T]{
		Dataset: dataset,
		decode: func(in gocsv.CSVReader) ([]T, error) {
			var rows []R
			if err := gocsv.UnmarshalCSV(in, &rows); err != nil {
				return nil, err
			}
			out := make([]T, len(rows))
			for i, r := range rows {
				out[i] = r.record()
			}
			return out, nil
		},
	}
}

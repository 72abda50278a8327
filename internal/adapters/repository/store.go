// Package repository holds the loaded season tables.
package repository

import (
	"context"

	"github.com/okian/iplstat/internal/domain/model"
)

// Dataset names used in logs and metrics.
const (
	DatasetBatting = "batting"
	DatasetBowling = "bowling"
)

// Counts reports how many records each dataset holds.
type Counts struct {
	Batting int `json:"batting"`
	Bowling int `json:"bowling"`
}

// Store provides access to the season tables. Each table is written once and
// is read-only afterwards.
type Store interface {
	// PutBatting stores the batting table. Returns ErrAlreadyLoaded on a second call.
	PutBatting(ctx context.Context, records []model.BattingRecord) error
	// PutBowling stores the bowling table. Returns ErrAlreadyLoaded on a second call.
	PutBowling(ctx context.Context, records []model.BowlingRecord) error

	// Batting returns a copy of the batting table in load order.
	// Returns ErrNotLoaded before PutBatting.
	Batting(ctx context.Context) ([]model.BattingRecord, error)
	// Bowling returns a copy of the bowling table in load order.
	// Returns ErrNotLoaded before PutBowling.
	Bowling(ctx context.Context) ([]model.BowlingRecord, error)

	// Count returns the number of records per dataset.
	Count(ctx context.Context) Counts
}

package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/okian/iplstat/internal/domain/model"
	"github.com/okian/iplstat/pkg/metrics"
)

// snapshot is immutable once published.
type snapshot[T any] struct {
	records []T
}

// MemoryStore is an in-memory Store. Writers serialize on a mutex; readers
// load the published snapshot without locking.
type MemoryStore struct {
	mu      sync.Mutex
	batting atomic.Pointer[snapshot[model.BattingRecord]]
	bowling atomic.Pointer[snapshot[model.BowlingRecord]]
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// PutBatting implements Store.PutBatting.
func (s *MemoryStore) PutBatting(ctx context.Context, records []model.BattingRecord) error {
	return put(ctx, &s.mu, &s.batting, DatasetBatting, records)
}

// PutBowling implements Store.PutBowling.
func (s *MemoryStore) PutBowling(ctx context.Context, records []model.BowlingRecord) error {
	return put(ctx, &s.mu, &s.bowling, DatasetBowling, records)
}

// Batting implements Store.Batting.
func (s *MemoryStore) Batting(ctx context.Context) ([]model.BattingRecord, error) {
	return get(ctx, &s.batting, DatasetBatting)
}

// Bowling implements Store.Bowling.
func (s *MemoryStore) Bowling(ctx context.Context) ([]model.BowlingRecord, error) {
	return get(ctx, &s.bowling, DatasetBowling)
}

// Count implements Store.Count.
func (s *MemoryStore) Count(ctx context.Context) Counts {
	var c Counts
	if snap := s.batting.Load(); snap != nil {
		c.Batting = len(snap.records)
	}
	if snap := s.bowling.Load(); snap != nil {
		c.Bowling = len(snap.records)
	}
	return c
}

func put[T any](ctx context.Context, mu *sync.Mutex, slot *atomic.Pointer[snapshot[T]], dataset string, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if slot.Load() != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyLoaded, dataset)
	}
	slot.Store(&snapshot[T]{records: slices.Clone(records)})
	metrics.UpdateRecordsLoaded(dataset, len(records))
	return nil
}

func get[T any](ctx context.Context, slot *atomic.Pointer[snapshot[T]], dataset string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := slot.Load()
	if snap == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, dataset)
	}
	out := make([]T, len(snap.records))
	copy(out, snap.records)
	return out, nil
}

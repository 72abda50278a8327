// Package service provides the analysis session that implements the
// dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/iplstat/internal/adapters/ingest"
	"github.com/okian/iplstat/internal/adapters/mq/worker"
	"github.com/okian/iplstat/internal/adapters/repository"
	"github.com/okian/iplstat/internal/domain/model"
	"github.com/okian/iplstat/internal/domain/ranking"
	"github.com/okian/iplstat/internal/domain/types"
	"github.com/okian/iplstat/pkg/logger"
	"github.com/okian/iplstat/pkg/metrics"
)

// Service is one analysis session over a batting and a bowling table.
type Service struct {
	mu sync.RWMutex

	id      uuid.UUID
	store   repository.Store
	queries map[string]query

	// Configuration
	topWindow       int
	suggestDistance int
	workers         int

	// State
	loadedAt map[string]time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the in-memory record store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTopWindow sets how many ranked players take part in an intersection.
func WithTopWindow(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topWindow = k
		}
	}
}

// WithSuggestionDistance sets the maximum edit distance for player name
// suggestions. Zero disables suggestions.
func WithSuggestionDistance(d int) Option {
	return func(s *Service) {
		if d >= 0 {
			s.suggestDistance = d
		}
	}
}

// WithWorkers sets how many queries RunAll evaluates at once.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		id:              uuid.New(),
		topWindow:       40,
		suggestDistance: 3,
		workers:         4,
		loadedAt:        make(map[string]time.Time, 2),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = logger.Named("analyser")
	}

	s.queries = make(map[string]query, len(catalogue))
	for _, q := range catalogue {
		s.queries[q.Name] = q
	}

	return s
}

// ID returns the session id.
func (s *Service) ID() string {
	return s.id.String()
}

// LoadBatting ingests the batting table at path. A failed load leaves the
// session without batting data.
func (s *Service) LoadBatting(ctx context.Context, path string) (int, error) {
	return load(ctx, s, repository.DatasetBatting, path, ingest.LoadBatting, s.store.PutBatting)
}

// LoadBowling ingests the bowling table at path.
func (s *Service) LoadBowling(ctx context.Context, path string) (int, error) {
	return load(ctx, s, repository.DatasetBowling, path, ingest.LoadBowling, s.store.PutBowling)
}

func load[T any](
	ctx context.Context,
	s *Service,
	dataset, path string,
	read func(context.Context, string) ([]T, error),
	put func(context.Context, []T) error,
) (int, error) {
	start := time.Now()

	records, err := read(ctx, path)
	if err == nil {
		err = put(ctx, records)
	}
	if err != nil {
		metrics.RecordLoadError(dataset, loadErrorKind(err))
		s.logger.Error(ctx, "dataset load failed",
			logger.String("session", s.ID()),
			logger.String("dataset", dataset),
			logger.String("path", path),
			logger.Error(err),
		)
		return 0, fmt.Errorf("load %s: %w", dataset, err)
	}

	took := time.Since(start)
	tookMS := float64(took.Microseconds()) / 1000
	metrics.RecordLoadDuration(dataset, tookMS)

	s.mu.Lock()
	s.loadedAt[dataset] = time.Now()
	s.mu.Unlock()

	s.logger.Info(ctx, "dataset loaded",
		logger.String("session", s.ID()),
		logger.String("dataset", dataset),
		logger.Int("records", len(records)),
		logger.Float64("took_ms", tookMS),
	)
	return len(records), nil
}

func loadErrorKind(err error) string {
	switch {
	case errors.Is(err, ingest.ErrFileNotFound):
		return "file_not_found"
	case errors.Is(err, ingest.ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, ingest.ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, repository.ErrAlreadyLoaded):
		return "already_loaded"
	default:
		return "other"
	}
}

// Queries lists the query catalogue in presentation order.
func (s *Service) Queries() []types.QueryInfo {
	out := make([]types.QueryInfo, len(catalogue))
	for i, q := range catalogue {
		out[i] = q.QueryInfo
	}
	return out
}

// Run evaluates a named query.
func (s *Service) Run(ctx context.Context, name string) (types.Result, error) {
	q, ok := s.queries[name]
	if !ok {
		return types.Result{}, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}

	start := time.Now()
	res, err := q.eval(ctx, s)
	took := time.Since(start)
	tookMS := float64(took.Microseconds()) / 1000
	metrics.RecordQueryLatency(name, tookMS)

	if err != nil {
		empty := errors.Is(err, ranking.ErrEmptyResult)
		outcome := metrics.OutcomeError
		if empty {
			outcome = metrics.OutcomeEmpty
			metrics.RecordEmptyResult(name)
		}
		metrics.RecordQuery(name, outcome)
		s.logger.Warn(ctx, "query failed",
			logger.String("session", s.ID()),
			logger.String("query", name),
			logger.Bool("empty", empty),
			logger.Error(err),
		)
		return types.Result{}, fmt.Errorf("query %s: %w", name, err)
	}

	res.Query = name
	res.Kind = q.Kind
	metrics.RecordQuery(name, metrics.OutcomeOK)
	s.logger.Debug(ctx, "query finished",
		logger.String("session", s.ID()),
		logger.String("query", name),
		logger.Int("rows", res.Len()),
		logger.Float64("took_ms", tookMS),
	)
	return res, nil
}

// RunAll evaluates the whole catalogue on a worker pool. Answers keep
// catalogue order and carry per-query failures; the error is non-nil only
// when ctx ends first.
func (s *Service) RunAll(ctx context.Context) ([]types.Answer, error) {
	names := make([]string, len(catalogue))
	for i, q := range catalogue {
		names[i] = q.Name
	}

	pool := worker.NewPool(s.workers, func(ctx context.Context, name string) types.Answer {
		res, err := s.Run(ctx, name)
		if err != nil {
			return types.Answer{Query: name, Error: err.Error(), Err: err}
		}
		return types.Answer{Query: name, Result: &res}
	}, worker.WithName("catalogue"), worker.WithLogger(s.logger.Named("catalogue")))

	answers, err := pool.Process(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("run catalogue: %w", err)
	}
	return answers, nil
}

// GetStats returns session statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := s.store.Count(context.Background())
	stats := map[string]interface{}{
		"session":    s.ID(),
		"batting":    counts.Batting,
		"bowling":    counts.Bowling,
		"top_window": s.topWindow,
		"workers":    s.workers,
		"queries":    len(catalogue),
	}
	for dataset, at := range s.loadedAt {
		stats[dataset+"_loaded_at"] = at.UTC().Format(time.RFC3339)
	}
	return stats
}

// battingRecords reads the batting table. An unloaded table counts as an
// empty result so callers see one failure kind for "nothing to rank".
func (s *Service) battingRecords(ctx context.Context) ([]model.BattingRecord, error) {
	return readTable(ctx, s.store.Batting)
}

func (s *Service) bowlingRecords(ctx context.Context) ([]model.BowlingRecord, error) {
	return readTable(ctx, s.store.Bowling)
}

func readTable[T any](ctx context.Context, read func(context.Context) ([]T, error)) ([]T, error) {
	recs, err := read(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotLoaded) {
			return nil, fmt.Errorf("%w: %w", ranking.ErrEmptyResult, err)
		}
		return nil, err
	}
	return recs, nil
}

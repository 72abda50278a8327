// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/iplstat/internal/domain/ranking"
	"github.com/okian/iplstat/internal/domain/types"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Queries() []types.QueryInfo
	Run(ctx context.Context, name string) (types.Result, error)
	RunAll(ctx context.Context) ([]types.Answer, error)
	FindPlayer(ctx context.Context, name string) (types.Profile, error)
}

const defaultMaxLimit = 200

// Server wires HTTP routes for the query API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	queryHandler  *QueryHandler
	playerHandler *PlayerHandler
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxLimit int
}

// WithMaxLimit caps the ?limit parameter of list queries.
func WithMaxLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		queryHandler:  NewQueryHandler(deps, cfg.maxLimit),
		playerHandler: NewPlayerHandler(deps),
	}
}

// NewRouter returns a router with panic recovery and CORS for the given origins.
func NewRouter(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/queries", MetricsMiddleware(s.queryHandler.HandleList, "queries"))
	r.Get("/queries/{name}", MetricsMiddleware(s.queryHandler.HandleRun, "query"))
	r.Get("/report", MetricsMiddleware(s.queryHandler.HandleReport, "report"))
	r.Get("/players/{name}", MetricsMiddleware(s.playerHandler.HandleGetPlayer, "player"))
}

type errorResponse struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	resp := errorResponse{Code: code, Message: msg}

	var nf *types.PlayerNotFoundError
	if errors.As(err, &nf) {
		resp.Suggestions = nf.Suggestions
	}
	writeJSON(w, status, resp)
}

// writeFailure maps a domain error to its status code.
func writeFailure(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, types.ErrUnknownQuery), errors.Is(err, types.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, ranking.ErrEmptyResult):
		writeError(w, http.StatusUnprocessableEntity, "empty_result", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// pathParam returns a decoded route parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

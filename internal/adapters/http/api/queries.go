package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/iplstat/internal/domain/types"
)

// QueryDependencies defines the interface for query operations.
type QueryDependencies interface {
	Queries() []types.QueryInfo
	Run(ctx context.Context, name string) (types.Result, error)
	RunAll(ctx context.Context) ([]types.Answer, error)
}

// QueryHandler lists and evaluates catalogue queries.
type QueryHandler struct {
	deps     QueryDependencies
	maxLimit int
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(deps QueryDependencies, maxLimit int) *QueryHandler {
	return &QueryHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleList handles GET /queries requests.
func (h *QueryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Queries())
}

// HandleRun handles GET /queries/{name}?limit=N requests. The optional limit
// keeps the first N rows of list results.
func (h *QueryHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	const op = "api.run_query"

	limit := -1
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKindf(op, ErrBadRequest, "invalid limit %q", s))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKindf(op, ErrBadRequest, "limit above %d", h.maxLimit))
			return
		}
		limit = n
	}

	res, err := h.deps.Run(r.Context(), pathParam(r, "name"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Head(limit))
}

// HandleReport handles GET /report requests by running the whole catalogue.
// Queries that fail are reported inline.
func (h *QueryHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	answers, err := h.deps.RunAll(r.Context())
	if err != nil {
		writeFailure(w, "api.report", err)
		return
	}
	writeJSON(w, http.StatusOK, answers)
}

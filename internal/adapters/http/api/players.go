package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/iplstat/internal/domain/types"
)

// PlayerDependencies defines the interface for player lookups.
type PlayerDependencies interface {
	FindPlayer(ctx context.Context, name string) (types.Profile, error)
}

// PlayerHandler handles player profile requests.
type PlayerHandler struct {
	deps PlayerDependencies
}

// NewPlayerHandler creates a new player handler.
func NewPlayerHandler(deps PlayerDependencies) *PlayerHandler {
	return &PlayerHandler{deps: deps}
}

// HandleGetPlayer handles GET /players/{name} requests.
func (h *PlayerHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player"

	name := pathParam(r, "name")
	if strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	profile, err := h.deps.FindPlayer(r.Context(), name)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

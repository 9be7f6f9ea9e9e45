package handlers

import (
	"net/http"

	"wishbloom-backend/application/services"
	"wishbloom-backend/pkg/common"
	apperrors "wishbloom-backend/pkg/errors"
)

// StatsHandler serves the public aggregate counters.
type StatsHandler struct {
	blooms *services.WishBloomService
	errors *apperrors.Handler
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(blooms *services.WishBloomService, errors *apperrors.Handler) *StatsHandler {
	return &StatsHandler{blooms: blooms, errors: errors}
}

// Count handles GET /stats/count.
func (h *StatsHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.blooms.CountActive(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]int{"count": n})
}

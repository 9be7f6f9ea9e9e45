package handlers

import (
	"net/http"

	"wishbloom-backend/application/services"
	"wishbloom-backend/domain/draft"
	"wishbloom-backend/domain/wishbloom"
	"wishbloom-backend/pkg/auth"
	"wishbloom-backend/pkg/common"
	apperrors "wishbloom-backend/pkg/errors"
	"wishbloom-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxDraftBody = 1 << 20 // 1 MiB

// DraftHandler serves the creation-wizard draft endpoints.
type DraftHandler struct {
	drafts  *services.DraftService
	publish *services.PublishService
	errors  *apperrors.Handler
	logger  *zap.Logger
}

// NewDraftHandler creates a draft handler.
func NewDraftHandler(drafts *services.DraftService, publish *services.PublishService, errors *apperrors.Handler, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, publish: publish, errors: errors, logger: logger}
}

// SaveDraftRequest is the upsert body. Absent fields keep the draft's
// current values.
type SaveDraftRequest struct {
	Step     *int                   `json:"step,omitempty" validate:"omitempty,gte=1,lte=6"`
	Progress *int                   `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Payload  *wishbloom.CreateInput `json:"payload,omitempty"`
}

// DraftSummary is the identity slice of a draft returned by mutations and
// listings; the full payload only travels on a direct get.
type DraftSummary struct {
	ID          string `json:"id"`
	Step        int    `json:"step"`
	Progress    int    `json:"progress"`
	LastUpdated string `json:"lastUpdated"`
	ExpiresAt   string `json:"expiresAt"`
}

func summarize(d *draft.Draft) DraftSummary {
	return DraftSummary{
		ID:          d.ID,
		Step:        d.Step,
		Progress:    d.Progress,
		LastUpdated: d.LastUpdated.UTC().Format(timeLayout),
		ExpiresAt:   d.ExpiresAt.UTC().Format(timeLayout),
	}
}

// SaveDraft handles POST /drafts.
func (h *DraftHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}

	var req SaveDraftRequest
	if err := common.ParseJSONBody(r, &req, maxDraftBody); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body", map[string]string{"body": err.Error()}))
		return
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid draft", fields))
		return
	}

	d, err := h.drafts.Save(r.Context(), user.UserID, draft.Update{
		Step:     req.Step,
		Progress: req.Progress,
		Payload:  req.Payload,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, summarize(d))
}

// ListDrafts handles GET /drafts.
func (h *DraftHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}

	drafts, err := h.drafts.List(r.Context(), user.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	summaries := make([]DraftSummary, len(drafts))
	for i, d := range drafts {
		summaries[i] = summarize(d)
	}
	common.RespondJSON(w, http.StatusOK, summaries)
}

// GetDraft handles GET /drafts/{draftID}.
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}

	d, err := h.drafts.Get(r.Context(), user.UserID, chi.URLParam(r, "draftID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, d)
}

// DeleteDraft handles DELETE /drafts/{draftID}.
func (h *DraftHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}

	if err := h.drafts.Delete(r.Context(), user.UserID, chi.URLParam(r, "draftID")); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "draftID")})
}

// Publish handles POST /drafts/{draftID}/publish.
func (h *DraftHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError(""))
		return
	}

	result, err := h.publish.Publish(r.Context(), user.UserID, chi.URLParam(r, "draftID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

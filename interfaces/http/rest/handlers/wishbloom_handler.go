package handlers

import (
	"net/http"
	"time"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/application/services"
	"wishbloom-backend/domain/wishbloom"
	"wishbloom-backend/pkg/common"
	apperrors "wishbloom-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	timeLayout       = time.RFC3339
	maxWishBloomBody = 2 << 20 // 2 MiB
)

// WishBloomHandler serves the published-document endpoints.
type WishBloomHandler struct {
	blooms  *services.WishBloomService
	publish *services.PublishService
	errors  *apperrors.Handler
	logger  *zap.Logger
}

// NewWishBloomHandler creates a wishbloom handler.
func NewWishBloomHandler(blooms *services.WishBloomService, publish *services.PublishService, errors *apperrors.Handler, logger *zap.Logger) *WishBloomHandler {
	return &WishBloomHandler{blooms: blooms, publish: publish, errors: errors, logger: logger}
}

// PatchRequest is the partial-update body. Only present fields change.
type PatchRequest struct {
	RecipientName          *string   `json:"recipientName,omitempty"`
	Age                    *int      `json:"age,omitempty"`
	CreativeAgeDescription *string   `json:"creativeAgeDescription,omitempty"`
	IntroMessage           *string   `json:"introMessage,omitempty"`
	CelebrationWishPhrases *[]string `json:"celebrationWishPhrases,omitempty"`
}

// Create handles POST /wishblooms: a direct publish that skips the draft
// wizard but runs the same pipeline.
func (h *WishBloomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in wishbloom.CreateInput
	if err := common.ParseJSONBody(r, &in, maxWishBloomBody); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body", map[string]string{"body": err.Error()}))
		return
	}

	doc, err := h.publish.CreateDocument(r.Context(), in)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, doc)
}

// List handles GET /wishblooms.
func (h *WishBloomHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.blooms.List(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, docs)
}

// Get handles GET /wishblooms/{id}. The id may be a share slug or a raw
// document id; the view counter is bumped on every successful read.
func (h *WishBloomHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.blooms.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, doc)
}

// Patch handles PATCH /wishblooms/{id}.
func (h *WishBloomHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchRequest
	if err := common.ParseJSONBody(r, &req, maxWishBloomBody); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body", map[string]string{"body": err.Error()}))
		return
	}

	doc, err := h.blooms.Patch(r.Context(), chi.URLParam(r, "id"), ports.WishBloomPatch{
		RecipientName:          req.RecipientName,
		Age:                    req.Age,
		CreativeAgeDescription: req.CreativeAgeDescription,
		IntroMessage:           req.IntroMessage,
		CelebrationWishPhrases: req.CelebrationWishPhrases,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /wishblooms/{id}: a soft archive, the document
// stays in storage but drops out of every public read path.
func (h *WishBloomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.blooms.Archive(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id")})
}

package handlers

import (
	"net/http"

	"wishbloom-backend/application/services"
	"wishbloom-backend/pkg/common"
	apperrors "wishbloom-backend/pkg/errors"
	"wishbloom-backend/pkg/utils"

	"go.uber.org/zap"
)

const maxGuestbookBody = 16 << 10 // 16 KiB

// GuestbookHandler serves the public guestbook endpoints. Both take the
// target document as a wishbloomId query parameter holding the share slug.
type GuestbookHandler struct {
	guestbook *services.GuestbookService
	errors    *apperrors.Handler
	logger    *zap.Logger
}

// NewGuestbookHandler creates a guestbook handler.
func NewGuestbookHandler(guestbook *services.GuestbookService, errors *apperrors.Handler, logger *zap.Logger) *GuestbookHandler {
	return &GuestbookHandler{guestbook: guestbook, errors: errors, logger: logger}
}

// Add handles POST /guestbook?wishbloomId=<slug>.
func (h *GuestbookHandler) Add(w http.ResponseWriter, r *http.Request) {
	wishbloomID := r.URL.Query().Get("wishbloomId")
	if wishbloomID == "" {
		h.errors.Handle(w, r, apperrors.NewValidationError("missing wishbloomId", map[string]string{
			"wishbloomId": "wishbloomId query parameter is required",
		}))
		return
	}

	var in services.AddEntryInput
	if err := common.ParseJSONBody(r, &in, maxGuestbookBody); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body", map[string]string{"body": err.Error()}))
		return
	}
	if fields := utils.ValidateStruct(in); fields != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid guestbook entry", fields))
		return
	}

	entry, err := h.guestbook.Add(r.Context(), wishbloomID, in)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, entry)
}

// List handles GET /guestbook?wishbloomId=<slug>.
func (h *GuestbookHandler) List(w http.ResponseWriter, r *http.Request) {
	wishbloomID := r.URL.Query().Get("wishbloomId")
	if wishbloomID == "" {
		h.errors.Handle(w, r, apperrors.NewValidationError("missing wishbloomId", map[string]string{
			"wishbloomId": "wishbloomId query parameter is required",
		}))
		return
	}

	entries, err := h.guestbook.List(r.Context(), wishbloomID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, entries)
}

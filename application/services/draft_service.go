package services

import (
	"context"
	"errors"
	"time"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/domain/draft"
	apperrors "wishbloom-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftService manages creation-wizard drafts: one active draft per user,
// upserted on every save, expiring 30 days after the last write.
type DraftService struct {
	drafts ports.DraftRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewDraftService creates a draft service.
func NewDraftService(drafts ports.DraftRepository, logger *zap.Logger) *DraftService {
	return &DraftService{
		drafts: drafts,
		logger: logger,
		now:    time.Now,
	}
}

// Save upserts the caller's draft. An existing draft is merged with the
// provided fields and its expiry refreshed; otherwise a new draft is
// created with wizard defaults. The payload shape is only progressively
// validated here; the full contract is enforced at publish.
func (s *DraftService) Save(ctx context.Context, userID string, upd draft.Update) (*draft.Draft, error) {
	now := s.now()

	d, err := s.drafts.GetLatestByUser(ctx, userID)
	switch {
	case err == nil:
		d.Apply(upd, now)
	case errors.Is(err, ports.ErrNotFound):
		d = draft.New(uuid.New().String(), userID, now)
		d.Apply(upd, now)
	default:
		return nil, apperrors.NewDatabaseError("load draft", err)
	}

	if fields := d.Validate(); len(fields) > 0 {
		return nil, apperrors.NewValidationError("invalid draft", fields)
	}

	if err := s.drafts.Put(ctx, d); err != nil {
		return nil, apperrors.NewDatabaseError("save draft", err)
	}

	s.logger.Debug("draft saved",
		zap.String("draftID", d.ID),
		zap.Int("step", d.Step),
		zap.Int("progress", d.Progress),
	)
	return d, nil
}

// Get returns a draft after checking ownership.
func (s *DraftService) Get(ctx context.Context, userID, draftID string) (*draft.Draft, error) {
	d, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("draft")
		}
		return nil, apperrors.NewDatabaseError("load draft", err)
	}
	if d.UserID != userID {
		return nil, apperrors.NewForbiddenError("draft belongs to another user")
	}
	return d, nil
}

// List returns the caller's drafts, most recently updated first.
func (s *DraftService) List(ctx context.Context, userID string) ([]*draft.Draft, error) {
	drafts, err := s.drafts.ListByUser(ctx, userID, draft.MaxList)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list drafts", err)
	}
	return drafts, nil
}

// Delete removes a draft after checking ownership.
func (s *DraftService) Delete(ctx context.Context, userID, draftID string) error {
	if _, err := s.Get(ctx, userID, draftID); err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, draftID); err != nil {
		return apperrors.NewDatabaseError("delete draft", err)
	}
	return nil
}

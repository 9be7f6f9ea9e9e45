package services

import (
	"context"
	"errors"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/domain/wishbloom"
	apperrors "wishbloom-backend/pkg/errors"

	"go.uber.org/zap"
)

// MaxList caps the admin-style listing of published documents.
const MaxList = 50

// WishBloomService serves the read/update/archive surface of published
// documents.
type WishBloomService struct {
	blooms ports.WishBloomRepository
	logger *zap.Logger
}

// NewWishBloomService creates a wishbloom service.
func NewWishBloomService(blooms ports.WishBloomRepository, logger *zap.Logger) *WishBloomService {
	return &WishBloomService{blooms: blooms, logger: logger}
}

// resolve looks a document up by its public share slug first, then by raw
// id. Archived documents resolve; callers that must exclude them check
// IsArchived.
func (s *WishBloomService) resolve(ctx context.Context, id string) (*wishbloom.WishBloom, error) {
	doc, err := s.blooms.GetByUniqueURL(ctx, id)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, apperrors.NewDatabaseError("load wishbloom", err)
	}

	doc, err = s.blooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("wishbloom")
		}
		return nil, apperrors.NewDatabaseError("load wishbloom", err)
	}
	return doc, nil
}

// Get returns a non-archived document for the public read view and bumps
// its view counter. The increment is atomic server-side; a counter failure
// is logged but never blocks the read.
func (s *WishBloomService) Get(ctx context.Context, id string) (*wishbloom.WishBloom, error) {
	doc, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.IsArchived {
		return nil, apperrors.NewNotFoundError("wishbloom")
	}

	if err := s.blooms.IncrementViewCount(ctx, doc.ID); err != nil {
		s.logger.Warn("view count increment failed",
			zap.String("wishbloomID", doc.ID),
			zap.Error(err),
		)
	} else {
		doc.ViewCount++
	}

	return doc, nil
}

// List returns non-archived documents, newest first, capped at MaxList.
func (s *WishBloomService) List(ctx context.Context) ([]*wishbloom.WishBloom, error) {
	docs, err := s.blooms.List(ctx, MaxList)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list wishblooms", err)
	}
	return docs, nil
}

// Patch applies a partial update. The id must be a 10-char share slug or a
// 24-char raw id.
func (s *WishBloomService) Patch(ctx context.Context, id string, patch ports.WishBloomPatch) (*wishbloom.WishBloom, error) {
	if len(id) != 10 && len(id) != 24 {
		return nil, apperrors.NewValidationError("invalid wishbloom id", map[string]string{
			"id": "id must be 10 or 24 characters",
		})
	}

	doc, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.IsArchived {
		return nil, apperrors.NewNotFoundError("wishbloom")
	}

	if err := s.blooms.Patch(ctx, doc.ID, patch); err != nil {
		return nil, apperrors.NewDatabaseError("patch wishbloom", err)
	}

	return s.resolve(ctx, doc.ID)
}

// Archive soft-deletes a document.
func (s *WishBloomService) Archive(ctx context.Context, id string) error {
	doc, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := s.blooms.Archive(ctx, doc.ID); err != nil {
		return apperrors.NewDatabaseError("archive wishbloom", err)
	}
	s.logger.Info("wishbloom archived", zap.String("wishbloomID", doc.ID))
	return nil
}

// CountActive returns the number of non-archived documents.
func (s *WishBloomService) CountActive(ctx context.Context) (int, error) {
	n, err := s.blooms.CountActive(ctx)
	if err != nil {
		return 0, apperrors.NewDatabaseError("count wishblooms", err)
	}
	return n, nil
}

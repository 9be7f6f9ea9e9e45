package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/domain/moderation"
	"wishbloom-backend/domain/wishbloom"
	apperrors "wishbloom-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GuestbookService manages the bounded list of public notes on a published
// document. Entries are moderated, sanitized and capped.
type GuestbookService struct {
	blooms ports.WishBloomRepository
	logger *zap.Logger
	now    func() time.Time
}

// AddEntryInput is a guestbook submission before moderation.
type AddEntryInput struct {
	Name    string               `json:"name" validate:"required,min=1,max=60"`
	Message string               `json:"message" validate:"required,min=1,max=500"`
	Color   wishbloom.EntryColor `json:"color" validate:"required,oneof=rose peach lavender mint sky gold"`
}

// NewGuestbookService creates a guestbook service.
func NewGuestbookService(blooms ports.WishBloomRepository, logger *zap.Logger) *GuestbookService {
	return &GuestbookService{blooms: blooms, logger: logger, now: time.Now}
}

// Add moderates and sanitizes a submission, then appends it atomically.
// The append fails once the document holds GuestbookCap entries.
func (s *GuestbookService) Add(ctx context.Context, wishbloomID string, in AddEntryInput) (*wishbloom.GuestbookEntry, error) {
	doc, err := s.lookup(ctx, wishbloomID)
	if err != nil {
		return nil, err
	}

	var issues []apperrors.FieldIssue
	for _, field := range []struct{ name, text string }{
		{"name", in.Name},
		{"message", in.Message},
	} {
		res := moderation.ModerateText(field.text)
		for _, reason := range res.Reasons {
			issues = append(issues, apperrors.FieldIssue{Field: field.name, Reason: reason})
		}
	}
	if len(issues) > 0 {
		return nil, apperrors.NewModerationError(issues)
	}

	entry := wishbloom.GuestbookEntry{
		ID:        uuid.New().String(),
		Name:      moderation.SanitizeText(in.Name),
		Message:   moderation.SanitizeText(in.Message),
		Color:     in.Color,
		CreatedAt: s.now(),
	}

	if err := s.blooms.AppendGuestbookEntry(ctx, doc.ID, entry); err != nil {
		if errors.Is(err, ports.ErrGuestbookFull) {
			return nil, apperrors.NewConflictError("guestbook is full").WithCode("GUESTBOOK_FULL")
		}
		return nil, apperrors.NewDatabaseError("append guestbook entry", err)
	}

	s.logger.Debug("guestbook entry added",
		zap.String("wishbloomID", doc.ID),
		zap.String("entryID", entry.ID),
	)
	return &entry, nil
}

// List returns a document's guestbook entries, newest first.
func (s *GuestbookService) List(ctx context.Context, wishbloomID string) ([]wishbloom.GuestbookEntry, error) {
	doc, err := s.lookup(ctx, wishbloomID)
	if err != nil {
		return nil, err
	}

	entries := append([]wishbloom.GuestbookEntry(nil), doc.Guestbook...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *GuestbookService) lookup(ctx context.Context, wishbloomID string) (*wishbloom.WishBloom, error) {
	doc, err := s.blooms.GetByUniqueURL(ctx, wishbloomID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("wishbloom")
		}
		return nil, apperrors.NewDatabaseError("load wishbloom", err)
	}
	if doc.IsArchived {
		return nil, apperrors.NewNotFoundError("wishbloom")
	}
	return doc, nil
}

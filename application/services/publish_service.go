package services

import (
	"context"
	"time"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/domain/moderation"
	"wishbloom-backend/domain/wishbloom"
	apperrors "wishbloom-backend/pkg/errors"
	"wishbloom-backend/pkg/shortid"

	"go.uber.org/zap"
)

// PublishService turns a validated creation payload into a published
// document: validation, moderation, id assignment, contributor
// aggregation, unique URL generation and the final atomic write. Every
// step before the write is a hard gate with no side effect on persisted
// state.
type PublishService struct {
	blooms ports.WishBloomRepository
	drafts *DraftService
	logger *zap.Logger
	now    func() time.Time
	newID  func(length int) string
}

// PublishResult is returned to the caller on a successful publish.
type PublishResult struct {
	ID          string    `json:"id"`
	UniqueURL   string    `json:"uniqueUrl"`
	CreatedDate time.Time `json:"createdDate"`
}

// NewPublishService creates a publish service.
func NewPublishService(blooms ports.WishBloomRepository, drafts *DraftService, logger *zap.Logger) *PublishService {
	return &PublishService{
		blooms: blooms,
		drafts: drafts,
		logger: logger,
		now:    time.Now,
		newID:  shortid.New,
	}
}

// Publish runs the full pipeline on a draft owned by userID. On success
// the draft is deleted best-effort: a cleanup failure is logged, not
// rolled back, since the document is already live.
func (s *PublishService) Publish(ctx context.Context, userID, draftID string) (*PublishResult, error) {
	d, err := s.drafts.Get(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	doc, err := s.CreateDocument(ctx, d.Payload)
	if err != nil {
		return nil, err
	}

	if err := s.drafts.drafts.Delete(ctx, d.ID); err != nil {
		s.logger.Warn("draft cleanup failed after publish",
			zap.String("draftID", d.ID),
			zap.String("wishbloomID", doc.ID),
			zap.Error(err),
		)
	}

	return &PublishResult{
		ID:          doc.ID,
		UniqueURL:   doc.UniqueURL,
		CreatedDate: doc.CreatedDate,
	}, nil
}

// CreateDocument validates, moderates and persists a creation payload.
// It is shared by the publish pipeline and the direct-create endpoint.
func (s *PublishService) CreateDocument(ctx context.Context, in wishbloom.CreateInput) (*wishbloom.WishBloom, error) {
	if fields := wishbloom.ValidateInput(in); len(fields) > 0 {
		return nil, apperrors.NewValidationError("incomplete wishbloom", fields)
	}

	if res := moderation.ModerateWishBloom(in); !res.Approved {
		issues := make([]apperrors.FieldIssue, len(res.Issues))
		for i, issue := range res.Issues {
			issues[i] = apperrors.FieldIssue{Field: issue.Field, Reason: issue.Reason}
		}
		return nil, apperrors.NewModerationError(issues)
	}

	now := s.now()
	s.assignIDs(&in, now)

	contributors := wishbloom.AggregateContributors(in.CreatedBy, in.Memories, in.Messages)

	uniqueURL, err := s.generateUniqueURL(ctx)
	if err != nil {
		return nil, err
	}

	phrases := in.CelebrationWishPhrases
	if len(phrases) == 0 {
		phrases = append([]string(nil), wishbloom.DefaultCelebrationPhrases...)
	}

	doc := &wishbloom.WishBloom{
		ID:                     shortid.NewDocumentID(),
		RecipientName:          in.RecipientName,
		Age:                    in.Age,
		CreativeAgeDescription: in.CreativeAgeDescription,
		IntroMessage:           in.IntroMessage,
		UniqueURL:              uniqueURL,
		CreatedBy:              contributors[0],
		Contributors:           contributors,
		Memories:               in.Memories,
		Messages:               in.Messages,
		CelebrationWishPhrases: phrases,
		Guestbook:              []wishbloom.GuestbookEntry{},
		CreatedDate:            now,
		ViewCount:              0,
		IsArchived:             false,
	}

	if err := s.blooms.Create(ctx, doc); err != nil {
		return nil, apperrors.NewDatabaseError("create wishbloom", err)
	}

	s.logger.Info("wishbloom published",
		zap.String("wishbloomID", doc.ID),
		zap.String("uniqueUrl", doc.UniqueURL),
		zap.Int("memories", len(doc.Memories)),
		zap.Int("messages", len(doc.Messages)),
		zap.Int("contributors", len(doc.Contributors)),
	)
	return doc, nil
}

// assignIDs gives every memory, message and contributor missing an id a
// generated one. Existing ids are preserved so a retried publish is
// idempotent on identity.
func (s *PublishService) assignIDs(in *wishbloom.CreateInput, now time.Time) {
	if in.CreatedBy.ID == "" {
		in.CreatedBy.ID = s.newID(shortid.ContentIDLength)
	}
	for i := range in.Memories {
		m := &in.Memories[i]
		if m.ID == "" {
			m.ID = s.newID(shortid.ContentIDLength)
		}
		if m.Contributor.ID == "" {
			m.Contributor.ID = s.newID(shortid.ContentIDLength)
		}
		if m.Type == "" {
			m.Type = wishbloom.MemoryStandard
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
	}
	for i := range in.Messages {
		msg := &in.Messages[i]
		if msg.ID == "" {
			msg.ID = s.newID(shortid.ContentIDLength)
		}
		if msg.Contributor.ID == "" {
			msg.Contributor.ID = s.newID(shortid.ContentIDLength)
		}
	}
}

// generateUniqueURL draws random slugs until one is unused, bounded at
// URLAttempts tries to keep request latency predictable.
func (s *PublishService) generateUniqueURL(ctx context.Context) (string, error) {
	for attempt := 0; attempt < wishbloom.URLAttempts; attempt++ {
		candidate := s.newID(shortid.URLLength)
		exists, err := s.blooms.UniqueURLExists(ctx, candidate)
		if err != nil {
			return "", apperrors.NewDatabaseError("check unique URL", err)
		}
		if !exists {
			return candidate, nil
		}
		s.logger.Warn("unique URL collision",
			zap.String("candidate", candidate),
			zap.Int("attempt", attempt+1),
		)
	}
	return "", apperrors.NewExhaustedError("unique URL generation exhausted")
}

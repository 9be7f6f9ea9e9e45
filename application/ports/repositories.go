// Package ports defines the persistence interfaces the application layer
// depends on. Implementations live under infrastructure/persistence.
package ports

import (
	"context"
	"errors"

	"wishbloom-backend/domain/draft"
	"wishbloom-backend/domain/wishbloom"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrGuestbookFull is returned when a conditional append hits the entry cap.
var ErrGuestbookFull = errors.New("guestbook is full")

// ErrAlreadyExists is returned by conditional creates on key collision.
var ErrAlreadyExists = errors.New("record already exists")

// WishBloomPatch carries the fields of a partial update; nil means leave
// unchanged.
type WishBloomPatch struct {
	RecipientName          *string
	Age                    *int
	CreativeAgeDescription *string
	IntroMessage           *string
	CelebrationWishPhrases *[]string
}

// WishBloomRepository persists published documents. All mutations of a
// shared document must go through the store's atomic update primitives.
type WishBloomRepository interface {
	// Create writes a new document, failing with ErrAlreadyExists on id
	// collision.
	Create(ctx context.Context, doc *wishbloom.WishBloom) error

	// GetByID fetches a document by its raw id, archived or not.
	GetByID(ctx context.Context, id string) (*wishbloom.WishBloom, error)

	// GetByUniqueURL fetches a document by its public share slug.
	GetByUniqueURL(ctx context.Context, url string) (*wishbloom.WishBloom, error)

	// UniqueURLExists reports whether any document, archived included,
	// already owns the slug.
	UniqueURLExists(ctx context.Context, url string) (bool, error)

	// List returns non-archived documents, newest first, up to limit.
	List(ctx context.Context, limit int) ([]*wishbloom.WishBloom, error)

	// Patch applies a partial field update.
	Patch(ctx context.Context, id string, patch WishBloomPatch) error

	// Archive soft-deletes a document.
	Archive(ctx context.Context, id string) error

	// IncrementViewCount bumps the view counter atomically.
	IncrementViewCount(ctx context.Context, id string) error

	// AppendGuestbookEntry atomically appends an entry, failing with
	// ErrGuestbookFull once the cap is reached.
	AppendGuestbookEntry(ctx context.Context, id string, entry wishbloom.GuestbookEntry) error

	// CountActive returns the number of non-archived documents.
	CountActive(ctx context.Context) (int, error)
}

// DraftRepository persists creation-wizard drafts.
type DraftRepository interface {
	// Get fetches a draft by id regardless of owner; the service layer is
	// responsible for the ownership check so it can distinguish 403 from
	// 404.
	Get(ctx context.Context, draftID string) (*draft.Draft, error)

	// GetLatestByUser returns the user's most recently updated draft, or
	// ErrNotFound.
	GetLatestByUser(ctx context.Context, userID string) (*draft.Draft, error)

	// Put upserts a draft.
	Put(ctx context.Context, d *draft.Draft) error

	// ListByUser returns the user's drafts, most recently updated first,
	// up to limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]*draft.Draft, error)

	// Delete removes a draft.
	Delete(ctx context.Context, draftID string) error
}

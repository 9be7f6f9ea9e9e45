package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wishbloom-backend/domain/wishbloom"
	apperrors "wishbloom-backend/pkg/errors"
	"wishbloom-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGuestbookFixture(t *testing.T) (*GuestbookService, *memory.WishBloomStore, *wishbloom.WishBloom) {
	t.Helper()
	blooms := memory.NewWishBloomStore()
	doc := &wishbloom.WishBloom{
		ID:            "64b1f0a2c3d4e5f60718293a",
		RecipientName: "Maya",
		UniqueURL:     "abcdefghjk",
	}
	require.NoError(t, blooms.Create(context.Background(), doc))
	return NewGuestbookService(blooms, zap.NewNop()), blooms, doc
}

func TestGuestbookAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a sanitized entry", func(t *testing.T) {
		svc, blooms, doc := newGuestbookFixture(t)

		entry, err := svc.Add(ctx, doc.UniqueURL, AddEntryInput{
			Name:    "Ben",
			Message: "<p>Happy birthday   Maya!</p>",
			Color:   wishbloom.ColorMint,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "Happy birthday Maya!", entry.Message)
		assert.Equal(t, wishbloom.ColorMint, entry.Color)
		assert.False(t, entry.CreatedAt.IsZero())

		stored, err := blooms.GetByID(ctx, doc.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Guestbook, 1)
	})

	t.Run("rejects flagged content before writing", func(t *testing.T) {
		svc, blooms, doc := newGuestbookFixture(t)

		_, err := svc.Add(ctx, doc.UniqueURL, AddEntryInput{
			Name:    "Ben",
			Message: "click here for free money",
			Color:   wishbloom.ColorRose,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModeration))

		stored, _ := blooms.GetByID(ctx, doc.ID)
		assert.Empty(t, stored.Guestbook)
	})

	t.Run("unknown document", func(t *testing.T) {
		svc, _, _ := newGuestbookFixture(t)

		_, err := svc.Add(ctx, "nosuchslug", AddEntryInput{Name: "Ben", Message: "Hi", Color: wishbloom.ColorRose})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("archived document reads as missing", func(t *testing.T) {
		svc, blooms, doc := newGuestbookFixture(t)
		require.NoError(t, blooms.Archive(ctx, doc.ID))

		_, err := svc.Add(ctx, doc.UniqueURL, AddEntryInput{Name: "Ben", Message: "Hi", Color: wishbloom.ColorRose})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("cap rejects the entry past the limit", func(t *testing.T) {
		svc, blooms, doc := newGuestbookFixture(t)
		for i := 0; i < wishbloom.GuestbookCap; i++ {
			require.NoError(t, blooms.AppendGuestbookEntry(ctx, doc.ID, wishbloom.GuestbookEntry{
				ID: fmt.Sprintf("entry-%d", i),
			}))
		}

		_, err := svc.Add(ctx, doc.UniqueURL, AddEntryInput{Name: "Ben", Message: "Hi", Color: wishbloom.ColorRose})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "GUESTBOOK_FULL", appErr.Code)
	})
}

func TestGuestbookList(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		svc, blooms, doc := newGuestbookFixture(t)
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			require.NoError(t, blooms.AppendGuestbookEntry(ctx, doc.ID, wishbloom.GuestbookEntry{
				ID:        fmt.Sprintf("entry-%d", i),
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}))
		}

		entries, err := svc.List(ctx, doc.UniqueURL)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "entry-2", entries[0].ID)
		assert.Equal(t, "entry-0", entries[2].ID)
	})

	t.Run("empty guestbook", func(t *testing.T) {
		svc, _, doc := newGuestbookFixture(t)

		entries, err := svc.List(ctx, doc.UniqueURL)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

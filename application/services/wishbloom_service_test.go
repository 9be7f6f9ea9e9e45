package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/domain/wishbloom"
	apperrors "wishbloom-backend/pkg/errors"
	"wishbloom-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func seedBloom(t *testing.T, blooms *memory.WishBloomStore, id, url string, created time.Time) *wishbloom.WishBloom {
	t.Helper()
	doc := &wishbloom.WishBloom{
		ID:            id,
		RecipientName: "Maya",
		IntroMessage:  "Happy birthday",
		UniqueURL:     url,
		CreatedDate:   created,
	}
	require.NoError(t, blooms.Create(context.Background(), doc))
	return doc
}

func TestWishBloomGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("resolves by share slug and bumps views", func(t *testing.T) {
		blooms := memory.NewWishBloomStore()
		svc := NewWishBloomService(blooms, zap.NewNop())
		seedBloom(t, blooms, "64b1f0a2c3d4e5f60718293a", "abcdefghjk", now)

		doc, err := svc.Get(ctx, "abcdefghjk")
		require.NoError(t, err)
		assert.Equal(t, 1, doc.ViewCount)

		doc, err = svc.Get(ctx, "abcdefghjk")
		require.NoError(t, err)
		assert.Equal(t, 2, doc.ViewCount)
	})

	t.Run("resolves by raw id", func(t *testing.T) {
		blooms := memory.NewWishBloomStore()
		svc := NewWishBloomService(blooms, zap.NewNop())
		seedBloom(t, blooms, "64b1f0a2c3d4e5f60718293a", "abcdefghjk", now)

		doc, err := svc.Get(ctx, "64b1f0a2c3d4e5f60718293a")
		require.NoError(t, err)
		assert.Equal(t, "abcdefghjk", doc.UniqueURL)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewWishBloomService(memory.NewWishBloomStore(), zap.NewNop())

		_, err := svc.Get(ctx, "missing")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("archived document reads as missing", func(t *testing.T) {
		blooms := memory.NewWishBloomStore()
		svc := NewWishBloomService(blooms, zap.NewNop())
		doc := seedBloom(t, blooms, "64b1f0a2c3d4e5f60718293a", "abcdefghjk", now)
		require.NoError(t, blooms.Archive(ctx, doc.ID))

		_, err := svc.Get(ctx, "abcdefghjk")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestWishBloomList(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("newest first, archived excluded", func(t *testing.T) {
		blooms := memory.NewWishBloomStore()
		svc := NewWishBloomService(blooms, zap.NewNop())

		old := seedBloom(t, blooms, "a0000000000000000000000a", "url0000001", base)
		seedBloom(t, blooms, "a0000000000000000000000b", "url0000002", base.Add(time.Hour))
		archived := seedBloom(t, blooms, "a0000000000000000000000c", "url0000003", base.Add(2*time.Hour))
		require.NoError(t, blooms.Archive(ctx, archived.ID))

		docs, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "a0000000000000000000000b", docs[0].ID)
		assert.Equal(t, old.ID, docs[1].ID)
	})

	t.Run("caps at MaxList", func(t *testing.T) {
		blooms := memory.NewWishBloomStore()
		svc := NewWishBloomService(blooms, zap.NewNop())

		for i := 0; i < MaxList+5; i++ {
			seedBloom(t, blooms,
				fmt.Sprintf("%024d", i),
				fmt.Sprintf("url%07d", i),
				base.Add(time.Duration(i)*time.Minute))
		}

		docs, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, MaxList)
	})
}

func TestWishBloomPatch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("id length is validated", func(t *testing.T) {
		svc := NewWishBloomService(memory.NewWishBloomStore(), zap.NewNop())

		_, err := svc.Patch(ctx, "short", ports.WishBloomPatch{})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		fields := appErr.Details["fields"].(map[string]string)
		assert.Equal(t, "id must be 10 or 24 characters", fields["id"])
	})

	t.Run("patches by slug, present fields only", func(t *testing.T) {
		blooms := memory.NewWishBloomStore()
		svc := NewWishBloomService(blooms, zap.NewNop())
		seedBloom(t, blooms, "64b1f0a2c3d4e5f60718293a", "abcdefghjk", now)

		doc, err := svc.Patch(ctx, "abcdefghjk", ports.WishBloomPatch{
			IntroMessage: strPtr("Updated intro"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Updated intro", doc.IntroMessage)
		assert.Equal(t, "Maya", doc.RecipientName, "absent fields unchanged")
	})

	t.Run("patches by raw id", func(t *testing.T) {
		blooms := memory.NewWishBloomStore()
		svc := NewWishBloomService(blooms, zap.NewNop())
		seedBloom(t, blooms, "64b1f0a2c3d4e5f60718293a", "abcdefghjk", now)

		phrases := []string{"Shine on!"}
		doc, err := svc.Patch(ctx, "64b1f0a2c3d4e5f60718293a", ports.WishBloomPatch{
			CelebrationWishPhrases: &phrases,
		})
		require.NoError(t, err)
		assert.Equal(t, phrases, doc.CelebrationWishPhrases)
	})

	t.Run("archived document cannot be patched", func(t *testing.T) {
		blooms := memory.NewWishBloomStore()
		svc := NewWishBloomService(blooms, zap.NewNop())
		doc := seedBloom(t, blooms, "64b1f0a2c3d4e5f60718293a", "abcdefghjk", now)
		require.NoError(t, blooms.Archive(ctx, doc.ID))

		_, err := svc.Patch(ctx, "abcdefghjk", ports.WishBloomPatch{IntroMessage: strPtr("x")})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestWishBloomArchive(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	blooms := memory.NewWishBloomStore()
	svc := NewWishBloomService(blooms, zap.NewNop())
	seedBloom(t, blooms, "64b1f0a2c3d4e5f60718293a", "abcdefghjk", now)

	require.NoError(t, svc.Archive(ctx, "abcdefghjk"))

	_, err := svc.Get(ctx, "abcdefghjk")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	n, err := svc.CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

package services

import (
	"context"
	"testing"
	"time"

	"wishbloom-backend/domain/draft"
	"wishbloom-backend/domain/wishbloom"
	apperrors "wishbloom-backend/pkg/errors"
	"wishbloom-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intPtr(n int) *int { return &n }

func newDraftFixture() (*DraftService, *time.Time) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewDraftService(memory.NewDraftStore(), zap.NewNop())
	svc.now = func() time.Time { return current }
	return svc, &current
}

func TestDraftSave(t *testing.T) {
	ctx := context.Background()

	t.Run("first save creates a draft with wizard defaults", func(t *testing.T) {
		svc, clock := newDraftFixture()

		d, err := svc.Save(ctx, "user-1", draft.Update{})
		require.NoError(t, err)

		assert.NotEmpty(t, d.ID)
		assert.Equal(t, "user-1", d.UserID)
		assert.Equal(t, draft.MinStep, d.Step)
		assert.Equal(t, draft.MinProgress, d.Progress)
		assert.Equal(t, clock.Add(draft.TTL), d.ExpiresAt)
	})

	t.Run("second save updates the same draft", func(t *testing.T) {
		svc, clock := newDraftFixture()

		first, err := svc.Save(ctx, "user-1", draft.Update{Step: intPtr(2)})
		require.NoError(t, err)

		*clock = clock.Add(48 * time.Hour)

		second, err := svc.Save(ctx, "user-1", draft.Update{Progress: intPtr(40)})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 2, second.Step, "absent fields keep their value")
		assert.Equal(t, 40, second.Progress)
		assert.Equal(t, clock.Add(draft.TTL), second.ExpiresAt, "expiry moves forward on every write")

		drafts, err := svc.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, drafts, 1)
	})

	t.Run("payload replaces wholesale", func(t *testing.T) {
		svc, _ := newDraftFixture()

		_, err := svc.Save(ctx, "user-1", draft.Update{Payload: &wishbloom.CreateInput{RecipientName: "Maya"}})
		require.NoError(t, err)

		d, err := svc.Save(ctx, "user-1", draft.Update{Payload: &wishbloom.CreateInput{IntroMessage: "Hi"}})
		require.NoError(t, err)
		assert.Empty(t, d.Payload.RecipientName)
		assert.Equal(t, "Hi", d.Payload.IntroMessage)
	})

	t.Run("out-of-range wizard state is rejected", func(t *testing.T) {
		svc, _ := newDraftFixture()

		_, err := svc.Save(ctx, "user-1", draft.Update{Step: intPtr(7)})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("malformed payload fields are rejected progressively", func(t *testing.T) {
		svc, _ := newDraftFixture()

		_, err := svc.Save(ctx, "user-1", draft.Update{Payload: &wishbloom.CreateInput{
			Memories: []wishbloom.Memory{{Date: "bad-date"}},
		}})
		require.Error(t, err)

		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		fields, ok := appErr.Details["fields"].(map[string]string)
		require.True(t, ok)
		assert.Contains(t, fields, "payload.memories[0].date")
	})

	t.Run("incomplete payload is fine while drafting", func(t *testing.T) {
		svc, _ := newDraftFixture()

		_, err := svc.Save(ctx, "user-1", draft.Update{Payload: &wishbloom.CreateInput{
			RecipientName: "Maya",
		}})
		assert.NoError(t, err)
	})
}

func TestDraftGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDraftFixture()

	saved, err := svc.Save(ctx, "user-1", draft.Update{})
	require.NoError(t, err)

	t.Run("owner reads own draft", func(t *testing.T) {
		d, err := svc.Get(ctx, "user-1", saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, d.ID)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		_, err := svc.Get(ctx, "user-2", saved.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("unknown draft", func(t *testing.T) {
		_, err := svc.Get(ctx, "user-1", "missing")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestDraftDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDraftFixture()

	saved, err := svc.Save(ctx, "user-1", draft.Update{})
	require.NoError(t, err)

	t.Run("other user cannot delete", func(t *testing.T) {
		err := svc.Delete(ctx, "user-2", saved.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "user-1", saved.ID))

		_, err := svc.Get(ctx, "user-1", saved.ID)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

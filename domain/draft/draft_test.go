package draft

import (
	"testing"
	"time"

	"wishbloom-backend/domain/wishbloom"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestApply(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("merges present fields", func(t *testing.T) {
		d := New("d1", "user-1", base)

		d.Apply(Update{Step: intPtr(3)}, base)

		assert.Equal(t, 3, d.Step)
		assert.Equal(t, MinProgress, d.Progress)
	})

	t.Run("every write refreshes expiry", func(t *testing.T) {
		d := New("d1", "user-1", base)
		assert.Equal(t, base.Add(TTL), d.ExpiresAt)

		later := base.Add(72 * time.Hour)
		d.Apply(Update{}, later)

		assert.Equal(t, later, d.LastUpdated)
		assert.Equal(t, later.Add(TTL), d.ExpiresAt)
	})

	t.Run("payload replaces wholesale", func(t *testing.T) {
		d := New("d1", "user-1", base)
		d.Apply(Update{Payload: &wishbloom.CreateInput{RecipientName: "Maya"}}, base)
		d.Apply(Update{Payload: &wishbloom.CreateInput{IntroMessage: "Hi"}}, base)

		assert.Empty(t, d.Payload.RecipientName)
		assert.Equal(t, "Hi", d.Payload.IntroMessage)
	})
}

func TestValidate(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fresh draft is valid", func(t *testing.T) {
		assert.Empty(t, New("d1", "user-1", base).Validate())
	})

	t.Run("wizard bounds", func(t *testing.T) {
		d := New("d1", "user-1", base)
		d.Step = 7
		d.Progress = 101

		fields := d.Validate()
		assert.Contains(t, fields, "step")
		assert.Contains(t, fields, "progress")
	})

	t.Run("payload errors are prefixed", func(t *testing.T) {
		d := New("d1", "user-1", base)
		d.Payload.Memories = []wishbloom.Memory{{Date: "bad"}}

		fields := d.Validate()
		assert.Contains(t, fields, "payload.memories[0].date")
	})
}

package wishbloom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateContributors(t *testing.T) {
	creator := Contributor{ID: "c1", Name: "Ana", Email: "ana@example.com"}

	t.Run("creator only", func(t *testing.T) {
		result := AggregateContributors(creator, nil, nil)

		require.Len(t, result, 1)
		assert.Equal(t, "c1", result[0].ID)
		assert.Equal(t, 1, result[0].ContributionCount)
	})

	t.Run("counts creator contributions on top of the seed", func(t *testing.T) {
		memories := []Memory{
			{ID: "m1", Contributor: Contributor{ID: "c1", Name: "Ana"}},
			{ID: "m2", Contributor: Contributor{ID: "c2", Name: "Ben"}},
		}
		messages := []Message{
			{ID: "t1", Contributor: Contributor{ID: "c1", Name: "Ana"}},
		}

		result := AggregateContributors(creator, memories, messages)

		require.Len(t, result, 2)
		assert.Equal(t, "c1", result[0].ID)
		assert.Equal(t, 3, result[0].ContributionCount) // seed + memory + message
		assert.Equal(t, "c2", result[1].ID)
		assert.Equal(t, 1, result[1].ContributionCount)
	})

	t.Run("preserves first-seen order", func(t *testing.T) {
		memories := []Memory{
			{Contributor: Contributor{ID: "c3", Name: "Cam"}},
			{Contributor: Contributor{ID: "c2", Name: "Ben"}},
			{Contributor: Contributor{ID: "c3", Name: "Cam"}},
		}
		messages := []Message{
			{Contributor: Contributor{ID: "c4", Name: "Dia"}},
			{Contributor: Contributor{ID: "c2", Name: "Ben"}},
		}

		result := AggregateContributors(creator, memories, messages)

		ids := make([]string, len(result))
		for i, c := range result {
			ids[i] = c.ID
		}
		assert.Equal(t, []string{"c1", "c3", "c2", "c4"}, ids)
		assert.Equal(t, 2, result[1].ContributionCount)
		assert.Equal(t, 2, result[2].ContributionCount)
	})

	t.Run("backfills identity from later occurrences", func(t *testing.T) {
		memories := []Memory{
			{Contributor: Contributor{ID: "c5"}},
			{Contributor: Contributor{ID: "c5", Name: "Eve", Email: "eve@example.com"}},
		}

		result := AggregateContributors(creator, memories, nil)

		require.Len(t, result, 2)
		assert.Equal(t, "Eve", result[1].Name)
		assert.Equal(t, "eve@example.com", result[1].Email)
		assert.Equal(t, 2, result[1].ContributionCount)
	})

	t.Run("result is detached from the inputs", func(t *testing.T) {
		memories := []Memory{{Contributor: Contributor{ID: "c6", Name: "Fin"}}}

		result := AggregateContributors(creator, memories, nil)
		result[1].Name = "changed"

		assert.Equal(t, "Fin", memories[0].Contributor.Name)
	})
}

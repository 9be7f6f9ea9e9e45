package wishbloom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() CreateInput {
	return CreateInput{
		RecipientName: "Maya",
		IntroMessage:  "Happy birthday!",
		CreatedBy:     Contributor{Name: "Ana"},
		Memories: []Memory{
			{Title: "Beach day", Description: "That summer", Date: "2024-07-01", Type: MemoryStandard, Contributor: Contributor{Name: "Ana"}},
			{Title: "Graduation", Description: "So proud", Date: "2023-06-15", Type: MemoryFeatured, Contributor: Contributor{Name: "Ben"}},
			{Title: "Road trip", Description: "Lost in Utah", Date: "2022-09-09", Type: MemoryQuote, Contributor: Contributor{Name: "Cam"}},
		},
		Messages: []Message{
			{Type: MessageLetter, Content: "Dear Maya...", Signature: "Ana", Date: "2025-01-01", Contributor: Contributor{Name: "Ana"}},
		},
	}
}

func TestValidateInput(t *testing.T) {
	t.Run("complete payload passes", func(t *testing.T) {
		assert.Empty(t, ValidateInput(validInput()))
	})

	t.Run("missing top-level fields", func(t *testing.T) {
		in := validInput()
		in.RecipientName = "  "
		in.IntroMessage = ""
		in.CreatedBy.Name = ""

		fields := ValidateInput(in)

		assert.Contains(t, fields, "recipientName")
		assert.Contains(t, fields, "introMessage")
		assert.Contains(t, fields, "createdBy.name")
	})

	t.Run("too few memories", func(t *testing.T) {
		in := validInput()
		in.Memories = in.Memories[:2]

		fields := ValidateInput(in)
		assert.Equal(t, "at least 3 memories are required", fields["memories"])
	})

	t.Run("no messages", func(t *testing.T) {
		in := validInput()
		in.Messages = nil

		fields := ValidateInput(in)
		assert.Contains(t, fields, "messages")
	})

	t.Run("indexed field paths", func(t *testing.T) {
		in := validInput()
		in.Memories[1].Date = "15-06-2023"
		in.Memories[2].Title = ""
		in.Messages[0].Signature = " "

		fields := ValidateInput(in)

		assert.Equal(t, "date must be in YYYY-MM-DD format", fields["memories[1].date"])
		assert.Contains(t, fields, "memories[2].title")
		assert.Contains(t, fields, "messages[0].signature")
		assert.NotContains(t, fields, "memories[0].date")
	})

	t.Run("invalid enum values", func(t *testing.T) {
		in := validInput()
		in.Memories[0].Type = "polaroid"
		in.Messages[0].Type = "haiku"

		fields := ValidateInput(in)

		assert.Contains(t, fields, "memories[0].type")
		assert.Contains(t, fields, "messages[0].type")
	})
}

func TestValidatePartial(t *testing.T) {
	t.Run("empty payload is fine", func(t *testing.T) {
		assert.Empty(t, ValidatePartial(CreateInput{}))
	})

	t.Run("missing required fields are ignored", func(t *testing.T) {
		in := CreateInput{
			Memories: []Memory{{Title: "only a title"}},
		}
		assert.Empty(t, ValidatePartial(in))
	})

	t.Run("present fields must be well-formed", func(t *testing.T) {
		in := CreateInput{
			Memories: []Memory{{Date: "not-a-date"}},
			Messages: []Message{{Type: "haiku"}},
		}

		fields := ValidatePartial(in)

		assert.Contains(t, fields, "memories[0].date")
		assert.Contains(t, fields, "messages[0].type")
	})
}

func TestValidEntryColor(t *testing.T) {
	for _, c := range []EntryColor{ColorRose, ColorPeach, ColorLavender, ColorMint, ColorSky, ColorGold} {
		assert.True(t, ValidEntryColor(c), string(c))
	}
	assert.False(t, ValidEntryColor("crimson"))
	assert.False(t, ValidEntryColor(""))
}

func TestDefaultCelebrationPhrases(t *testing.T) {
	assert.Len(t, DefaultCelebrationPhrases, 11)
	for i, p := range DefaultCelebrationPhrases {
		assert.NotEmpty(t, p, "phrase %d", i)
	}
}

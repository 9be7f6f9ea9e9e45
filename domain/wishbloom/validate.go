package wishbloom

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidateInput checks a creation payload against the publishing contract
// and returns a field -> message map, empty when the payload is complete.
// Field paths are indexed ("memories[2].date") so the wizard can highlight
// the offending step.
func ValidateInput(in CreateInput) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(in.RecipientName) == "" {
		fields["recipientName"] = "recipientName is required"
	}
	if strings.TrimSpace(in.IntroMessage) == "" {
		fields["introMessage"] = "introMessage is required"
	}
	if strings.TrimSpace(in.CreatedBy.Name) == "" {
		fields["createdBy.name"] = "creator name is required"
	}

	if len(in.Memories) < MinMemories {
		fields["memories"] = fmt.Sprintf("at least %d memories are required", MinMemories)
	}
	for i, m := range in.Memories {
		validateMemory(fields, fmt.Sprintf("memories[%d]", i), m)
	}

	if len(in.Messages) < MinMessages {
		fields["messages"] = fmt.Sprintf("at least %d message is required", MinMessages)
	}
	for i, msg := range in.Messages {
		validateMessage(fields, fmt.Sprintf("messages[%d]", i), msg)
	}

	return fields
}

// ValidatePartial checks only the fields a draft payload has filled in so
// far. Absent fields are fine; present fields must already be well-formed.
func ValidatePartial(in CreateInput) map[string]string {
	fields := make(map[string]string)

	for i, m := range in.Memories {
		prefix := fmt.Sprintf("memories[%d]", i)
		if m.Date != "" && !validDate(m.Date) {
			fields[prefix+".date"] = "date must be in YYYY-MM-DD format"
		}
		if m.Type != "" && !validMemoryType(m.Type) {
			fields[prefix+".type"] = "type must be standard, featured or quote"
		}
	}
	for i, msg := range in.Messages {
		prefix := fmt.Sprintf("messages[%d]", i)
		if msg.Date != "" && !validDate(msg.Date) {
			fields[prefix+".date"] = "date must be in YYYY-MM-DD format"
		}
		if msg.Type != "" && !validMessageType(msg.Type) {
			fields[prefix+".type"] = "type must be letter or poem"
		}
	}

	return fields
}

func validateMemory(fields map[string]string, prefix string, m Memory) {
	if strings.TrimSpace(m.Title) == "" {
		fields[prefix+".title"] = "title is required"
	}
	if strings.TrimSpace(m.Description) == "" {
		fields[prefix+".description"] = "description must not be empty"
	}
	if m.Date == "" {
		fields[prefix+".date"] = "date is required"
	} else if !validDate(m.Date) {
		fields[prefix+".date"] = "date must be in YYYY-MM-DD format"
	}
	if m.Type != "" && !validMemoryType(m.Type) {
		fields[prefix+".type"] = "type must be standard, featured or quote"
	}
	if strings.TrimSpace(m.Contributor.Name) == "" {
		fields[prefix+".contributor.name"] = "contributor name is required"
	}
}

func validateMessage(fields map[string]string, prefix string, msg Message) {
	if strings.TrimSpace(msg.Content) == "" {
		fields[prefix+".content"] = "content is required"
	}
	if strings.TrimSpace(msg.Signature) == "" {
		fields[prefix+".signature"] = "signature is required"
	}
	if msg.Type == "" {
		fields[prefix+".type"] = "type is required"
	} else if !validMessageType(msg.Type) {
		fields[prefix+".type"] = "type must be letter or poem"
	}
	if msg.Date != "" && !validDate(msg.Date) {
		fields[prefix+".date"] = "date must be in YYYY-MM-DD format"
	}
	if strings.TrimSpace(msg.Contributor.Name) == "" {
		fields[prefix+".contributor.name"] = "contributor name is required"
	}
}

func validMemoryType(t MemoryType) bool {
	switch t {
	case MemoryStandard, MemoryFeatured, MemoryQuote:
		return true
	}
	return false
}

func validMessageType(t MessageType) bool {
	switch t {
	case MessageLetter, MessagePoem:
		return true
	}
	return false
}

// ValidEntryColor reports whether c is one of the guestbook accent colors.
func ValidEntryColor(c EntryColor) bool {
	switch c {
	case ColorRose, ColorPeach, ColorLavender, ColorMint, ColorSky, ColorGold:
		return true
	}
	return false
}

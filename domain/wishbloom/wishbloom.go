// Package wishbloom holds the domain model for published memory books:
// the document itself, its memories, messages, contributors and guestbook.
package wishbloom

import "time"

// MemoryType controls how a memory card renders.
type MemoryType string

const (
	MemoryStandard MemoryType = "standard"
	MemoryFeatured MemoryType = "featured"
	MemoryQuote    MemoryType = "quote"
)

// MessageType distinguishes the two long-form message layouts.
type MessageType string

const (
	MessageLetter MessageType = "letter"
	MessagePoem   MessageType = "poem"
)

// EntryColor is the accent color of a guestbook entry.
type EntryColor string

const (
	ColorRose     EntryColor = "rose"
	ColorPeach    EntryColor = "peach"
	ColorLavender EntryColor = "lavender"
	ColorMint     EntryColor = "mint"
	ColorSky      EntryColor = "sky"
	ColorGold     EntryColor = "gold"
)

const (
	// MinMemories and MinMessages gate publishing.
	MinMemories = 3
	MinMessages = 1

	// GuestbookCap bounds the guestbook; entries past the cap are rejected.
	GuestbookCap = 200

	// URLAttempts bounds the unique-URL collision retry loop.
	URLAttempts = 5
)

// Contributor is a named participant. ContributionCount is the number of
// memories and messages they authored, plus one for the creator.
type Contributor struct {
	ID                string `json:"id" dynamodbav:"ID"`
	Name              string `json:"name" dynamodbav:"Name"`
	Email             string `json:"email,omitempty" dynamodbav:"Email,omitempty"`
	ContributionCount int    `json:"contributionCount" dynamodbav:"ContributionCount"`
}

// Memory is a single photo-or-text moment on the timeline.
type Memory struct {
	ID          string      `json:"id" dynamodbav:"ID"`
	Title       string      `json:"title" dynamodbav:"Title"`
	Description string      `json:"description" dynamodbav:"Description"`
	Date        string      `json:"date" dynamodbav:"Date"` // YYYY-MM-DD
	Contributor Contributor `json:"contributor" dynamodbav:"Contributor"`
	ImageURL    string      `json:"imageUrl,omitempty" dynamodbav:"ImageURL,omitempty"`
	Type        MemoryType  `json:"type" dynamodbav:"Type"`
	Tags        []string    `json:"tags" dynamodbav:"Tags"`
	Rotation    float64     `json:"rotation" dynamodbav:"Rotation"`
	CreatedAt   time.Time   `json:"createdAt" dynamodbav:"CreatedAt"`
}

// Message is a letter or poem addressed to the recipient. Greeting and
// Closing apply to letters, Title and Postscript to poems.
type Message struct {
	ID          string      `json:"id" dynamodbav:"ID"`
	Type        MessageType `json:"type" dynamodbav:"Type"`
	Content     string      `json:"content" dynamodbav:"Content"`
	Signature   string      `json:"signature" dynamodbav:"Signature"`
	Contributor Contributor `json:"contributor" dynamodbav:"Contributor"`
	Date        string      `json:"date" dynamodbav:"Date"` // YYYY-MM-DD
	Greeting    string      `json:"greeting,omitempty" dynamodbav:"Greeting,omitempty"`
	Closing     string      `json:"closing,omitempty" dynamodbav:"Closing,omitempty"`
	Title       string      `json:"title,omitempty" dynamodbav:"Title,omitempty"`
	Postscript  string      `json:"postscript,omitempty" dynamodbav:"Postscript,omitempty"`
}

// GuestbookEntry is one short public note on a published document.
type GuestbookEntry struct {
	ID        string     `json:"id" dynamodbav:"ID"`
	Name      string     `json:"name" dynamodbav:"Name"`
	Message   string     `json:"message" dynamodbav:"Message"`
	Color     EntryColor `json:"color" dynamodbav:"Color"`
	CreatedAt time.Time  `json:"createdAt" dynamodbav:"CreatedAt"`
}

// WishBloom is the published memory book, shared via UniqueURL.
type WishBloom struct {
	ID                     string           `json:"id" dynamodbav:"ID"`
	RecipientName          string           `json:"recipientName" dynamodbav:"RecipientName"`
	Age                    *int             `json:"age,omitempty" dynamodbav:"Age,omitempty"`
	CreativeAgeDescription string           `json:"creativeAgeDescription,omitempty" dynamodbav:"CreativeAgeDescription,omitempty"`
	IntroMessage           string           `json:"introMessage" dynamodbav:"IntroMessage"`
	UniqueURL              string           `json:"uniqueUrl" dynamodbav:"UniqueURL"`
	CreatedBy              Contributor      `json:"createdBy" dynamodbav:"CreatedBy"`
	Contributors           []Contributor    `json:"contributors" dynamodbav:"Contributors"`
	Memories               []Memory         `json:"memories" dynamodbav:"Memories"`
	Messages               []Message        `json:"messages" dynamodbav:"Messages"`
	CelebrationWishPhrases []string         `json:"celebrationWishPhrases" dynamodbav:"CelebrationWishPhrases"`
	Guestbook              []GuestbookEntry `json:"guestbook" dynamodbav:"Guestbook"`
	CreatedDate            time.Time        `json:"createdDate" dynamodbav:"CreatedDate"`
	ViewCount              int              `json:"viewCount" dynamodbav:"ViewCount"`
	IsArchived             bool             `json:"isArchived" dynamodbav:"IsArchived"`
}

// CreateInput is the creation payload assembled by the wizard. During
// drafting it is partially filled; ValidateInput gates publishing.
type CreateInput struct {
	RecipientName          string      `json:"recipientName"`
	Age                    *int        `json:"age,omitempty"`
	CreativeAgeDescription string      `json:"creativeAgeDescription,omitempty"`
	IntroMessage           string      `json:"introMessage"`
	CreatedBy              Contributor `json:"createdBy"`
	Memories               []Memory    `json:"memories"`
	Messages               []Message   `json:"messages"`
	CelebrationWishPhrases []string    `json:"celebrationWishPhrases,omitempty"`
}

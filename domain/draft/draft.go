// Package draft models the transient state of the creation wizard. A user
// has one active draft, upserted on every save and expired 30 days after
// the last write.
package draft

import (
	"time"

	"wishbloom-backend/domain/wishbloom"
)

const (
	// TTL is how long a draft survives after its last write.
	TTL = 30 * 24 * time.Hour

	// MaxList caps how many drafts a listing returns.
	MaxList = 10

	MinStep = 1
	MaxStep = 6

	MinProgress = 0
	MaxProgress = 100
)

// Draft is the in-progress, unpublished document of one user.
type Draft struct {
	ID          string                `json:"id" dynamodbav:"ID"`
	UserID      string                `json:"userId" dynamodbav:"UserID"`
	Step        int                   `json:"step" dynamodbav:"Step"`
	Progress    int                   `json:"progress" dynamodbav:"Progress"`
	Payload     wishbloom.CreateInput `json:"payload" dynamodbav:"Payload"`
	LastUpdated time.Time             `json:"lastUpdated" dynamodbav:"LastUpdated"`
	ExpiresAt   time.Time             `json:"expiresAt" dynamodbav:"ExpiresAt"`
}

// Update carries the fields of a save request. Nil fields keep the draft's
// current value.
type Update struct {
	Step     *int
	Progress *int
	Payload  *wishbloom.CreateInput
}

// New creates a fresh draft for userID with wizard defaults.
func New(id, userID string, now time.Time) *Draft {
	return &Draft{
		ID:          id,
		UserID:      userID,
		Step:        MinStep,
		Progress:    MinProgress,
		Payload:     wishbloom.CreateInput{},
		LastUpdated: now,
		ExpiresAt:   now.Add(TTL),
	}
}

// Apply merges an update into the draft and refreshes its expiry. Every
// write moves ExpiresAt forward to now + TTL.
func (d *Draft) Apply(u Update, now time.Time) {
	if u.Step != nil {
		d.Step = *u.Step
	}
	if u.Progress != nil {
		d.Progress = *u.Progress
	}
	if u.Payload != nil {
		d.Payload = *u.Payload
	}
	d.LastUpdated = now
	d.ExpiresAt = now.Add(TTL)
}

// Validate checks the wizard-state invariants plus the well-formedness of
// whatever payload fields are present so far.
func (d *Draft) Validate() map[string]string {
	fields := make(map[string]string)
	if d.Step < MinStep || d.Step > MaxStep {
		fields["step"] = "step must be between 1 and 6"
	}
	if d.Progress < MinProgress || d.Progress > MaxProgress {
		fields["progress"] = "progress must be between 0 and 100"
	}
	for k, v := range wishbloom.ValidatePartial(d.Payload) {
		fields["payload."+k] = v
	}
	return fields
}

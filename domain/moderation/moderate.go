// Package moderation screens user-submitted text before it is persisted.
// The scan is a fixed keyword/pattern pass: it is a guardrail against
// obvious abuse, not a classifier.
package moderation

import (
	"fmt"
	"regexp"
	"strings"

	"wishbloom-backend/domain/wishbloom"
)

// Result is the outcome of moderating a single text value. Reasons lists
// every matched rule, not just the first.
type Result struct {
	Safe    bool     `json:"safe"`
	Reasons []string `json:"reasons"`
}

// Issue ties a violation to the payload field that contains it.
type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ContentResult is the outcome of moderating a whole creation payload.
type ContentResult struct {
	Approved bool    `json:"approved"`
	Issues   []Issue `json:"issues"`
}

// bannedTerms are matched case-insensitively as substrings.
var bannedTerms = []struct {
	term   string
	reason string
}{
	{"fuck", "profanity"},
	{"shit", "profanity"},
	{"bitch", "profanity"},
	{"asshole", "profanity"},
	{"cunt", "profanity"},
	{"nigger", "hate speech"},
	{"faggot", "hate speech"},
	{"kill yourself", "threatening language"},
	{"kys", "threatening language"},
	{"i will kill", "threatening language"},
	{"buy now", "spam"},
	{"click here", "spam"},
	{"free money", "spam"},
}

// bannedPatterns catch structural abuse the term list cannot.
var bannedPatterns = []struct {
	re     *regexp.Regexp
	reason string
}{
	{regexp.MustCompile(`(?i)<\s*script`), "embedded script markup"},
	{regexp.MustCompile(`(?i)javascript\s*:`), "embedded script markup"},
	{regexp.MustCompile(`(?i)\bon(click|error|load|mouseover)\s*=`), "embedded event handler"},
	{regexp.MustCompile(`(?i)https?://\S{40,}`), "suspicious link"},
}

// repetitionRunLength is the run of one repeated character that trips the
// "excessive character repetition" rule. Go's regexp engine has no
// backreferences, so the equivalent of `(.)\1{19,}` is checked with a scan.
const repetitionRunLength = 20

// hasExcessiveRepetition reports whether text contains repetitionRunLength
// or more consecutive copies of the same character (newlines excluded,
// matching what `.` would cover in a pattern).
func hasExcessiveRepetition(text string) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r != '\n' && run > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if r == '\n' {
			run = 0
		}
		if run >= repetitionRunLength {
			return true
		}
		prev = r
	}
	return false
}

// ModerateText scans text against the banned terms and patterns and
// returns all matched reasons.
func ModerateText(text string) Result {
	lower := strings.ToLower(text)
	var reasons []string
	seen := make(map[string]bool)

	record := func(reason string) {
		if !seen[reason] {
			seen[reason] = true
			reasons = append(reasons, reason)
		}
	}

	for _, t := range bannedTerms {
		if strings.Contains(lower, t.term) {
			record(t.reason)
		}
	}
	for _, p := range bannedPatterns {
		if p.re.MatchString(text) {
			record(p.reason)
		}
	}
	if hasExcessiveRepetition(text) {
		record("excessive character repetition")
	}

	return Result{Safe: len(reasons) == 0, Reasons: reasons}
}

// ModerateWishBloom applies ModerateText to every free-text field of a
// creation payload, tagging each violation with its originating field path.
func ModerateWishBloom(in wishbloom.CreateInput) ContentResult {
	var issues []Issue

	check := func(field, text string) {
		if text == "" {
			return
		}
		res := ModerateText(text)
		for _, reason := range res.Reasons {
			issues = append(issues, Issue{Field: field, Reason: reason})
		}
	}

	check("recipientName", in.RecipientName)
	check("introMessage", in.IntroMessage)
	for i, m := range in.Memories {
		check(fmt.Sprintf("memories[%d].title", i), m.Title)
		check(fmt.Sprintf("memories[%d].description", i), m.Description)
	}
	for i, msg := range in.Messages {
		check(fmt.Sprintf("messages[%d].content", i), msg.Content)
	}
	for i, phrase := range in.CelebrationWishPhrases {
		check(fmt.Sprintf("celebrationWishPhrases[%d]", i), phrase)
	}

	return ContentResult{Approved: len(issues) == 0, Issues: issues}
}

package models

import "github.com/hyperjump/patristica/pkg/utils"

// Display caps applied when a Match is projected to a MatchResult.
const (
	MaxAuthorLen = 100
	MaxMatchText = 800
)

// Match is an indexed entry that overlaps a requested reading, with its
// attributed author. Nothing is truncated here.
type Match struct {
	ReadingRef string
	Author     string
	Entry      IndexEntry
}

// MatchResult is the display projection of a Match.
type MatchResult struct {
	ReadingRef string `json:"reading_ref"`
	Father     string `json:"father"`
	Text       string `json:"text"`
	VerseRef   string `json:"verse_ref"`
}

// Result projects m for display, capping author and text.
func (m Match) Result() MatchResult {
	return MatchResult{
		ReadingRef: m.ReadingRef,
		Father:     utils.Clip(m.Author, MaxAuthorLen),
		Text:       utils.Clip(m.Entry.Text, MaxMatchText),
		VerseRef:   m.Entry.Ref,
	}
}

// Results projects every match, keeping order.
func Results(matches []Match) []MatchResult {
	out := make([]MatchResult, len(matches))
	for i, m := range matches {
		out[i] = m.Result()
	}
	return out
}

package domain

import "strings"

// Sentiment label buckets.
const (
	SentimentStronglyBullish = "STRONGLY BULLISH"
	SentimentBullish         = "BULLISH"
	SentimentNeutral         = "NEUTRAL"
	SentimentBearish         = "BEARISH"
	SentimentStronglyBearish = "STRONGLY BEARISH"
)

// Sentiment is the market mood attached to an entry: a label bucket plus the
// display color and icon the UI renders it with.
type Sentiment struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Entry is one journal entry. Timestamps are the human-readable EST strings
// shown in the journal; SavedAt is the RFC3339 save instant.
type Entry struct {
	Timestamp string     `json:"timestamp"`
	Sentiment *Sentiment `json:"sentiment,omitempty"`
	Content   string     `json:"content"`
	RawText   string     `json:"raw_text,omitempty"`
	Preview   string     `json:"preview,omitempty"`
	Edited    string     `json:"edited,omitempty"`
	SavedAt   string     `json:"saved_at,omitempty"`
}

// SentimentLabel returns the entry's sentiment label, or "" without one.
func (e *Entry) SentimentLabel() string {
	if e.Sentiment == nil {
		return ""
	}
	return e.Sentiment.Label
}

// ListPreview shortens content to the first 100 characters for entry listings.
func ListPreview(content string) string {
	r := []rune(content)
	if len(r) <= 100 {
		return content
	}
	return string(r[:100]) + "..."
}

// EditPreview flattens newlines and shortens content to 150 characters; used
// when an entry is edited in place.
func EditPreview(content string) string {
	flat := strings.ReplaceAll(content, "\n", " ")
	r := []rune(flat)
	if len(r) <= 150 {
		return flat
	}
	return string(r[:150]) + "..."
}

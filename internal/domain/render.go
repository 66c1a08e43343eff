package domain

import "strings"

// Journal text layout shared by the rendered view and the document backend.
var (
	Separator   = strings.Repeat("═", 60)
	EntryHeader = "TRADING JOURNAL ENTRY"
)

// SentimentLine renders the "Market Sentiment" line for an entry, or "" when
// the entry carries no sentiment.
func SentimentLine(s *Sentiment) string {
	if s == nil || (s.Icon == "" && s.Label == "") {
		return ""
	}
	return "Market Sentiment: " + s.Icon + " " + s.Label
}

// RenderEntry renders one entry as the block of lines used in the journal view
// and in the document journal.
func RenderEntry(e *Entry) []string {
	lines := []string{Separator, EntryHeader, e.Timestamp}
	if sl := SentimentLine(e.Sentiment); sl != "" {
		lines = append(lines, sl)
	}
	lines = append(lines, Separator, e.Content, "")
	return lines
}

// RenderJournal renders the full journal text from entries in insertion order.
func RenderJournal(entries []*Entry) string {
	var parts []string
	for _, e := range entries {
		parts = append(parts, RenderEntry(e)...)
	}
	return strings.Join(parts, "\n")
}

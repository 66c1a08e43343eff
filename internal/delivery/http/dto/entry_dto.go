package dto

import "tradejournal/internal/domain"

// ProcessEntryRequest is the payload for reformatting raw notes into an entry.
type ProcessEntryRequest struct {
	Text          string `json:"text"`
	IncludeMarket *bool  `json:"include_market"` // defaults to true when omitted
}

// Market reports whether the market snapshot should be included.
func (r *ProcessEntryRequest) Market() bool {
	return r.IncludeMarket == nil || *r.IncludeMarket
}

// SaveJournalRequest carries processed entries to persist.
type SaveJournalRequest struct {
	Entries []*domain.Entry `json:"entries"`
}

// SaveJournalResult reports how many entries were written and to which backend.
type SaveJournalResult struct {
	Count int    `json:"count"`
	Mode  string `json:"mode"`
}

// UpdateEntryRequest addresses an entry by positional index.
type UpdateEntryRequest struct {
	Index   *int   `json:"index"`
	Content string `json:"content"`
}

// DeleteEntryRequest addresses an entry by positional index; negative indices
// count from the end of the journal.
type DeleteEntryRequest struct {
	Index *int `json:"index"`
}

// EntryView is one row of the entry listing.
type EntryView struct {
	Timestamp string `json:"timestamp"`
	Sentiment string `json:"sentiment"`
	Preview   string `json:"preview"`
	Content   string `json:"content"`
	Edited    string `json:"edited,omitempty"`
}

// NewEntryView builds a listing row from a stored entry.
func NewEntryView(e *domain.Entry) EntryView {
	preview := e.Preview
	if preview == "" {
		preview = domain.ListPreview(e.Content)
	}
	return EntryView{
		Timestamp: e.Timestamp,
		Sentiment: e.SentimentLabel(),
		Preview:   preview,
		Content:   e.Content,
		Edited:    e.Edited,
	}
}

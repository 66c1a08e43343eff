package domain

// Quote direction buckets.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionFlat = "flat"
)

// VIX level buckets.
const (
	VIXLow      = "LOW"
	VIXNormal   = "NORMAL"
	VIXElevated = "ELEVATED"
)

// Quote is one quoted symbol in a market snapshot. Status is only set on the
// VIX quote.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	Direction string  `json:"direction"`
	Status    string  `json:"status,omitempty"`
}

// MarketSnapshot is one point-in-time view of the tracked indices with the
// derived overall sentiment.
type MarketSnapshot struct {
	Quotes    []Quote   `json:"quotes"`
	Sentiment Sentiment `json:"sentiment"`
	Timestamp string    `json:"timestamp"`
}

// VIX returns the VIX quote from the snapshot, or nil when it is missing.
func (s *MarketSnapshot) VIX() *Quote {
	for i := range s.Quotes {
		if s.Quotes[i].Symbol == "^VIX" {
			return &s.Quotes[i]
		}
	}
	return nil
}

// SPXChange returns the SPX day-over-day change, or 0 when SPX is missing.
func (s *MarketSnapshot) SPXChange() float64 {
	for _, q := range s.Quotes {
		if q.Symbol == "^GSPC" {
			return q.Change
		}
	}
	return 0
}

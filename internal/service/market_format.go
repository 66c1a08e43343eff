package service

import (
	"fmt"
	"strconv"
	"strings"

	"tradejournal/internal/domain"
)

// FormatForPrompt renders a snapshot as the plain-text block embedded in the
// LLM prompt.
func FormatForPrompt(snap *domain.MarketSnapshot) string {
	if snap == nil || len(snap.Quotes) == 0 {
		return ""
	}

	lines := []string{"Current Market Conditions:"}
	for _, q := range snap.Quotes {
		if q.Symbol == "^VIX" {
			lines = append(lines, fmt.Sprintf("  VIX: %s (%s%%) - %s",
				formatNumber(q.Price), signedNumber(q.Change), q.Status))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s (%s): $%s (%s%%)",
			q.Name, q.Symbol, formatNumber(q.Price), signedNumber(q.Change)))
	}

	if snap.Sentiment.Label != "" {
		lines = append(lines, fmt.Sprintf("  Overall Sentiment: %s %s",
			snap.Sentiment.Icon, snap.Sentiment.Label))
	}

	return strings.Join(lines, "\n")
}

// formatNumber prints an already-rounded value without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// signedNumber prefixes positive changes with '+'.
func signedNumber(v float64) string {
	s := formatNumber(v)
	if v > 0 {
		return "+" + s
	}
	return s
}

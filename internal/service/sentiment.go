package service

import "tradejournal/internal/domain"

// ClassifySentiment derives the five-bucket market sentiment from the SPX
// day-over-day change and the VIX level. It is a fixed threshold table, not a
// model: strong index moves weigh double, a calm VIX adds one, a stressed VIX
// subtracts up to two.
func ClassifySentiment(spxChange, vixPrice float64) domain.Sentiment {
	score := 0

	switch {
	case spxChange > 1:
		score += 2
	case spxChange > 0.3:
		score++
	case spxChange < -1:
		score -= 2
	case spxChange < -0.3:
		score--
	}

	if vixPrice < 15 {
		score++
	} else if vixPrice > 25 {
		score--
	}
	if vixPrice > 30 {
		score--
	}

	switch {
	case score >= 3:
		return domain.Sentiment{Label: domain.SentimentStronglyBullish, Color: "green", Icon: "🟢"}
	case score >= 1:
		return domain.Sentiment{Label: domain.SentimentBullish, Color: "lightgreen", Icon: "🟢"}
	case score <= -3:
		return domain.Sentiment{Label: domain.SentimentStronglyBearish, Color: "red", Icon: "🔴"}
	case score <= -1:
		return domain.Sentiment{Label: domain.SentimentBearish, Color: "salmon", Icon: "🔴"}
	default:
		return domain.Sentiment{Label: domain.SentimentNeutral, Color: "yellow", Icon: "🟡"}
	}
}

// VIXStatus buckets the VIX level.
func VIXStatus(price float64) string {
	switch {
	case price < 15:
		return domain.VIXLow
	case price > 25:
		return domain.VIXElevated
	default:
		return domain.VIXNormal
	}
}

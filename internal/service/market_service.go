package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"tradejournal/internal/domain"
	"tradejournal/internal/utils"
)

// trackedSymbols is the fixed set of indices quoted in every snapshot,
// in prompt order. VIX is fetched separately and appended last.
var trackedSymbols = []struct {
	Symbol string
	Name   string
}{
	{"^GSPC", "SPX"},
	{"^NDX", "NDX"},
	{"^RUT", "RUT"},
	{"^DJI", "DJI"},
	{"GLD", "Gold"},
	{"BTC-USD", "Bitcoin"},
	{"TLT", "TLT"},
}

// MarketService fetches market-index snapshots from Yahoo Finance and caches
// the latest one. The background scheduler refreshes the cache; request
// handlers fall through to a live fetch only when the cache has gone stale.
type MarketService struct {
	mu        sync.Mutex
	snapshot  *domain.MarketSnapshot
	fetchedAt time.Time
	maxAge    time.Duration

	// quoteFn is swapped out in tests.
	quoteFn func(symbol string) (*finance.Quote, error)
}

// NewMarketService creates a market snapshot service with the given cache age.
func NewMarketService(maxAge time.Duration) *MarketService {
	return &MarketService{
		maxAge:  maxAge,
		quoteFn: quote.Get,
	}
}

// Snapshot returns the cached snapshot, refreshing it first when stale.
func (s *MarketService) Snapshot(ctx context.Context) (*domain.MarketSnapshot, error) {
	s.mu.Lock()
	if s.snapshot != nil && time.Since(s.fetchedAt) < s.maxAge {
		snap := s.snapshot
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh fetches a fresh snapshot and replaces the cache. Individual symbol
// failures are skipped; only an entirely empty snapshot is an error.
func (s *MarketService) Refresh(ctx context.Context) (*domain.MarketSnapshot, error) {
	snap := &domain.MarketSnapshot{}

	for _, sym := range trackedSymbols {
		q, err := s.quoteFn(sym.Symbol)
		if err != nil {
			log.Printf("market: skipping %s: %v", sym.Symbol, err)
			continue
		}
		change := changePercent(q.RegularMarketPrice, q.RegularMarketPreviousClose)
		snap.Quotes = append(snap.Quotes, domain.Quote{
			Symbol:    sym.Symbol,
			Name:      sym.Name,
			Price:     round2(q.RegularMarketPrice),
			Change:    change,
			Direction: direction(change),
		})
	}

	vixPrice := 20.0 // neutral default when VIX is unavailable
	if q, err := s.quoteFn("^VIX"); err != nil {
		log.Printf("market: skipping ^VIX: %v", err)
	} else {
		change := changePercent(q.RegularMarketPrice, q.RegularMarketPreviousClose)
		vixPrice = q.RegularMarketPrice
		snap.Quotes = append(snap.Quotes, domain.Quote{
			Symbol:    "^VIX",
			Name:      "VIX",
			Price:     round2(q.RegularMarketPrice),
			Change:    change,
			Direction: direction(change),
			Status:    VIXStatus(q.RegularMarketPrice),
		})
	}

	if len(snap.Quotes) == 0 {
		return nil, fmt.Errorf("no market data available")
	}

	snap.Sentiment = ClassifySentiment(snap.SPXChange(), vixPrice)
	snap.Timestamp = utils.ESTClock()

	s.mu.Lock()
	s.snapshot = snap
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return snap, nil
}

// changePercent computes the day-over-day change rounded to two decimals.
func changePercent(price, prevClose float64) float64 {
	if prevClose == 0 {
		return 0
	}
	prev := decimal.NewFromFloat(prevClose)
	ch, _ := decimal.NewFromFloat(price).
		Sub(prev).
		Div(prev).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return ch
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func direction(change float64) string {
	switch {
	case change > 0:
		return domain.DirectionUp
	case change < 0:
		return domain.DirectionDown
	default:
		return domain.DirectionFlat
	}
}

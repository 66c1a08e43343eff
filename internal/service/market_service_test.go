package service

import (
	"context"
	"errors"
	"testing"
	"time"

	finance "github.com/piquette/finance-go"

	"tradejournal/internal/domain"
)

func stubQuote(price, prevClose float64) *finance.Quote {
	return &finance.Quote{
		RegularMarketPrice:         price,
		RegularMarketPreviousClose: prevClose,
	}
}

func TestRefreshBuildsSnapshot(t *testing.T) {
	s := NewMarketService(time.Minute)
	s.quoteFn = func(symbol string) (*finance.Quote, error) {
		switch symbol {
		case "^GSPC":
			return stubQuote(5900, 5800), nil // +1.72%
		case "^VIX":
			return stubQuote(13, 14), nil
		default:
			return stubQuote(100, 100), nil
		}
	}

	snap, err := s.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if len(snap.Quotes) != 8 {
		t.Fatalf("expected 8 quotes, got %d", len(snap.Quotes))
	}

	last := snap.Quotes[len(snap.Quotes)-1]
	if last.Symbol != "^VIX" {
		t.Errorf("VIX should be the last quote, got %s", last.Symbol)
	}
	if last.Status != domain.VIXLow {
		t.Errorf("expected LOW vix status, got %q", last.Status)
	}

	if got := snap.SPXChange(); got != 1.72 {
		t.Errorf("expected SPX change 1.72, got %v", got)
	}
	// SPX +1.72% with a calm VIX scores strongly bullish.
	if snap.Sentiment.Label != domain.SentimentStronglyBullish {
		t.Errorf("expected strongly bullish sentiment, got %q", snap.Sentiment.Label)
	}
	if snap.Timestamp == "" {
		t.Errorf("snapshot timestamp should be set")
	}
}

func TestRefreshSkipsFailedSymbols(t *testing.T) {
	s := NewMarketService(time.Minute)
	s.quoteFn = func(symbol string) (*finance.Quote, error) {
		if symbol == "^GSPC" {
			return stubQuote(5900, 5800), nil
		}
		return nil, errors.New("quote unavailable")
	}

	snap, err := s.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(snap.Quotes) != 1 {
		t.Fatalf("expected the one working symbol, got %d quotes", len(snap.Quotes))
	}
	// With VIX unavailable the neutral default applies: no VIX adjustment.
	if snap.Sentiment.Label != domain.SentimentBullish {
		t.Errorf("expected bullish from SPX alone, got %q", snap.Sentiment.Label)
	}
}

func TestRefreshAllSymbolsFailing(t *testing.T) {
	s := NewMarketService(time.Minute)
	s.quoteFn = func(symbol string) (*finance.Quote, error) {
		return nil, errors.New("quote unavailable")
	}

	if _, err := s.Refresh(context.Background()); err == nil {
		t.Fatalf("expected an error when no symbols resolve")
	}
}

func TestSnapshotUsesCache(t *testing.T) {
	calls := 0
	s := NewMarketService(time.Minute)
	s.quoteFn = func(symbol string) (*finance.Quote, error) {
		calls++
		return stubQuote(100, 100), nil
	}

	if _, err := s.Snapshot(context.Background()); err != nil {
		t.Fatalf("first snapshot failed: %v", err)
	}
	first := calls
	if _, err := s.Snapshot(context.Background()); err != nil {
		t.Fatalf("second snapshot failed: %v", err)
	}
	if calls != first {
		t.Errorf("second snapshot within the cache window should not refetch (%d -> %d calls)", first, calls)
	}
}

func TestSnapshotRefreshesWhenStale(t *testing.T) {
	calls := 0
	s := NewMarketService(0) // everything is immediately stale
	s.quoteFn = func(symbol string) (*finance.Quote, error) {
		calls++
		return stubQuote(100, 100), nil
	}

	if _, err := s.Snapshot(context.Background()); err != nil {
		t.Fatalf("first snapshot failed: %v", err)
	}
	first := calls
	if _, err := s.Snapshot(context.Background()); err != nil {
		t.Fatalf("second snapshot failed: %v", err)
	}
	if calls == first {
		t.Errorf("stale snapshot should refetch")
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tradejournal/internal/domain"
)

type fakeAssistant struct {
	lastSystem  string
	lastMessage string
	reply       string
	err         error
}

func (f *fakeAssistant) Complete(ctx context.Context, apiKey, system, message string) (string, error) {
	f.lastSystem = system
	f.lastMessage = message
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeMarket struct {
	snap *domain.MarketSnapshot
	err  error
}

func (f *fakeMarket) Snapshot(ctx context.Context) (*domain.MarketSnapshot, error) {
	return f.snap, f.err
}

type fakeSettings struct {
	settings domain.Settings
}

func (f *fakeSettings) Load(ctx context.Context) (*domain.Settings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeSettings) Save(ctx context.Context, s *domain.Settings) error { return nil }

type memStore struct {
	entries map[string][]*domain.Entry
}

func newMemStore() *memStore {
	return &memStore{entries: map[string][]*domain.Entry{}}
}

func (m *memStore) Append(ctx context.Context, username string, e *domain.Entry) error {
	m.entries[username] = append(m.entries[username], e)
	return nil
}

func (m *memStore) List(ctx context.Context, username string) ([]*domain.Entry, error) {
	return m.entries[username], nil
}

func (m *memStore) View(ctx context.Context, username string) (string, error) {
	return domain.RenderJournal(m.entries[username]), nil
}

func (m *memStore) Update(ctx context.Context, username string, index int, content string) error {
	return nil
}

func (m *memStore) Delete(ctx context.Context, username string, index int) (*domain.Entry, error) {
	return nil, nil
}

func (m *memStore) Clear(ctx context.Context, username string) error { return nil }

func bullishSnapshot() *domain.MarketSnapshot {
	return &domain.MarketSnapshot{
		Quotes: []domain.Quote{
			{Symbol: "^GSPC", Name: "SPX", Price: 5900, Change: 1.2, Direction: domain.DirectionUp},
		},
		Sentiment: domain.Sentiment{Label: domain.SentimentBullish, Color: "lightgreen", Icon: "🟢"},
	}
}

func newTestService(assistant *fakeAssistant, market *fakeMarket, apiKey string) (*JournalService, *memStore) {
	store := newMemStore()
	svc := NewJournalService(assistant, market, &fakeSettings{settings: domain.Settings{APIKey: apiKey}}, store)
	return svc, store
}

func TestProcessEntry(t *testing.T) {
	assistant := &fakeAssistant{reply: "=== FORMATTED ===\nclean entry"}
	svc, _ := newTestService(assistant, &fakeMarket{snap: bullishSnapshot()}, "sk-ant-test")

	entry, err := svc.ProcessEntry(context.Background(), "bought spx calls, nervous about cpi", true)
	if err != nil {
		t.Fatalf("ProcessEntry failed: %v", err)
	}

	if entry.Content != assistant.reply {
		t.Errorf("entry content should be the assistant reply, got %q", entry.Content)
	}
	if entry.RawText != "bought spx calls, nervous about cpi" {
		t.Errorf("raw text not kept: %q", entry.RawText)
	}
	if entry.Timestamp == "" || !strings.HasSuffix(entry.Timestamp, "EST") {
		t.Errorf("timestamp missing or not EST: %q", entry.Timestamp)
	}
	if entry.Sentiment == nil || entry.Sentiment.Label != domain.SentimentBullish {
		t.Errorf("snapshot sentiment should be copied onto the entry: %+v", entry.Sentiment)
	}

	if assistant.lastSystem != SystemPrompt {
		t.Errorf("system prompt not forwarded")
	}
	msg := assistant.lastMessage
	if !strings.HasPrefix(msg, "Date/Time: ") {
		t.Errorf("message should open with the timestamp:\n%s", msg)
	}
	if !strings.Contains(msg, "Current Market Conditions:") {
		t.Errorf("message should carry the market block:\n%s", msg)
	}
	if !strings.Contains(msg, "My trading thoughts:\nbought spx calls, nervous about cpi") {
		t.Errorf("message should end with the raw thoughts:\n%s", msg)
	}
}

func TestProcessEntryWithoutMarket(t *testing.T) {
	assistant := &fakeAssistant{reply: "entry"}
	svc, _ := newTestService(assistant, &fakeMarket{snap: bullishSnapshot()}, "sk-ant-test")

	entry, err := svc.ProcessEntry(context.Background(), "thoughts", false)
	if err != nil {
		t.Fatalf("ProcessEntry failed: %v", err)
	}
	if entry.Sentiment != nil {
		t.Errorf("entry should carry no sentiment when market is excluded")
	}
	if strings.Contains(assistant.lastMessage, "Current Market Conditions:") {
		t.Errorf("market block should be omitted:\n%s", assistant.lastMessage)
	}
}

func TestProcessEntryMarketFailureIsTolerated(t *testing.T) {
	assistant := &fakeAssistant{reply: "entry"}
	svc, _ := newTestService(assistant, &fakeMarket{err: errors.New("yahoo down")}, "sk-ant-test")

	entry, err := svc.ProcessEntry(context.Background(), "thoughts", true)
	if err != nil {
		t.Fatalf("a market outage should not block journaling: %v", err)
	}
	if entry.Sentiment != nil {
		t.Errorf("no sentiment without a snapshot")
	}
}

func TestProcessEntryWithoutAPIKey(t *testing.T) {
	svc, _ := newTestService(&fakeAssistant{}, &fakeMarket{}, "")
	if _, err := svc.ProcessEntry(context.Background(), "thoughts", true); !errors.Is(err, domain.ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestProcessEntryAssistantError(t *testing.T) {
	assistant := &fakeAssistant{err: errors.New("rate limited")}
	svc, _ := newTestService(assistant, &fakeMarket{snap: bullishSnapshot()}, "sk-ant-test")
	if _, err := svc.ProcessEntry(context.Background(), "thoughts", true); err == nil {
		t.Fatalf("assistant failures should propagate")
	}
}

func TestSaveEntries(t *testing.T) {
	svc, store := newTestService(&fakeAssistant{}, &fakeMarket{}, "sk-ant-test")

	entries := []*domain.Entry{
		{Timestamp: "Monday, January 5, 2026 09:30 AM EST", Content: "first"},
		{Content: "second"}, // no timestamp, should be filled in
	}
	count, err := svc.SaveEntries(context.Background(), "alice", entries)
	if err != nil {
		t.Fatalf("SaveEntries failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 saved, got %d", count)
	}

	saved := store.entries["alice"]
	if saved[1].Timestamp == "" {
		t.Errorf("missing timestamp should be filled in")
	}
	for i, e := range saved {
		if e.SavedAt == "" {
			t.Errorf("entry %d missing save stamp", i)
		}
	}
}

func TestListEntriesMostRecentFirst(t *testing.T) {
	svc, store := newTestService(&fakeAssistant{}, &fakeMarket{}, "sk-ant-test")
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		store.Append(ctx, "alice", &domain.Entry{Content: content})
	}

	entries, err := svc.ListEntries(ctx, "alice", 2)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("limit not applied, got %d entries", len(entries))
	}
	if entries[0].Content != "third" || entries[1].Content != "second" {
		t.Errorf("entries should be most recent first: %q, %q", entries[0].Content, entries[1].Content)
	}
}

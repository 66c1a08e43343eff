package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tradejournal/internal/domain"
	"tradejournal/internal/service"
	"tradejournal/internal/utils"
)

// SystemPrompt is the fixed instruction sent with every reformatting request.
const SystemPrompt = `You are my Trading Journal. Each time I speak or ramble, convert my thoughts into a structured trading-journal entry. Extract and organize only what I actually say:

• My emotional state
• Market conditions I mentioned
• Trades I took or considered
• My reasoning and expectations
• Mistakes I noticed
• Lessons learned
• Follow-up items for the next session

Rules:
• Keep the tone neutral, factual, and concise.
• If I speak in fragments or ramble, infer structure but do not invent facts.
• Do not add commentary beyond what I explicitly said.
• Reorganize my thoughts into a clean, professional journal entry.

End each entry with:
• A short 2–3 sentence summary
• 1–3 reflection questions that would help me improve

Format the entry with clear section headers using bullet points. Start with a header line showing the date and time provided.

If market data is provided, incorporate relevant observations into the Market Conditions section.`

// JournalService orchestrates entry processing and the entry store: it builds
// the prompt, calls the assistant, and fronts every store operation for the
// HTTP layer.
type JournalService struct {
	assistant domain.Assistant
	market    domain.MarketData
	settings  domain.SettingsRepository
	store     domain.EntryStore
}

// NewJournalService creates a new JournalService
func NewJournalService(
	assistant domain.Assistant,
	market domain.MarketData,
	settings domain.SettingsRepository,
	store domain.EntryStore,
) *JournalService {
	return &JournalService{
		assistant: assistant,
		market:    market,
		settings:  settings,
		store:     store,
	}
}

// ProcessEntry timestamps the raw text, optionally folds in the market
// snapshot, and has the assistant reformat it into a structured entry. The
// entry is returned to the client unsaved; saving is a separate call.
func (s *JournalService) ProcessEntry(ctx context.Context, rawText string, includeMarket bool) (*domain.Entry, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, domain.ErrNoAPIKey
	}

	timestamp := utils.ESTTimestamp()

	var snap *domain.MarketSnapshot
	if includeMarket {
		snap, err = s.market.Snapshot(ctx)
		if err != nil {
			// The journal still works without market data.
			log.Printf("WARNING: market snapshot unavailable: %v", err)
			snap = nil
		}
	}

	message := buildMessage(timestamp, snap, rawText)

	content, err := s.assistant.Complete(ctx, cfg.APIKey, SystemPrompt, message)
	if err != nil {
		return nil, fmt.Errorf("failed to process entry: %w", err)
	}

	entry := &domain.Entry{
		Timestamp: timestamp,
		Content:   content,
		RawText:   rawText,
	}
	if snap != nil {
		sentiment := snap.Sentiment
		entry.Sentiment = &sentiment
	}
	return entry, nil
}

// buildMessage assembles the user message: timestamp, optional market block,
// then the raw trading thoughts.
func buildMessage(timestamp string, snap *domain.MarketSnapshot, rawText string) string {
	var b strings.Builder
	b.WriteString("Date/Time: ")
	b.WriteString(timestamp)
	b.WriteString("\n\n")

	if block := service.FormatForPrompt(snap); block != "" {
		b.WriteString(block)
		b.WriteString("\n\n")
	}

	b.WriteString("My trading thoughts:\n")
	b.WriteString(rawText)
	return b.String()
}

// SaveEntries appends the given entries to the user's journal, filling in
// missing timestamps and stamping the save instant.
func (s *JournalService) SaveEntries(ctx context.Context, username string, entries []*domain.Entry) (int, error) {
	saved := 0
	for _, entry := range entries {
		if entry.Timestamp == "" {
			entry.Timestamp = utils.ESTTimestamp()
		}
		entry.SavedAt = time.Now().UTC().Format(time.RFC3339)

		if err := s.store.Append(ctx, username, entry); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// ListEntries returns up to limit entries, most recent first, with previews.
func (s *JournalService) ListEntries(ctx context.Context, username string, limit int) ([]*domain.Entry, error) {
	entries, err := s.store.List(ctx, username)
	if err != nil {
		return nil, err
	}

	// Most recent first.
	reversed := make([]*domain.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	if limit > 0 && len(reversed) > limit {
		reversed = reversed[:limit]
	}
	return reversed, nil
}

// ViewJournal renders the full journal text.
func (s *JournalService) ViewJournal(ctx context.Context, username string) (string, error) {
	return s.store.View(ctx, username)
}

// UpdateEntry replaces the content of the entry at index.
func (s *JournalService) UpdateEntry(ctx context.Context, username string, index int, content string) error {
	return s.store.Update(ctx, username, index, content)
}

// DeleteEntry removes the entry at index and returns it.
func (s *JournalService) DeleteEntry(ctx context.Context, username string, index int) (*domain.Entry, error) {
	return s.store.Delete(ctx, username, index)
}

// ClearJournal removes every entry from the user's journal.
func (s *JournalService) ClearJournal(ctx context.Context, username string) error {
	return s.store.Clear(ctx, username)
}

// MarketSnapshot returns the current market snapshot for the market endpoint.
func (s *JournalService) MarketSnapshot(ctx context.Context) (*domain.MarketSnapshot, error) {
	return s.market.Snapshot(ctx)
}

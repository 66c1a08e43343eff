package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"tradejournal/internal/domain"
	"tradejournal/internal/utils"
)

// journalDocument is the on-disk shape of a per-user journal file.
type journalDocument struct {
	Entries []*domain.Entry `json:"entries"`
}

// JSONEntryStore keeps one journal_<user>.json file per user under dir.
// This is the "cloud mode" backend. Writes go through a temp file and an
// atomic rename; a process-level mutex serializes mutations (there is no
// cross-process locking, last write wins).
type JSONEntryStore struct {
	dir string
	mu  sync.Mutex
}

// NewJSONEntryStore creates a JSON-file entry store rooted at dir.
func NewJSONEntryStore(dir string) *JSONEntryStore {
	return &JSONEntryStore{dir: dir}
}

// SanitizeUsername reduces a username to the characters safe in a filename.
func SanitizeUsername(username string) string {
	var b strings.Builder
	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	if b.Len() == 0 {
		return domain.DefaultUsername
	}
	return b.String()
}

func (s *JSONEntryStore) path(username string) string {
	return filepath.Join(s.dir, fmt.Sprintf("journal_%s.json", SanitizeUsername(username)))
}

// load reads a user's journal. A missing or unreadable file yields an empty
// journal rather than an error.
func (s *JSONEntryStore) load(username string) *journalDocument {
	doc := &journalDocument{Entries: []*domain.Entry{}}
	b, err := os.ReadFile(s.path(username))
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(b, doc); err != nil {
		return &journalDocument{Entries: []*domain.Entry{}}
	}
	if doc.Entries == nil {
		doc.Entries = []*domain.Entry{}
	}
	return doc
}

func (s *JSONEntryStore) save(username string, doc *journalDocument) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	path := s.path(username)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return fmt.Errorf("failed to write journal file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace journal file: %w", err)
	}
	return nil
}

// Append adds an entry to the end of the user's journal.
func (s *JSONEntryStore) Append(ctx context.Context, username string, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(username)
	doc.Entries = append(doc.Entries, entry)
	return s.save(username, doc)
}

// List returns the user's entries in insertion order.
func (s *JSONEntryStore) List(ctx context.Context, username string) ([]*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(username).Entries, nil
}

// View renders the full journal text.
func (s *JSONEntryStore) View(ctx context.Context, username string) (string, error) {
	entries, err := s.List(ctx, username)
	if err != nil {
		return "", err
	}
	return domain.RenderJournal(entries), nil
}

// Update replaces the content of the entry at index and records the edit.
func (s *JSONEntryStore) Update(ctx context.Context, username string, index int, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(username)
	if index < 0 || index >= len(doc.Entries) {
		return domain.ErrNotFound
	}

	entry := doc.Entries[index]
	entry.Content = content
	entry.Edited = utils.EditedStamp()
	entry.Preview = domain.EditPreview(content)

	return s.save(username, doc)
}

// Delete removes the entry at index and returns it. Negative indices count
// from the end of the journal.
func (s *JSONEntryStore) Delete(ctx context.Context, username string, index int) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(username)
	if index < 0 {
		index = len(doc.Entries) + index
	}
	if index < 0 || index >= len(doc.Entries) {
		return nil, domain.ErrNotFound
	}

	deleted := doc.Entries[index]
	doc.Entries = append(doc.Entries[:index], doc.Entries[index+1:]...)

	if err := s.save(username, doc); err != nil {
		return nil, err
	}
	return deleted, nil
}

// Clear removes every entry from the user's journal.
func (s *JSONEntryStore) Clear(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(username, &journalDocument{Entries: []*domain.Entry{}})
}

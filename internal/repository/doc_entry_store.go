package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"tradejournal/internal/docx"
	"tradejournal/internal/domain"
)

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DocEntryStore appends journal entries to a single shared Word document.
// This is the "local mode" backend: it supports append and read only, so
// Update, Delete and Clear report domain.ErrUnsupported.
type DocEntryStore struct {
	path string
	mu   sync.Mutex
}

// NewDocEntryStore creates a document-backed entry store at path.
func NewDocEntryStore(path string) *DocEntryStore {
	return &DocEntryStore{path: path}
}

// wrapFileErr maps a permission failure (the document is open in Word) to the
// domain error the API reports specifically.
func wrapFileErr(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", domain.ErrLocked, err)
	}
	return err
}

func (s *DocEntryStore) open() (*docx.Document, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		doc := &docx.Document{}
		doc.AddParagraph("Trading Journal")
		return doc, nil
	}
	doc, err := docx.Read(s.path)
	if err != nil {
		return nil, wrapFileErr(err)
	}
	return doc, nil
}

// Append writes the entry as a new block of paragraphs at the end of the
// document. The username is ignored: local mode keeps one shared journal.
func (s *DocEntryStore) Append(ctx context.Context, username string, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.open()
	if err != nil {
		return err
	}

	doc.AddParagraph(domain.Separator)
	doc.AddParagraph(domain.EntryHeader)
	doc.AddParagraph(entry.Timestamp)
	if sl := domain.SentimentLine(entry.Sentiment); sl != "" {
		doc.AddParagraph(sl)
	}
	doc.AddParagraph(domain.Separator)
	for _, line := range strings.Split(entry.Content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc.AddParagraph(line)
	}

	return wrapFileErr(docx.Write(s.path, doc))
}

// List parses the document back into entries. Each block starts at the entry
// header line; the timestamp is the first line naming a weekday, the sentiment
// comes from the "Market Sentiment:" line.
func (s *DocEntryStore) List(ctx context.Context, username string) ([]*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}
	doc, err := docx.Read(s.path)
	if err != nil {
		return nil, wrapFileErr(err)
	}

	var (
		entries    []*domain.Entry
		current    []string
		timestamp  string
		sentiment  string
		collecting bool
	)

	flush := func() {
		if !collecting || timestamp == "" {
			return
		}
		entries = append(entries, docEntry(current, timestamp, sentiment))
	}

	for _, para := range doc.Paragraphs {
		text := strings.TrimSpace(para)

		if text == domain.EntryHeader {
			flush()
			current = []string{text}
			timestamp = ""
			sentiment = ""
			collecting = true
			continue
		}

		if !collecting {
			continue
		}
		current = append(current, text)

		if timestamp == "" && text != "" && !strings.HasPrefix(text, "═") &&
			!strings.Contains(text, "Market Sentiment") && containsWeekday(text) {
			timestamp = text
		}
		if strings.Contains(text, "Market Sentiment:") {
			sentiment = strings.TrimSpace(strings.Replace(text, "Market Sentiment:", "", 1))
		}
	}
	flush()

	return entries, nil
}

func containsWeekday(text string) bool {
	for _, day := range weekdays {
		if strings.Contains(text, day) {
			return true
		}
	}
	return false
}

// docEntry assembles a parsed entry: full block as content, filtered preview.
func docEntry(lines []string, timestamp, sentiment string) *domain.Entry {
	var previewLines []string
	for _, l := range lines {
		if l == "" || strings.HasPrefix(l, "═") || l == domain.EntryHeader ||
			strings.Contains(l, "Market Sentiment") {
			continue
		}
		previewLines = append(previewLines, l)
	}

	preview := ""
	if len(previewLines) > 0 {
		joined := strings.Join(previewLines, " ")
		r := []rune(joined)
		if len(r) > 100 {
			r = r[:100]
		}
		preview = string(r) + "..."
	}

	entry := &domain.Entry{
		Timestamp: timestamp,
		Content:   strings.Join(lines, "\n"),
		Preview:   preview,
	}
	if sentiment != "" {
		entry.Sentiment = &domain.Sentiment{Label: sentiment}
	}
	return entry
}

// View returns the document's non-empty paragraph texts.
func (s *DocEntryStore) View(ctx context.Context, username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return "", nil
	}
	doc, err := docx.Read(s.path)
	if err != nil {
		return "", wrapFileErr(err)
	}

	var lines []string
	for _, para := range doc.Paragraphs {
		if text := strings.TrimSpace(para); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Update is not supported by the document backend.
func (s *DocEntryStore) Update(ctx context.Context, username string, index int, content string) error {
	return domain.ErrUnsupported
}

// Delete is not supported by the document backend.
func (s *DocEntryStore) Delete(ctx context.Context, username string, index int) (*domain.Entry, error) {
	return nil, domain.ErrUnsupported
}

// Clear is not supported by the document backend.
func (s *DocEntryStore) Clear(ctx context.Context, username string) error {
	return domain.ErrUnsupported
}

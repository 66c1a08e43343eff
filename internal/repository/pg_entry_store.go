package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradejournal/internal/domain"
	"tradejournal/internal/utils"
)

// PGEntryStore persists journal entries in PostgreSQL. Unlike the document
// backend it supports every store operation; insertion order is the seq column.
type PGEntryStore struct {
	db *pgxpool.Pool
}

// NewPGEntryStore creates a Postgres-backed entry store.
func NewPGEntryStore(db *pgxpool.Pool) *PGEntryStore {
	return &PGEntryStore{db: db}
}

// Append inserts the entry at the end of the user's journal.
func (s *PGEntryStore) Append(ctx context.Context, username string, entry *domain.Entry) error {
	query := `
		INSERT INTO journal_entries (
			id, username, entry_timestamp,
			sentiment_label, sentiment_color, sentiment_icon,
			content, raw_text, preview, edited, saved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	var label, color, icon string
	if entry.Sentiment != nil {
		label = entry.Sentiment.Label
		color = entry.Sentiment.Color
		icon = entry.Sentiment.Icon
	}

	_, err := s.db.Exec(ctx, query,
		uuid.New(),
		SanitizeUsername(username),
		entry.Timestamp,
		label,
		color,
		icon,
		entry.Content,
		entry.RawText,
		entry.Preview,
		entry.Edited,
		entry.SavedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

// List returns the user's entries in insertion order.
func (s *PGEntryStore) List(ctx context.Context, username string) ([]*domain.Entry, error) {
	query := `
		SELECT entry_timestamp, sentiment_label, sentiment_color, sentiment_icon,
		       content, raw_text, preview, edited, saved_at
		FROM journal_entries
		WHERE username = $1
		ORDER BY seq ASC
	`

	rows, err := s.db.Query(ctx, query, SanitizeUsername(username))
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	entry := &domain.Entry{}
	var label, color, icon string

	err := row.Scan(
		&entry.Timestamp,
		&label,
		&color,
		&icon,
		&entry.Content,
		&entry.RawText,
		&entry.Preview,
		&entry.Edited,
		&entry.SavedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entry: %w", err)
	}

	if label != "" || icon != "" {
		entry.Sentiment = &domain.Sentiment{Label: label, Color: color, Icon: icon}
	}
	return entry, nil
}

// View renders the full journal text.
func (s *PGEntryStore) View(ctx context.Context, username string) (string, error) {
	entries, err := s.List(ctx, username)
	if err != nil {
		return "", err
	}
	return domain.RenderJournal(entries), nil
}

// seqAt resolves a positional index to the seq of the matching row.
const seqAtQuery = `
	SELECT seq FROM journal_entries
	WHERE username = $1
	ORDER BY seq ASC
	OFFSET $2 LIMIT 1
`

// Update replaces the content of the entry at index and records the edit.
func (s *PGEntryStore) Update(ctx context.Context, username string, index int, content string) error {
	if index < 0 {
		return domain.ErrNotFound
	}

	query := `
		UPDATE journal_entries
		SET content = $3, edited = $4, preview = $5
		WHERE seq = (` + seqAtQuery + `)
	`

	tag, err := s.db.Exec(ctx, query,
		SanitizeUsername(username),
		index,
		content,
		utils.EditedStamp(),
		domain.EditPreview(content),
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the entry at index and returns it. Negative indices count
// from the end of the journal.
func (s *PGEntryStore) Delete(ctx context.Context, username string, index int) (*domain.Entry, error) {
	user := SanitizeUsername(username)

	if index < 0 {
		var count int
		err := s.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM journal_entries WHERE username = $1`, user,
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("failed to count entries: %w", err)
		}
		index = count + index
		if index < 0 {
			return nil, domain.ErrNotFound
		}
	}

	query := `
		DELETE FROM journal_entries
		WHERE seq = (` + seqAtQuery + `)
		RETURNING entry_timestamp, sentiment_label, sentiment_color, sentiment_icon,
		          content, raw_text, preview, edited, saved_at
	`

	entry, err := scanEntry(s.db.QueryRow(ctx, query, user, index))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// Clear removes every entry from the user's journal.
func (s *PGEntryStore) Clear(ctx context.Context, username string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM journal_entries WHERE username = $1`, SanitizeUsername(username))
	if err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}

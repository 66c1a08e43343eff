package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tradejournal/internal/domain"
)

// userRecord is the on-disk shape of one user in the users file.
type userRecord struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Created      time.Time `json:"created"`
}

// FileUserRepository keeps users in a single flat JSON file keyed by
// lowercased username.
type FileUserRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileUserRepository creates a user repository backed by the file at path.
func NewFileUserRepository(path string) *FileUserRepository {
	return &FileUserRepository{path: path}
}

// load reads the users file. A missing or unreadable file yields an empty map.
func (r *FileUserRepository) load() map[string]userRecord {
	users := map[string]userRecord{}
	b, err := os.ReadFile(r.path)
	if err != nil {
		return users
	}
	if err := json.Unmarshal(b, &users); err != nil {
		return map[string]userRecord{}
	}
	return users
}

func (r *FileUserRepository) save(users map[string]userRecord) error {
	b, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0600); err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace users file: %w", err)
	}
	return nil
}

// Create registers a new user. Usernames are unique case-insensitively.
func (r *FileUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.load()
	key := strings.ToLower(user.Username)
	if _, exists := users[key]; exists {
		return domain.ErrUserExists
	}

	users[key] = userRecord{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Created:      user.CreatedAt,
	}
	return r.save(users)
}

// GetByUsername looks a user up case-insensitively.
func (r *FileUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.load()[strings.ToLower(username)]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return &domain.User{
		ID:           rec.ID,
		Username:     rec.Username,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.Created,
	}, nil
}

package domain

import "context"

// EntryStore persists the per-user journal entry sequence.
//
// List returns entries in insertion order; Update and Delete address entries
// by positional index into that order. Delete accepts negative indices
// counting from the end. Backends without a capability return ErrUnsupported.
type EntryStore interface {
	Append(ctx context.Context, username string, entry *Entry) error
	List(ctx context.Context, username string) ([]*Entry, error)
	View(ctx context.Context, username string) (string, error)
	Update(ctx context.Context, username string, index int, content string) error
	Delete(ctx context.Context, username string, index int) (*Entry, error)
	Clear(ctx context.Context, username string) error
}

// UserRepository persists registered users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// SettingsRepository loads and stores the runtime credentials. Load never
// fails on a missing file; Save merges the non-empty fields of the update.
type SettingsRepository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, update *Settings) error
}

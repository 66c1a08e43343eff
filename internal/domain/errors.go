package domain

import "errors"

var (
	// ErrNotFound is returned when a user or entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUserExists is returned when registering an already-taken username.
	ErrUserExists = errors.New("username already exists")

	// ErrUnsupported is returned by store backends that cannot perform an
	// operation (the document journal supports append and read only).
	ErrUnsupported = errors.New("operation not supported by this storage backend")

	// ErrLocked is returned when the journal file cannot be opened because
	// another program holds it.
	ErrLocked = errors.New("journal file is open in another program")

	// ErrNoAPIKey is returned when an entry is processed without a configured
	// LLM API key.
	ErrNoAPIKey = errors.New("API key not configured")
)

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"tradejournal/internal/domain"
)

// FileSettingsRepository resolves the runtime credentials. Environment
// variables always win; the settings file only fills the gaps, and is only
// written in local mode. In cloud mode Save is a no-op reporting success,
// since cloud settings come exclusively from the environment.
type FileSettingsRepository struct {
	path    string
	isCloud bool
	mu      sync.Mutex
}

// NewFileSettingsRepository creates a settings repository at path.
func NewFileSettingsRepository(path string, isCloud bool) *FileSettingsRepository {
	return &FileSettingsRepository{path: path, isCloud: isCloud}
}

func fromEnv() *domain.Settings {
	return &domain.Settings{
		APIKey:              os.Getenv("ANTHROPIC_API_KEY"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}
}

func (r *FileSettingsRepository) readFile() *domain.Settings {
	s := &domain.Settings{}
	b, err := os.ReadFile(r.path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(b, s); err != nil {
		return &domain.Settings{}
	}
	return s
}

// Load resolves the current settings: environment first, file fallback in
// local mode. A missing file is not an error.
func (r *FileSettingsRepository) Load(ctx context.Context) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := fromEnv()
	if r.isCloud {
		return s, nil
	}

	file := r.readFile()
	if s.APIKey == "" {
		s.APIKey = file.APIKey
	}
	if s.CloudinaryCloudName == "" {
		s.CloudinaryCloudName = file.CloudinaryCloudName
	}
	if s.CloudinaryAPIKey == "" {
		s.CloudinaryAPIKey = file.CloudinaryAPIKey
	}
	if s.CloudinaryAPISecret == "" {
		s.CloudinaryAPISecret = file.CloudinaryAPISecret
	}
	return s, nil
}

// Save merges the non-empty fields of update into the settings file.
func (r *FileSettingsRepository) Save(ctx context.Context, update *domain.Settings) error {
	if r.isCloud {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.readFile()
	if update.APIKey != "" {
		s.APIKey = update.APIKey
	}
	if update.CloudinaryCloudName != "" {
		s.CloudinaryCloudName = update.CloudinaryCloudName
	}
	if update.CloudinaryAPIKey != "" {
		s.CloudinaryAPIKey = update.CloudinaryAPIKey
	}
	if update.CloudinaryAPISecret != "" {
		s.CloudinaryAPISecret = update.CloudinaryAPISecret
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

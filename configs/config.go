package configs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Storage backend names
const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendDocument = "docx"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Anthropic AnthropicConfig
	Market    MarketConfig
	IsCloud   bool
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	AppPassword string // legacy single-user mode
	InviteCode  string // multi-user mode when set
}

// Enabled reports whether any authentication mode is configured.
func (a AuthConfig) Enabled() bool {
	return a.AppPassword != "" || a.InviteCode != ""
}

// MultiUser reports whether invite-code registration mode is active.
func (a AuthConfig) MultiUser() bool {
	return a.InviteCode != ""
}

// StorageConfig holds entry store configuration
type StorageConfig struct {
	Backend      string // json | postgres | docx
	DataDir      string // journal_<user>.json and users.json live here
	JournalPath  string // docx backend only
	DatabaseURL  string // postgres backend only
	SettingsPath string // settings file fallback (local mode)
}

// AnthropicConfig holds LLM API configuration
type AnthropicConfig struct {
	BaseURL   string
	Model     string
	MaxTokens int
}

// MarketConfig holds market snapshot configuration
type MarketConfig struct {
	CacheTTLSeconds int
	RefreshSpec     string // cron spec for the background refresh
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Auth: AuthConfig{
			AppPassword: getEnv("APP_PASSWORD", ""),
			InviteCode:  getEnv("INVITE_CODE", ""),
		},
		Storage: StorageConfig{
			Backend:      getEnv("STORAGE_BACKEND", BackendJSON),
			DataDir:      getEnv("DATA_DIR", "."),
			JournalPath:  getEnv("JOURNAL_PATH", "Trading Journal.docx"),
			DatabaseURL:  getEnv("DATABASE_URL", ""),
			SettingsPath: getEnv("SETTINGS_PATH", defaultSettingsPath()),
		},
		Anthropic: AnthropicConfig{
			BaseURL:   getEnv("ANTHROPIC_BASE_URL", ""),
			Model:     getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			MaxTokens: getEnvInt("ANTHROPIC_MAX_TOKENS", 2000),
		},
		Market: MarketConfig{
			CacheTTLSeconds: getEnvInt("MARKET_CACHE_TTL_SEC", 60),
			RefreshSpec:     getEnv("MARKET_REFRESH_CRON", "*/5 * * * *"),
		},
		IsCloud: strings.ToLower(getEnv("IS_CLOUD", "false")) == "true",
	}
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trading_journal_web_config"
	}
	return filepath.Join(home, ".trading_journal_web_config")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

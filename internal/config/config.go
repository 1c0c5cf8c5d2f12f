package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backend selectors
const (
	BackendFile       = "file"
	BackendClickHouse = "clickhouse"
	BackendMock       = "mock"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// Group allow-list. Empty means every chat is allowed; otherwise the
	// bot announces rejection and leaves any chat not listed here.
	AllowedChatIDs []int64

	// Data files
	BannedWordsFile   string
	QuizQuestionsFile string
	WarningsFile      string
	QuizResultsFile   string

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)

	// Storage backend: file (default), clickhouse or mock
	StorageBackend string

	// ClickHouse connection settings, used when StorageBackend is clickhouse
	ClickHouse ClickHouse
}

// ClickHouse holds the connection settings shared by the storage backend
// and the migration runner
type ClickHouse struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	UseTLS   bool
}

// LoadClickHouseFromEnv reads the ClickHouse settings alone, for tools
// that talk to the database without the rest of the bot configuration.
// Host is left empty when unset; callers decide whether that is fatal.
func LoadClickHouseFromEnv() (ClickHouse, error) {
	ch := ClickHouse{
		Host:     os.Getenv("CLICKHOUSE_HOST"),
		Database: getEnv("CLICKHOUSE_DATABASE", "default"),
		User:     getEnv("CLICKHOUSE_USER", "default"),
		Password: os.Getenv("CLICKHOUSE_PASSWORD"),
		// Password is optional, can be empty
		UseTLS: os.Getenv("CLICKHOUSE_USE_TLS") == "true",
	}

	portStr := os.Getenv("CLICKHOUSE_PORT")
	if portStr == "" {
		ch.Port = 9000 // Default ClickHouse native port
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return ClickHouse{}, fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
		}
		ch.Port = port
	}

	return ch, nil
}

// DSN renders the settings as a database/sql connection string for the
// goose migration runner. The native client connects with the discrete
// fields instead; secure=true here and Options.TLS there both enable TLS.
func (c ClickHouse) DSN() string {
	dsn := fmt.Sprintf("clickhouse://%s:%s@%s:%d/%s?dial_timeout=10s&max_execution_time=60",
		c.User, c.Password, c.Host, c.Port, c.Database)
	if c.UseTLS {
		dsn += "&secure=true"
	}
	return dsn
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	// Gemini API key (required - the bot cannot answer without it)
	config.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	config.GeminiModel = os.Getenv("GEMINI_MODEL")

	// Allowed chat IDs (optional, comma-separated)
	if allowedIDsStr := os.Getenv("ALLOWED_CHAT_IDS"); allowedIDsStr != "" {
		for _, idStr := range strings.Split(allowedIDsStr, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid chat ID in ALLOWED_CHAT_IDS: %s", idStr)
			}
			config.AllowedChatIDs = append(config.AllowedChatIDs, id)
		}
	}

	config.BannedWordsFile = getEnv("BANNED_WORDS_FILE", "banned_words.txt")
	config.QuizQuestionsFile = getEnv("QUIZ_QUESTIONS_FILE", "quiz_questions.json")
	config.WarningsFile = getEnv("WARNINGS_FILE", "warnings.json")
	config.QuizResultsFile = getEnv("QUIZ_RESULTS_FILE", "quiz_results.json")

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	config.StorageBackend = getEnv("STORAGE_BACKEND", BackendFile)
	switch config.StorageBackend {
	case BackendFile, BackendMock:
	case BackendClickHouse:
		ch, err := LoadClickHouseFromEnv()
		if err != nil {
			return nil, err
		}
		if ch.Host == "" {
			return nil, fmt.Errorf("CLICKHOUSE_HOST is required when STORAGE_BACKEND is clickhouse")
		}
		config.ClickHouse = ch
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND: %s (want file, clickhouse or mock)", config.StorageBackend)
	}

	return config, nil
}

// ChatAllowed reports whether the bot may operate in the given chat
func (c *Config) ChatAllowed(chatID int64) bool {
	if len(c.AllowedChatIDs) == 0 {
		return true
	}
	for _, id := range c.AllowedChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

// getEnv retrieves an environment variable or returns the default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

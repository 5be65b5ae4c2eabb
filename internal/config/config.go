package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	FrontendTerminal = "terminal"
	FrontendTelegram = "telegram"

	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type Config struct {
	Frontend  string        `validate:"oneof=terminal telegram"`
	Store     string        `validate:"oneof=file sqlite"`
	DataDir   string        `validate:"required"`
	DBPath    string        `validate:"required"`
	RulesPath string
	LogPath   string        `validate:"required"`
	LogLevel  string        `validate:"oneof=debug info warn error"`
	Pacing    time.Duration `validate:"gte=0"`
	Seed      uint64

	BotToken string `validate:"required_if=Frontend telegram"`
	ChatID   int64  `validate:"required_if=Frontend telegram"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	pacing, err := time.ParseDuration(getEnvOrDefault("ROULETTE_PACING", "1500ms"))
	if err != nil {
		return nil, fmt.Errorf("ROULETTE_PACING: %w", err)
	}
	seed, err := strconv.ParseUint(getEnvOrDefault("ROULETTE_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ROULETTE_SEED: %w", err)
	}
	chatID, err := parseChatID(os.Getenv("CHAT_ID"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Frontend:  getEnvOrDefault("ROULETTE_FRONTEND", FrontendTerminal),
		Store:     getEnvOrDefault("ROULETTE_STORE", StoreFile),
		DataDir:   getEnvOrDefault("ROULETTE_DATA_DIR", "data"),
		DBPath:    getEnvOrDefault("ROULETTE_DB_PATH", "roulette.db"),
		RulesPath: os.Getenv("ROULETTE_RULES"),
		LogPath:   getEnvOrDefault("ROULETTE_LOG_PATH", "roulette.log"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		Pacing:    pacing,
		Seed:      seed,
		BotToken:  os.Getenv("BOT_TOKEN"),
		ChatID:    chatID,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func parseChatID(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("CHAT_ID: %w", err)
	}
	return id, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

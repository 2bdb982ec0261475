package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the service.
type Config struct {
	Port        string
	DatabaseURL string
	StaticDir   string
	LogFile     string
	LogLevel    string

	// Location defines the calendar day used for "today".
	Location *time.Location
	// DigestTime is HH:MM, or empty when the daily digest is disabled.
	DigestTime string

	TelegramToken   string
	TelegramChatIDs []int64

	RateLimitRPS   float64
	RateLimitBurst int

	MetricsUser string
	MetricsPass string
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:          env("PORT", "5000"),
		DatabaseURL:   env("DATABASE_URL", "data/habit_tracker.db?_busy_timeout=5000&_journal_mode=WAL"),
		StaticDir:     env("STATIC_DIR", "static"),
		LogFile:       env("LOG_FILE", "logs/habit_tracker.log"),
		LogLevel:      env("LOG_LEVEL", "info"),
		DigestTime:    env("DIGEST_TIME", "09:00"),
		TelegramToken: env("TELEGRAM_TOKEN", ""),
		MetricsUser:   env("METRICS_USER", ""),
		MetricsPass:   env("METRICS_PASS", ""),
	}

	loc, err := time.LoadLocation(env("HABIT_TIMEZONE", "UTC"))
	if err != nil {
		return cfg, fmt.Errorf("HABIT_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if strings.EqualFold(cfg.DigestTime, "off") {
		cfg.DigestTime = ""
	}

	cfg.TelegramChatIDs, err = parseChatIDs(env("TELEGRAM_CHAT_IDS", ""))
	if err != nil {
		return cfg, err
	}

	cfg.RateLimitRPS, err = strconv.ParseFloat(env("RATE_LIMIT_RPS", "5"), 64)
	if err != nil || cfg.RateLimitRPS <= 0 {
		return cfg, fmt.Errorf("RATE_LIMIT_RPS must be a positive number")
	}
	cfg.RateLimitBurst, err = strconv.Atoi(env("RATE_LIMIT_BURST", "30"))
	if err != nil || cfg.RateLimitBurst <= 0 {
		return cfg, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer")
	}

	return cfg, nil
}

// BotEnabled reports whether the Telegram bot should run.
func (c Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseChatIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q in TELEGRAM_CHAT_IDS", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

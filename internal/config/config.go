package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries all runtime settings. Required secrets are validated in
// Load: the process refuses to start in a partially-configured state.
type Config struct {
	TelegramToken string
	DBPath        string

	// Расписание рассылок (локальное время в Timezone).
	Timezone  string
	MorningAt string // "HH:MM"
	EveningAt string // "HH:MM"
	BonusAt   string // "HH:MM"

	BonusProbability float64

	// YooKassa
	YooShopID    string
	YooSecretKey string
	ReturnURL    string
	PriceRUB     string
	PriceText    string

	HTTPAddr         string
	MetricsNamespace string
	LogLevel         string

	// Redis для дедупликации webhook-уведомлений. Пусто — кэш выключен.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() (Config, error) {
	cfg := Config{
		TelegramToken:    getBotToken(),
		DBPath:           envOr("DB_PATH", "./data.sqlite"),
		Timezone:         envOr("TZ", "Europe/Vilnius"),
		MorningAt:        envOr("MORNING_AT", "08:00"),
		EveningAt:        envOr("EVENING_AT", "21:00"),
		BonusAt:          envOr("BONUS_AT", "13:00"),
		BonusProbability: envFloat("BONUS_PROBABILITY", 0.2),
		YooShopID:        strings.TrimSpace(os.Getenv("YOOKASSA_SHOP_ID")),
		YooSecretKey:     strings.TrimSpace(os.Getenv("YOOKASSA_SECRET_KEY")),
		ReturnURL:        envOr("RETURN_URL", "https://t.me"),
		PriceRUB:         envOr("PRICE_RUB", "490"),
		PriceText:        envOr("PRICE_TEXT", "490 ₽ в месяц"),
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		MetricsNamespace: envOr("METRICS_NAMESPACE", "tochka_opory"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          envInt("REDIS_DB", 0),
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("токен не найден: отсутствует и Docker Secret, и переменная окружения TELEGRAM_BOT_TOKEN")
	}
	if cfg.YooShopID == "" || cfg.YooSecretKey == "" {
		return cfg, fmt.Errorf("YOOKASSA_SHOP_ID / YOOKASSA_SECRET_KEY не заданы")
	}
	if v, err := strconv.ParseFloat(cfg.PriceRUB, 64); err != nil || v <= 0 {
		return cfg, fmt.Errorf("PRICE_RUB должен быть положительным числом, получено %q", cfg.PriceRUB)
	}
	return cfg, nil
}

func getBotToken() string {
	if data, err := os.ReadFile("/run/secrets/telegram_bot_token"); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
	}
	return strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
}

func envOr(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func envFloat(name string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envInt(name string, def int) int {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

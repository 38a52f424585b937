package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken        string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN                string        `mapstructure:"DB_DSN"`
	Environment          string        `mapstructure:"ENV"`
	MigrationsPath       string        `mapstructure:"MIGRATIONS_PATH"`
	WindowCapacity       int           `mapstructure:"WINDOW_CAPACITY"`
	BootstrapTimeout     time.Duration `mapstructure:"BOOTSTRAP_TIMEOUT"`
	LoadConcurrency      int           `mapstructure:"LOAD_CONCURRENCY"`
	HolderReloadInterval time.Duration `mapstructure:"HOLDER_RELOAD_INTERVAL"`
}

// Значения по умолчанию
const (
	DefaultEnvironment      = "development"
	DefaultMigrationsPath   = "migrations"
	DefaultWindowCapacity   = 8
	DefaultBootstrapTimeout = 30 * time.Second
	DefaultLoadConcurrency  = 8
)

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = DefaultMigrationsPath
	}

	var err error
	if cfg.WindowCapacity, err = intEnv("WINDOW_CAPACITY", DefaultWindowCapacity); err != nil {
		return nil, err
	}
	if cfg.LoadConcurrency, err = intEnv("LOAD_CONCURRENCY", DefaultLoadConcurrency); err != nil {
		return nil, err
	}
	if cfg.BootstrapTimeout, err = durationEnv("BOOTSTRAP_TIMEOUT", DefaultBootstrapTimeout); err != nil {
		return nil, err
	}
	if cfg.HolderReloadInterval, err = durationEnv("HOLDER_RELOAD_INTERVAL", 0); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// BotEnabled бот запускается только при заданном токене
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration, got %q", key, raw)
	}
	return v, nil
}

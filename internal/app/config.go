package app

import (
	"fmt"
	"os"
	"time"
)

// Драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	StorageDriver string
	PostgresDSN   string

	KafkaBrokers string

	HeartbeatInterval time.Duration
	ReminderInterval  time.Duration
	ReminderWindow    time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию: API на :8080,
// метрики на :9090, хранилище в памяти.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:          ":8080",
		MetricsAddr:       ":9090",
		StorageDriver:     StorageDriverMemory,
		HeartbeatInterval: 5 * time.Minute,
		ReminderInterval:  24 * time.Hour,
		ReminderWindow:    7 * 24 * time.Hour,
	}
}

// LoadConfig строит конфигурацию из окружения поверх значений по умолчанию.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("CRM_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("CRM_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("CRM_STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = v
	}
	if v := os.Getenv("CRM_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}

	var err error
	if cfg.HeartbeatInterval, err = durationFromEnv("CRM_HEARTBEAT_INTERVAL", cfg.HeartbeatInterval); err != nil {
		return Config{}, err
	}
	if cfg.ReminderInterval, err = durationFromEnv("CRM_REMINDER_INTERVAL", cfg.ReminderInterval); err != nil {
		return Config{}, err
	}
	if cfg.ReminderWindow, err = durationFromEnv("CRM_REMINDER_WINDOW", cfg.ReminderWindow); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres storage driver requires CRM_POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat interval must be positive, got %s", c.HeartbeatInterval)
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("reminder interval must be positive, got %s", c.ReminderInterval)
	}
	if c.ReminderWindow <= 0 {
		return fmt.Errorf("reminder window must be positive, got %s", c.ReminderWindow)
	}
	return nil
}

func durationFromEnv(name string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return d, nil
}

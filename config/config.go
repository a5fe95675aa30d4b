package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DataStorePostgres = "postgres"
	DataStoreSupabase = "supabase"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort   int    `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	JWTSecretKey string `envconfig:"JWT_SECRET_KEY" required:"true"`

	// DataStore выбирает хранилище: прямое подключение к PostgreSQL или REST API Supabase.
	DataStore         string        `envconfig:"DATA_STORE" default:"postgres"`
	DatabaseURL       string        `envconfig:"DATABASE_URL"`
	DBConnectTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`
	SupabaseURL       string        `envconfig:"SUPABASE_URL"`
	SupabaseAnonKey   string        `envconfig:"SUPABASE_ANON_KEY"`
	SupabaseRateLimit float64       `envconfig:"SUPABASE_RATE_LIMIT" default:"20"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	R2AccountID       string `envconfig:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `envconfig:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `envconfig:"R2_BUCKET_NAME"`
	R2PublicBaseURL   string `envconfig:"R2_PUBLIC_BASE_URL"`
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load() // отсутствие .env не ошибка

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return errors.New("JWT_SECRET_KEY environment variable is not set")
	}

	switch c.DataStore {
	case DataStorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DATA_STORE=postgres")
		}
	case DataStoreSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required when DATA_STORE=supabase")
		}
	default:
		return fmt.Errorf("DATA_STORE must be %q or %q, got %q", DataStorePostgres, DataStoreSupabase, c.DataStore)
	}

	r2 := []string{c.R2AccountID, c.R2AccessKeyID, c.R2SecretAccessKey, c.R2BucketName, c.R2PublicBaseURL}
	set := 0
	for _, v := range r2 {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return errors.New("R2 storage settings are partial: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL or none")
	}
	return nil
}

// StorageEnabled сообщает, настроено ли хранилище логотипов.
func (c *Config) StorageEnabled() bool {
	return c.R2AccountID != ""
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "default-dev-secret-change-me"

// Config — настройки приложения из окружения, .env и флагов
type Config struct {
	Addr          string
	DatabaseURL   string
	SecretKey     string
	UploadDir     string
	ResetTokenTTL time.Duration
	Env           string
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load читает .env (если есть), переменные окружения и затем флаги командной строки.
// Флаги имеют приоритет над окружением.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения")
	}

	cfg := &Config{
		Addr:        getEnv("ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", "./site.db"),
		SecretKey:   getEnv("SECRET_KEY", ""),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		Env:         getEnv("ENV", "development"),
	}

	ttl, err := time.ParseDuration(getEnv("RESET_TOKEN_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("некорректный RESET_TOKEN_TTL: %w", err)
	}
	cfg.ResetTokenTTL = ttl

	fs := flag.NewFlagSet("blog", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP network address")
	fs.StringVar(&cfg.DatabaseURL, "dsn", cfg.DatabaseURL, "SQLite file or postgres:// URL")
	fs.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "Directory for uploaded avatars")
	fs.DurationVar(&cfg.ResetTokenTTL, "reset-ttl", cfg.ResetTokenTTL, "Password reset token lifetime")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ResetTokenTTL <= 0 {
		return nil, fmt.Errorf("время жизни токена должно быть положительным: %s", cfg.ResetTokenTTL)
	}

	if cfg.SecretKey == "" {
		if cfg.Production() {
			return nil, fmt.Errorf("SECRET_KEY не задан")
		}
		log.Println("ВНИМАНИЕ: SECRET_KEY не задан, используется ключ для разработки")
		cfg.SecretKey = devSecret
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

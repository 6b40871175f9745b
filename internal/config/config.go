package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища каталога.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config хранит все параметры запуска приложения.
// Создаётся один раз при старте и дальше передаётся в компоненты явно.
type Config struct {
	Env             string
	HTTPPort        string
	LogLevel        string
	DatabaseDriver  string
	DatabaseURL     string
	APISecret       string
	GitHubToken     string
	GitHubAPIURL    string
	GitHubRawURL    string
	HTTPTimeout     time.Duration
	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration
}

// IsProduction сообщает, запущен ли сервис в production окружении.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// StoreEnabled сообщает, настроено ли реляционное хранилище.
func (c *Config) StoreEnabled() bool {
	return c.DatabaseURL != ""
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	return FromEnv()
}

// FromEnv собирает конфигурацию только из переменных окружения процесса.
func FromEnv() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	defaultLevel := "info"
	if env == "development" {
		defaultLevel = "debug"
	}

	cfg := &Config{
		Env:            env,
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", defaultLevel),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
		DatabaseURL:    getDatabaseURL(),
		GitHubToken:    getEnv("GITHUB_TOKEN", ""),
		GitHubAPIURL:   getEnv("GITHUB_API_URL", "https://api.github.com/"),
		GitHubRawURL:   strings.TrimRight(getEnv("GITHUB_RAW_URL", "https://raw.githubusercontent.com"), "/"),
	}

	if cfg.DatabaseDriver != DriverPostgres && cfg.DatabaseDriver != DriverSQLite {
		return nil, fmt.Errorf("config: неизвестный DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	// go-github требует завершающий слэш в базовом адресе
	if !strings.HasSuffix(cfg.GitHubAPIURL, "/") {
		cfg.GitHubAPIURL += "/"
	}

	secret := getEnv("API_SECRET", "")
	if cfg.IsProduction() {
		if len(secret) < 32 {
			return nil, fmt.Errorf("config: API_SECRET обязателен и должен быть не менее 32 символов в production")
		}
	} else if secret == "" {
		log.Printf("config: WARNING - API_SECRET не задан, изменяющие запросы будут отклоняться")
	}
	cfg.APISecret = secret

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	} else {
		for _, origin := range strings.Split(originsStr, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	var err error
	if cfg.HTTPTimeout, err = parseDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.RateLimitLimit, err = parseInt64("RATE_LIMIT_LIMIT", "60"); err != nil {
		return nil, err
	}
	if cfg.RateLimitPeriod, err = parseDuration("RATE_LIMIT_PERIOD", "1m"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getDatabaseURL возвращает DSN либо из DATABASE_URL, либо собирает из отдельных переменных.
// Пустая строка означает, что хранилище не настроено и каталог работает на статических данных.
func getDatabaseURL() string {
	if dbURL := getEnv("DATABASE_URL", ""); dbURL != "" {
		return dbURL
	}

	// Формат платформы: отдельные переменные
	host := getEnv("POSTGRESQL_HOST", "")
	port := getEnv("POSTGRESQL_PORT", "5432")
	user := getEnv("POSTGRESQL_USER", "")
	password := getEnv("POSTGRESQL_PASSWORD", "")
	dbname := getEnv("POSTGRESQL_DBNAME", "")

	if host != "" && user != "" && dbname != "" {
		userInfo := url.UserPassword(user, password)
		return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable", userInfo.String(), host, port, dbname)
	}

	return ""
}

// parseDuration читает длительность из окружения.
func parseDuration(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить %s=%q: %w", key, v, err)
	}
	return dur, nil
}

// parseInt64 читает целое число из окружения.
func parseInt64(key, fallback string) (int64, error) {
	v := getEnv(key, fallback)
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить %s=%q: %w", key, v, err)
	}
	return num, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Session  SessionConfig
	Auth     AuthConfig
	Upstream UpstreamConfig
	Catalog  CatalogConfig
	Reviews  ReviewsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SessionConfig controls where session tokens live and how long idle view state is kept.
type SessionConfig struct {
	CookieName          string
	Store               string
	KeyPrefix           string
	TTLHours            int
	ViewIdleMinutes     int
	SweepIntervalSecond int
}

// AuthConfig defines parameters of the mocked login.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	DemoAccounts          []DemoAccount
}

// DemoAccount is a preconfigured login with fixed roles.
type DemoAccount struct {
	Username string
	Password string
	Roles    []string
}

// UpstreamConfig holds collaborator endpoints.
type UpstreamConfig struct {
	ProductsURL    string
	ReviewsURL     string
	TimeoutSeconds int
}

// CatalogConfig tunes catalog browsing.
type CatalogConfig struct {
	PageSize  int
	FetchSize int
	Locale    string
}

// ReviewsConfig tunes review paging.
type ReviewsConfig struct {
	PageSize int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	accounts, err := ParseDemoAccounts(getEnv("AUTH_DEMO_ACCOUNTS", "admin:admin123:ROLE_ADMIN,seller:seller123:ROLE_SELLER"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_DEMO_ACCOUNTS: %w", err)
	}

	store := strings.ToLower(getEnv("SESSION_STORE", "memory"))
	if store != "memory" && store != "redis" {
		return nil, fmt.Errorf("invalid SESSION_STORE %q: want memory or redis", store)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "storefront"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			CookieName:          getEnv("SESSION_COOKIE", "sf_session"),
			Store:               store,
			KeyPrefix:           getEnv("SESSION_KEY_PREFIX", "storefront:token:"),
			TTLHours:            getEnvAsInt("SESSION_TTL_HOURS", 720),
			ViewIdleMinutes:     getEnvAsInt("SESSION_VIEW_IDLE_MINUTES", 30),
			SweepIntervalSecond: getEnvAsInt("SESSION_SWEEP_INTERVAL_SECONDS", 60),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 10),
			DemoAccounts:          accounts,
		},
		Upstream: UpstreamConfig{
			ProductsURL:    strings.TrimRight(getEnv("PRODUCTS_URL", "http://localhost:8072/productservice/api/v1"), "/"),
			ReviewsURL:     strings.TrimRight(getEnv("REVIEWS_URL", "http://localhost:8072/reviewservice/api/v1"), "/"),
			TimeoutSeconds: getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 10),
		},
		Catalog: CatalogConfig{
			PageSize:  getEnvAsInt("CATALOG_PAGE_SIZE", 20),
			FetchSize: getEnvAsInt("CATALOG_FETCH_SIZE", 100),
			Locale:    getEnv("CATALOG_LOCALE", "ru"),
		},
		Reviews: ReviewsConfig{
			PageSize: getEnvAsInt("REVIEWS_PAGE_SIZE", 10),
		},
	}

	return cfg, nil
}

// ParseDemoAccounts parses "user:password:ROLE|ROLE,..." into accounts.
func ParseDemoAccounts(raw string) ([]DemoAccount, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var accounts []DemoAccount
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("malformed account entry %q", entry)
		}
		var roles []string
		for _, role := range strings.Split(parts[2], "|") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}
		accounts = append(accounts, DemoAccount{Username: parts[0], Password: parts[1], Roles: roles})
	}
	return accounts, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TTL returns how long a stored token survives without being rewritten.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLHours <= 0 {
		return 0
	}
	return time.Duration(s.TTLHours) * time.Hour
}

// ViewIdle returns how long per-session view state is kept without access.
func (s SessionConfig) ViewIdle() time.Duration {
	if s.ViewIdleMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(s.ViewIdleMinutes) * time.Minute
}

// SweepInterval returns the period of the idle view sweeper.
func (s SessionConfig) SweepInterval() time.Duration {
	if s.SweepIntervalSecond <= 0 {
		return time.Minute
	}
	return time.Duration(s.SweepIntervalSecond) * time.Second
}

// Timeout returns the per-call collaborator timeout.
func (u UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

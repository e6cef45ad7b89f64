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
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Insight  InsightConfig
	Activity ActivityConfig
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

// HTTPConfig holds cross-cutting HTTP middleware settings.
type HTTPConfig struct {
	AllowedOrigins      string
	AuthRateLimitPerMin int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
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

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// InsightConfig points at the external text-completion API.
type InsightConfig struct {
	BaseURL          string
	APIKey           string
	Model            string
	TimeoutSeconds   int
	FailureThreshold uint32
	OpenSeconds      int
}

// ActivityConfig controls the recent activity feed.
type ActivityConfig struct {
	Key      string
	MaxItems int64
}

// DefaultAccessTokenTTLMinutes is the fixed seven day session window.
const DefaultAccessTokenTTLMinutes = 7 * 24 * 60

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ops-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3001"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		HTTP: HTTPConfig{
			AllowedOrigins:      getEnv("HTTP_ALLOWED_ORIGINS", "*"),
			AuthRateLimitPerMin: getEnvAsInt("HTTP_AUTH_RATE_LIMIT_PER_MIN", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", DefaultAccessTokenTTLMinutes),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		Insight: InsightConfig{
			BaseURL:          strings.TrimRight(getEnv("INSIGHT_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"), "/"),
			APIKey:           os.Getenv("INSIGHT_API_KEY"),
			Model:            getEnv("INSIGHT_MODEL", "gemini-3-flash-preview"),
			TimeoutSeconds:   getEnvAsInt("INSIGHT_TIMEOUT_SECONDS", 10),
			FailureThreshold: uint32(getEnvAsInt("INSIGHT_BREAKER_FAILURES", 3)),
			OpenSeconds:      getEnvAsInt("INSIGHT_BREAKER_OPEN_SECONDS", 30),
		},
		Activity: ActivityConfig{
			Key:      getEnv("ACTIVITY_REDIS_KEY", "ops-console:activities"),
			MaxItems: int64(getEnvAsInt("ACTIVITY_MAX_ITEMS", 50)),
		},
	}

	return cfg, nil
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

// Timeout bounds one completion call.
func (i InsightConfig) Timeout() time.Duration {
	if i.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(i.TimeoutSeconds) * time.Second
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

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

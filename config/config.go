package config

import (
	"movieapi/logging"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSecret = "defaultSecret"

// Config holds application configuration
type Config struct {
	Port        string
	CORSOrigins string

	DBDriver       string // postgres, mysql or sqlite
	DatabaseURL    string // full DSN, takes precedence over the parts below
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
	DBMaxIdleConns int

	JWTKey            string
	AccessTokenExpiry time.Duration
	SaltRound         int

	RedisAddr      string
	RatingCacheTTL time.Duration

	// ReconcileSchedule is a cron spec for the aggregate reconciliation job; empty disables it.
	ReconcileSchedule string

	LogLevel  string
	LogFormat string
}

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logging.Warn().Msg(".env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "movies"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTKey:            getEnv("JWT_SECRET_KEY", defaultSecret),
		AccessTokenExpiry: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		SaltRound:         getEnvInt("SALT_ROUND", 10),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RatingCacheTTL: time.Duration(getEnvInt("RATING_CACHE_TTL_SECONDS", 900)) * time.Second,

		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate critical configuration
	if cfg.JWTKey == defaultSecret {
		logging.Warn().Msg("using default JWT_SECRET_KEY, set it in your environment")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "mysql" && cfg.DBDriver != "sqlite" {
		logging.Warn().Str("driver", cfg.DBDriver).Msg("unknown DB_DRIVER, falling back to postgres")
		cfg.DBDriver = "postgres"
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("invalid integer in environment, using default")
		return defaultValue
	}
	return intValue
}

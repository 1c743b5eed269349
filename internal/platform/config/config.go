package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the top-level configuration for the PitchScout API.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	JWT        JWTConfig        `json:"jwt"`
	Cache      CacheConfig      `json:"cache"`
	RateLimits RateLimitsConfig `json:"rateLimits"`
	App        AppConfig        `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	BaseRoute string `json:"baseRoute"`
	WebDomain string `json:"webDomain"`
	Debug     bool   `json:"debug"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Postgres PostgreSQLConfig `json:"postgres"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	Schema          string        `json:"schema"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
	ConnectTimeout  int           `json:"connectTimeout"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// CacheConfig holds Redis-related configuration
type CacheConfig struct {
	Enabled bool        `json:"enabled"`
	Redis   RedisConfig `json:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address      string `json:"address"`
	Password     string `json:"password"`
	Database     int    `json:"database"`
	PoolSize     int    `json:"poolSize"`
	MinIdleConns int    `json:"minIdleConns"`
}

// RateLimitConfig holds rate limiting configuration for a specific endpoint
type RateLimitConfig struct {
	Enabled  bool          `json:"enabled"`
	Max      int           `json:"max"`
	Duration time.Duration `json:"duration"`
}

// RateLimitsConfig holds rate limiting configuration for all endpoints
type RateLimitsConfig struct {
	PollVote  RateLimitConfig `json:"pollVote"`
	ReplyVote RateLimitConfig `json:"replyVote"`
	Report    RateLimitConfig `json:"report"`
}

// AppConfig holds application-related configuration
type AppConfig struct {
	Name      string `json:"name"`
	OrgName   string `json:"orgName"`
	WebDomain string `json:"webDomain"`
}

// LoadFromEnv loads configuration from the environment.
// Precedence:
// 1. Explicit environment variables (e.g., set in the shell or by CI)
// 2. Values from the .env file (if it exists)
// 3. Hardcoded defaults
func LoadFromEnv() (*Config, error) {
	// godotenv.Load reads the .env file and loads its values into the
	// environment only if they are not already set, which produces the
	// precedence above.
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	var loadErr error
	for _, envPath := range envPaths {
		loadErr = godotenv.Load(envPath)
		if loadErr == nil {
			break
		}
	}
	if loadErr != nil {
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	config := &Config{
		Server: ServerConfig{
			Host:      getEnvOrDefault("HOST", "localhost"),
			Port:      getEnvAsInt("SERVER_PORT", 8080),
			BaseRoute: getEnvOrDefault("BASE_ROUTE", "/api"),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
			Debug:     getEnvAsBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Postgres: PostgreSQLConfig{
				Host:            getEnvOrDefault("POSTGRES_HOST", "127.0.0.1"),
				Port:            getEnvAsInt("POSTGRES_PORT", 5432),
				Username:        getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password:        getEnvOrDefault("POSTGRES_PASSWORD", ""),
				Database:        getEnvOrDefault("POSTGRES_DB", "pitchscout"),
				Schema:          getEnvOrDefault("POSTGRES_SCHEMA", ""),
				SSLMode:         getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
				MaxOpenConns:    getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: getEnvAsDuration("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
				ConnectTimeout:  getEnvAsInt("POSTGRES_CONNECT_TIMEOUT", 10),
			},
		},
		JWT: JWTConfig{
			PublicKey:  getEnvOrDefault("JWT_PUBLIC_KEY", ""),
			PrivateKey: getEnvOrDefault("JWT_PRIVATE_KEY", ""),
		},
		Cache: CacheConfig{
			Enabled: getEnvAsBool("CACHE_ENABLED", false),
			Redis: RedisConfig{
				Address:      getEnvOrDefault("REDIS_ADDRESS", "127.0.0.1:6379"),
				Password:     getEnvOrDefault("REDIS_PASSWORD", ""),
				Database:     getEnvAsInt("REDIS_DATABASE", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			},
		},
		RateLimits: RateLimitsConfig{
			PollVote: RateLimitConfig{
				Enabled:  getEnvAsBool("RATE_LIMIT_POLL_VOTE_ENABLED", true),
				Max:      getEnvAsInt("RATE_LIMIT_POLL_VOTE_MAX", 30),
				Duration: getEnvAsDuration("RATE_LIMIT_POLL_VOTE_DURATION", time.Minute),
			},
			ReplyVote: RateLimitConfig{
				Enabled:  getEnvAsBool("RATE_LIMIT_REPLY_VOTE_ENABLED", true),
				Max:      getEnvAsInt("RATE_LIMIT_REPLY_VOTE_MAX", 60),
				Duration: getEnvAsDuration("RATE_LIMIT_REPLY_VOTE_DURATION", time.Minute),
			},
			Report: RateLimitConfig{
				Enabled:  getEnvAsBool("RATE_LIMIT_REPORT_ENABLED", true),
				Max:      getEnvAsInt("RATE_LIMIT_REPORT_MAX", 10),
				Duration: getEnvAsDuration("RATE_LIMIT_REPORT_DURATION", time.Hour),
			},
		},
		App: AppConfig{
			Name:      getEnvOrDefault("APP_NAME", "pitchscout"),
			OrgName:   getEnvOrDefault("ORG_NAME", "PitchScout"),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that required configuration values are present and sane.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Postgres.Host == "" {
		return fmt.Errorf("postgres host is required")
	}
	if c.Database.Postgres.Database == "" {
		return fmt.Errorf("postgres database is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

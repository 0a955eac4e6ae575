package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis (provider response cache)
	Redis RedisConfig

	// External data sources
	NHL          NHLConfig
	DailyFaceoff DailyFaceoffConfig

	// Scoring weights (injectable; retuned from calibration runs)
	Weights WeightsConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// NHLConfig holds NHL stats API configuration.
type NHLConfig struct {
	BaseURL        string
	RequestsPerSec float64 // rate limit applied to every API call
	Timeout        time.Duration
}

// DailyFaceoffConfig holds lineup-scraper configuration.
type DailyFaceoffConfig struct {
	BaseURL   string
	UserAgent string
}

// WeightsConfig holds the final-score weight vector on a 0-100 scale.
// The aggregator normalizes to a unit sum, so only the ratios matter.
type WeightsConfig struct {
	LineOpportunity float64
	Situational     float64
	RecentForm      float64
	Matchup         float64

	// Defensemen lean harder on PP deployment, lighter on recent form.
	DefenseLineOpportunity float64
	DefenseRecentForm      float64
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		NHL: NHLConfig{
			BaseURL:        getEnv("NHL_API_BASE_URL", "https://api-web.nhle.com/v1"),
			RequestsPerSec: getEnvAsFloat("NHL_API_RPS", 5.0),
			Timeout:        getEnvAsDuration("NHL_API_TIMEOUT", "30s"),
		},

		DailyFaceoff: DailyFaceoffConfig{
			BaseURL:   getEnv("DFO_BASE_URL", "https://www.dailyfaceoff.com/teams"),
			UserAgent: getEnv("DFO_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
		},

		Weights: WeightsConfig{
			LineOpportunity:        getEnvAsFloat("WEIGHT_LINE_OPPORTUNITY", 45),
			Situational:            getEnvAsFloat("WEIGHT_SITUATIONAL", 25),
			RecentForm:             getEnvAsFloat("WEIGHT_RECENT_FORM", 20),
			Matchup:                getEnvAsFloat("WEIGHT_MATCHUP", 10),
			DefenseLineOpportunity: getEnvAsFloat("WEIGHT_D_LINE_OPPORTUNITY", 50),
			DefenseRecentForm:      getEnvAsFloat("WEIGHT_D_RECENT_FORM", 15),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Weights.LineOpportunity+c.Weights.Situational+c.Weights.RecentForm+c.Weights.Matchup <= 0 {
		return fmt.Errorf("scoring weights must have a positive sum")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	d, err := time.ParseDuration(valueStr)
	if err != nil {
		d, _ = time.ParseDuration(defaultValue)
	}
	return d
}

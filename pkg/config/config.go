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
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional; report persistence is skipped when URL is empty)
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External data providers
	Tushare   TushareConfig
	EastMoney EastMoneyConfig

	// Narrative generation
	LLM LLMConfig

	// Morning pipeline
	Pipeline PipelineConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// TushareConfig holds Tushare Pro API configuration.
// An empty token means the provider is unavailable, not a config error.
type TushareConfig struct {
	Token   string
	BaseURL string
}

// EastMoneyConfig holds EastMoney endpoint configuration
type EastMoneyConfig struct {
	QuoteBaseURL string
	HistBaseURL  string
	NewsBaseURL  string
}

// LLMConfig holds chat-completions API configuration
type LLMConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// PipelineConfig holds morning pipeline timing configuration
type PipelineConfig struct {
	// CutoffTime is the HH:MM:SS wall-clock deadline after which the
	// incremental stage is skipped in favor of the rule-based fallback.
	CutoffTime string

	// IncrementalTimeout bounds the narrative call at the incremental stage.
	IncrementalTimeout time.Duration

	// GenerationTimeout bounds every other narrative call
	// (preliminary and on-demand stages included).
	GenerationTimeout time.Duration
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// Providers
		Tushare: TushareConfig{
			Token:   getEnv("TUSHARE_TOKEN", ""),
			BaseURL: getEnv("TUSHARE_BASE_URL", "http://api.tushare.pro"),
		},
		EastMoney: EastMoneyConfig{
			QuoteBaseURL: getEnv("EASTMONEY_QUOTE_BASE_URL", "https://push2.eastmoney.com"),
			HistBaseURL:  getEnv("EASTMONEY_HIST_BASE_URL", "https://push2his.eastmoney.com"),
			NewsBaseURL:  getEnv("EASTMONEY_NEWS_BASE_URL", "https://so.eastmoney.com"),
		},

		// LLM
		LLM: LLMConfig{
			APIKey:    getEnv("LLM_API_KEY", ""),
			BaseURL:   getEnv("LLM_BASE_URL", "https://api.deepseek.com"),
			Model:     getEnv("LLM_MODEL", "deepseek-chat"),
			MaxTokens: getEnvAsInt("LLM_MAX_TOKENS", 4096),
		},

		// Pipeline
		Pipeline: PipelineConfig{
			CutoffTime:         getEnv("PIPELINE_CUTOFF_TIME", "09:29:30"),
			IncrementalTimeout: getEnvAsDuration("PIPELINE_INCREMENTAL_TIMEOUT", "30s"),
			GenerationTimeout:  getEnvAsDuration("PIPELINE_GENERATION_TIMEOUT", "120s"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks configuration values that must be well-formed.
// Missing provider credentials are not validated here: an absent token
// only means that provider is unavailable.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if _, err := ParseCutoff(c.Pipeline.CutoffTime); err != nil {
		return fmt.Errorf("PIPELINE_CUTOFF_TIME: %w", err)
	}

	if c.Pipeline.IncrementalTimeout <= 0 {
		return fmt.Errorf("PIPELINE_INCREMENTAL_TIMEOUT must be positive")
	}

	return nil
}

// ParseCutoff parses an HH:MM:SS cutoff string into seconds since midnight.
func ParseCutoff(s string) (int, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("invalid cutoff time %q (want HH:MM:SS): %w", s, err)
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
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

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

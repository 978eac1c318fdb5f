package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application. Values are read by
// viper from environment variables, with a .env file loaded first when
// present.
type Config struct {
	Port string

	// Gemini
	GoogleAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	LLMProvider   string
	LLMTimeout    time.Duration

	// Session cookie signing
	SecretKey string

	// Session store
	SessionStore  string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisTTL      time.Duration

	ReportsDir string
	WebDir     string
	LogLevel   string
}

// Load reads configuration from the environment. GOOGLE_API_KEY and
// SECRET_KEY have no usable defaults; their absence is a startup error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("llm_provider", "gemini")
	v.SetDefault("llm_timeout", "60s")
	v.SetDefault("session_store", "memory")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_ttl", "24h")
	v.SetDefault("reports_dir", "reports")
	v.SetDefault("web_dir", "web")
	v.SetDefault("log_level", "info")

	v.AutomaticEnv()

	cfg := &Config{
		Port:          v.GetString("port"),
		GoogleAPIKey:  v.GetString("google_api_key"),
		GeminiModel:   v.GetString("gemini_model"),
		GeminiBaseURL: v.GetString("gemini_base_url"),
		LLMProvider:   v.GetString("llm_provider"),
		LLMTimeout:    v.GetDuration("llm_timeout"),
		SecretKey:     v.GetString("secret_key"),
		SessionStore:  v.GetString("session_store"),
		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisTTL:      v.GetDuration("redis_ttl"),
		ReportsDir:    v.GetString("reports_dir"),
		WebDir:        v.GetString("web_dir"),
		LogLevel:      v.GetString("log_level"),
	}

	// The mock provider needs no credential, everything else does.
	if cfg.GoogleAPIKey == "" && cfg.LLMProvider != "mock" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}

	return cfg, nil
}

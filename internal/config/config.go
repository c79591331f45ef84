package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Server
	Port        string
	Environment string
	LogLevel    string
	LogFormat   string
	AppURL      string
	AppName     string

	// CORS
	CORSOrigins []string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Features
	EnableCache   bool
	EnableMetrics bool

	// AI page generation
	GeminiAPIKey         string
	OpenRouterAPIKey     string
	GeminiBaseURL        string
	OpenRouterBaseURL    string
	AIDefaultProvider    string
	AIRequestTimeout     time.Duration
	AIMaxTokens          int
	AIStrictBlockTypes   bool
	AIGenerateRateLimit  int
	AIGenerateRateWindow int
	// Zero keeps the generation log forever.
	AIGenerationRetention time.Duration
}

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "funnelcart"),
		DBPassword: getEnv("DB_PASSWORD", "funnelcart"),
		DBName:     getEnv("DB_NAME", "funnelcart"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "localhost:6379"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		AppURL:      getEnv("APP_URL", "http://localhost:8080"),
		AppName:     getEnv("APP_NAME", "Funnelcart"),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 0),

		// Features
		EnableCache:   getEnvAsBool("ENABLE_CACHE", true),
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// AI page generation
		GeminiAPIKey:         strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
		OpenRouterAPIKey:     strings.TrimSpace(getEnv("OPENROUTER_API_KEY", "")),
		GeminiBaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		OpenRouterBaseURL:    getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai"),
		AIDefaultProvider:    strings.ToLower(getEnv("AI_DEFAULT_PROVIDER", "gemini")),
		AIRequestTimeout:     time.Duration(getEnvAsInt("AI_REQUEST_TIMEOUT_SECONDS", 90)) * time.Second,
		AIMaxTokens:          getEnvAsInt("AI_MAX_TOKENS", 4000),
		AIStrictBlockTypes:   getEnvAsBool("AI_STRICT_BLOCK_TYPES", false),
		AIGenerateRateLimit:  getEnvAsInt("AI_GENERATE_RATE_LIMIT", 10),
		AIGenerateRateWindow: getEnvAsInt("AI_GENERATE_RATE_WINDOW", 300),

		AIGenerationRetention: time.Duration(getEnvAsInt("AI_GENERATION_RETENTION_DAYS", 30)) * 24 * time.Hour,
	}

	if c.AIRequestTimeout <= 0 {
		c.AIRequestTimeout = 90 * time.Second
	}
	if c.AIGenerationRetention < 0 {
		c.AIGenerationRetention = 0
	}

	// Build DSN
	c.DatabaseURL = getEnv("DATABASE_URL", fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	))

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func splitList(value string) []string {
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

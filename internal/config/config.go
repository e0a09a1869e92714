package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Blockchain BlockchainConfig
	Assist     AssistConfig
	Market     MarketConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds wallet session token configuration
type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
}

// BlockchainConfig holds the marketplace chain settings
type BlockchainConfig struct {
	RPCURL             string
	ContractAddress    string
	OperatorPrivateKey string
	ConfirmInterval    time.Duration
	ConfirmTimeout     time.Duration
}

// AssistConfig holds the external AI gateway settings
type AssistConfig struct {
	BaseURL      string
	DefaultModel string
	Timeout      time.Duration
}

// MarketConfig holds marketplace business defaults
type MarketConfig struct {
	MarkupFactor        float64
	DefaultPromptRating int
	DefaultUserRating   int
	OwnerSyncInterval   time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "prompthash"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			SessionExpiry: getEnvAsDuration("JWT_SESSION_EXPIRY", 7*24*time.Hour),
		},
		Blockchain: BlockchainConfig{
			RPCURL:             getEnv("CHAIN_RPC_URL", "https://sepolia.base.org"),
			ContractAddress:    getEnv("MARKETPLACE_CONTRACT_ADDRESS", ""),
			OperatorPrivateKey: getEnv("OPERATOR_PRIVATE_KEY", ""),
			ConfirmInterval:    getEnvAsDuration("CHAIN_CONFIRM_INTERVAL", 2*time.Second),
			ConfirmTimeout:     getEnvAsDuration("CHAIN_CONFIRM_TIMEOUT", 2*time.Minute),
		},
		Assist: AssistConfig{
			BaseURL:      getEnv("ASSIST_GATEWAY_URL", "https://secret-ai-gateway.onrender.com"),
			DefaultModel: getEnv("ASSIST_DEFAULT_MODEL", "gemini-2.5-flash"),
			Timeout:      getEnvAsDuration("ASSIST_TIMEOUT", 30*time.Second),
		},
		Market: MarketConfig{
			MarkupFactor:        getEnvAsFloat("MARKET_MARKUP_FACTOR", 1.2),
			DefaultPromptRating: getEnvAsInt("MARKET_DEFAULT_PROMPT_RATING", 3),
			DefaultUserRating:   getEnvAsInt("MARKET_DEFAULT_USER_RATING", 4),
			OwnerSyncInterval:   getEnvAsDuration("MARKET_OWNER_SYNC_INTERVAL", 30*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

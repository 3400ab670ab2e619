package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Oracle     OracleConfig
	Ranking    RankingConfig
	Data       DataConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes priority when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// OracleConfig holds configuration for the text-completion oracle
// (a DeepSeek-compatible chat API)
type OracleConfig struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature float64
	Timeout     int // seconds
	Enabled     bool
}

// RankingConfig holds ranking defaults
type RankingConfig struct {
	DefaultLimit        int
	MaxLimit            int
	DefaultRandomFactor float64
	DefaultAlpha        float64
}

// DataConfig holds paths to local data files
type DataConfig struct {
	DistrictCSV     string
	CircleCSV       string
	MarketStatsPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "realtor"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Oracle: OracleConfig{
			APIKey:      getEnv("DEEPSEEK_API_KEY", ""),
			APIURL:      getEnv("DEEPSEEK_API_URL", "https://api.deepseek.com/chat/completions"),
			Model:       getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
			Temperature: getEnvAsFloat("DEEPSEEK_TEMPERATURE", 0.2),
			Timeout:     getEnvAsInt("DEEPSEEK_TIMEOUT", 30),
			Enabled:     getEnv("DEEPSEEK_API_KEY", "") != "",
		},
		Ranking: RankingConfig{
			DefaultLimit:        getEnvAsInt("RANK_DEFAULT_LIMIT", 10),
			MaxLimit:            getEnvAsInt("RANK_MAX_LIMIT", 50),
			DefaultRandomFactor: getEnvAsFloat("RANK_RANDOM_FACTOR", 1.0),
			DefaultAlpha:        getEnvAsFloat("WEIGHT_STRETCH_ALPHA", 2.0),
		},
		Data: DataConfig{
			DistrictCSV:     getEnv("DATA_DISTRICT_CSV", ""),
			CircleCSV:       getEnv("DATA_CIRCLE_CSV", ""),
			MarketStatsPath: getEnv("DATA_MARKET_STATS", "data/sh_realestate_market_stats.json"),
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
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
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// Redis Configuration (domain event stream)
	Redis RedisConfig `json:"redis"`

	// Worker Configuration
	Worker WorkerConfig `json:"worker"`

	// Web Configuration (URL composition)
	Web WebConfig `json:"web"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// RedisConfig contains the event stream connection configuration
type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	// Stream is the domain event stream the worker consumes.
	Stream string `json:"stream"`
	// Group is the consumer group name; every worker replica shares it.
	Group string `json:"group"`
	// Consumer is this replica's consumer name within the group.
	Consumer string `json:"consumer"`
}

// WorkerConfig contains notification worker configuration
type WorkerConfig struct {
	// BatchSize is the max number of events read per poll.
	BatchSize int `json:"batch_size"`
	// BlockSeconds is how long a poll blocks waiting for events.
	BlockSeconds int `json:"block_seconds"`
	// OpsPort serves the health/readiness endpoints.
	OpsPort string `json:"ops_port"`
}

// WebConfig contains the webapp origin used to build notification links
type WebConfig struct {
	BaseURL string `json:"base_url"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one exists.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	return &Config{
		Database: DatabaseConfig{
			Host:         getEnv("MYSQL_HOST", "localhost"),
			Port:         getEnv("MYSQL_PORT", "3306"),
			Username:     getEnv("MYSQL_USERNAME", "pulsefeed"),
			Password:     getEnv("MYSQL_PASSWORD", "pulsefeed123"),
			DatabaseName: getEnv("MYSQL_DATABASE", "pulsefeed"),
			MaxOpenConns: getEnvAsInt("MYSQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("MYSQL_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Stream:   getEnv("EVENT_STREAM", "events:notifications"),
			Group:    getEnv("EVENT_GROUP", "notifs-worker"),
			Consumer: getEnv("EVENT_CONSUMER", defaultConsumerName()),
		},
		Worker: WorkerConfig{
			BatchSize:    getEnvAsInt("WORKER_BATCH_SIZE", 32),
			BlockSeconds: getEnvAsInt("WORKER_BLOCK_SECONDS", 5),
			OpsPort:      getEnv("OPS_PORT", "8090"),
		},
		Web: WebConfig{
			BaseURL: getEnv("WEB_BASE_URL", "https://app.pulsefeed.dev"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func defaultConsumerName() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "notifs-worker-1"
	}
	return hostname
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Auth       AuthConfig
	Services   ServicesConfig
	Kafka      KafkaConfig
	Redis      RedisConfig
	WorkerPool WorkerPoolConfig
	Automation AutomationConfig
	Server     ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds signing secrets for public tracking and unsubscribe links
type AuthConfig struct {
	TrackingSecret string
}

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	ResendAPIKey       string
	DefaultEmailSender string
	TrackingBaseURL    string
	WebAppURI          string
}

// KafkaConfig holds CRM event bus configuration
type KafkaConfig struct {
	Enabled       bool
	Brokers       string
	Topic         string
	ConsumerGroup string
}

// BrokerList splits the comma separated broker string
func (k KafkaConfig) BrokerList() []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// WorkerPoolConfig holds worker pool configuration for event processing
type WorkerPoolConfig struct {
	EventWorkers int // Number of workers consuming CRM events
}

// AutomationConfig holds tuning for the dispatch sweep and periodic scans
type AutomationConfig struct {
	SweepInterval        time.Duration
	SweepBatchSize       int
	SweepConcurrency     int
	DefaultMaxRetries    int
	DefaultDailyLimit    int
	ScanInterval         time.Duration
	StaleClaimTimeout    time.Duration
	StaleRecoverInterval time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	// IngestRateLimitRPM caps event ingest per organization per minute; 0 disables it
	IngestRateLimitRPM int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	if cfg.Auth.TrackingSecret, err = requireEnv("TRACKING_SECRET"); err != nil {
		return nil, err
	}

	if cfg.Services.ResendAPIKey, err = requireEnv("RESEND_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.Services.DefaultEmailSender, err = requireEnv("DEFAULT_EMAIL_SENDER_ADDRESS"); err != nil {
		return nil, err
	}
	if cfg.Services.TrackingBaseURL, err = requireEnv("TRACKING_BASE_URL"); err != nil {
		return nil, err
	}
	cfg.Services.TrackingBaseURL = strings.TrimRight(cfg.Services.TrackingBaseURL, "/")
	cfg.Services.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")

	// Kafka is optional; without it events are processed inline
	cfg.Kafka.Enabled = getEnvWithDefault("KAFKA_ENABLED", "false") == "true"
	if cfg.Kafka.Enabled {
		if cfg.Kafka.Brokers, err = requireEnv("KAFKA_BROKERS"); err != nil {
			return nil, err
		}
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "crm-events")
	cfg.Kafka.ConsumerGroup = getEnvWithDefault("KAFKA_CONSUMER_GROUP", "automation-engine")

	cfg.Redis.Enabled = getEnvWithDefault("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = intEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	if cfg.WorkerPool.EventWorkers, err = intEnv("EVENT_WORKERS", "10"); err != nil {
		return nil, err
	}

	if cfg.Automation.SweepInterval, err = durationEnv("AUTOMATION_SWEEP_INTERVAL", "1m"); err != nil {
		return nil, err
	}
	if cfg.Automation.SweepBatchSize, err = intEnv("AUTOMATION_SWEEP_BATCH_SIZE", "100"); err != nil {
		return nil, err
	}
	if cfg.Automation.SweepConcurrency, err = intEnv("AUTOMATION_SWEEP_CONCURRENCY", "10"); err != nil {
		return nil, err
	}
	if cfg.Automation.DefaultMaxRetries, err = intEnv("AUTOMATION_MAX_RETRIES", "3"); err != nil {
		return nil, err
	}
	if cfg.Automation.DefaultDailyLimit, err = intEnv("AUTOMATION_DEFAULT_DAILY_LIMIT", "5"); err != nil {
		return nil, err
	}
	if cfg.Automation.ScanInterval, err = durationEnv("AUTOMATION_SCAN_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	if cfg.Automation.StaleClaimTimeout, err = durationEnv("AUTOMATION_STALE_CLAIM_TIMEOUT", "15m"); err != nil {
		return nil, err
	}
	if cfg.Automation.StaleRecoverInterval, err = durationEnv("AUTOMATION_STALE_RECOVER_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	if cfg.Server.IngestRateLimitRPM, err = intEnv("INGEST_RATE_LIMIT_RPM", "600"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func intEnv(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key, defaultValue string) (time.Duration, error) {
	v, err := time.ParseDuration(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

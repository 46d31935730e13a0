package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the service.
type Config struct {
	HTTP      HTTPConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
	Email     EmailConfig
	Server    ServerConfig
}

// HTTPConfig holds HTTP server related configuration.
type HTTPConfig struct {
	Port string
}

// PostgresConfig holds database connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the formatted connection string for pgx.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SchedulerConfig holds sweep scheduling settings.
type SchedulerConfig struct {
	Interval time.Duration
}

// EmailConfig stores the outbound email service details.
type EmailConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// ServerConfig stores general server runtime configuration.
type ServerConfig struct {
	ShutdownTimeout time.Duration
}

// Load builds configuration from environment variables with sane defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pgPort, err := getInt("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT: %w", err)
	}

	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	intervalStr := getString("SCHEDULER_INTERVAL", "1m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_INTERVAL: %w", err)
	}
	// The delivery window assumes sweeps at least once a minute.
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval <= 0 {
		interval = time.Minute
	}

	emailTimeoutStr := getString("EMAIL_TIMEOUT", "15s")
	emailTimeout, err := time.ParseDuration(emailTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_TIMEOUT: %w", err)
	}

	shutdownTimeoutStr := getString("SERVER_SHUTDOWN_TIMEOUT", "10s")
	shutdownTimeout, err := time.ParseDuration(shutdownTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port: getString("HTTP_PORT", "3000"),
		},
		Postgres: PostgresConfig{
			Host:     getString("POSTGRES_HOST", "postgres"),
			Port:     pgPort,
			User:     getString("POSTGRES_USER", "appuser"),
			Password: getString("POSTGRES_PASSWORD", "appsecret"),
			DBName:   getString("POSTGRES_DB", "birthdays"),
			SSLMode:  getString("POSTGRES_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getString("REDIS_ADDR", "redis:6379"),
			Password: getString("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Scheduler: SchedulerConfig{
			Interval: interval,
		},
		Email: EmailConfig{
			Endpoint: getString("EMAIL_SERVICE_URL", "https://email-service.digitalenvision.com.au/send-email"),
			Timeout:  emailTimeout,
		},
		Server: ServerConfig{
			ShutdownTimeout: shutdownTimeout,
		},
	}

	return cfg, nil
}

func getString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) (int, error) {
	if val := os.Getenv(key); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	}
	return def, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Payroll  PayrollConfig
	Limits   RateLimitConfig
}

type AppConfig struct {
	Port     string
	Env      string
	Timezone *time.Location
	// AutoMigrate runs gorm migrations on api startup.
	AutoMigrate bool
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
	PollInterval  time.Duration
}

type JWTConfig struct {
	Secret string
}

type PayrollConfig struct {
	// RoundRateFirst rounds the hourly rate before multiplying by hours.
	RoundRateFirst bool
}

type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var errs []string

	tzName := getEnv("APP_TIMEZONE", "Asia/Dubai")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid APP_TIMEZONE %q", tzName))
	}

	cfg := &Config{
		App: AppConfig{
			Port:        getEnv("PORT", "3000"),
			Env:         getEnv("APP_ENV", "development"),
			Timezone:    loc,
			AutoMigrate: getBool("DB_AUTO_MIGRATE", true, &errs),
		},
		Database: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "contractor_erp"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxRetries: getInt("DB_MAX_RETRIES", 5, &errs),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Broker:        getEnv("KAFKA_BROKER", "localhost:9092"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "contractor-erp-attendance"),
			PollInterval:  getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second, &errs),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Payroll: PayrollConfig{
			RoundRateFirst: getBool("OVERTIME_ROUND_RATE_FIRST", false, &errs),
		},
		Limits: RateLimitConfig{
			PerSecond: getFloat("RATE_LIMIT_PER_SECOND", 5, &errs),
			Burst:     getInt("RATE_LIMIT_BURST", 10, &errs),
		},
	}

	if cfg.JWT.Secret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]string) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid %s", key))
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64, errs *[]string) float64 {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid %s", key))
		return fallback
	}
	return f
}

func getBool(key string, fallback bool, errs *[]string) bool {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid %s", key))
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration, errs *[]string) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid %s", key))
		return fallback
	}
	return d
}

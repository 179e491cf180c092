package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds runtime configuration derived from env vars or files.
type App struct {
	APIPort     string
	Environment string
	LogLevel    string
	LogEncoding string
	CORSOrigins []string

	DatabaseURL  string
	KafkaBrokers []string
	KafkaTopic   string

	WebhookURL     string
	TriggerTimeout time.Duration
	TestTimeout    time.Duration

	MinRelevanceFloor   int
	MinRelevanceCeiling int

	Schedule Schedule
}

// Schedule describes the optional recurring alert fired by the scheduler.
type Schedule struct {
	Cron         string
	Timezone     string
	Keywords     string
	Location     string
	MinRelevance int
	Email        string
}

// Enabled reports whether a cron expression was configured.
func (s Schedule) Enabled() bool {
	return strings.TrimSpace(s.Cron) != ""
}

// envFiles are loaded in order; later files override earlier ones.
var envFiles = []string{".env", ".env.local"}

// FromEnv loads the application configuration from environment variables.
// Any .env files present in the working directory are applied first.
func FromEnv() App {
	LoadDotEnv()

	return App{
		APIPort:     getEnv("API_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "production"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: getEnv("LOG_ENCODING", "json"),
		CORSOrigins: getCORSOrigins(),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "job-alert-runs"),

		WebhookURL:     strings.TrimSpace(os.Getenv("WEBHOOK_URL")),
		TriggerTimeout: getEnvSeconds("TRIGGER_TIMEOUT_SECONDS", 30*time.Second),
		TestTimeout:    getEnvSeconds("TEST_TIMEOUT_SECONDS", 10*time.Second),

		MinRelevanceFloor:   getEnvInt("MIN_RELEVANCE_FLOOR", 20),
		MinRelevanceCeiling: getEnvInt("MIN_RELEVANCE_CEILING", 80),

		Schedule: Schedule{
			Cron:         os.Getenv("SCHEDULE_CRON"),
			Timezone:     os.Getenv("SCHEDULE_TIMEZONE"),
			Keywords:     os.Getenv("ALERT_KEYWORDS"),
			Location:     os.Getenv("ALERT_LOCATION"),
			MinRelevance: getEnvInt("ALERT_MIN_RELEVANCE", 35),
			Email:        os.Getenv("ALERT_EMAIL"),
		},
	}
}

// LoadDotEnv applies .env files without clobbering variables already set in the process.
func LoadDotEnv() []string {
	loaded := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			continue
		}
		loaded = append(loaded, file)
	}
	return loaded
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvSeconds reads a positive number of seconds; fractional values are allowed.
func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds * float64(time.Second))
}

func getCORSOrigins() []string {
	raw, ok := os.LookupEnv("CORS_ORIGINS")
	if !ok || raw == "" {
		return []string{"*"}
	}
	return splitList(raw)
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

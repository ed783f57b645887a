package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	MongoURI              string
	MongoDBName           string
	MongoConnectTimeout   time.Duration
	MongoSelectionTimeout time.Duration
	MongoMaxPoolSize      uint64
	MongoMinPoolSize      uint64

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	JWTSecret string
	TokenTTL  time.Duration

	ShippingFee    float64
	AdminEmails    []string
	ResendCooldown time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:           getEnv("MONGO_DB_NAME", "zamazon"),
		MongoConnectTimeout:   getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		MongoSelectionTimeout: getEnvDuration("MONGO_SELECTION_TIMEOUT", 5*time.Second),
		MongoMaxPoolSize:      getEnvUint("MONGO_MAX_POOL_SIZE", 100),
		MongoMinPoolSize:      getEnvUint("MONGO_MIN_POOL_SIZE", 10),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: getEnvList("KAFKA_BROKERS", nil),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASS", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "Zamazon Store <orders@zamazon.com>"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		ShippingFee:    getEnvFloat("SHIPPING_FEE", 85),
		AdminEmails:    getEnvList("ADMIN_EMAILS", []string{"admin@zamazon.com"}),
		ResendCooldown: getEnvDuration("RESEND_COOLDOWN", time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseUint(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

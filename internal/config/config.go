package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings. MySQL, Redis and AMQP are optional;
// leaving their addresses empty runs the service fully in-memory.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	MySQLDSN     string
	RedisAddr    string
	AMQPURL      string
	AMQPExchange string

	MaxOpenConns int
	MaxIdleConns int
}

// Load collects configuration from the environment, reading a .env file
// first when present.
func Load() Config {
	godotenv.Load()

	return Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		MySQLDSN:        getEnv("MYSQL_DSN", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		AMQPURL:         getEnv("AMQP_URL", ""),
		AMQPExchange:    getEnv("AMQP_EXCHANGE", "erp.events"),
		MaxOpenConns:    getEnvInt("MYSQL_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("MYSQL_MAX_IDLE_CONNS", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
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

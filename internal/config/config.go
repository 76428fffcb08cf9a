package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	Migrations string

	JWTSecret     string
	TokenTTLHours string
	BcryptCostRaw string

	RedisAddr          string
	RedisPassword      string
	RedisDB            string
	CacheEnabled       string
	CacheTTLRaw        string
	CachePrefix        string
	RateLimitEnabled   string
	RateLimitCapacity  string
	RateLimitRefillRaw string
	RateLimitPrefix    string

	KafkaBrokers           string
	KafkaClientID          string
	KafkaGroupID           string
	KafkaRetryGroupID      string
	KafkaInstanceID        string
	KafkaTopicPartitions   string
	KafkaRetryPartitions   string
	KafkaReplicationFactor string
	KafkaMaxAttempts       string
	EventDrivenEnabled     string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	instanceID := os.Getenv("KAFKA_INSTANCE_ID")
	if instanceID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			instanceID = "unknown"
		} else {
			instanceID = hostname
		}
	}

	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "dealsdb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		Migrations: getEnv("MIGRATIONS_DIR", "db/migrations"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		TokenTTLHours: getEnv("TOKEN_TTL_HOURS", "24"),
		BcryptCostRaw: getEnv("BCRYPT_COST", "10"),

		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnv("REDIS_DB", "0"),
		CacheEnabled:       getEnv("CACHE_ENABLED", "true"),
		CacheTTLRaw:        getEnv("CACHE_TTL", "30s"),
		CachePrefix:        getEnv("CACHE_PREFIX", "deals-cache"),
		RateLimitEnabled:   getEnv("RATE_LIMIT_ENABLED", "true"),
		RateLimitCapacity:  getEnv("RATE_LIMIT_CAPACITY", "10"),
		RateLimitRefillRaw: getEnv("RATE_LIMIT_REFILL_EVERY", "1s"),
		RateLimitPrefix:    getEnv("RATE_LIMIT_PREFIX", "rl"),

		KafkaBrokers:           getEnv("KAFKA_BROKERS", "kafka:9092"),
		KafkaClientID:          getEnv("KAFKA_CLIENT_ID", "deal-service"),
		KafkaGroupID:           getEnv("KAFKA_GROUP_ID", "deal-consumers"),
		KafkaRetryGroupID:      getEnv("KAFKA_RETRY_GROUP_ID", "deal-retry"),
		KafkaInstanceID:        instanceID,
		KafkaTopicPartitions:   getEnv("KAFKA_TOPIC_PARTITIONS", "3"),
		KafkaRetryPartitions:   getEnv("KAFKA_RETRY_PARTITIONS", "1"),
		KafkaReplicationFactor: getEnv("KAFKA_REPLICATION_FACTOR", "1"),
		KafkaMaxAttempts:       getEnv("KAFKA_MAX_ATTEMPTS", "3"),
		EventDrivenEnabled:     getEnv("EVENT_DRIVEN_ENABLED", "false"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) DatabaseURL() string {
	return "postgresql://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(parseInt(c.TokenTTLHours, 24)) * time.Hour
}

func (c *Config) BcryptCost() int {
	return parseInt(c.BcryptCostRaw, 10)
}

func (c *Config) RedisDBIndex() int {
	n, err := strconv.Atoi(c.RedisDB)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (c *Config) CacheOn() bool {
	return parseBool(c.CacheEnabled)
}

func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.CacheTTLRaw, 30*time.Second)
}

func (c *Config) RateLimitOn() bool {
	return parseBool(c.RateLimitEnabled)
}

func (c *Config) RateLimitBurst() int {
	return parseInt(c.RateLimitCapacity, 10)
}

func (c *Config) RateLimitRefillEvery() time.Duration {
	return parseDuration(c.RateLimitRefillRaw, time.Second)
}

func (c *Config) EventDriven() bool {
	return parseBool(c.EventDrivenEnabled)
}

func (c *Config) TopicPartitions() int {
	return parseInt(c.KafkaTopicPartitions, 3)
}

func (c *Config) RetryPartitions() int {
	return parseInt(c.KafkaRetryPartitions, 1)
}

func (c *Config) ReplicationFactor() int16 {
	value := parseInt(c.KafkaReplicationFactor, 1)
	return int16(value)
}

func (c *Config) MaxAttempts() int {
	return parseInt(c.KafkaMaxAttempts, 3)
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseBool(value string) bool {
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

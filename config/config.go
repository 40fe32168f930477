package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceSQLite = "sqlite"
	SourceStatic = "static"
)

type Config struct {
	Server  ServerConfig
	Admin   AdminConfig
	Logger  LoggerConfig
	SQLite  SQLiteConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Import  ImportConfig
}

type ServerConfig struct {
	AppEnv           string
	HTTPPort         string
	GRPCPort         string // empty disables the gRPC health server
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	BodyLimit        int
	CORSAllowOrigins string
	ContactRateLimit int // requests per minute per IP, 0 disables
}

type AdminConfig struct {
	// Password is the single shared secret for admin routes. Empty means
	// admin routes always answer 503.
	Password string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	Filename          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SQLiteConfig struct {
	Path         string
	BusyTimeout  time.Duration
	MaxOpenConns int
	MaxIdleConns int
}

type CatalogConfig struct {
	Source         string // "sqlite" or "static"
	StaticPath     string
	FuzzyThreshold float64
}

type RedisConfig struct {
	Addr     string // empty keeps the category cache in process
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string // empty disables message notifications
	MessagesTopic string
}

type ImportConfig struct {
	CSVPath string
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:           getEnv("APP_ENV", "dev"),
			HTTPPort:         getEnv("HTTP_PORT", getEnv("PORT", "3000")),
			GRPCPort:         getEnv("GRPC_PORT", ""),
			ReadTimeout:      time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SEC", 10)) * time.Second,
			WriteTimeout:     time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SEC", 10)) * time.Second,
			BodyLimit:        getEnvInt("HTTP_BODY_LIMIT", 1<<20),
			CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
			ContactRateLimit: getEnvInt("CONTACT_RATE_LIMIT", 10),
		},
		Admin: AdminConfig{
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			Filename:          getEnv("LOGGER_FILE", ""),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		SQLite: SQLiteConfig{
			Path:         getEnv("DB_PATH", "data/catalog.sqlite"),
			BusyTimeout:  time.Duration(getEnvInt("DB_BUSY_TIMEOUT_MS", 5000)) * time.Millisecond,
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 4),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 2),
		},
		Catalog: CatalogConfig{
			Source:         strings.ToLower(getEnv("CATALOG_SOURCE", SourceSQLite)),
			StaticPath:     getEnv("STATIC_CATALOG_PATH", "data/seed-data.json"),
			FuzzyThreshold: getEnvFloat("FUZZY_THRESHOLD", 0.35),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvSlice("KAFKA_BROKERS", nil),
			MessagesTopic: getEnv("KAFKA_TOPIC_MESSAGES", "catalog.messages"),
		},
		Import: ImportConfig{
			CSVPath: getEnv("CSV_PATH", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return fallback
}

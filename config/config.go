package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"grade-stats/app/calculator"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Port         int
	RoutePrefix  string
	StoreDriver  string
	MongoURI     string
	MongoDB      string
	Collection   string
	DatabaseURL  string
	RedisAddr    string
	CacheTTL     time.Duration
	QueryTimeout time.Duration
	Policy       calculator.Policy
	JWTSecret    string
	LogLevel     zapcore.Level
}

// LoadEnv membaca file .env jika ada; environment variable yang sudah ada tidak ditimpa.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("config: load env: %w", err)
	}
	return nil
}

// Load reads the configuration from the environment, filling defaults for
// unset variables before validating.
func Load() (*Config, error) {
	cfg := &Config{
		RoutePrefix: getEnv("ROUTE_PREFIX", "/grades"),
		StoreDriver: getEnv("STORE_DRIVER", DriverMongo),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "school"),
		Collection:  getEnv("MONGO_COLLECTION", "grades"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(getEnv("PORT", "8080")); err != nil {
		return nil, fmt.Errorf("config: PORT: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "30s")); err != nil {
		return nil, fmt.Errorf("config: CACHE_TTL: %w", err)
	}
	if cfg.QueryTimeout, err = time.ParseDuration(getEnv("QUERY_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("config: QUERY_TIMEOUT: %w", err)
	}
	if cfg.Policy, err = calculator.ParsePolicy(os.Getenv("MISSING_COMPONENT_POLICY")); err != nil {
		return nil, fmt.Errorf("config: MISSING_COMPONENT_POLICY: %w", err)
	}
	if cfg.LogLevel, err = zapcore.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("PORT %d is out of range [1, 65535]", cfg.Port)
	}
	switch cfg.StoreDriver {
	case DriverMongo:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("STORE_DRIVER %q unknown: want mongo|postgres", cfg.StoreDriver)
	}
	if cfg.QueryTimeout <= 0 {
		return fmt.Errorf("QUERY_TIMEOUT must be positive")
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

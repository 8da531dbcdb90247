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

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Seed      SeedConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	Driver string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	AutoMigrate bool
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type StorageConfig struct {
	Driver        string
	LocalDir      string
	MaxUploadSize int64

	SpacesRegion    string
	SpacesBucket    string
	SpacesEndpoint  string
	SpacesAccessKey string
	SpacesSecretKey string
}

type RateLimitConfig struct {
	AuthRPS   float64
	AuthBurst int
}

type LogConfig struct {
	Level  string
	Format string
}

type SeedConfig struct {
	SkillCatalogPath string
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	StorageLocal  = "local"
	StorageSpaces = "spaces"
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		Driver:                strings.ToLower(optDefault("STORE_DRIVER", DriverPostgres)),
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
		AutoMigrate:           optBool("DB_AUTO_MIGRATE", false),
	}
	switch cfg.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
		TTL:      time.Duration(optInt("REDIS_TTL", 600)) * time.Second,
	}

	cfg.Storage = StorageConfig{
		Driver:          strings.ToLower(optDefault("STORAGE_DRIVER", StorageLocal)),
		LocalDir:        optDefault("STORAGE_LOCAL_DIR", "media"),
		MaxUploadSize:   int64(optInt("UPLOAD_MAX_BYTES", 5<<20)),
		SpacesRegion:    opt("SPACES_REGION"),
		SpacesBucket:    opt("SPACES_BUCKET"),
		SpacesEndpoint:  opt("SPACES_ENDPOINT"),
		SpacesAccessKey: opt("SPACES_ACCESS_KEY_ID"),
		SpacesSecretKey: opt("SPACES_SECRET_ACCESS_KEY"),
	}
	switch cfg.Storage.Driver {
	case StorageLocal:
	case StorageSpaces:
		if cfg.Storage.SpacesBucket == "" {
			missing = append(missing, "SPACES_BUCKET")
		}
		if cfg.Storage.SpacesRegion == "" {
			missing = append(missing, "SPACES_REGION")
		}
	default:
		invalid = append(invalid, "STORAGE_DRIVER")
	}

	cfg.RateLimit = RateLimitConfig{
		AuthRPS:   optFloat("RATE_LIMIT_AUTH_RPS", 1),
		AuthBurst: optInt("RATE_LIMIT_AUTH_BURST", 5),
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(optDefault("LOG_LEVEL", "info")),
		Format: strings.ToLower(optDefault("LOG_FORMAT", "text")),
	}

	cfg.Seed = SeedConfig{
		SkillCatalogPath: optDefault("SKILL_CATALOG_PATH", "seeds/skills.yaml"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

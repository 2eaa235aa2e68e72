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
	App           AppConfig
	Database      DatabaseConfig
	JWT           JWTConfig
	Redis         RedisConfig
	Storage       StorageConfig
	MigrationsDir string
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
}

type DatabaseConfig struct {
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

	// SlowQueryThreshold logs queries slower than this; zero disables it.
	SlowQueryThreshold time.Duration
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
	TTL      time.Duration
}

type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// .env is optional; real environment variables always win.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
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

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    opt("LOG_LEVEL"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        durationSeconds(opt("DB_CONNECT_TIMEOUT"), 0),
		PoolMaxConns:          int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   durationSeconds(opt("DB_POOL_MAX_CONN_LIFETIME"), 0),
		PoolMaxConnIdleTime:   durationSeconds(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 0),
		PoolHealthCheckPeriod: durationSeconds(opt("DB_POOL_HEALTH_CHECK_PERIOD"), 0),
		SlowQueryThreshold:    time.Duration(intOr(opt("DB_SLOW_QUERY_MS"), 500)) * time.Millisecond,
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  durationSeconds(opt("JWT_ACCESS_EXPIRES_IN"), 15*time.Minute),
		RefreshExpiresIn: durationSeconds(opt("JWT_REFRESH_EXPIRES_IN"), 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      durationSeconds(opt("REDIS_TTL"), 600*time.Second),
	}

	cfg.Storage = StorageConfig{
		Bucket:        opt("STORAGE_BUCKET"),
		Region:        opt("STORAGE_REGION"),
		Endpoint:      opt("STORAGE_ENDPOINT"),
		PublicBaseURL: strings.TrimRight(opt("STORAGE_PUBLIC_BASE_URL"), "/"),
	}

	cfg.MigrationsDir = opt("MIGRATIONS_DIR")
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func durationSeconds(raw string, def time.Duration) time.Duration {
	v := intOr(raw, -1)
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}

// Package config centraliza o carregamento de configurações da aplicação.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	RateLimiter RateLimiterConfig
	Upstream    UpstreamConfig
	Geocode     GeocodeConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port string
}

type StorageConfig struct {
	Type  string
	Redis RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type RateLimiterConfig struct {
	GeocodeRule   domain.RateLimitRule
	CrimeRule     domain.RateLimitRule
	SweepInterval time.Duration
}

type UpstreamConfig struct {
	Timeout          time.Duration
	GeocodeBaseURL   string
	GeocodeUserAgent string
	CrimeBaseURL     string
	CrimeUserAgent   string
}

type GeocodeConfig struct {
	StrictPostcode bool
	CacheTTL       time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load lê o arquivo .env do diretório atual, se existir, e depois o ambiente.
func Load() (Config, error) {
	return LoadFiles()
}

// LoadFiles é como Load, mas carrega os arquivos informados no lugar do .env.
// Variáveis já definidas no ambiente não são sobrescritas.
func LoadFiles(files ...string) (Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	server := ServerConfig{Port: getEnv("SERVER_PORT", "8080")}

	storageType := strings.ToLower(getEnv("STORAGE_TYPE", "memory"))
	if storageType != "memory" && storageType != "redis" {
		return Config{}, fmt.Errorf("invalid STORAGE_TYPE: %q", storageType)
	}

	redisConfig, err := buildRedisConfig()
	if err != nil {
		return Config{}, err
	}

	rateLimiterConfig, err := buildRateLimiterConfig()
	if err != nil {
		return Config{}, err
	}

	upstreamConfig, err := buildUpstreamConfig()
	if err != nil {
		return Config{}, err
	}

	geocodeConfig, err := buildGeocodeConfig()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server: server,
		Storage: StorageConfig{
			Type:  storageType,
			Redis: redisConfig,
		},
		RateLimiter: rateLimiterConfig,
		Upstream:    upstreamConfig,
		Geocode:     geocodeConfig,
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func buildRedisConfig() (RedisConfig, error) {
	host := getEnv("REDIS_HOST", "localhost")
	port, err := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	return RedisConfig{
		Host:     host,
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

func buildRateLimiterConfig() (RateLimiterConfig, error) {
	geocodeRule, err := buildRule("GEOCODE", "30", "60", "fixed")
	if err != nil {
		return RateLimiterConfig{}, err
	}

	crimeRule, err := buildRule("CRIME", "100", "900", "sliding")
	if err != nil {
		return RateLimiterConfig{}, err
	}

	sweepSeconds, err := positiveInt("RATE_LIMIT_SWEEP_INTERVAL_SECONDS", "60")
	if err != nil {
		return RateLimiterConfig{}, err
	}

	return RateLimiterConfig{
		GeocodeRule:   geocodeRule,
		CrimeRule:     crimeRule,
		SweepInterval: time.Duration(sweepSeconds) * time.Second,
	}, nil
}

// buildRule lê RATE_LIMIT_<NAME>_REQUESTS, _WINDOW_SECONDS e _ALGORITHM.
func buildRule(name, requests, windowSeconds, algorithm string) (domain.RateLimitRule, error) {
	prefix := "RATE_LIMIT_" + name

	n, err := positiveInt(prefix+"_REQUESTS", requests)
	if err != nil {
		return domain.RateLimitRule{}, err
	}

	secs, err := positiveInt(prefix+"_WINDOW_SECONDS", windowSeconds)
	if err != nil {
		return domain.RateLimitRule{}, err
	}

	algo, err := domain.ParseAlgorithm(getEnv(prefix+"_ALGORITHM", algorithm))
	if err != nil {
		return domain.RateLimitRule{}, fmt.Errorf("invalid %s_ALGORITHM: %w", prefix, err)
	}

	return domain.RateLimitRule{
		Requests:  n,
		Window:    time.Duration(secs) * time.Second,
		Algorithm: algo,
	}, nil
}

func buildUpstreamConfig() (UpstreamConfig, error) {
	timeoutSeconds, err := positiveInt("UPSTREAM_TIMEOUT_SECONDS", "10")
	if err != nil {
		return UpstreamConfig{}, err
	}

	return UpstreamConfig{
		Timeout:          time.Duration(timeoutSeconds) * time.Second,
		GeocodeBaseURL:   strings.TrimRight(getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"), "/"),
		GeocodeUserAgent: getEnv("GEOCODE_USER_AGENT", "crime-map/1.0"),
		CrimeBaseURL:     strings.TrimRight(getEnv("CRIME_BASE_URL", "https://data.police.uk/api"), "/"),
		CrimeUserAgent:   getEnv("CRIME_USER_AGENT", "crime-map/1.0"),
	}, nil
}

func buildGeocodeConfig() (GeocodeConfig, error) {
	strict, err := strconv.ParseBool(getEnv("GEOCODE_STRICT_POSTCODE", "true"))
	if err != nil {
		return GeocodeConfig{}, fmt.Errorf("invalid GEOCODE_STRICT_POSTCODE: %w", err)
	}

	ttlSeconds, err := strconv.Atoi(getEnv("GEOCODE_CACHE_TTL_SECONDS", "0"))
	if err != nil {
		return GeocodeConfig{}, fmt.Errorf("invalid GEOCODE_CACHE_TTL_SECONDS: %w", err)
	}
	if ttlSeconds < 0 {
		return GeocodeConfig{}, fmt.Errorf("invalid GEOCODE_CACHE_TTL_SECONDS: must not be negative")
	}

	return GeocodeConfig{
		StrictPostcode: strict,
		CacheTTL:       time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func positiveInt(key, fallback string) (int, error) {
	v, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return v, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppURL                 string
	APIBaseURL             string
	APITimeoutSeconds      int
	APIBreaker             bool
	SessionStore           string
	SessionTTLHours        int
	CookieSecure           bool
	RedisAddr              string
	RedisSessionPrefix     string
	RateLimit              int
	ShutdownTimeoutSeconds int
	LogLevel               string
	LogFormat              string
	StubURL                string
	StubPrefix             string
	DatabaseDSN            string
	JWTSecret              string
	SessionFile            string
}

const (
	SessionStoreCookie = "cookie"
	SessionStoreRedis  = "redis"
)

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "3000")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")
	stubHost := getEnv("STUB_HOST", "127.0.0.1")
	stubPort := getEnv("STUB_PORT", "8000")

	cfg := Config{
		AppURL:             fmt.Sprintf("%s:%s", appHost, appPort),
		APIBaseURL:         strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000/api"), "/"),
		SessionStore:       strings.ToLower(getEnv("SESSION_STORE", SessionStoreCookie)),
		RedisAddr:          fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisSessionPrefix: getEnv("REDIS_SESSION_PREFIX", "task_desk_session"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		StubURL:            fmt.Sprintf("%s:%s", stubHost, stubPort),
		StubPrefix:         getEnv("STUB_PREFIX", "/api"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "tasks.db"),
		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		SessionFile:        getEnv("SESSION_FILE", ""),
	}

	var err error
	ints := []struct {
		dst *int
		key string
		def int
	}{
		{&cfg.APITimeoutSeconds, "API_TIMEOUT_SECONDS", 10},
		{&cfg.SessionTTLHours, "SESSION_TTL_HOURS", 7 * 24},
		{&cfg.RateLimit, "RATE_LIMIT_PER_MINUTE", 120},
		{&cfg.ShutdownTimeoutSeconds, "SHUTDOWN_TIMEOUT_SECONDS", 20},
	}
	for _, v := range ints {
		if *v.dst, err = getEnvAsInt(v.key, v.def); err != nil {
			return cfg, err
		}
	}

	if cfg.APIBreaker, err = getEnvAsBool("API_BREAKER", true); err != nil {
		return cfg, err
	}
	if cfg.CookieSecure, err = getEnvAsBool("COOKIE_SECURE", false); err != nil {
		return cfg, err
	}

	return cfg, validate(cfg)
}

func (c Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func validate(cfg Config) error {
	if cfg.AppURL == "" {
		return errors.New("APP_HOST/APP_PORT must not be empty (e.g. 127.0.0.1:3000)")
	}
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return errors.New("API_BASE_URL must be an http(s) URL")
	}
	if cfg.APITimeoutSeconds <= 0 {
		return errors.New("API_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.SessionStore != SessionStoreCookie && cfg.SessionStore != SessionStoreRedis {
		return errors.New("SESSION_STORE must be one of cookie, redis")
	}
	if cfg.SessionTTLHours <= 0 {
		return errors.New("SESSION_TTL_HOURS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean value for %s", key)
		}
		return b, nil
	}
	return defaultVal, nil
}

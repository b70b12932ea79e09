package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	CORSOrigins []string

	AIKey            string
	AIBase           string
	AITextModel      string
	AIImageModel     string
	AIRPS            int
	AIMaxConcurrency int
	AITimeout        time.Duration

	JWTSecret  string
	SessionTTL time.Duration
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	MySQLDSN string

	ReportOps     []string
	ReportWorkers int
	ReportDir     string
}

// Load reads the environment, after merging a .env file when one exists.
// Empty REDIS_ADDR / MYSQL_DSN / API_KEY are supported configurations.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":3001"),
		MetricsAddr: env("METRICS_ADDR", ""),
		CORSOrigins: strings.Split(env("CORS_ORIGINS", "*"), ","),

		AIKey:            env("API_KEY", os.Getenv("GEMINI_API_KEY")),
		AIBase:           env("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AITextModel:      env("AI_TEXT_MODEL", "gemini-2.5-flash"),
		AIImageModel:     env("AI_IMAGE_MODEL", "imagen-3.0-generate-002"),
		AIRPS:            atoi("AI_RPS", 5),
		AIMaxConcurrency: atoi("AI_MAX_CONCURRENCY", 8),
		AITimeout:        time.Duration(atoi("AI_TIMEOUT_SECONDS", 60)) * time.Second,

		JWTSecret:  env("JWT_SECRET", "dev-insecure-secret"),
		SessionTTL: time.Duration(atoi("SESSION_TTL_SECONDS", 86400)) * time.Second,
		RedisAddr:  env("REDIS_ADDR", ""),
		RedisPass:  env("REDIS_PASSWORD", ""),
		RedisDB:    atoi("REDIS_DB", 0),

		MySQLDSN: env("MYSQL_DSN", ""),

		ReportOps:     strings.Split(env("REPORT_OPS", "daily-briefing,business-diagnosis,team-performance,profitability-plan"), ","),
		ReportWorkers: atoi("REPORT_WORKERS", 2),
		ReportDir:     env("REPORT_DIR", "reports"),
	}
	if c.AIKey == "" {
		log.Warn().Msg("API_KEY is empty; AI features will be mocked")
	}
	if c.JWTSecret == "dev-insecure-secret" && c.AppEnv != "dev" {
		log.Warn().Msg("JWT_SECRET is not set; using the development secret")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

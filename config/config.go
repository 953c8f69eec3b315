package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	PORT        string
	GIN_MODE    string
	CORS_ORIGIN string

	STORE_BACKEND    string
	DB_URL           string
	REDIS_URL        string
	STORE_KEY_PREFIX string

	API_KEY         string
	GEMINI_MODEL    string
	GEMINI_BASE_URL string
	GEMINI_TIMEOUT  time.Duration

	JWT_SECRET            string
	CURATOR_PASSWORD_HASH string

	CURATION_SCHEDULE string
	LOG_LEVEL         string
	LOG_FORMAT        string
	MAX_IMAGE_BYTES   int
)

var v *viper.Viper

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("cors_origin", "http://localhost:5173")
	v.SetDefault("store_backend", "sqlite")
	v.SetDefault("store_key_prefix", "artpulse")
	v.SetDefault("gemini_model", "gemini-3-flash-preview")
	v.SetDefault("gemini_timeout", "180s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("max_image_bytes", 5<<20)
}

// NewFlagSet declares the command-line overrides.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("env-file", "", "path to a .env file (default .env)")
	fs.String("port", "", "HTTP port")
	fs.String("store", "", "storage backend: sqlite, postgres, mysql, redis or memory")
	return fs
}

// LoadEnv resolves settings from flags, the environment and the .env file,
// in that order of precedence. flags may be nil.
func LoadEnv(flags *pflag.FlagSet) error {
	envFile := ""
	if flags != nil {
		envFile, _ = flags.GetString("env-file")
	}
	if err := loadDotEnv(envFile); err != nil {
		slog.Info("No .env file found. Using system environment variables.", "file", envFile)
	}

	v = viper.New()
	defaults(v)
	v.AutomaticEnv()
	if flags != nil {
		for key, name := range map[string]string{"port": "port", "store_backend": "store"} {
			if f := flags.Lookup(name); f != nil && f.Changed {
				v.Set(key, f.Value.String())
			}
		}
	}

	PORT = getEnv("PORT", "8080")
	GIN_MODE = getEnv("GIN_MODE", "debug")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "")

	STORE_BACKEND = strings.ToLower(getEnv("STORE_BACKEND", "sqlite"))
	DB_URL = getEnv("DB_URL", "")
	REDIS_URL = getEnv("REDIS_URL", "")
	STORE_KEY_PREFIX = getEnv("STORE_KEY_PREFIX", "artpulse")

	API_KEY = getEnv("API_KEY", os.Getenv("GEMINI_API_KEY"))
	GEMINI_MODEL = getEnv("GEMINI_MODEL", "")
	GEMINI_BASE_URL = getEnv("GEMINI_BASE_URL", "")
	GEMINI_TIMEOUT = v.GetDuration("gemini_timeout")
	if GEMINI_TIMEOUT < 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must not be negative, got %s", GEMINI_TIMEOUT)
	}

	JWT_SECRET = getEnv("JWT_SECRET", "")
	CURATOR_PASSWORD_HASH = getEnv("CURATOR_PASSWORD_HASH", "")

	CURATION_SCHEDULE = getEnv("CURATION_SCHEDULE", "")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_FORMAT = getEnv("LOG_FORMAT", "text")
	MAX_IMAGE_BYTES = v.GetInt("max_image_bytes")
	if MAX_IMAGE_BYTES <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", MAX_IMAGE_BYTES)
	}

	switch STORE_BACKEND {
	case "sqlite":
		if DB_URL == "" {
			DB_URL = "artpulse.db"
		}
	case "postgres", "mysql":
		var err error
		if DB_URL, err = mustEnv("DB_URL"); err != nil {
			return err
		}
	case "redis":
		var err error
		if REDIS_URL, err = mustEnv("REDIS_URL"); err != nil {
			return err
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", STORE_BACKEND)
	}

	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return godotenv.Load()
	}
	return godotenv.Load(path)
}

func mustEnv(key string) (string, error) {
	value := getEnv(key, "")
	if value == "" {
		return "", fmt.Errorf("missing required environment variable: %s", key)
	}
	return value, nil
}

func getEnv(key string, fallback string) string {
	if value := strings.TrimSpace(v.GetString(strings.ToLower(key))); value != "" {
		return value
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	WhatsApp WhatsAppConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// SQLiteConfig holds embedded store settings.
type SQLiteConfig struct {
	Path           string
	BusyTimeoutMS  int
	RunBootstrap   bool
	MaxOpenConns   int
	MaxIdleConns   int
	ConnMaxLifeSec int
}

// RedisConfig holds fan-out connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// WhatsAppConfig holds outbound notifier settings. An empty APIToken
// disables the notifier entirely.
type WhatsAppConfig struct {
	APIToken       string
	APIURL         string
	CountryCode    string
	TrackingURL    string
	BAUPhone       string
	BAAPhone       string
	MISPhone       string
	TimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "helpdesk-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		SQLite: SQLiteConfig{
			Path:           getEnv("SQLITE_PATH", "data/helpdesk.db"),
			BusyTimeoutMS:  getEnvAsInt("SQLITE_BUSY_TIMEOUT_MS", 5000),
			RunBootstrap:   getEnvAsBool("SQLITE_RUN_BOOTSTRAP", true),
			MaxOpenConns:   getEnvAsInt("SQLITE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:   getEnvAsInt("SQLITE_MAX_IDLE_CONNS", 2),
			ConnMaxLifeSec: getEnvAsInt("SQLITE_CONN_MAX_LIFE_SECONDS", 300),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		WhatsApp: WhatsAppConfig{
			APIToken:       os.Getenv("FONNTE_API_TOKEN"),
			APIURL:         getEnv("FONNTE_API_URL", "https://api.fonnte.com/send"),
			CountryCode:    getEnv("WHATSAPP_COUNTRY_CODE", "62"),
			TrackingURL:    getEnv("WHATSAPP_TRACKING_URL", "https://lpkia-helpdesk.vercel.app/ticket"),
			BAUPhone:       os.Getenv("WHATSAPP_BAU_PHONE"),
			BAAPhone:       os.Getenv("WHATSAPP_BAA_PHONE"),
			MISPhone:       os.Getenv("WHATSAPP_MIS_PHONE"),
			TimeoutSeconds: getEnvAsInt("WHATSAPP_TIMEOUT_SECONDS", 10),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the bound applied around a single outbound push.
func (w WhatsAppConfig) Timeout() time.Duration {
	if w.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(w.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

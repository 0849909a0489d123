package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"

	SessionMemory = "memory"
	SessionRedis  = "redis"

	ProviderMock = "mock"
	ProviderKIE  = "kie"
)

// Config aggregates runtime configuration for the API server and its backends.
type Config struct {
	ListenAddr      string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration

	Storage  string
	MySQLDSN string

	SessionStore  string
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Provider        string
	KIEAPIKey       string
	KIEBaseURL      string
	KIEPollInterval time.Duration
	KIEMaxAttempts  int
	RequestTimeout  time.Duration
	MockDelays      bool

	GenerationRatePerMinute int
	GenerationBurst         int

	AdminEmail    string
	AdminName     string
	AdminPassword string

	TelegramBotToken    string
	TelegramAdminChatID int64

	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3PublicBaseURL string
	S3UsePathStyle  bool
	S3Prefix        string
}

// S3Enabled reports whether avatar uploads can be served.
func (c Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// TelegramEnabled reports whether checkout notifications are delivered.
func (c Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramAdminChatID != 0
}

// Load reads configuration from an optional .env file and the environment,
// applying defaults that run the whole service in memory.
func Load() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}

	const defaultKIEBaseURL = "https://api.kie.ai"

	cfg := Config{
		ListenAddr:              getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:                getLevel("LOG_LEVEL", slog.LevelInfo),
		ShutdownTimeout:         getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Storage:                 strings.ToLower(getEnv("STORAGE", StorageMemory)),
		MySQLDSN:                os.Getenv("MYSQL_DSN"),
		SessionStore:            strings.ToLower(getEnv("SESSION_STORE", SessionMemory)),
		SessionTTL:              getDuration("SESSION_TTL", 30*24*time.Hour),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 getInt("REDIS_DB", 0),
		Provider:                strings.ToLower(getEnv("PROVIDER", ProviderMock)),
		KIEAPIKey:               os.Getenv("KIE_API_KEY"),
		KIEBaseURL:              normalizeKIEBaseURL(getEnv("KIE_BASE_URL", defaultKIEBaseURL), defaultKIEBaseURL),
		KIEPollInterval:         getDuration("KIE_POLL_INTERVAL", 2*time.Second),
		KIEMaxAttempts:          getInt("KIE_MAX_ATTEMPTS", 60),
		RequestTimeout:          time.Second * time.Duration(getInt("HTTP_TIMEOUT_SECONDS", 60)),
		MockDelays:              getBool("MOCK_DELAYS", true),
		GenerationRatePerMinute: getInt("GENERATION_RATE_PER_MINUTE", 10),
		GenerationBurst:         getInt("GENERATION_BURST", 3),
		AdminEmail:              strings.ToLower(getEnv("ADMIN_EMAIL", "admin@cinexa.local")),
		AdminName:               getEnv("ADMIN_NAME", "Cinexa Admin"),
		AdminPassword:           os.Getenv("ADMIN_PASSWORD"),
		TelegramBotToken:        os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAdminChatID:     getInt64("TELEGRAM_ADMIN_CHAT_ID", 0),
		S3Endpoint:              getEnv("S3_ENDPOINT", ""),
		S3Region:                os.Getenv("S3_REGION"),
		S3AccessKey:             os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:             os.Getenv("S3_SECRET_KEY"),
		S3Bucket:                os.Getenv("S3_BUCKET"),
		S3PublicBaseURL:         os.Getenv("S3_PUBLIC_BASE_URL"),
		S3UsePathStyle:          getBool("S3_USE_PATH_STYLE", false),
		S3Prefix:                getEnv("S3_PREFIX", "avatars"),
	}

	var missing []string
	if cfg.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}

	switch cfg.Storage {
	case StorageMemory:
	case StorageMySQL:
		if cfg.MySQLDSN == "" {
			missing = append(missing, "MYSQL_DSN")
		}
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE %q", cfg.Storage)
	}

	switch cfg.SessionStore {
	case SessionMemory, SessionRedis:
	default:
		return Config{}, fmt.Errorf("unsupported SESSION_STORE %q", cfg.SessionStore)
	}

	switch cfg.Provider {
	case ProviderMock:
	case ProviderKIE:
		if cfg.KIEAPIKey == "" {
			missing = append(missing, "KIE_API_KEY")
		}
	default:
		return Config{}, fmt.Errorf("unsupported PROVIDER %q", cfg.Provider)
	}

	if cfg.S3Enabled() {
		if cfg.S3Region == "" {
			missing = append(missing, "S3_REGION")
		}
		if cfg.S3AccessKey == "" {
			missing = append(missing, "S3_ACCESS_KEY")
		}
		if cfg.S3SecretKey == "" {
			missing = append(missing, "S3_SECRET_KEY")
		}
		if cfg.S3PublicBaseURL == "" {
			missing = append(missing, "S3_PUBLIC_BASE_URL")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return cfg, nil
}

// normalizeKIEBaseURL ensures we always hit the API host. The root kie.ai
// domain serves HTML instead of JSON.
func normalizeKIEBaseURL(raw string, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fallback
	}

	if parsed.Scheme == "" {
		parsed.Scheme = "https"
	}
	if parsed.Host == "" {
		parsed.Host = parsed.Path
		parsed.Path = ""
	}
	if parsed.Host == "kie.ai" {
		parsed.Host = "api.kie.ai"
	}

	return parsed.String()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return i
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return level
}

// loadEnvFile loads the first env file found. Running without one is fine:
// the process environment alone can carry the configuration.
func loadEnvFile() error {
	candidates := []string{}
	if custom, ok := os.LookupEnv("CONFIG_ENV_PATH"); ok && custom != "" {
		candidates = append(candidates, custom)
	}
	candidates = append(candidates,
		filepath.Join("configs", ".env"),
		".env",
	)

	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("access env file %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		if err := godotenv.Overload(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	return nil
}

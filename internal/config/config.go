package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server         ServerConfig
	LibreTranslate LibreTranslateConfig
	OpenAI         OpenAIConfig
	Upload         UploadConfig
	Redis          RedisConfig
	Relay          RelayConfig
	CORS           CORSConfig
	RateLimit      RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LibreTranslateConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type OpenAIConfig struct {
	APIKey         string
	TranslateModel string
	WhisperModel   string
	WhisperBaseURL string // override for a local whisper.cpp server
	WhisperTimeout time.Duration
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type RedisConfig struct {
	Addr     string // empty disables the translation cache
	Password string
	DB       int
	CacheTTL time.Duration
}

type RelayConfig struct {
	DetectDefaultLang string
	STTDefaultLang    string
	SupportedLangs    []string // empty disables the whitelist
	MaxTextLen        int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads configuration from the environment. A .env file in the
// working directory is picked up when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getEnvInt("SERVER_PORT", 5000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	ltTimeout, err := getEnvDuration("LIBRETRANSLATE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid LIBRETRANSLATE_TIMEOUT: %w", err)
	}

	whisperTimeout, err := getEnvDuration("WHISPER_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WHISPER_TIMEOUT: %w", err)
	}

	maxBytes, err := getEnvInt("MAX_FILE_SIZE", 10<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_FILE_SIZE: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheTTL, err := getEnvDuration("CACHE_TTL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	maxTextLen, err := getEnvInt("MAX_TEXT_LENGTH", 20000)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_TEXT_LENGTH: %w", err)
	}

	rps, err := getEnvFloat("RATE_LIMIT_RPS", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := getEnvInt("RATE_LIMIT_BURST", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		LibreTranslate: LibreTranslateConfig{
			BaseURL: getEnv("LIBRETRANSLATE_URL", "https://libretranslate.de"),
			APIKey:  getEnv("LIBRETRANSLATE_API_KEY", ""),
			Timeout: ltTimeout,
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			TranslateModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			WhisperModel:   getEnv("WHISPER_MODEL", "whisper-1"),
			WhisperBaseURL: getEnv("WHISPER_BASE_URL", ""),
			WhisperTimeout: whisperTimeout,
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes: int64(maxBytes),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: cacheTTL,
		},
		Relay: RelayConfig{
			DetectDefaultLang: getEnv("DETECT_DEFAULT_LANG", "en"),
			STTDefaultLang:    getEnv("STT_DEFAULT_LANG", "en"),
			SupportedLangs:    getEnvList("SUPPORTED_LANGS"),
			MaxTextLen:        maxTextLen,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvListDefault("CORS_ORIGIN", []string{"*"}),
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.OpenAI.APIKey == "" && c.OpenAI.WhisperBaseURL == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvListDefault(key string, fallback []string) []string {
	if l := getEnvList(key); l != nil {
		return l
	}
	return fallback
}
